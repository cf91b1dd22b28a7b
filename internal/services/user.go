package services

import (
	"errors"

	"mtsp/internal/models"
	apperrors "mtsp/pkg/errors"
	"mtsp/pkg/password"

	"gorm.io/gorm"
)

// UserService 用户存取 - 所有查询都以租户为边界
type UserService struct {
	db     *gorm.DB
	hasher *password.Hasher
}

func NewUserService(db *gorm.DB, hasher *password.Hasher) *UserService {
	return &UserService{db: db, hasher: hasher}
}

// Create 创建用户，密码先哈希再落库
// (tenant_id, email) 的唯一性由数据库约束保证，冲突映射为租户内邮箱重复错误
func (s *UserService) Create(tenantID, email, plaintextPassword, fullName, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, apperrors.ErrValidation
	}

	hash, err := s.hasher.Hash(plaintextPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// GetByEmailInTenant 在指定租户内按邮箱查找用户
func (s *UserService) GetByEmailInTenant(tenantID, email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("tenant_id = ? AND email = ?", tenantID, email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByTenantWithPage 分页列出指定租户的用户
func (s *UserService) GetByTenantWithPage(tenantID string, page, pageSize int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := s.db.Model(&models.User{}).Where("tenant_id = ?", tenantID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at ASC").Offset(offset).Limit(pageSize).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// VerifyPassword 校验用户密码
func (s *UserService) VerifyPassword(user *models.User, plaintext string) bool {
	return s.hasher.Verify(plaintext, user.PasswordHash)
}
