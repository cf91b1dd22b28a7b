package services

import (
	"errors"

	"mtsp/internal/models"
	apperrors "mtsp/pkg/errors"

	"gorm.io/gorm"
)

// TenantService 租户目录 - 子域名到租户的解析与唯一性保证
type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// Create 创建租户
// 不做先查后插：并发注册由数据库唯一约束串行化，冲突统一映射为子域名占用错误
func (s *TenantService) Create(name, subdomain, plan string, maxUsers, maxProjects int) (*models.Tenant, error) {
	if plan == "" {
		plan = models.PlanFree
	}
	if maxUsers <= 0 {
		maxUsers = models.DefaultMaxUsers
	}
	if maxProjects <= 0 {
		maxProjects = models.DefaultMaxProjects
	}

	tenant := &models.Tenant{
		Name:             name,
		Subdomain:        subdomain,
		SubscriptionPlan: plan,
		MaxUsers:         maxUsers,
		MaxProjects:      maxProjects,
	}

	if err := s.db.Create(tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateSubdomain
		}
		return nil, err
	}
	return tenant, nil
}

// GetBySubdomain 根据子域名精确查找租户，区分大小写
func (s *TenantService) GetBySubdomain(subdomain string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Where("subdomain = ?", subdomain).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// GetByID 根据ID获取租户
func (s *TenantService) GetByID(id string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Where("id = ?", id).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}
