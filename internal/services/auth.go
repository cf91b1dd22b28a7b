package services

import (
	"errors"

	"mtsp/internal/models"
	apperrors "mtsp/pkg/errors"
	"mtsp/pkg/jwt"
	"mtsp/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthService 认证编排 - 租户注册、登录、会话识别
type AuthService struct {
	db         *gorm.DB
	hasher     *password.Hasher
	jwtManager *jwt.JWTManager
	logger     *logrus.Logger
}

func NewAuthService(db *gorm.DB, hasher *password.Hasher, jwtManager *jwt.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		db:         db,
		hasher:     hasher,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// PublicUser 用户公开投影，任何响应都不携带密码摘要
type PublicUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	TenantID string `json:"tenantId,omitempty"`
}

// TenantSummary 租户摘要投影
type TenantSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Subdomain        string `json:"subdomain"`
	SubscriptionPlan string `json:"subscriptionPlan"`
	MaxUsers         int    `json:"maxUsers"`
	MaxProjects      int    `json:"maxProjects"`
}

// RegisterTenantResult 租户注册结果
type RegisterTenantResult struct {
	TenantID  string     `json:"tenantId"`
	Subdomain string     `json:"subdomain"`
	AdminUser PublicUser `json:"adminUser"`
}

// LoginResult 登录结果
type LoginResult struct {
	User      PublicUser `json:"user"`
	Token     string     `json:"token"`
	ExpiresIn int64      `json:"expiresIn"` // 秒
}

// CurrentUserResult 当前会话用户信息，租户信息为尽力补充，可能为null
type CurrentUserResult struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	FullName string         `json:"fullName"`
	Role     string         `json:"role"`
	IsActive bool           `json:"isActive"`
	Tenant   *TenantSummary `json:"tenant"`
}

// RegisterTenant 注册租户并创建管理员用户
// 两次写入在同一个事务中执行：任何一步失败都整体回滚，不会留下没有管理员的租户
func (s *AuthService) RegisterTenant(tenantName, subdomain, adminEmail, adminPassword, adminFullName string) (*RegisterTenantResult, error) {
	if tenantName == "" || subdomain == "" || adminEmail == "" || adminPassword == "" || adminFullName == "" {
		return nil, apperrors.ErrValidation
	}

	var tenant *models.Tenant
	var admin *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error

		tenant, err = NewTenantService(tx).Create(
			tenantName, subdomain, models.PlanFree,
			models.DefaultMaxUsers, models.DefaultMaxProjects,
		)
		if err != nil {
			return err
		}

		admin, err = NewUserService(tx, s.hasher).Create(
			tenant.ID, adminEmail, adminPassword, adminFullName, models.RoleTenantAdmin,
		)
		return err
	})

	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			s.logger.WithFields(logrus.Fields{
				"subdomain": subdomain,
			}).Errorf("register tenant failed: %v", err)
		}
		return nil, err
	}

	return &RegisterTenantResult{
		TenantID:  tenant.ID,
		Subdomain: tenant.Subdomain,
		AdminUser: PublicUser{
			ID:       admin.ID,
			Email:    admin.Email,
			FullName: admin.FullName,
			Role:     admin.Role,
		},
	}, nil
}

// Login 登录并签发会话令牌
// 用户不存在与密码错误对外返回同一种错误，不泄露具体原因
func (s *AuthService) Login(email, plaintextPassword, tenantSubdomain string) (*LoginResult, error) {
	if email == "" || plaintextPassword == "" || tenantSubdomain == "" {
		return nil, apperrors.ErrValidation
	}

	tenant, err := NewTenantService(s.db).GetBySubdomain(tenantSubdomain)
	if err != nil {
		return nil, err
	}

	userService := NewUserService(s.db, s.hasher)
	user, err := userService.GetByEmailInTenant(tenant.ID, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !userService.VerifyPassword(user, plaintextPassword) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// 登录不检查is_active，停用用户仍可登录
	token, err := s.jwtManager.GenerateToken(user.ID, user.TenantID, user.Role)
	if err != nil {
		s.logger.Errorf("generate token failed: %v", err)
		return nil, apperrors.ErrPersistence
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
	}).Info("user logged in")

	return &LoginResult{
		User: PublicUser{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
			TenantID: user.TenantID,
		},
		Token:     token,
		ExpiresIn: int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}

// CurrentUser 根据令牌解析当前会话身份
// 租户信息为尽力补充：租户不存在时返回tenant=null而不是报错
func (s *AuthService) CurrentUser(tokenString string) (*CurrentUserResult, error) {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := NewUserService(s.db, s.hasher).GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	result := &CurrentUserResult{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		IsActive: user.IsActive,
	}

	tenant, err := NewTenantService(s.db).GetByID(claims.TenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTenantNotFound) {
			return result, nil
		}
		return nil, err
	}

	result.Tenant = &TenantSummary{
		ID:               tenant.ID,
		Name:             tenant.Name,
		Subdomain:        tenant.Subdomain,
		SubscriptionPlan: tenant.SubscriptionPlan,
		MaxUsers:         tenant.MaxUsers,
		MaxProjects:      tenant.MaxProjects,
	}
	return result, nil
}
