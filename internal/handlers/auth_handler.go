package handlers

import (
	"strings"

	"mtsp/internal/services"
	apperrors "mtsp/pkg/errors"
	"mtsp/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterTenantRequest struct {
	TenantName    string `json:"tenantName" binding:"required"`
	Subdomain     string `json:"subdomain" binding:"required,subdomain"`
	AdminEmail    string `json:"adminEmail" binding:"required,email"`
	AdminPassword string `json:"adminPassword" binding:"required"`
	AdminFullName string `json:"adminFullName" binding:"required"`
}

type LoginRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	TenantSubdomain string `json:"tenantSubdomain" binding:"required"`
}

// RegisterTenant 注册租户及其管理员账号
func (h *AuthHandler) RegisterTenant(c *gin.Context) {
	var req RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	result, err := h.authService.RegisterTenant(
		req.TenantName, req.Subdomain, req.AdminEmail, req.AdminPassword, req.AdminFullName,
	)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.Success(c, result)
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	result, err := h.authService.Login(req.Email, req.Password, req.TenantSubdomain)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.Success(c, result)
}

// Me 获取当前登录用户的完整信息
func (h *AuthHandler) Me(c *gin.Context) {
	tokenString, err := extractBearerToken(c)
	if err != nil {
		response.AppError(c, err)
		return
	}

	result, err := h.authService.CurrentUser(tokenString)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.Success(c, result)
}

// extractBearerToken 从Authorization头提取Bearer令牌
func extractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", apperrors.ErrTokenInvalid
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", apperrors.ErrTokenInvalid
	}
	return authHeader[7:], nil
}
