package handlers

import (
	"mtsp/internal/models"
	"mtsp/internal/services"
	"mtsp/pkg/pagination"
	"mtsp/pkg/response"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role"`
}

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create 在当前租户内创建用户，仅租户管理员可用
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 新用户始终落在调用者自己的租户内
	tenantID := c.GetString("tenant_id")

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}

	user, err := h.userService.Create(tenantID, req.Email, req.Password, req.FullName, role)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.Success(c, services.PublicUser{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		TenantID: user.TenantID,
	})
}

// List 分页列出当前租户的用户
func (h *UserHandler) List(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	pageParams := pagination.ParsePageParams(c)

	users, total, err := h.userService.GetByTenantWithPage(tenantID, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.AppError(c, err)
		return
	}

	result := make([]services.PublicUser, 0, len(users))
	for _, user := range users {
		result = append(result, services.PublicUser{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
			TenantID: user.TenantID,
		})
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, result, pageInfo)
}
