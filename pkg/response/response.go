package response

import (
	"errors"
	"net/http"

	apperrors "mtsp/pkg/errors"
	"mtsp/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// Response 统一返回格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ========== 基础返回方法 ==========

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    apperrors.CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 成功返回（自定义消息）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    apperrors.CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// SuccessWithPage 分页成功返回
func SuccessWithPage(c *gin.Context, data interface{}, pageInfo *pagination.PageInfo) {
	c.JSON(http.StatusOK, gin.H{
		"code":      apperrors.CodeSuccess,
		"message":   "success",
		"data":      data,
		"page_info": pageInfo,
	})
}

// Error 通用错误返回
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// AppError 业务错误返回 - 未分类错误一律按服务器内部错误处理，不暴露内部细节
func AppError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		Error(c, appErr.Code, appErr.Message)
		return
	}
	Error(c, apperrors.CodeServerError, "服务器内部错误")
}

// ========== HTTP错误快捷方法 ==========

func BadRequest(c *gin.Context, message string) {
	Error(c, apperrors.CodeInvalidParam, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, apperrors.CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, apperrors.CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, apperrors.CodeNotFound, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, apperrors.CodeServerError, message)
}
