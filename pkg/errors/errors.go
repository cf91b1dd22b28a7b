package errors

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

// AppError 业务错误 - 携带稳定的错误码和对外消息
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// New 创建业务错误
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// ========== 认证与租户错误定义 ==========

var (
	// ErrValidation 请求参数缺失或格式错误
	ErrValidation = New(CodeInvalidParam, "请求参数错误")

	// ErrDuplicateSubdomain 子域名已被占用
	ErrDuplicateSubdomain = New(CodeConflict, "子域名已被占用")

	// ErrDuplicateEmail 同一租户内邮箱已存在
	ErrDuplicateEmail = New(CodeConflict, "该租户下邮箱已存在")

	// ErrTenantNotFound 租户不存在
	ErrTenantNotFound = New(CodeNotFound, "租户不存在")

	// ErrUserNotFound 用户不存在
	ErrUserNotFound = New(CodeNotFound, "用户不存在")

	// ErrInvalidCredentials 邮箱或密码错误（对外不区分具体原因）
	ErrInvalidCredentials = New(CodeUnauthorized, "邮箱或密码错误")

	// ErrTokenExpired Token已过期
	ErrTokenExpired = New(CodeUnauthorized, "Token已过期")

	// ErrTokenInvalid Token无效
	ErrTokenInvalid = New(CodeUnauthorized, "Token无效")

	// ErrForbidden 权限不足
	ErrForbidden = New(CodeForbidden, "权限不足")

	// ErrHashFormat 密码摘要格式错误
	ErrHashFormat = New(CodeServerError, "密码摘要格式错误")

	// ErrPersistence 存储层未分类失败，对外不暴露内部细节
	ErrPersistence = New(CodeServerError, "服务器内部错误")
)
