package models

// User 用户模型 - 邮箱在租户内唯一，密码只保存bcrypt摘要
type User struct {
	BaseModel
	TenantID     string `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:idx_users_tenant_email;index"`
	Email        string `json:"email" gorm:"not null;size:255;uniqueIndex:idx_users_tenant_email"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	FullName     string `json:"full_name" gorm:"not null;size:100"`
	Role         string `json:"role" gorm:"not null;size:20"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户角色常量 - 租户的第一个用户始终是tenant_admin
const (
	RoleTenantAdmin = "tenant_admin"
	RoleMember      = "member"
)

// IsValidRole 检查角色是否有效
func IsValidRole(role string) bool {
	switch role {
	case RoleTenantAdmin, RoleMember:
		return true
	default:
		return false
	}
}
