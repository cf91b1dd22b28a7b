package models

// Tenant 租户模型 - 贫血模型，只包含数据结构
type Tenant struct {
	BaseModel
	Name             string `json:"name" gorm:"not null;size:100"`
	Subdomain        string `json:"subdomain" gorm:"uniqueIndex;not null;size:63"`
	SubscriptionPlan string `json:"subscription_plan" gorm:"default:'free';size:20"`
	MaxUsers         int    `json:"max_users" gorm:"default:5"`
	MaxProjects      int    `json:"max_projects" gorm:"default:3"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}

// 订阅套餐常量
const (
	PlanFree = "free"
)

// 套餐默认配额
const (
	DefaultMaxUsers    = 5
	DefaultMaxProjects = 3
)
