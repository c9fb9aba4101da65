package model

// 用户角色
const (
	RoleMember     = "member"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Address      string `gorm:"type:varchar(255);not null;default:''"          json:"address"` // 预约时的默认上课地点
	Role         string `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
