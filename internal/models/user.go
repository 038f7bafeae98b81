package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // 主键
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`    // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                    // 密码哈希（不返回给前端）
	UserName     string         `gorm:"not null" json:"user_name"`            // 用户名
	Telephone    string         `gorm:"default:''" json:"telephone"`          // 电话
	Role         string         `gorm:"not null;default:'buyer'" json:"role"` // 角色（buyer/seller）
	Status       string         `gorm:"default:'active'" json:"status"`       // 账号状态
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间

	// 关联（随用户级联删除）
	Info      *UserInfo     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"info,omitempty"`
	Coupons   []UsersCoupon `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"coupons,omitempty"`
	PayMoneys []PayMoney    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
