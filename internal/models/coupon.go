package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 优惠券定义
type Coupon struct {
	ID        uint           `gorm:"primarykey" json:"id"`                     // 主键
	Name      string         `gorm:"not null" json:"name"`                     // 优惠券名称
	Type      string         `gorm:"not null" json:"type"`                     // 类型（fixed/percent）
	Value     Money          `gorm:"type:decimal(20,2);not null" json:"value"` // 数值（固定金额或百分比）
	ExpiresAt *time.Time     `gorm:"index" json:"expires_at"`                  // 失效时间
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`   // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                  // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}
