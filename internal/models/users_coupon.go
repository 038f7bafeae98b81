package models

import (
	"time"
)

// UsersCoupon 用户持券记录（优惠券发放）
// is_used 只允许 false -> true 单向流转，且只能由持券人触发。
type UsersCoupon struct {
	ID        uint      `gorm:"primarykey" json:"id"`                  // 主键
	UserID    uint      `gorm:"index;not null" json:"user_id"`         // 用户ID
	CouponID  uint      `gorm:"index;not null" json:"coupon_id"`       // 优惠券ID
	IsUsed    bool      `gorm:"not null;default:false" json:"is_used"` // 是否已使用
	UsedAt    *time.Time `json:"used_at"`                              // 使用时间
	CreatedAt time.Time `gorm:"index" json:"created_at"`               // 发放时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`               // 更新时间

	Coupon *Coupon `gorm:"foreignKey:CouponID" json:"coupon,omitempty"` // 券定义
}

// TableName 指定表名
func (UsersCoupon) TableName() string {
	return "users_coupons"
}
