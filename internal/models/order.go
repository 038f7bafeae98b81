package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID         uint           `gorm:"primarykey" json:"id"`                           // 主键
	OrderNo    string         `gorm:"uniqueIndex;not null" json:"order_no"`           // 订单编号
	UserID     uint           `gorm:"index;not null" json:"user_id"`                  // 用户ID
	ProductID  uint           `gorm:"index;not null" json:"product_id"`               // 商品ID
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`             // 购买数量
	TotalPrice Money          `gorm:"type:decimal(20,2);not null" json:"total_price"` // 实付金额
	Status     string         `gorm:"index;not null" json:"status"`                   // 订单状态
	PaidAt     *time.Time     `gorm:"index" json:"paid_at"`                           // 支付时间
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                        // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
