package models

import (
	"time"
)

// Review 商品评价表
// (order_id, product_id) 上的部分唯一索引保证同一订单同一商品
// 最多只有一条 active 评价；撤回后允许重新评价。
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                                     // 主键
	OrderID   uint      `gorm:"not null;uniqueIndex:idx_reviews_order_product,where:status = 'active'" json:"order_id"`   // 订单ID
	UserID    uint      `gorm:"index;not null" json:"user_id"`                                                            // 作者用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_reviews_order_product,where:status = 'active'" json:"product_id"` // 商品ID
	Author    string    `gorm:"default:''" json:"author"`                                                                 // 作者展示名（来自用户资料昵称）
	Content   string    `gorm:"type:text" json:"content"`                                                                 // 评价内容
	StarPoint int       `gorm:"not null;default:0" json:"star_point"`                                                     // 星级评分
	ImageURL  string    `gorm:"default:''" json:"image_url"`                                                              // 评价图片地址
	Status    string    `gorm:"index;not null;default:'active'" json:"status"`                                            // 状态（active/retracted）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                                  // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                                                  // 更新时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
