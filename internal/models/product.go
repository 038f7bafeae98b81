package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                           // 主键
	SellerID       uint           `gorm:"index;not null" json:"seller_id"`                // 卖家用户ID
	Name           string         `gorm:"index;not null" json:"name"`                     // 商品名
	Price          Money          `gorm:"type:decimal(20,2);not null" json:"price"`       // 单价
	Content        string         `gorm:"type:text" json:"content"`                       // 商品介绍
	ImageURL       string         `gorm:"default:''" json:"image_url"`                    // 主图地址
	LeftAmount     int            `gorm:"not null;default:0" json:"left_amount"`          // 剩余库存
	AgeCategory    string         `gorm:"index;default:'all'" json:"age_category"`        // 年龄分类
	GenderCategory string         `gorm:"index;default:'all'" json:"gender_category"`     // 性别分类
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`         // 是否上架
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                        // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
