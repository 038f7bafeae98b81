package models

import (
	"time"
)

// ChargeHistory 充值事件记录
type ChargeHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`                      // 主键
	UserID    uint      `gorm:"index;not null" json:"user_id"`             // 用户ID
	Amount    Money     `gorm:"type:decimal(20,2);not null" json:"amount"` // 充值金额
	CreatedAt time.Time `gorm:"index" json:"created_at"`                   // 充值时间
}

// TableName 指定表名
func (ChargeHistory) TableName() string {
	return "charge_histories"
}
