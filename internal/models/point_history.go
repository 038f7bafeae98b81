package models

import (
	"time"
)

// PointHistory 积分变动流水（只增不改）
type PointHistory struct {
	ID          uint      `gorm:"primarykey" json:"id"`                       // 主键
	PayMoneyID  uint      `gorm:"index;not null" json:"pay_money_id"`         // 台账行ID
	EarnedPoint int64     `gorm:"not null;default:0" json:"earned_point"`     // 获得积分
	UsedPoint   int64     `gorm:"not null;default:0" json:"used_point"`       // 消耗积分
	Status      string    `gorm:"index;not null" json:"status"`               // 状态（accrued/spent）
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                    // 记录时间
}

// TableName 指定表名
func (PointHistory) TableName() string {
	return "point_histories"
}
