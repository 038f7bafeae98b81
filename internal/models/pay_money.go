package models

import (
	"time"
)

// PayMoney 充值/积分台账快照
// 充值事件追加新行并结转未消费余额，历史行不回改；
// 仅评价积分返还会原地更新当前行的 point_balance。
// 用户的"当前"台账为 id 最大的一行。
type PayMoney struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                       // 主键
	UserID          uint      `gorm:"index;not null" json:"user_id"`                              // 用户ID
	ChargeHistoryID *uint     `gorm:"index" json:"charge_history_id,omitempty"`                   // 充值事件ID
	ChargeTotal     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"charge_total"`  // 累计充值总额
	UsedCharge      Money     `gorm:"type:decimal(20,2);not null;default:0" json:"used_charge"`   // 已消费充值额
	Balance         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`       // 可用余额
	PointBalance    int64     `gorm:"not null;default:0" json:"point_balance"`                    // 积分余额
	PgPaymentID     string    `gorm:"default:''" json:"pg_payment_id"`                            // 支付网关流水号
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                    // 创建时间
}

// TableName 指定表名
func (PayMoney) TableName() string {
	return "pay_moneys"
}

// CarryForward 以当前快照为基础生成下一条台账行（结转未消费余额与积分）
func (p PayMoney) CarryForward() PayMoney {
	return PayMoney{
		UserID:       p.UserID,
		ChargeTotal:  p.ChargeTotal,
		UsedCharge:   p.UsedCharge,
		Balance:      p.Balance,
		PointBalance: p.PointBalance,
		PgPaymentID:  p.PgPaymentID,
	}
}
