package repository

import (
	"errors"

	"github.com/commerce-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayMoneyRepository 充值/积分台账数据访问接口
type PayMoneyRepository interface {
	GetCurrentByUserID(userID uint) (*models.PayMoney, error)
	GetCurrentByUserIDForUpdate(userID uint) (*models.PayMoney, error)
	Create(payMoney *models.PayMoney) error
	UpdatePointBalance(id uint, pointBalance int64) error
	CreateChargeHistory(history *models.ChargeHistory) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormPayMoneyRepository
}

// GormPayMoneyRepository GORM 实现
type GormPayMoneyRepository struct {
	db *gorm.DB
}

// NewPayMoneyRepository 创建台账仓库
func NewPayMoneyRepository(db *gorm.DB) *GormPayMoneyRepository {
	return &GormPayMoneyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPayMoneyRepository) WithTx(tx *gorm.DB) *GormPayMoneyRepository {
	if tx == nil {
		return r
	}
	return &GormPayMoneyRepository{db: tx}
}

// Transaction 在事务中执行
func (r *GormPayMoneyRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetCurrentByUserID 获取用户当前台账（id 最大的一行）
func (r *GormPayMoneyRepository) GetCurrentByUserID(userID uint) (*models.PayMoney, error) {
	if userID == 0 {
		return nil, nil
	}
	var payMoney models.PayMoney
	if err := r.db.
		Where("user_id = ?", userID).
		Order("id desc").
		First(&payMoney).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payMoney, nil
}

// GetCurrentByUserIDForUpdate 加锁获取用户当前台账
// 积分返还与充值可能并发触及同一行，行锁避免丢失更新。
func (r *GormPayMoneyRepository) GetCurrentByUserIDForUpdate(userID uint) (*models.PayMoney, error) {
	if userID == 0 {
		return nil, nil
	}
	var payMoney models.PayMoney
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("id desc").
		First(&payMoney).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payMoney, nil
}

// Create 追加台账行（充值结转，历史行不回改）
func (r *GormPayMoneyRepository) Create(payMoney *models.PayMoney) error {
	return r.db.Create(payMoney).Error
}

// UpdatePointBalance 原地更新台账行的积分余额（唯一允许的原地更新）
func (r *GormPayMoneyRepository) UpdatePointBalance(id uint, pointBalance int64) error {
	return r.db.Model(&models.PayMoney{}).
		Where("id = ?", id).
		UpdateColumn("point_balance", pointBalance).Error
}

// CreateChargeHistory 创建充值事件记录
func (r *GormPayMoneyRepository) CreateChargeHistory(history *models.ChargeHistory) error {
	return r.db.Create(history).Error
}
