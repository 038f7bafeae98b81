package repository

import (
	"github.com/commerce-next/internal/models"

	"gorm.io/gorm"
)

// PointHistoryRepository 积分流水数据访问接口
type PointHistoryRepository interface {
	Create(history *models.PointHistory) error
	ListByUser(filter PointHistoryListFilter) ([]models.PointHistory, int64, error)
	WithTx(tx *gorm.DB) *GormPointHistoryRepository
}

// GormPointHistoryRepository GORM 实现
type GormPointHistoryRepository struct {
	db *gorm.DB
}

// NewPointHistoryRepository 创建积分流水仓库
func NewPointHistoryRepository(db *gorm.DB) *GormPointHistoryRepository {
	return &GormPointHistoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPointHistoryRepository) WithTx(tx *gorm.DB) *GormPointHistoryRepository {
	if tx == nil {
		return r
	}
	return &GormPointHistoryRepository{db: tx}
}

// Create 追加积分流水（流水只增不改）
func (r *GormPointHistoryRepository) Create(history *models.PointHistory) error {
	return r.db.Create(history).Error
}

// ListByUser 分页获取用户积分流水（经台账行关联）
func (r *GormPointHistoryRepository) ListByUser(filter PointHistoryListFilter) ([]models.PointHistory, int64, error) {
	query := r.db.Model(&models.PointHistory{}).
		Joins("JOIN pay_moneys ON pay_moneys.id = point_histories.pay_money_id").
		Where("pay_moneys.user_id = ?", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var histories []models.PointHistory
	if err := query.Order("point_histories.id desc").Find(&histories).Error; err != nil {
		return nil, 0, err
	}
	return histories, total, nil
}
