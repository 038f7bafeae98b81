package repository

import (
	"errors"
	"time"

	"github.com/commerce-next/internal/models"

	"gorm.io/gorm"
)

// UsersCouponRepository 用户持券数据访问接口
type UsersCouponRepository interface {
	Create(assignment *models.UsersCoupon) error
	GetUnused(userID, couponID uint) (*models.UsersCoupon, error)
	ListUnusedByUser(userID uint) ([]models.UsersCoupon, error)
	MarkUsed(assignmentID uint, usedAt time.Time) (bool, error)
	WithTx(tx *gorm.DB) *GormUsersCouponRepository
}

// GormUsersCouponRepository GORM 实现
type GormUsersCouponRepository struct {
	db *gorm.DB
}

// NewUsersCouponRepository 创建用户持券仓库
func NewUsersCouponRepository(db *gorm.DB) *GormUsersCouponRepository {
	return &GormUsersCouponRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUsersCouponRepository) WithTx(tx *gorm.DB) *GormUsersCouponRepository {
	if tx == nil {
		return r
	}
	return &GormUsersCouponRepository{db: tx}
}

// Create 创建持券记录
func (r *GormUsersCouponRepository) Create(assignment *models.UsersCoupon) error {
	return r.db.Create(assignment).Error
}

// GetUnused 获取用户对指定优惠券的未使用持券记录
func (r *GormUsersCouponRepository) GetUnused(userID, couponID uint) (*models.UsersCoupon, error) {
	if userID == 0 || couponID == 0 {
		return nil, nil
	}
	var assignment models.UsersCoupon
	if err := r.db.
		Where("user_id = ? AND coupon_id = ? AND is_used = ?", userID, couponID, false).
		Order("id asc").
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// ListUnusedByUser 获取用户全部未使用的持券记录
func (r *GormUsersCouponRepository) ListUnusedByUser(userID uint) ([]models.UsersCoupon, error) {
	var assignments []models.UsersCoupon
	if err := r.db.
		Preload("Coupon").
		Where("user_id = ? AND is_used = ?", userID, false).
		Order("id asc").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// MarkUsed 将持券记录标记为已使用
// 条件更新保证 is_used 只有一次 false -> true 的流转，
// 并发调用只有一方能命中，返回是否更新成功。
func (r *GormUsersCouponRepository) MarkUsed(assignmentID uint, usedAt time.Time) (bool, error) {
	result := r.db.Model(&models.UsersCoupon{}).
		Where("id = ? AND is_used = ?", assignmentID, false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": usedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
