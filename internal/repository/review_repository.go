package repository

import (
	"errors"

	"github.com/commerce-next/internal/constants"
	"github.com/commerce-next/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	GetActiveByIDAndUser(reviewID, userID uint) (*models.Review, error)
	ExistsActive(orderID, productID uint) (bool, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	ListByProduct(productID, cursorID uint, limit int) ([]models.Review, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormReviewRepository
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReviewRepository) WithTx(tx *gorm.DB) *GormReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// Transaction 在事务中执行
func (r *GormReviewRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetActiveByIDAndUser 获取指定作者的未撤回评价
// 不存在与非本人所有不作区分，统一返回 nil。
func (r *GormReviewRepository) GetActiveByIDAndUser(reviewID, userID uint) (*models.Review, error) {
	if reviewID == 0 || userID == 0 {
		return nil, nil
	}
	var review models.Review
	if err := r.db.
		Where("id = ? AND user_id = ? AND status = ?", reviewID, userID, constants.ReviewStatusActive).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ExistsActive 判断订单+商品是否已有未撤回评价
func (r *GormReviewRepository) ExistsActive(orderID, productID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Review{}).
		Where("order_id = ? AND product_id = ? AND status = ?", orderID, productID, constants.ReviewStatusActive).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update 更新评价
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// ListByProduct 按商品游标分页获取未撤回评价（id 升序，cursorID 为上一页最后一条的 id）
func (r *GormReviewRepository) ListByProduct(productID, cursorID uint, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = 10
	}
	var reviews []models.Review
	if err := r.db.
		Where("product_id = ? AND status = ? AND id > ?", productID, constants.ReviewStatusActive, cursorID).
		Order("id asc").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
