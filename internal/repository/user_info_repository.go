package repository

import (
	"errors"

	"github.com/commerce-next/internal/models"

	"gorm.io/gorm"
)

// UserInfoRepository 用户资料数据访问接口
type UserInfoRepository interface {
	GetByUserID(userID uint) (*models.UserInfo, error)
	Create(info *models.UserInfo) error
	Update(info *models.UserInfo) error
	UpdateGrade(userID uint, grade string) error
	WithTx(tx *gorm.DB) *GormUserInfoRepository
}

// GormUserInfoRepository GORM 实现
type GormUserInfoRepository struct {
	db *gorm.DB
}

// NewUserInfoRepository 创建用户资料仓库
func NewUserInfoRepository(db *gorm.DB) *GormUserInfoRepository {
	return &GormUserInfoRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserInfoRepository) WithTx(tx *gorm.DB) *GormUserInfoRepository {
	if tx == nil {
		return r
	}
	return &GormUserInfoRepository{db: tx}
}

// GetByUserID 按用户ID获取资料
func (r *GormUserInfoRepository) GetByUserID(userID uint) (*models.UserInfo, error) {
	if userID == 0 {
		return nil, nil
	}
	var info models.UserInfo
	if err := r.db.Where("user_id = ?", userID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// Create 创建用户资料
func (r *GormUserInfoRepository) Create(info *models.UserInfo) error {
	return r.db.Create(info).Error
}

// Update 更新用户资料
func (r *GormUserInfoRepository) Update(info *models.UserInfo) error {
	return r.db.Save(info).Error
}

// UpdateGrade 仅更新会员等级
func (r *GormUserInfoRepository) UpdateGrade(userID uint, grade string) error {
	return r.db.Model(&models.UserInfo{}).
		Where("user_id = ?", userID).
		Update("grade", grade).Error
}
