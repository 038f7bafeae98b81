package repository

import (
	"errors"

	"github.com/commerce-next/internal/models"

	"gorm.io/gorm"
)

// GradeJobRunRepository 等级批处理运行记录数据访问接口
type GradeJobRunRepository interface {
	GetByToken(token string) (*models.GradeJobRun, error)
	Create(run *models.GradeJobRun) error
	Update(run *models.GradeJobRun) error
	WithTx(tx *gorm.DB) *GormGradeJobRunRepository
}

// GormGradeJobRunRepository GORM 实现
type GormGradeJobRunRepository struct {
	db *gorm.DB
}

// NewGradeJobRunRepository 创建运行记录仓库
func NewGradeJobRunRepository(db *gorm.DB) *GormGradeJobRunRepository {
	return &GormGradeJobRunRepository{db: db}
}

// WithTx 绑定事务
func (r *GormGradeJobRunRepository) WithTx(tx *gorm.DB) *GormGradeJobRunRepository {
	if tx == nil {
		return r
	}
	return &GormGradeJobRunRepository{db: tx}
}

// GetByToken 按运行令牌获取记录
func (r *GormGradeJobRunRepository) GetByToken(token string) (*models.GradeJobRun, error) {
	if token == "" {
		return nil, nil
	}
	var run models.GradeJobRun
	if err := r.db.Where("token = ?", token).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// Create 创建运行记录
// token 唯一索引使并发触发只有一方插入成功，
// 冲突由调用方按 IsDuplicateKey 识别。
func (r *GormGradeJobRunRepository) Create(run *models.GradeJobRun) error {
	return r.db.Create(run).Error
}

// Update 更新运行记录
func (r *GormGradeJobRunRepository) Update(run *models.GradeJobRun) error {
	return r.db.Save(run).Error
}
