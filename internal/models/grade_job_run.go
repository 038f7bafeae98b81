package models

import (
	"time"
)

// GradeJobRun 等级重算批处理运行记录
// token 上的唯一索引保证同一触发周期最多执行一次。
type GradeJobRun struct {
	ID           uint       `gorm:"primarykey" json:"id"`                    // 主键
	Token        string     `gorm:"uniqueIndex;not null" json:"token"`       // 运行令牌（周期标识）
	TriggeredAt  time.Time  `gorm:"not null" json:"triggered_at"`            // 触发时间
	CompletedAt  *time.Time `json:"completed_at"`                            // 完成时间
	UpdatedUsers int        `gorm:"not null;default:0" json:"updated_users"` // 本次变更等级的用户数
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                 // 创建时间
}

// TableName 指定表名
func (GradeJobRun) TableName() string {
	return "grade_job_runs"
}
