package models

import (
	"time"
)

// UserInfo 用户资料与会员等级（与用户一对一）
type UserInfo struct {
	ID        uint      `gorm:"primarykey" json:"id"`                       // 主键
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`        // 用户ID
	Grade     string    `gorm:"not null;default:'BRONZE'" json:"grade"`     // 会员等级
	Nickname  string    `gorm:"default:''" json:"nickname"`                 // 昵称（评价作者展示名）
	Gender    string    `gorm:"type:varchar(10);default:''" json:"gender"`  // 性别
	Address   string    `gorm:"default:''" json:"address"`                  // 地址
	AgeBand   string    `gorm:"type:varchar(4);default:''" json:"age_band"` // 年龄段
	CreatedAt time.Time `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                    // 更新时间
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "users_infos"
}
