package queue

import (
	"encoding/json"
	"time"

	"github.com/commerce-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskGradeRecalculate 会员等级重算任务
	TaskGradeRecalculate = constants.TaskGradeRecalculate
)

// GradeRecalculatePayload 等级重算任务载荷
// Token 为空时由消费方按处理时刻推导当前周期令牌。
type GradeRecalculatePayload struct {
	Token string `json:"token"`
}

// NewGradeRecalculateTask 创建等级重算任务
func NewGradeRecalculateTask(payload GradeRecalculatePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGradeRecalculate, body), nil
}

// PeriodToken 按月生成运行令牌（同一自然月内的触发得到同一令牌）
func PeriodToken(t time.Time) string {
	return t.Format("200601")
}
