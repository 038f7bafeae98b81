package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/commerce-next/internal/logger"
	"github.com/commerce-next/internal/provider"
	"github.com/commerce-next/internal/queue"
	"github.com/commerce-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskGradeRecalculate, c.handleGradeRecalculate)
}

// handleGradeRecalculate 处理等级重算任务
// 载荷未带令牌时按处理时刻的周期推导令牌，调度重复触发与
// 任务重试因此落在同一令牌上；令牌已执行视为成功。
func (c *Consumer) handleGradeRecalculate(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_grade_recalculate_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.GradeRecalculatePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_grade_recalculate_unmarshal_failed", "error", err)
		return err
	}
	token := strings.TrimSpace(payload.Token)
	if token == "" {
		token = queue.PeriodToken(time.Now())
	}
	if c.GradeService == nil {
		logger.Warnw("worker_grade_recalculate_skip_service_nil", "token", token)
		return nil
	}
	run, err := c.GradeService.Recalculate(token)
	if err != nil {
		if errors.Is(err, service.ErrGradeJobAlreadyRun) {
			logger.Debugw("worker_grade_recalculate_skip_already_run", "token", token)
			return nil
		}
		logger.Warnw("worker_grade_recalculate_failed", "token", token, "error", err)
		return err
	}
	logger.Infow("worker_grade_recalculate_done",
		"token", token,
		"updated_users", run.UpdatedUsers,
	)
	return nil
}
