package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/commerce-next/internal/config"
	"github.com/commerce-next/internal/logger"
	"github.com/commerce-next/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultGradeCronSpec = "0 0 1 * *"

// Service 异步队列服务
// 同时承载任务消费与等级重算的周期调度。
type Service struct {
	name      string
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	consumer  *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	scheduler, err := buildScheduler(cfg)
	if err != nil {
		return nil, err
	}

	return &Service{
		name:      "worker",
		server:    server,
		mux:       mux,
		scheduler: scheduler,
		consumer:  consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	_ = ctx
	if s.scheduler != nil {
		go func() {
			if err := s.scheduler.Run(); err != nil {
				logger.Errorw("worker_scheduler_stopped", "error", err)
			}
		}()
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	_ = ctx
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	if s.server != nil {
		s.server.Shutdown()
	}
	return nil
}

// buildScheduler 注册等级重算的周期任务
// 载荷不带令牌，消费方按处理时刻的周期推导，周期内重复触发自然收敛。
func buildScheduler(cfg *config.Config) (*asynq.Scheduler, error) {
	spec := defaultGradeCronSpec
	if trimmed := strings.TrimSpace(cfg.Grade.CronSpec); trimmed != "" {
		spec = trimmed
	}

	scheduler := asynq.NewScheduler(queue.BuildClientOpt(&cfg.Queue), &asynq.SchedulerOpts{})
	task, err := queue.NewGradeRecalculateTask(queue.GradeRecalculatePayload{})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(spec, task, asynq.Queue(queue.DefaultQueue)); err != nil {
		return nil, err
	}
	return scheduler, nil
}
