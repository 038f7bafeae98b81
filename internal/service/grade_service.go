package service

import (
	"strings"
	"time"

	"github.com/commerce-next/internal/config"
	"github.com/commerce-next/internal/constants"
	"github.com/commerce-next/internal/logger"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/repository"

	"github.com/shopspring/decimal"
)

// gradeThreshold 会员等级门槛（窗口内消费总额下限）
type gradeThreshold struct {
	grade string
	min   decimal.Decimal
}

// 等级门槛表（降序匹配，区间不重叠）
var gradeThresholds = []gradeThreshold{
	{constants.GradeVVIP, decimal.NewFromInt(500000)},
	{constants.GradeVIP, decimal.NewFromInt(300000)},
	{constants.GradeGold, decimal.NewFromInt(200000)},
	{constants.GradeSilver, decimal.NewFromInt(100000)},
}

// GradeService 会员等级重算服务
// 运行令牌上的唯一索引保证同一周期最多执行一次，
// 重复触发返回 ErrGradeJobAlreadyRun 作为空操作信号。
type GradeService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	userInfoRepo repository.UserInfoRepository
	orderRepo    repository.OrderRepository
	jobRunRepo   repository.GradeJobRunRepository
}

// NewGradeService 创建等级重算服务
func NewGradeService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	userInfoRepo repository.UserInfoRepository,
	orderRepo repository.OrderRepository,
	jobRunRepo repository.GradeJobRunRepository,
) *GradeService {
	return &GradeService{
		cfg:          cfg,
		userRepo:     userRepo,
		userInfoRepo: userInfoRepo,
		orderRepo:    orderRepo,
		jobRunRepo:   jobRunRepo,
	}
}

// Recalculate 执行一次等级重算
// 先以 token 插入运行记录作为抢占，唯一冲突留给并发触发的另一方。
// 只有 CompletedAt 非空的记录才算已执行：中途失败的运行留下的
// 未完成记录允许同令牌重跑，重试不会把整个周期锁死。
// 按窗口内已支付订单总额给每个用户定级，等级无变化不写库。
func (s *GradeService) Recalculate(runToken string) (*models.GradeJobRun, error) {
	token := strings.TrimSpace(runToken)
	if token == "" {
		return nil, ErrGradeJobAlreadyRun
	}

	now := time.Now()
	run, err := s.jobRunRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	switch {
	case run != nil && run.CompletedAt != nil:
		return nil, ErrGradeJobAlreadyRun
	case run != nil:
		// 上次运行未完成，沿用同一条记录重跑
		run.TriggeredAt = now
		if err := s.jobRunRepo.Update(run); err != nil {
			return nil, err
		}
	default:
		run = &models.GradeJobRun{
			Token:       token,
			TriggeredAt: now,
			CreatedAt:   now,
		}
		if err := s.jobRunRepo.Create(run); err != nil {
			if repository.IsDuplicateKey(err) {
				return nil, ErrGradeJobAlreadyRun
			}
			return nil, err
		}
	}

	windowMonths := 1
	if s.cfg != nil && s.cfg.Grade.WindowMonths > 0 {
		windowMonths = s.cfg.Grade.WindowMonths
	}
	from := now.AddDate(0, -windowMonths, 0)

	totals, err := s.orderRepo.SumPaidTotals(from, now)
	if err != nil {
		return nil, err
	}
	totalByUser := make(map[uint]decimal.Decimal, len(totals))
	for _, row := range totals {
		totalByUser[row.UserID] = row.Total.Decimal
	}

	userIDs, err := s.userRepo.ListIDs()
	if err != nil {
		return nil, err
	}

	updated := 0
	for _, userID := range userIDs {
		info, err := s.userInfoRepo.GetByUserID(userID)
		if err != nil {
			return nil, err
		}
		if info == nil {
			continue
		}
		grade := gradeForTotal(totalByUser[userID])
		if grade == info.Grade {
			continue
		}
		if err := s.userInfoRepo.UpdateGrade(userID, grade); err != nil {
			return nil, err
		}
		updated++
	}

	completedAt := time.Now()
	run.CompletedAt = &completedAt
	run.UpdatedUsers = updated
	if err := s.jobRunRepo.Update(run); err != nil {
		return nil, err
	}

	logger.Infow("grade_recalculate_completed",
		"token", token,
		"window_from", from,
		"updated_users", updated,
	)
	return run, nil
}

// gradeForTotal 按消费总额映射会员等级
func gradeForTotal(total decimal.Decimal) string {
	for _, threshold := range gradeThresholds {
		if total.GreaterThanOrEqual(threshold.min) {
			return threshold.grade
		}
	}
	return constants.GradeBronze
}
