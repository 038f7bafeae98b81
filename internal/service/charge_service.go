package service

import (
	"strings"
	"time"

	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChargeService 充值台账服务
// 充值事件追加新台账行并结转未消费余额，历史行永不回改，
// 用户当前余额取 id 最大的一行。
type ChargeService struct {
	userRepo         repository.UserRepository
	payMoneyRepo     repository.PayMoneyRepository
	pointHistoryRepo repository.PointHistoryRepository
}

// NewChargeService 创建充值台账服务
func NewChargeService(
	userRepo repository.UserRepository,
	payMoneyRepo repository.PayMoneyRepository,
	pointHistoryRepo repository.PointHistoryRepository,
) *ChargeService {
	return &ChargeService{
		userRepo:         userRepo,
		payMoneyRepo:     payMoneyRepo,
		pointHistoryRepo: pointHistoryRepo,
	}
}

// Charge 充值
// 记录充值事件并追加新的台账快照：以当前行结转为基础，
// 累加充值总额和可用余额。首充用户从零快照开始。
func (s *ChargeService) Charge(userID uint, amount models.Money, pgPaymentID string) (*models.PayMoney, error) {
	if amount.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrChargeInvalidAmount
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	pgRef := strings.TrimSpace(pgPaymentID)
	if pgRef == "" {
		pgRef = uuid.New().String()
	}

	var result *models.PayMoney
	if err := s.payMoneyRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.payMoneyRepo.WithTx(tx)
		now := time.Now()

		current, err := repo.GetCurrentByUserIDForUpdate(userID)
		if err != nil {
			return err
		}

		history := &models.ChargeHistory{
			UserID:    userID,
			Amount:    amount,
			CreatedAt: now,
		}
		if err := repo.CreateChargeHistory(history); err != nil {
			return err
		}

		var next models.PayMoney
		if current != nil {
			next = current.CarryForward()
		} else {
			next = models.PayMoney{UserID: userID}
		}
		next.ChargeHistoryID = &history.ID
		next.ChargeTotal = models.NewMoneyFromDecimal(next.ChargeTotal.Decimal.Add(amount.Decimal))
		next.Balance = models.NewMoneyFromDecimal(next.Balance.Decimal.Add(amount.Decimal))
		next.PgPaymentID = pgRef
		next.CreatedAt = now
		if err := repo.Create(&next); err != nil {
			return err
		}

		result = &next
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// GetBalance 获取用户当前台账快照
func (s *ChargeService) GetBalance(userID uint) (*models.PayMoney, error) {
	if userID == 0 {
		return nil, ErrPayMoneyNotFound
	}
	current, err := s.payMoneyRepo.GetCurrentByUserID(userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrPayMoneyNotFound
	}
	return current, nil
}

// ListPointHistory 分页获取用户积分流水
func (s *ChargeService) ListPointHistory(filter repository.PointHistoryListFilter) ([]models.PointHistory, int64, error) {
	return s.pointHistoryRepo.ListByUser(filter)
}
