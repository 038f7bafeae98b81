package service

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/commerce-next/internal/config"
	"github.com/commerce-next/internal/constants"
	"github.com/commerce-next/internal/logger"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 评价积分返还默认比例（配置缺失或非法时回退）
var defaultPointAccrualRate = decimal.NewFromFloat(0.02)

// ReviewService 评价服务
// 评价创建是订单驱动的账户变更入口：评价行、台账积分、积分流水
// 在同一事务内提交，任一步失败整体回滚。
type ReviewService struct {
	cfg              *config.Config
	userRepo         repository.UserRepository
	userInfoRepo     repository.UserInfoRepository
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	reviewRepo       repository.ReviewRepository
	payMoneyRepo     repository.PayMoneyRepository
	pointHistoryRepo repository.PointHistoryRepository
	uploadSvc        *UploadService
}

// NewReviewService 创建评价服务
func NewReviewService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	userInfoRepo repository.UserInfoRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	payMoneyRepo repository.PayMoneyRepository,
	pointHistoryRepo repository.PointHistoryRepository,
	uploadSvc *UploadService,
) *ReviewService {
	return &ReviewService{
		cfg:              cfg,
		userRepo:         userRepo,
		userInfoRepo:     userInfoRepo,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		reviewRepo:       reviewRepo,
		payMoneyRepo:     payMoneyRepo,
		pointHistoryRepo: pointHistoryRepo,
		uploadSvc:        uploadSvc,
	}
}

// CreateReviewInput 创建评价输入
type CreateReviewInput struct {
	OrderID   uint
	ProductID uint
	Content   string
	StarPoint int
}

// CreateReviewResult 创建评价结果
// ImageWarning 非空表示评价与积分已提交、仅图片上传失败（部分成功）。
type CreateReviewResult struct {
	Review       *models.Review
	EarnedPoints int64
	PointBalance int64
	ImageWarning string
}

// CreateReview 创建评价并返还积分
// 校验用户、订单归属与支付状态、资料、商品、台账，创建评价行，
// 按订单实付金额比例返还积分并追加积分流水，全部在一个事务内。
// 图片上传在事务提交后执行，失败不回滚评价，仅在结果上携带告警。
func (s *ReviewService) CreateReview(input CreateReviewInput, userID uint, imageFile *multipart.FileHeader) (*CreateReviewResult, error) {
	if input.StarPoint < 1 || input.StarPoint > 5 {
		return nil, ErrReviewInvalidStar
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var (
		review       *models.Review
		earnedPoints int64
		pointBalance int64
	)
	if err := s.reviewRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.WithTx(tx).GetPaidByIDAndUser(input.OrderID, userID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrReviewPermissionDenied
		}

		info, err := s.userInfoRepo.WithTx(tx).GetByUserID(userID)
		if err != nil {
			return err
		}
		if info == nil {
			return ErrUserInfoNotFound
		}

		product, err := s.productRepo.WithTx(tx).GetByID(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}

		// 行锁当前台账，避免并发评价/充值丢失积分更新
		ledger, err := s.payMoneyRepo.WithTx(tx).GetCurrentByUserIDForUpdate(userID)
		if err != nil {
			return err
		}
		if ledger == nil {
			return ErrPayMoneyNotFound
		}

		exists, err := s.reviewRepo.WithTx(tx).ExistsActive(input.OrderID, input.ProductID)
		if err != nil {
			return err
		}
		if exists {
			return ErrReviewAlreadyExists
		}

		now := time.Now()
		row := &models.Review{
			OrderID:   input.OrderID,
			UserID:    userID,
			ProductID: input.ProductID,
			Author:    resolveReviewAuthor(info, user),
			Content:   strings.TrimSpace(input.Content),
			StarPoint: input.StarPoint,
			Status:    constants.ReviewStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.reviewRepo.WithTx(tx).Create(row); err != nil {
			// 唯一索引兜底存在性检查与插入之间的竞态
			if repository.IsDuplicateKey(err) {
				return ErrReviewAlreadyExists
			}
			return err
		}

		points := s.accrualPoints(order.TotalPrice)
		newBalance := ledger.PointBalance + points
		if err := s.payMoneyRepo.WithTx(tx).UpdatePointBalance(ledger.ID, newBalance); err != nil {
			return err
		}
		if err := s.pointHistoryRepo.WithTx(tx).Create(&models.PointHistory{
			PayMoneyID:  ledger.ID,
			EarnedPoint: points,
			UsedPoint:   0,
			Status:      constants.PointHistoryStatusAccrued,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		review = row
		earnedPoints = points
		pointBalance = newBalance
		return nil
	}); err != nil {
		return nil, err
	}

	result := &CreateReviewResult{
		Review:       review,
		EarnedPoints: earnedPoints,
		PointBalance: pointBalance,
	}

	// 图片是对同一评价行的第二次写入，评价此时已提交
	if imageFile != nil && s.uploadSvc != nil {
		url, err := s.uploadSvc.SaveFile(imageFile, "review")
		if err == nil {
			review.ImageURL = url
			review.UpdatedAt = time.Now()
			err = s.reviewRepo.Update(review)
		}
		if err != nil {
			logger.Warnw("review_image_attach_failed",
				"review_id", review.ID,
				"user_id", userID,
				"error", err,
			)
			result.ImageWarning = "评价已提交，图片上传失败"
		}
	}

	return result, nil
}

// DeleteReview 撤回评价
// 不存在与非本人所有均返回 ErrNoPermissionToDelete，不泄露评价是否存在。
// 撤回为状态流转而非删行，积分返还的审计痕迹保留。
func (s *ReviewService) DeleteReview(reviewID, userID uint) (string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	review, err := s.reviewRepo.GetActiveByIDAndUser(reviewID, userID)
	if err != nil {
		return "", err
	}
	if review == nil {
		return "", ErrNoPermissionToDelete
	}

	review.Status = constants.ReviewStatusRetracted
	review.UpdatedAt = time.Now()
	if err := s.reviewRepo.Update(review); err != nil {
		return "", err
	}

	// 图片清理尽力而为，失败只记日志
	if review.ImageURL != "" && s.uploadSvc != nil {
		if err := s.uploadSvc.Remove(review.ImageURL); err != nil {
			logger.Warnw("review_image_remove_failed",
				"review_id", review.ID,
				"image_url", review.ImageURL,
				"error", err,
			)
		}
	}

	productName := "商品"
	if product, err := s.productRepo.GetByID(review.ProductID); err == nil && product != nil {
		productName = product.Name
	}
	return fmt.Sprintf("已删除「%s」的评价", productName), nil
}

// ListReviews 按商品游标分页获取评价
// cursorID 为上一页最后一条评价的 id，0 表示从头开始；
// 返回下一页游标，0 表示已到末尾。
func (s *ReviewService) ListReviews(productID, cursorID uint, limit int) ([]models.Review, uint, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, 0, err
	}
	if product == nil {
		return nil, 0, ErrProductNotFound
	}

	if limit <= 0 || limit > 100 {
		limit = 10
	}
	reviews, err := s.reviewRepo.ListByProduct(productID, cursorID, limit)
	if err != nil {
		return nil, 0, err
	}

	var nextCursor uint
	if len(reviews) == limit {
		nextCursor = reviews[len(reviews)-1].ID
	}
	return reviews, nextCursor, nil
}

// accrualPoints 按订单实付金额计算返还积分（四舍五入到整数）
func (s *ReviewService) accrualPoints(total models.Money) int64 {
	rate := defaultPointAccrualRate
	if s.cfg != nil && strings.TrimSpace(s.cfg.Points.AccrualRate) != "" {
		if parsed, err := decimal.NewFromString(strings.TrimSpace(s.cfg.Points.AccrualRate)); err == nil && parsed.IsPositive() {
			rate = parsed
		}
	}
	return total.Decimal.Mul(rate).Round(0).IntPart()
}

func resolveReviewAuthor(info *models.UserInfo, user *models.User) string {
	if nickname := strings.TrimSpace(info.Nickname); nickname != "" {
		return nickname
	}
	return user.UserName
}
