package service

import (
	"time"

	"github.com/commerce-next/internal/config"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/repository"
)

// UserCouponService 用户优惠券服务
// 持券记录的 is_used 只允许 false -> true 单向流转，
// 由条件更新保证并发下最多一次成功。
type UserCouponService struct {
	cfg             *config.Config
	userRepo        repository.UserRepository
	couponRepo      repository.CouponRepository
	usersCouponRepo repository.UsersCouponRepository
}

// NewUserCouponService 创建用户优惠券服务
func NewUserCouponService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	couponRepo repository.CouponRepository,
	usersCouponRepo repository.UsersCouponRepository,
) *UserCouponService {
	return &UserCouponService{
		cfg:             cfg,
		userRepo:        userRepo,
		couponRepo:      couponRepo,
		usersCouponRepo: usersCouponRepo,
	}
}

// Issue 向用户发放优惠券
// 默认允许同一张券重复发放（促销补发场景）；
// 开启 coupon.dedupe_issue 后同一用户同一券最多持有一张未使用的券。
func (s *UserCouponService) Issue(userID, couponID uint) (*models.UsersCoupon, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	coupon, err := s.couponRepo.GetByID(couponID)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if !coupon.IsActive || (coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now())) {
		return nil, ErrCouponInactive
	}

	if s.cfg != nil && s.cfg.Coupon.DedupeIssue {
		existing, err := s.usersCouponRepo.GetUnused(userID, couponID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.Coupon = coupon
			return existing, nil
		}
	}

	now := time.Now()
	assignment := &models.UsersCoupon{
		UserID:    userID,
		CouponID:  couponID,
		IsUsed:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.usersCouponRepo.Create(assignment); err != nil {
		return nil, err
	}
	assignment.Coupon = coupon
	return assignment, nil
}

// Use 使用优惠券
// couponID 非法或没有未使用的持券记录时返回 ErrUserCouponNotFound，
// 不抛异常也不改任何状态；二次使用同一持券记录同样命中该错误。
func (s *UserCouponService) Use(userID, couponID uint) (*models.UsersCoupon, error) {
	if userID == 0 || couponID == 0 {
		return nil, ErrUserCouponNotFound
	}

	assignment, err := s.usersCouponRepo.GetUnused(userID, couponID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrUserCouponNotFound
	}

	now := time.Now()
	updated, err := s.usersCouponRepo.MarkUsed(assignment.ID, now)
	if err != nil {
		return nil, err
	}
	// 并发使用时只有一方命中条件更新
	if !updated {
		return nil, ErrUserCouponNotFound
	}

	assignment.IsUsed = true
	assignment.UsedAt = &now
	assignment.UpdatedAt = now
	return assignment, nil
}

// ListCatalog 获取当前可领取的优惠券目录
func (s *UserCouponService) ListCatalog() ([]models.Coupon, error) {
	return s.couponRepo.ListActive()
}

// ListMine 获取用户未使用的持券列表
func (s *UserCouponService) ListMine(userID uint) ([]models.UsersCoupon, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.usersCouponRepo.ListUnusedByUser(userID)
}
