package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/commerce-next/internal/config"
	"github.com/commerce-next/internal/constants"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserCouponServiceTest(t *testing.T) (*UserCouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Coupon{},
		&models.UsersCoupon{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	svc := NewUserCouponService(
		cfg,
		repository.NewUserRepository(db),
		repository.NewCouponRepository(db),
		repository.NewUsersCouponRepository(db),
	)
	return svc, db
}

func createCouponTestUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	now := time.Now()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("coupon_user_%d@example.com", id),
		PasswordHash: "hash",
		UserName:     fmt.Sprintf("user%d", id),
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func createTestCoupon(t *testing.T, db *gorm.DB, active bool) *models.Coupon {
	t.Helper()
	now := time.Now()
	coupon := &models.Coupon{
		Name:      "满减券",
		Type:      constants.CouponTypeFixed,
		Value:     models.NewMoneyFromInt(500),
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

func TestIssueCouponDuplicateAllowedByDefault(t *testing.T) {
	svc, db := setupUserCouponServiceTest(t)
	createCouponTestUser(t, db, 1)
	coupon := createTestCoupon(t, db, true)

	first, err := svc.Issue(1, coupon.ID)
	if err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	second, err := svc.Issue(1, coupon.ID)
	if err != nil {
		t.Fatalf("second issue failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected duplicate issuance to create a new row")
	}

	var count int64
	if err := db.Model(&models.UsersCoupon{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count assignments failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 assignments, got %d", count)
	}
}

func TestIssueCouponDedupeFlag(t *testing.T) {
	svc, db := setupUserCouponServiceTest(t)
	svc.cfg.Coupon.DedupeIssue = true
	createCouponTestUser(t, db, 2)
	coupon := createTestCoupon(t, db, true)

	first, err := svc.Issue(2, coupon.ID)
	if err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	second, err := svc.Issue(2, coupon.ID)
	if err != nil {
		t.Fatalf("second issue failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected dedupe to return the existing assignment")
	}

	// 已使用后允许再发一张
	if _, err := svc.Use(2, coupon.ID); err != nil {
		t.Fatalf("use coupon failed: %v", err)
	}
	third, err := svc.Issue(2, coupon.ID)
	if err != nil {
		t.Fatalf("issue after use failed: %v", err)
	}
	if third.ID == first.ID {
		t.Fatalf("expected a fresh assignment after the previous one was used")
	}
}

func TestIssueCouponInactive(t *testing.T) {
	svc, db := setupUserCouponServiceTest(t)
	createCouponTestUser(t, db, 3)
	inactive := createTestCoupon(t, db, false)
	if _, err := svc.Issue(3, inactive.ID); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("expected ErrCouponInactive, got: %v", err)
	}

	expired := createTestCoupon(t, db, true)
	past := time.Now().Add(-time.Hour)
	if err := db.Model(expired).Update("expires_at", past).Error; err != nil {
		t.Fatalf("expire coupon failed: %v", err)
	}
	if _, err := svc.Issue(3, expired.ID); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("expected ErrCouponInactive for expired coupon, got: %v", err)
	}
}

func TestUseCouponInvalidIDSoftNotFound(t *testing.T) {
	svc, db := setupUserCouponServiceTest(t)
	createCouponTestUser(t, db, 4)

	if _, err := svc.Use(4, 0); !errors.Is(err, ErrUserCouponNotFound) {
		t.Fatalf("expected ErrUserCouponNotFound for zero id, got: %v", err)
	}

	var count int64
	if err := db.Model(&models.UsersCoupon{}).Count(&count).Error; err != nil {
		t.Fatalf("count assignments failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no state mutation, got %d rows", count)
	}
}

func TestUseCouponSingleUse(t *testing.T) {
	svc, db := setupUserCouponServiceTest(t)
	createCouponTestUser(t, db, 5)
	coupon := createTestCoupon(t, db, true)

	if _, err := svc.Issue(5, coupon.ID); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	used, err := svc.Use(5, coupon.ID)
	if err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if !used.IsUsed || used.UsedAt == nil {
		t.Fatalf("expected assignment marked used: %+v", used)
	}

	if _, err := svc.Use(5, coupon.ID); !errors.Is(err, ErrUserCouponNotFound) {
		t.Fatalf("expected ErrUserCouponNotFound on second use, got: %v", err)
	}
}

func TestListMineOnlyUnused(t *testing.T) {
	svc, db := setupUserCouponServiceTest(t)
	createCouponTestUser(t, db, 6)
	couponA := createTestCoupon(t, db, true)
	couponB := createTestCoupon(t, db, true)

	if _, err := svc.Issue(6, couponA.ID); err != nil {
		t.Fatalf("issue A failed: %v", err)
	}
	if _, err := svc.Issue(6, couponB.ID); err != nil {
		t.Fatalf("issue B failed: %v", err)
	}
	if _, err := svc.Use(6, couponA.ID); err != nil {
		t.Fatalf("use A failed: %v", err)
	}

	mine, err := svc.ListMine(6)
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(mine) != 1 || mine[0].CouponID != couponB.ID {
		t.Fatalf("unexpected list: %+v", mine)
	}
	if mine[0].Coupon == nil || mine[0].Coupon.Name == "" {
		t.Fatalf("expected coupon preloaded")
	}
}

func TestListCatalogOnlyActive(t *testing.T) {
	svc, db := setupUserCouponServiceTest(t)
	active := createTestCoupon(t, db, true)
	createTestCoupon(t, db, false)

	coupons, err := svc.ListCatalog()
	if err != nil {
		t.Fatalf("list catalog failed: %v", err)
	}
	if len(coupons) != 1 || coupons[0].ID != active.ID {
		t.Fatalf("unexpected catalog: %+v", coupons)
	}
}
