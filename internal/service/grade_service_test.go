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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupGradeServiceTest(t *testing.T) (*GradeService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:grade_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserInfo{},
		&models.Order{},
		&models.GradeJobRun{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		Grade: config.GradeConfig{WindowMonths: 1},
	}
	svc := NewGradeService(
		cfg,
		repository.NewUserRepository(db),
		repository.NewUserInfoRepository(db),
		repository.NewOrderRepository(db),
		repository.NewGradeJobRunRepository(db),
	)
	return svc, db
}

func createGradeTestUser(t *testing.T, db *gorm.DB, id uint, grade string) {
	t.Helper()
	now := time.Now()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("grade_user_%d@example.com", id),
		PasswordHash: "hash",
		UserName:     fmt.Sprintf("user%d", id),
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	info := models.UserInfo{
		UserID:    id,
		Grade:     grade,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&info).Error; err != nil {
		t.Fatalf("create user info failed: %v", err)
	}
}

func createGradeTestPaidOrder(t *testing.T, db *gorm.DB, userID uint, total int64) {
	t.Helper()
	now := time.Now().Add(-time.Hour)
	order := models.Order{
		OrderNo:    fmt.Sprintf("GRD%d%d", userID, time.Now().UnixNano()),
		UserID:     userID,
		ProductID:  1,
		Quantity:   1,
		TotalPrice: models.NewMoneyFromInt(total),
		Status:     constants.OrderStatusPaid,
		PaidAt:     &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
}

func loadGrade(t *testing.T, db *gorm.DB, userID uint) string {
	t.Helper()
	var info models.UserInfo
	if err := db.Where("user_id = ?", userID).First(&info).Error; err != nil {
		t.Fatalf("load user info failed: %v", err)
	}
	return info.Grade
}

func TestRecalculateThresholdMapping(t *testing.T) {
	svc, db := setupGradeServiceTest(t)
	createGradeTestUser(t, db, 1, constants.GradeBronze) // 无消费 → 保持 BRONZE
	createGradeTestUser(t, db, 2, constants.GradeBronze) // 150000 → SILVER
	createGradeTestUser(t, db, 3, constants.GradeBronze) // 250000 → GOLD
	createGradeTestUser(t, db, 4, constants.GradeBronze) // 350000 → VIP
	createGradeTestUser(t, db, 5, constants.GradeBronze) // 600000 → VVIP
	createGradeTestPaidOrder(t, db, 2, 150000)
	createGradeTestPaidOrder(t, db, 3, 250000)
	createGradeTestPaidOrder(t, db, 4, 350000)
	createGradeTestPaidOrder(t, db, 5, 600000)

	run, err := svc.Recalculate("202608")
	if err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if run.CompletedAt == nil {
		t.Fatalf("expected run marked completed")
	}
	if run.UpdatedUsers != 4 {
		t.Fatalf("expected 4 users updated, got %d", run.UpdatedUsers)
	}

	expected := map[uint]string{
		1: constants.GradeBronze,
		2: constants.GradeSilver,
		3: constants.GradeGold,
		4: constants.GradeVIP,
		5: constants.GradeVVIP,
	}
	for userID, grade := range expected {
		if got := loadGrade(t, db, userID); got != grade {
			t.Fatalf("user %d: expected %s, got %s", userID, grade, got)
		}
	}
}

func TestRecalculateSameTokenRunsOnce(t *testing.T) {
	svc, db := setupGradeServiceTest(t)
	createGradeTestUser(t, db, 1, constants.GradeBronze)
	createGradeTestPaidOrder(t, db, 1, 150000)

	if _, err := svc.Recalculate("202607"); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := svc.Recalculate("202607"); !errors.Is(err, ErrGradeJobAlreadyRun) {
		t.Fatalf("expected ErrGradeJobAlreadyRun, got: %v", err)
	}

	var count int64
	if err := db.Model(&models.GradeJobRun{}).Where("token = ?", "202607").Count(&count).Error; err != nil {
		t.Fatalf("count runs failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one run row, got %d", count)
	}
}

func TestRecalculateRetryAfterFailure(t *testing.T) {
	dsn := fmt.Sprintf("file:grade_retry_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	// 先不建 orders 表，让第一次运行在插入令牌后失败
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserInfo{},
		&models.GradeJobRun{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		Grade: config.GradeConfig{WindowMonths: 1},
	}
	svc := NewGradeService(
		cfg,
		repository.NewUserRepository(db),
		repository.NewUserInfoRepository(db),
		repository.NewOrderRepository(db),
		repository.NewGradeJobRunRepository(db),
	)
	createGradeTestUser(t, db, 1, constants.GradeBronze)

	if _, err := svc.Recalculate("202608"); err == nil || errors.Is(err, ErrGradeJobAlreadyRun) {
		t.Fatalf("expected transient failure, got: %v", err)
	}
	var run models.GradeJobRun
	if err := db.Where("token = ?", "202608").First(&run).Error; err != nil {
		t.Fatalf("load run row failed: %v", err)
	}
	if run.CompletedAt != nil {
		t.Fatalf("failed run must not be marked completed")
	}

	// 故障恢复后重试同一令牌必须能执行
	if err := db.AutoMigrate(&models.Order{}); err != nil {
		t.Fatalf("auto migrate orders failed: %v", err)
	}
	createGradeTestPaidOrder(t, db, 1, 150000)
	retried, err := svc.Recalculate("202608")
	if err != nil {
		t.Fatalf("retry after failure failed: %v", err)
	}
	if retried.CompletedAt == nil {
		t.Fatalf("retried run must be marked completed")
	}
	if got := loadGrade(t, db, 1); got != constants.GradeSilver {
		t.Fatalf("expected SILVER after retry, got %s", got)
	}

	// 完成后的令牌才视为已执行
	if _, err := svc.Recalculate("202608"); !errors.Is(err, ErrGradeJobAlreadyRun) {
		t.Fatalf("expected ErrGradeJobAlreadyRun, got: %v", err)
	}
	var count int64
	if err := db.Model(&models.GradeJobRun{}).Where("token = ?", "202608").Count(&count).Error; err != nil {
		t.Fatalf("count runs failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one run row, got %d", count)
	}
}

func TestRecalculateWriteOnlyIfChanged(t *testing.T) {
	svc, db := setupGradeServiceTest(t)
	createGradeTestUser(t, db, 1, constants.GradeSilver)
	createGradeTestPaidOrder(t, db, 1, 150000) // 已是 SILVER，无需写入

	run, err := svc.Recalculate("202606")
	if err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if run.UpdatedUsers != 0 {
		t.Fatalf("expected no updates, got %d", run.UpdatedUsers)
	}
}

func TestRecalculateDowngradesOutsideWindow(t *testing.T) {
	svc, db := setupGradeServiceTest(t)
	createGradeTestUser(t, db, 1, constants.GradeVVIP)

	// 窗口外的历史消费不计入
	old := time.Now().AddDate(0, -3, 0)
	order := models.Order{
		OrderNo:    fmt.Sprintf("OLD%d", time.Now().UnixNano()),
		UserID:     1,
		ProductID:  1,
		Quantity:   1,
		TotalPrice: models.NewMoneyFromInt(600000),
		Status:     constants.OrderStatusPaid,
		PaidAt:     &old,
		CreatedAt:  old,
		UpdatedAt:  old,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.Recalculate("202605"); err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if got := loadGrade(t, db, 1); got != constants.GradeBronze {
		t.Fatalf("expected downgrade to BRONZE, got %s", got)
	}
}

func TestGradeForTotal(t *testing.T) {
	cases := []struct {
		total    int64
		expected string
	}{
		{0, constants.GradeBronze},
		{99999, constants.GradeBronze},
		{100000, constants.GradeSilver},
		{199999, constants.GradeSilver},
		{200000, constants.GradeGold},
		{300000, constants.GradeVIP},
		{499999, constants.GradeVIP},
		{500000, constants.GradeVVIP},
	}
	for _, tc := range cases {
		if got := gradeForTotal(decimal.NewFromInt(tc.total)); got != tc.expected {
			t.Fatalf("total %d: expected %s, got %s", tc.total, tc.expected, got)
		}
	}
}
