package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/commerce-next/internal/constants"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupChargeServiceTest(t *testing.T) (*ChargeService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:charge_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.PayMoney{},
		&models.ChargeHistory{},
		&models.PointHistory{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewChargeService(
		repository.NewUserRepository(db),
		repository.NewPayMoneyRepository(db),
		repository.NewPointHistoryRepository(db),
	)
	return svc, db
}

func createChargeTestUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	now := time.Now()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("charge_user_%d@example.com", id),
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

func TestChargeAppendsLedgerRows(t *testing.T) {
	svc, db := setupChargeServiceTest(t)
	createChargeTestUser(t, db, 1)

	first, err := svc.Charge(1, models.NewMoneyFromInt(10000), "pg-001")
	if err != nil {
		t.Fatalf("first charge failed: %v", err)
	}
	if !first.ChargeTotal.Decimal.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("unexpected charge total: %s", first.ChargeTotal.String())
	}
	if !first.Balance.Decimal.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("unexpected balance: %s", first.Balance.String())
	}

	// 模拟消费与积分，验证结转只带未消费部分
	if err := db.Model(&models.PayMoney{}).Where("id = ?", first.ID).Updates(map[string]interface{}{
		"used_charge":   models.NewMoneyFromInt(3000),
		"balance":       models.NewMoneyFromInt(7000),
		"point_balance": 55,
	}).Error; err != nil {
		t.Fatalf("update ledger failed: %v", err)
	}

	second, err := svc.Charge(1, models.NewMoneyFromInt(5000), "pg-002")
	if err != nil {
		t.Fatalf("second charge failed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("expected a new ledger row")
	}
	if !second.ChargeTotal.Decimal.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expected charge total 15000, got %s", second.ChargeTotal.String())
	}
	if !second.UsedCharge.Decimal.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("expected used charge carried forward, got %s", second.UsedCharge.String())
	}
	if !second.Balance.Decimal.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("expected balance 12000, got %s", second.Balance.String())
	}
	if second.PointBalance != 55 {
		t.Fatalf("expected point balance carried forward, got %d", second.PointBalance)
	}

	// 历史行保持原样
	var original models.PayMoney
	if err := db.First(&original, first.ID).Error; err != nil {
		t.Fatalf("load original ledger failed: %v", err)
	}
	if !original.ChargeTotal.Decimal.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("history row mutated: %s", original.ChargeTotal.String())
	}

	// 每次充值都有对应事件记录
	var historyCount int64
	if err := db.Model(&models.ChargeHistory{}).Where("user_id = ?", 1).Count(&historyCount).Error; err != nil {
		t.Fatalf("count charge histories failed: %v", err)
	}
	if historyCount != 2 {
		t.Fatalf("expected 2 charge histories, got %d", historyCount)
	}
}

func TestChargeInvalidAmount(t *testing.T) {
	svc, db := setupChargeServiceTest(t)
	createChargeTestUser(t, db, 2)

	if _, err := svc.Charge(2, models.NewMoneyFromInt(0), ""); !errors.Is(err, ErrChargeInvalidAmount) {
		t.Fatalf("expected ErrChargeInvalidAmount, got: %v", err)
	}
	if _, err := svc.Charge(2, models.NewMoneyFromInt(-100), ""); !errors.Is(err, ErrChargeInvalidAmount) {
		t.Fatalf("expected ErrChargeInvalidAmount for negative, got: %v", err)
	}
}

func TestGetBalanceLatestRow(t *testing.T) {
	svc, db := setupChargeServiceTest(t)
	createChargeTestUser(t, db, 3)

	if _, err := svc.GetBalance(3); !errors.Is(err, ErrPayMoneyNotFound) {
		t.Fatalf("expected ErrPayMoneyNotFound before charge, got: %v", err)
	}

	if _, err := svc.Charge(3, models.NewMoneyFromInt(1000), ""); err != nil {
		t.Fatalf("charge failed: %v", err)
	}
	latest, err := svc.Charge(3, models.NewMoneyFromInt(2000), "")
	if err != nil {
		t.Fatalf("charge failed: %v", err)
	}

	current, err := svc.GetBalance(3)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if current.ID != latest.ID {
		t.Fatalf("expected latest row %d, got %d", latest.ID, current.ID)
	}
	if !current.Balance.Decimal.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("expected balance 3000, got %s", current.Balance.String())
	}
}
