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

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.UserInfo{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "user-auth-service-test-secret-0123456789"
	cfg.UserJWT.ExpireHours = 1
	svc := NewUserAuthService(cfg, repository.NewUserRepository(db), repository.NewUserInfoRepository(db))
	return svc, db
}

func TestRegisterCreatesUserAndInfo(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:    " Buyer@Example.com ",
		Password: "password123",
		UserName: "buyer1",
		Role:     "buyer",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "buyer@example.com" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if user.Role != constants.UserRoleBuyer {
		t.Fatalf("role want buyer got %s", user.Role)
	}

	var info models.UserInfo
	if err := db.Where("user_id = ?", user.ID).First(&info).Error; err != nil {
		t.Fatalf("user info should be created: %v", err)
	}
	if info.Grade != constants.GradeBronze {
		t.Fatalf("initial grade want BRONZE got %s", info.Grade)
	}
	if info.Nickname != "buyer1" {
		t.Fatalf("nickname should default to user name, got %s", info.Nickname)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	input := RegisterInput{Email: "dup@example.com", Password: "password123", UserName: "dup"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(input); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate register want ErrEmailExists got %v", err)
	}
}

func TestRegisterSellerRole(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:    "seller@example.com",
		Password: "password123",
		UserName: "seller1",
		Role:     "SELLER",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != constants.UserRoleSeller {
		t.Fatalf("role want seller got %s", user.Role)
	}
}

func TestLoginAndParseJWT(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	registered, err := svc.Register(RegisterInput{
		Email:    "login@example.com",
		Password: "password123",
		UserName: "login1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, expiresAt, err := svc.Login("login@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("user id want %d got %d", registered.ID, user.ID)
	}
	if token == "" {
		t.Fatalf("token should not be empty")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token should expire in the future")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Fatalf("claims user id want %d got %d", registered.ID, claims.UserID)
	}
	if claims.Role != constants.UserRoleBuyer {
		t.Fatalf("claims role want buyer got %s", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, err := svc.Register(RegisterInput{
		Email:    "wrongpass@example.com",
		Password: "password123",
		UserName: "wrongpass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("wrongpass@example.com", "bad-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("missing@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:    "disabled@example.com",
		Password: "password123",
		UserName: "disabled",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := svc.Login("disabled@example.com", "password123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}
