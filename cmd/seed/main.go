package main

import (
	"fmt"
	"time"

	"github.com/commerce-next/internal/authz"
	"github.com/commerce-next/internal/config"
	"github.com/commerce-next/internal/constants"
	"github.com/commerce-next/internal/logger"
	"github.com/commerce-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示用户（买家与卖家）
	type seedUser struct {
		email    string
		password string
		userName string
		role     string
		nickname string
		gender   string
		ageBand  string
	}
	seedUsers := []seedUser{
		{email: "buyer@example.com", password: "buyer-demo-1234", userName: "demo_buyer", role: constants.UserRoleBuyer, nickname: "체리", gender: "female", ageBand: "20s"},
		{email: "seller@example.com", password: "seller-demo-1234", userName: "demo_seller", role: constants.UserRoleSeller, nickname: "마켓지기", gender: "male", ageBand: "30s"},
	}

	userIDs := map[string]uint{}
	for _, su := range seedUsers {
		var existing models.User
		if err := models.DB.Where("email = ?", su.email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", su.email)
			userIDs[su.role] = existing.ID
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password for %s: %v", su.email, err)
		}
		user := models.User{
			Email:        su.email,
			PasswordHash: string(hash),
			UserName:     su.userName,
			Role:         su.role,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Fatalf("Failed to create user %s: %v", su.email, err)
		}
		info := models.UserInfo{
			UserID:   user.ID,
			Grade:    constants.GradeBronze,
			Nickname: su.nickname,
			Gender:   su.gender,
			AgeBand:  su.ageBand,
		}
		if err := models.DB.Create(&info).Error; err != nil {
			stdLog.Fatalf("Failed to create user info for %s: %v", su.email, err)
		}
		ledger := models.PayMoney{UserID: user.ID}
		if err := models.DB.Create(&ledger).Error; err != nil {
			stdLog.Fatalf("Failed to create ledger for %s: %v", su.email, err)
		}
		userIDs[su.role] = user.ID
		stdLog.Printf("Created user: %s (%s)", su.email, su.role)
	}

	// 绑定演示用户到访问角色（重复执行幂等）
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz: %v", err)
	}
	for role, id := range userIDs {
		if id == 0 {
			continue
		}
		if err := authzService.AssignRole(id, role); err != nil {
			stdLog.Fatalf("Failed to assign role %s: %v", role, err)
		}
	}

	sellerID := userIDs[constants.UserRoleSeller]
	buyerID := userIDs[constants.UserRoleBuyer]

	// 添加商品
	products := []models.Product{
		{
			SellerID:       sellerID,
			Name:           "프리미엄 유아 점퍼",
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(45000)),
			Content:        "부드러운 기모 안감의 사계절 점퍼입니다.",
			LeftAmount:     50,
			AgeCategory:    "kids",
			GenderCategory: constants.GenderCategoryAll,
			IsActive:       true,
		},
		{
			SellerID:       sellerID,
			Name:           "데일리 면 티셔츠",
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(12500)),
			Content:        "순면 100% 기본 티셔츠.",
			LeftAmount:     200,
			AgeCategory:    constants.AgeCategoryAll,
			GenderCategory: constants.GenderCategoryAll,
			IsActive:       true,
		},
		{
			SellerID:       sellerID,
			Name:           "겨울용 니트 가디건",
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(38900)),
			Content:        "도톰한 울 혼방 가디건.",
			LeftAmount:     80,
			AgeCategory:    "adult",
			GenderCategory: "female",
			IsActive:       true,
		},
	}

	productIDs := make([]uint, 0, len(products))
	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("seller_id = ? AND name = ?", p.SellerID, p.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", p.Name)
			productIDs = append(productIDs, existing.ID)
			continue
		}
		if err := models.DB.Create(&p).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", p.Name, err)
			continue
		}
		productIDs = append(productIDs, p.ID)
		stdLog.Printf("Created product: %s", p.Name)
	}

	// 添加优惠券
	expiresAt := time.Now().AddDate(0, 3, 0)
	coupons := []models.Coupon{
		{Name: "신규가입 3000원 할인", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(3000)), ExpiresAt: &expiresAt, IsActive: true},
		{Name: "겨울맞이 10% 할인", Type: constants.CouponTypePercent, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), ExpiresAt: &expiresAt, IsActive: true},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("name = ?", coupon.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Coupon already exists: %s", coupon.Name)
			continue
		}
		if err := models.DB.Create(&coupon).Error; err != nil {
			stdLog.Printf("Failed to create coupon %s: %v", coupon.Name, err)
			continue
		}
		stdLog.Printf("Created coupon: %s", coupon.Name)
	}

	// 添加一笔已支付订单，便于演示评价与积分返还流程
	if buyerID != 0 && len(productIDs) > 0 {
		orderNo := "SEED-ORDER-0001"
		var existing models.Order
		if err := models.DB.Where("order_no = ?", orderNo).First(&existing).Error; err != nil {
			paidAt := time.Now().Add(-24 * time.Hour)
			order := models.Order{
				OrderNo:    orderNo,
				UserID:     buyerID,
				ProductID:  productIDs[0],
				Quantity:   1,
				TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(45000)),
				Status:     constants.OrderStatusPaid,
				PaidAt:     &paidAt,
			}
			if err := models.DB.Create(&order).Error; err != nil {
				stdLog.Printf("Failed to create order %s: %v", orderNo, err)
			} else {
				stdLog.Printf("Created order: %s", orderNo)
			}
		} else {
			stdLog.Printf("Order already exists: %s", orderNo)
		}
	}

	fmt.Println("Seed completed.")
}
