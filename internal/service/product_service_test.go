package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewProductService(repository.NewProductRepository(db), nil)
	return svc, db
}

func createServiceTestProduct(t *testing.T, db *gorm.DB, name, ageCategory, genderCategory string, price int64, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		SellerID:       1,
		Name:           name,
		Price:          models.NewMoneyFromInt(price),
		LeftAmount:     10,
		AgeCategory:    ageCategory,
		GenderCategory: genderCategory,
		IsActive:       active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestListPublicFiltersInactive(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	createServiceTestProduct(t, db, "유아 점퍼", "kids", "all", 45000, true)
	createServiceTestProduct(t, db, "단종 상품", "kids", "all", 9900, false)

	products, total, err := svc.ListPublic("", "", "", "", 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("want 1 active product got total=%d len=%d", total, len(products))
	}
	if products[0].Name != "유아 점퍼" {
		t.Fatalf("unexpected product %s", products[0].Name)
	}
}

func TestListPublicCategoryAndSort(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	createServiceTestProduct(t, db, "여성 가디건", "adult", "female", 38900, true)
	createServiceTestProduct(t, db, "남성 셔츠", "adult", "male", 21000, true)
	createServiceTestProduct(t, db, "공용 티셔츠", "all", "all", 12500, true)

	products, total, err := svc.ListPublic("", "adult", "female", "price", 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("category filter want 1 got %d", total)
	}
	if products[0].Name != "여성 가디건" {
		t.Fatalf("unexpected product %s", products[0].Name)
	}

	// 价格升序排序
	sorted, _, err := svc.ListPublic("", "", "", "price", 1, 20)
	if err != nil {
		t.Fatalf("sorted list failed: %v", err)
	}
	if len(sorted) != 3 || !sorted[0].Price.Decimal.Equal(decimal.NewFromInt(12500)) {
		t.Fatalf("price sort should put cheapest first")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	if _, err := svc.GetByID(999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	if _, err := svc.Create(1, CreateProductInput{Name: "무가격 상품", Price: models.NewMoneyFromInt(0)}, nil); !errors.Is(err, ErrProductInvalidPrice) {
		t.Fatalf("zero price want ErrProductInvalidPrice got %v", err)
	}

	product, err := svc.Create(1, CreateProductInput{
		Name:       "  신상 점퍼  ",
		Price:      models.NewMoneyFromInt(45000),
		LeftAmount: 5,
	}, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Name != "신상 점퍼" {
		t.Fatalf("name should be trimmed, got %q", product.Name)
	}
	if !product.IsActive {
		t.Fatalf("new product should be active")
	}
	if product.AgeCategory != "all" || product.GenderCategory != "all" {
		t.Fatalf("empty categories should default to all")
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("product rows want 1 got %d", count)
	}
}
