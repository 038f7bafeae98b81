package service

import (
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/commerce-next/internal/constants"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo      repository.ProductRepository
	uploadSvc *UploadService
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, uploadSvc *UploadService) *ProductService {
	return &ProductService{repo: repo, uploadSvc: uploadSvc}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Name           string
	Price          models.Money
	Content        string
	LeftAmount     int
	AgeCategory    string
	GenderCategory string
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(search, ageCategory, genderCategory, sortBy string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:           page,
		PageSize:       pageSize,
		Search:         strings.TrimSpace(search),
		AgeCategory:    normalizeProductCategory(ageCategory),
		GenderCategory: normalizeProductCategory(genderCategory),
		SortBy:         normalizeProductSortBy(sortBy),
		OnlyActive:     true,
	}
	return s.repo.List(filter)
}

// GetByID 获取商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 卖家创建商品（可附主图）
func (s *ProductService) Create(sellerID uint, input CreateProductInput, imageFile *multipart.FileHeader) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("商品名称不能为空")
	}
	if input.Price.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductInvalidPrice
	}

	imageURL := ""
	if imageFile != nil && s.uploadSvc != nil {
		url, err := s.uploadSvc.SaveFile(imageFile, "product")
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	now := time.Now()
	product := &models.Product{
		SellerID:       sellerID,
		Name:           name,
		Price:          input.Price,
		Content:        input.Content,
		ImageURL:       imageURL,
		LeftAmount:     input.LeftAmount,
		AgeCategory:    normalizeProductCategory(input.AgeCategory),
		GenderCategory: normalizeProductCategory(input.GenderCategory),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func normalizeProductCategory(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return constants.AgeCategoryAll
	}
	return normalized
}

func normalizeProductSortBy(sortBy string) string {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case constants.ProductSortByPrice:
		return constants.ProductSortByPrice
	case constants.ProductSortByCreatedAt:
		return constants.ProductSortByCreatedAt
	default:
		return constants.ProductSortByID
	}
}
