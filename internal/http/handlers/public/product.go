package public

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/commerce-next/internal/cache"
	"github.com/commerce-next/internal/http/response"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	publicProductCacheKeyFmt = "public:product:%d"
	publicProductCacheTTL    = 60 * time.Second
)

// ProductCreateRequest 创建商品请求
// 使用 multipart 表单提交，image 字段可选。
type ProductCreateRequest struct {
	Name           string `form:"name" binding:"required"`
	Price          string `form:"price" binding:"required"`
	Content        string `form:"content"`
	LeftAmount     int    `form:"left_amount"`
	AgeCategory    string `form:"age_category"`
	GenderCategory string `form:"gender_category"`
}

// ListProducts 获取公开商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.ListPublic(
		c.Query("search"),
		c.Query("age_category"),
		c.Query("gender_category"),
		c.Query("sort_by"),
		page, pageSize,
	)
	if err != nil {
		respondError(c, response.CodeInternal, "商品列表获取失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品标识无效", nil)
		return
	}

	cacheKey := fmt.Sprintf(publicProductCacheKeyFmt, productID)
	var cached models.Product
	if hit, cacheErr := cache.GetJSON(c.Request.Context(), cacheKey, &cached); cacheErr == nil && hit {
		response.Success(c, cached)
		return
	}

	product, err := h.ProductService.GetByID(uint(productID))
	if err != nil {
		respondProductError(c, err)
		return
	}
	_ = cache.SetJSON(c.Request.Context(), cacheKey, product, publicProductCacheTTL)
	response.Success(c, product)
}

// CreateProduct 卖家创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req ProductCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		respondError(c, response.CodeBadRequest, "商品价格无效", err)
		return
	}

	var imageFile *multipart.FileHeader
	if file, fileErr := c.FormFile("image"); fileErr == nil {
		imageFile = file
	}

	product, err := h.ProductService.Create(uid, service.CreateProductInput{
		Name:           req.Name,
		Price:          models.NewMoneyFromDecimal(price),
		Content:        req.Content,
		LeftAmount:     req.LeftAmount,
		AgeCategory:    req.AgeCategory,
		GenderCategory: req.GenderCategory,
	}, imageFile)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}
