package public

import (
	"mime/multipart"
	"strconv"

	"github.com/commerce-next/internal/http/response"
	"github.com/commerce-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewCreateRequest 创建评价请求
// 使用 multipart 表单提交，image 字段可选。
type ReviewCreateRequest struct {
	OrderID   uint   `form:"order_id" binding:"required"`
	ProductID uint   `form:"product_id" binding:"required"`
	Content   string `form:"content"`
	StarPoint int    `form:"star_point" binding:"required"`
}

// CreateReview 创建评价并返还积分
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req ReviewCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	var imageFile *multipart.FileHeader
	if file, err := c.FormFile("image"); err == nil {
		imageFile = file
	}

	result, err := h.ReviewService.CreateReview(service.CreateReviewInput{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Content:   req.Content,
		StarPoint: req.StarPoint,
	}, uid, imageFile)
	if err != nil {
		respondReviewCreateError(c, err)
		return
	}

	payload := gin.H{
		"review":        result.Review,
		"earned_points": result.EarnedPoints,
		"point_balance": result.PointBalance,
	}
	if result.ImageWarning != "" {
		response.SuccessWithMsg(c, result.ImageWarning, payload)
		return
	}
	response.Success(c, payload)
}

// DeleteReview 删除自己的评价
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, response.CodeBadRequest, "评价标识无效", nil)
		return
	}

	msg, err := h.ReviewService.DeleteReview(uint(reviewID), uid)
	if err != nil {
		respondReviewDeleteError(c, err)
		return
	}
	response.SuccessWithMsg(c, msg, gin.H{"deleted": true})
}

// ListProductReviews 获取商品评价列表（游标分页）
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品标识无效", nil)
		return
	}

	cursor, _ := strconv.ParseUint(c.DefaultQuery("cursor", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	_, limit = normalizePagination(1, limit)

	reviews, nextCursor, err := h.ReviewService.ListReviews(uint(productID), uint(cursor), limit)
	if err != nil {
		respondError(c, response.CodeInternal, "评价列表获取失败", err)
		return
	}
	response.SuccessWithCursor(c, reviews, nextCursor)
}
