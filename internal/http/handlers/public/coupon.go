package public

import (
	"github.com/commerce-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CouponIssueRequest 领取优惠券请求
type CouponIssueRequest struct {
	CouponID uint `json:"coupon_id" binding:"required"`
}

// CouponUseRequest 使用优惠券请求
// CouponID 为 0 时按无券下单处理。
type CouponUseRequest struct {
	CouponID uint `json:"coupon_id"`
}

// IssueCoupon 领取优惠券
func (h *Handler) IssueCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CouponIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	assignment, err := h.UserCouponService.Issue(uid, req.CouponID)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, assignment)
}

// UseCoupon 核销优惠券
func (h *Handler) UseCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CouponUseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	used, err := h.UserCouponService.Use(uid, req.CouponID)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, used)
}

// ListCoupons 获取可领取的优惠券目录
func (h *Handler) ListCoupons(c *gin.Context) {
	coupons, err := h.UserCouponService.ListCatalog()
	if err != nil {
		respondError(c, response.CodeInternal, "优惠券列表获取失败", err)
		return
	}
	response.Success(c, coupons)
}

// ListMyCoupons 获取当前用户未使用的优惠券
func (h *Handler) ListMyCoupons(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	coupons, err := h.UserCouponService.ListMine(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "优惠券列表获取失败", err)
		return
	}
	response.Success(c, coupons)
}
