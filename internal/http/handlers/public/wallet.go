package public

import (
	"strconv"
	"strings"

	"github.com/commerce-next/internal/http/response"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletChargeRequest 用户充值请求
type WalletChargeRequest struct {
	Amount      string `json:"amount" binding:"required"`
	PgPaymentID string `json:"pg_payment_id"`
}

// ChargeWallet 用户充值账户余额
func (h *Handler) ChargeWallet(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req WalletChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		respondError(c, response.CodeBadRequest, "充值金额无效", err)
		return
	}

	ledger, err := h.ChargeService.Charge(uid, models.NewMoneyFromDecimal(amount), strings.TrimSpace(req.PgPaymentID))
	if err != nil {
		respondWalletError(c, err)
		return
	}
	response.Success(c, ledger)
}

// GetMyBalance 获取当前用户账户余额
func (h *Handler) GetMyBalance(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	ledger, err := h.ChargeService.GetBalance(uid)
	if err != nil {
		respondWalletError(c, err)
		return
	}
	response.Success(c, ledger)
}

// GetMyPointHistory 获取当前用户积分流水
func (h *Handler) GetMyPointHistory(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	histories, total, err := h.ChargeService.ListPointHistory(repository.PointHistoryListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "积分流水获取失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, histories, pagination)
}
