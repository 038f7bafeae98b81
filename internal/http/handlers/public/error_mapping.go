package public

import (
	"errors"

	"github.com/commerce-next/internal/http/response"
	"github.com/commerce-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var reviewCommonErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "用户不存在"},
	{target: service.ErrUserInfoNotFound, code: response.CodeNotFound, msg: "用户资料不存在"},
	{target: service.ErrPayMoneyNotFound, code: response.CodeNotFound, msg: "用户账户不存在"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "商品不存在"},
}

var reviewCreateErrorRules = []mappedHandlerError{
	{target: service.ErrReviewInvalidStar, code: response.CodeBadRequest, msg: "评分需在 1 到 5 之间"},
	{target: service.ErrReviewPermissionDenied, code: response.CodeForbidden, msg: "只能评价自己已支付的订单"},
	{target: service.ErrReviewAlreadyExists, code: response.CodeConflict, msg: "该订单商品已评价"},
	{target: service.ErrUploadFileTooLarge, code: response.CodeBadRequest, msg: "图片大小超出限制"},
	{target: service.ErrUploadTypeDenied, code: response.CodeBadRequest, msg: "图片类型不支持"},
}

var reviewDeleteErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "用户不存在"},
	{target: service.ErrNoPermissionToDelete, code: response.CodeForbidden, msg: "没有权限删除该评价"},
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "用户不存在"},
	{target: service.ErrCouponNotFound, code: response.CodeNotFound, msg: "优惠券不存在"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "优惠券不可用"},
	{target: service.ErrUserCouponNotFound, code: response.CodeNotFound, msg: "没有可用的优惠券"},
}

var walletErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "用户不存在"},
	{target: service.ErrPayMoneyNotFound, code: response.CodeNotFound, msg: "用户账户不存在"},
	{target: service.ErrChargeInvalidAmount, code: response.CodeBadRequest, msg: "充值金额无效"},
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "商品不存在"},
	{target: service.ErrProductInvalidPrice, code: response.CodeBadRequest, msg: "商品价格无效"},
	{target: service.ErrUploadFileTooLarge, code: response.CodeBadRequest, msg: "图片大小超出限制"},
	{target: service.ErrUploadTypeDenied, code: response.CodeBadRequest, msg: "图片类型不支持"},
}

var userAuthErrorRules = []mappedHandlerError{
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: "邮箱已被注册"},
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, msg: "邮箱或密码错误"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "账号已被禁用"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "用户不存在"},
	{target: service.ErrUserInfoNotFound, code: response.CodeNotFound, msg: "用户资料不存在"},
}

func respondReviewCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(reviewCommonErrorRules, reviewCreateErrorRules), response.CodeInternal, "评价提交失败")
}

func respondReviewDeleteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, reviewDeleteErrorRules, response.CodeInternal, "评价删除失败")
}

func respondCouponError(c *gin.Context, err error) {
	respondWithMappedError(c, err, couponErrorRules, response.CodeInternal, "优惠券操作失败")
}

func respondWalletError(c *gin.Context, err error) {
	respondWithMappedError(c, err, walletErrorRules, response.CodeInternal, "账户操作失败")
}

func respondProductError(c *gin.Context, err error) {
	respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "商品操作失败")
}

func respondUserAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "用户操作失败")
}
