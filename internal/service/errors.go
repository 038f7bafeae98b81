package service

import "errors"

// 用户与认证相关错误
var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidToken       = errors.New("无效的 token")
)

// 商品相关错误
var (
	ErrProductNotFound     = errors.New("商品不存在")
	ErrProductOutOfStock   = errors.New("商品库存不足")
	ErrProductInvalidPrice = errors.New("商品价格无效")
)

// 订单相关错误
var (
	ErrOrderNotFound = errors.New("订单不存在")
)

// 评价相关错误
var (
	// ErrReviewPermissionDenied 订单不属于请求人或未完成支付。
	// 与"不存在"区分，表示资源存在但无权操作。
	ErrReviewPermissionDenied = errors.New("无权评价该订单")
	ErrReviewAlreadyExists    = errors.New("该订单商品已评价")
	// ErrNoPermissionToDelete 不存在与非本人所有统一返回此错误，避免泄露评价是否存在。
	ErrNoPermissionToDelete = errors.New("无权删除该评价")
	ErrReviewInvalidStar    = errors.New("评分必须在 1 到 5 之间")
)

// 用户资料相关错误
var (
	ErrUserInfoNotFound = errors.New("用户资料不存在")
)

// 台账相关错误
var (
	ErrPayMoneyNotFound    = errors.New("用户台账不存在")
	ErrChargeInvalidAmount = errors.New("充值金额无效")
)

// 优惠券相关错误
var (
	ErrCouponNotFound     = errors.New("优惠券不存在")
	ErrCouponInactive     = errors.New("优惠券已停用或过期")
	ErrUserCouponNotFound = errors.New("没有可用的优惠券")
)

// 等级批处理相关错误
var (
	// ErrGradeJobAlreadyRun 同一运行令牌已执行过，属于空操作信号而非失败。
	ErrGradeJobAlreadyRun = errors.New("该周期的等级重算已执行")
)

// 上传相关错误
var (
	ErrUploadFileTooLarge = errors.New("文件大小超过限制")
	ErrUploadTypeDenied   = errors.New("文件类型不被允许")
)
