package constants

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCompleted      = "completed"
	OrderStatusCanceled       = "canceled"
)

// 评价状态常量
const (
	ReviewStatusActive    = "active"
	ReviewStatusRetracted = "retracted"
)

// 积分流水状态常量
const (
	PointHistoryStatusAccrued = "accrued"
	PointHistoryStatusSpent   = "spent"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 用户角色常量
const (
	UserRoleBuyer  = "buyer"
	UserRoleSeller = "seller"
)

// 会员等级常量（按消费金额升序）
const (
	GradeBronze = "BRONZE"
	GradeSilver = "SILVER"
	GradeGold   = "GOLD"
	GradeVIP    = "VIP"
	GradeVVIP   = "VVIP"
)

// 优惠券类型常量
const (
	CouponTypeFixed   = "fixed"
	CouponTypePercent = "percent"
)

// 商品分类常量
const (
	AgeCategoryAll    = "all"
	GenderCategoryAll = "all"
)

// 商品排序常量
const (
	ProductSortByID        = "id"
	ProductSortByPrice     = "price"
	ProductSortByCreatedAt = "created_at"
)

// 队列常量
const (
	QueueDefault         = "default"
	QueueCritical        = "critical"
	TaskGradeRecalculate = "grade:recalculate"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "cm"
)

// 币种常量
const (
	SiteCurrencyDefault = "KRW"
)
