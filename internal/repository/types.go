package repository

import (
	"time"

	"github.com/commerce-next/internal/models"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page           int
	PageSize       int
	Search         string
	AgeCategory    string
	GenderCategory string
	SortBy         string
	OnlyActive     bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PointHistoryListFilter 查询积分流水的过滤条件
type PointHistoryListFilter struct {
	Page     int
	PageSize int
	UserID   uint
}

// UserPurchaseTotal 用户在统计窗口内的已支付订单总额
type UserPurchaseTotal struct {
	UserID uint
	Total  models.Money
}
