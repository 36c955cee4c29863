package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	Category     string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Condition    string
	Availability string
	SellerID     uint
	OnlyActive   bool
	WithSeller   bool
	SortBy       string
	SortOrder    string
}

// PurchaseListFilter 查询购买记录的过滤条件
type PurchaseListFilter struct {
	Page     int
	PageSize int
	UserID   uint
}

// LoginLogQuery 账号登录流水查询：UserID 与 Identifiers 任一匹配即归属该账号
type LoginLogQuery struct {
	UserID      uint
	Identifiers []string
	Status      string
	Page        int
	PageSize    int
}

// ModerationAuditLogListFilter 审核审计日志过滤条件
type ModerationAuditLogListFilter struct {
	Page        int
	PageSize    int
	OperatorID  uint
	ProductID   uint
	Action      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
