package service

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound 通用资源不存在
	ErrNotFound = errors.New("not found")
	// ErrForbidden 无权操作他人的资源
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = errors.New("invalid email")
	// ErrEmailExists 邮箱已被注册
	ErrEmailExists = errors.New("email already registered")
	// ErrUsernameTaken 用户名已被占用
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials 账号或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserDisabled 账号已禁用
	ErrUserDisabled = errors.New("user disabled")
	// ErrWeakPassword 密码不满足策略
	ErrWeakPassword = errors.New("weak password")

	// ErrProductNotFound 商品不存在或已下架
	ErrProductNotFound = errors.New("product not found")
	// ErrProductUnavailable 商品当前不可售
	ErrProductUnavailable = errors.New("product not available")
	// ErrProductConflict 商品状态已被并发修改
	ErrProductConflict = errors.New("product changed concurrently")
	// ErrSelfReference 不能购买自己发布的商品
	ErrSelfReference = errors.New("cannot add your own product to cart")

	// ErrDashboardRangeInvalid 统计时间范围不合法
	ErrDashboardRangeInvalid = errors.New("invalid dashboard range")

	// ErrCartItemNotFound 购物车中不存在该商品
	ErrCartItemNotFound = errors.New("item not found in cart")
	// ErrEmptyCart 购物车为空
	ErrEmptyCart = errors.New("cart is empty")
	// ErrItemsUnavailable 购物车中存在不可购买的商品
	ErrItemsUnavailable = errors.New("some items in your cart are no longer available")
)

// UnavailableItem 结算时不可购买的购物车行
type UnavailableItem struct {
	ProductID uint   `json:"productId"`
	Title     string `json:"title"`
	Reason    string `json:"reason"`
}

// 不可购买原因
const (
	UnavailableReasonMissing  = "missing"
	UnavailableReasonInactive = "inactive"
	UnavailableReasonSold     = "sold"
	UnavailableReasonReserved = "reserved"
)

// ItemsUnavailableError 携带不可购买商品明细的结算错误
type ItemsUnavailableError struct {
	Items []UnavailableItem
}

func (e *ItemsUnavailableError) Error() string {
	return ErrItemsUnavailable.Error()
}

// Is 使 errors.Is(err, ErrItemsUnavailable) 成立
func (e *ItemsUnavailableError) Is(target error) bool {
	return target == ErrItemsUnavailable
}

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 输入校验失败，携带逐字段的错误信息
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field.Field+": "+field.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// AsValidationError 提取校验错误
func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsItemsUnavailableError 提取不可购买错误
func AsItemsUnavailableError(err error) (*ItemsUnavailableError, bool) {
	var target *ItemsUnavailableError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
