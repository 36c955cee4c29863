package constants

// 商品分类常量
const (
	CategoryElectronics    = "Electronics"
	CategoryClothing       = "Clothing"
	CategoryHomeGarden     = "Home & Garden"
	CategoryBooks          = "Books"
	CategorySportsOutdoors = "Sports & Outdoors"
	CategoryHealthBeauty   = "Health & Beauty"
	CategoryToysGames      = "Toys & Games"
	CategoryAutomotive     = "Automotive"
	CategoryFoodBeverages  = "Food & Beverages"
	CategoryOther          = "Other"

	// CategoryAll 列表筛选中表示不限分类
	CategoryAll = "All"
)

// ProductCategories 固定的商品分类列表（顺序即展示顺序）
var ProductCategories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategoryHomeGarden,
	CategoryBooks,
	CategorySportsOutdoors,
	CategoryHealthBeauty,
	CategoryToysGames,
	CategoryAutomotive,
	CategoryFoodBeverages,
	CategoryOther,
}

// 商品成色常量
const (
	ConditionNew     = "New"
	ConditionLikeNew = "Like New"
	ConditionGood    = "Good"
	ConditionFair    = "Fair"
	ConditionPoor    = "Poor"
)

// ProductConditions 商品成色列表
var ProductConditions = []string{
	ConditionNew,
	ConditionLikeNew,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
}

// 商品售卖状态常量
const (
	AvailabilityAvailable = "Available"
	AvailabilitySold      = "Sold"
	AvailabilityReserved  = "Reserved"
)

// ProductAvailabilities 商品售卖状态列表
var ProductAvailabilities = []string{
	AvailabilityAvailable,
	AvailabilitySold,
	AvailabilityReserved,
}

// 商品默认值
const (
	DefaultProductImageURL = "/placeholder-image.jpg"
	DefaultProductPageSize = 12
	MaxProductPageSize     = 100
)

// 商品列表排序字段
const (
	ProductSortCreatedAt = "createdAt"
	ProductSortPrice     = "price"
	ProductSortViews     = "views"
	ProductSortTitle     = "title"
)

// 排序方向
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 内置角色
const (
	RoleModerator = "moderator"
)

// 登录日志状态
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因
const (
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 审核操作类型
const (
	ModerationActionDeactivateProduct = "product.deactivate"
	ModerationActionGrantRole         = "role.grant"
)

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskProductViewIncrement = "product:view_increment"
	TaskPurchaseCompleted    = "purchase:completed"
)

// IsValidCategory 判断分类是否合法
func IsValidCategory(value string) bool {
	return containsString(ProductCategories, value)
}

// IsValidCondition 判断成色是否合法
func IsValidCondition(value string) bool {
	return containsString(ProductConditions, value)
}

// IsValidAvailability 判断售卖状态是否合法
func IsValidAvailability(value string) bool {
	return containsString(ProductAvailabilities, value)
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
