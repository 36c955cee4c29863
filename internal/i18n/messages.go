package i18n

var catalogs = map[string]map[string]string{
	LocaleEnUS: {
		"error.bad_request":            "Invalid request",
		"error.validation_failed":      "Validation failed",
		"error.unauthorized":           "Authentication required",
		"error.forbidden":              "You do not have permission to perform this action",
		"error.not_found":              "Resource not found",
		"error.internal":               "Server error",
		"error.too_many_requests":      "Too many requests, please try again later",
		"error.login_too_many":         "Too many login attempts, please try again in %d seconds",
		"error.rate_limited":           "Too many requests, please try again in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter unavailable",
		"error.auth_header_missing":    "Access denied. No token provided.",
		"error.auth_header_invalid":    "Invalid authorization header",
		"error.token_invalid":          "Token is not valid",
		"error.token_revoked":          "Token has been revoked",
		"error.jwt_secret_missing":     "Token secret is not configured",
		"error.user_disabled":          "Account is disabled",
		"error.user_not_found":         "User not found",
		"error.user_id_invalid":        "Invalid user id",
		"error.user_id_type_invalid":   "Invalid user id type",
		"error.invalid_credentials":    "Invalid credentials",
		"error.email_invalid":          "Please enter a valid email",
		"error.email_exists":           "User already exists with this email",
		"error.username_taken":         "Username is already taken",

		"error.password_min_length":       "Password must be at least %d characters long",
		"error.password_require_upper":    "Password must contain an uppercase letter",
		"error.password_require_lower":    "Password must contain a lowercase letter",
		"error.password_require_number":   "Password must contain a number",
		"error.password_require_special":  "Password must contain a special character",
		"error.password_contains_account": "Password must not contain your username or email",

		"error.product_not_found":   "Product not found",
		"error.product_unavailable": "Product not available",
		"error.product_conflict":    "Product was changed by another request, reload and try again",
		"error.product_forbidden":   "Not authorized to update this product",
		"error.product_id_invalid":  "Invalid product id",

		"error.cart_self_reference":    "Cannot add your own product to cart",
		"error.cart_item_not_found":    "Item not found in cart",
		"error.cart_empty":             "Cart is empty",
		"error.cart_items_unavailable": "Some items in your cart are no longer available",

		"error.dashboard_range_invalid": "Invalid statistics range",

		"success.registered":      "User registered successfully",
		"success.login":           "Login successful",
		"success.product_created": "Product created successfully",
		"success.product_updated": "Product updated successfully",
		"success.product_deleted": "Product deleted successfully",
		"success.cart_added":      "Item added to cart",
		"success.cart_updated":    "Cart updated",
		"success.cart_removed":    "Item removed from cart",
		"success.checkout":        "Purchase completed successfully",
		"success.profile_updated": "Profile updated successfully",
	},
	LocaleZhCN: {
		"error.bad_request":            "请求参数错误",
		"error.validation_failed":      "参数校验失败",
		"error.unauthorized":           "请先登录",
		"error.forbidden":              "无权执行该操作",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务器错误",
		"error.too_many_requests":      "请求过于频繁，请稍后再试",
		"error.login_too_many":         "登录尝试次数过多，请 %d 秒后再试",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable": "限流服务不可用",
		"error.auth_header_missing":    "未提供登录凭证",
		"error.auth_header_invalid":    "认证头格式错误",
		"error.token_invalid":          "登录凭证无效",
		"error.token_revoked":          "登录凭证已失效",
		"error.jwt_secret_missing":     "未配置签名密钥",
		"error.user_disabled":          "账号已被禁用",
		"error.user_not_found":         "用户不存在",
		"error.user_id_invalid":        "用户 ID 无效",
		"error.user_id_type_invalid":   "用户 ID 类型错误",
		"error.invalid_credentials":    "账号或密码错误",
		"error.email_invalid":          "邮箱格式不正确",
		"error.email_exists":           "该邮箱已注册",
		"error.username_taken":         "用户名已被占用",

		"error.password_min_length":       "密码长度至少 %d 位",
		"error.password_require_upper":    "密码需包含大写字母",
		"error.password_require_lower":    "密码需包含小写字母",
		"error.password_require_number":   "密码需包含数字",
		"error.password_require_special":  "密码需包含特殊字符",
		"error.password_contains_account": "密码不能包含用户名或邮箱",

		"error.product_not_found":   "商品不存在",
		"error.product_unavailable": "商品当前不可售",
		"error.product_conflict":    "商品状态已变化，请刷新后重试",
		"error.product_forbidden":   "无权修改该商品",
		"error.product_id_invalid":  "商品 ID 无效",

		"error.cart_self_reference":    "不能将自己发布的商品加入购物车",
		"error.cart_item_not_found":    "购物车中没有该商品",
		"error.cart_empty":             "购物车为空",
		"error.cart_items_unavailable": "购物车中部分商品已不可购买",

		"error.dashboard_range_invalid": "统计时间范围不合法",

		"success.registered":      "注册成功",
		"success.login":           "登录成功",
		"success.product_created": "商品发布成功",
		"success.product_updated": "商品更新成功",
		"success.product_deleted": "商品已下架",
		"success.cart_added":      "已加入购物车",
		"success.cart_updated":    "购物车已更新",
		"success.cart_removed":    "已从购物车移除",
		"success.checkout":        "购买成功",
		"success.profile_updated": "资料更新成功",
	},
}
