package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecofinds/internal/authz"
	"github.com/ecofinds/internal/cache"
	"github.com/ecofinds/internal/config"
	moderationhandlers "github.com/ecofinds/internal/http/handlers/moderation"
	publichandlers "github.com/ecofinds/internal/http/handlers/public"
	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/provider"

	"github.com/gin-gonic/gin"
)

const moderationRoutePrefix = "/api/v1/moderation/"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/审核分组）
	publicHandler := publichandlers.New(c)
	moderationHandler := moderationhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "eco"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled && c.HTTPMetrics != nil {
		r.Use(c.HTTPMetrics.Middleware())
	}

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", healthHandler)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndLoginIdentifier), publicHandler.Login)
		}

		// 公开商品接口
		products := apiV1.Group("/products")
		{
			products.GET("", publicHandler.ListProducts)
			products.GET("/categories", publicHandler.ListCategories)
			products.GET("/user/:userId", publicHandler.ListSellerProducts)
			products.GET("/:id", publicHandler.GetProduct)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService))
		{
			user.GET("/auth/me", publicHandler.Me)

			user.POST("/products", publicHandler.CreateProduct)
			user.PUT("/products/:id", publicHandler.UpdateProduct)
			user.DELETE("/products/:id", publicHandler.DeleteProduct)
			user.GET("/me/products", publicHandler.ListMyProducts)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.AddCartItem)
			user.POST("/cart/checkout", publicHandler.Checkout)
			user.PUT("/cart/:productId", publicHandler.UpdateCartItem)
			user.DELETE("/cart/:productId", publicHandler.RemoveCartItem)

			user.GET("/users/profile", publicHandler.GetProfile)
			user.PUT("/users/profile", publicHandler.UpdateProfile)
			user.GET("/users/purchase-history", publicHandler.GetPurchaseHistory)
			user.GET("/users/login-logs", publicHandler.GetLoginLogs)
		}

		// 审核接口（需鉴权 + RBAC）
		moderation := apiV1.Group("/moderation")
		moderation.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService))
		moderation.Use(ModeratorRBACMiddleware(c.AuthzService))
		{
			moderation.GET("/products", moderationHandler.ListProducts)
			moderation.POST("/products/:id/deactivate", moderationHandler.DeactivateProduct)
			moderation.GET("/audit-logs", moderationHandler.ListAuditLogs)
			moderation.GET("/stats", moderationHandler.GetStats)
			moderation.GET("/stats/trends", moderationHandler.GetStatsTrends)
		}

		// 审核权限目录（仅需登录），前端据此展示可授权的接口
		apiV1.GET("/moderation-permissions", UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService), func(ctx *gin.Context) {
			response.Success(ctx, gin.H{"permissions": buildModerationPermissionCatalog(r)})
		})
	}

	// Prometheus 指标
	if cfg.Metrics.Enabled && c.HTTPMetrics != nil {
		metricsPath := strings.TrimSpace(cfg.Metrics.Path)
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.GET(metricsPath, gin.WrapH(c.HTTPMetrics.Handler()))
	}

	// 健康检查
	r.GET("/health", healthHandler)

	return r
}

func healthHandler(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

type moderationPermissionCatalogItem struct {
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildModerationPermissionCatalog 从已注册路由生成审核权限目录，与 casbin 策略对象格式一致
func buildModerationPermissionCatalog(engine *gin.Engine) []moderationPermissionCatalogItem {
	if engine == nil {
		return []moderationPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]moderationPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, moderationRoutePrefix) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, moderationPermissionCatalogItem{
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Object == items[j].Object {
			return items[i].Method < items[j].Method
		}
		return items[i].Object < items[j].Object
	})

	return items
}
