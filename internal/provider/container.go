package provider

import (
	"github.com/ecofinds/internal/authz"
	"github.com/ecofinds/internal/cache"
	"github.com/ecofinds/internal/config"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/metrics"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/queue"
	"github.com/ecofinds/internal/repository"
	"github.com/ecofinds/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Metrics
	MetricsRegistry *prometheus.Registry
	HTTPMetrics     *metrics.HTTPMetrics
	BusinessMetrics *metrics.BusinessMetrics

	// Repositories
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	PurchaseRepo repository.PurchaseRepository
	LoginLogRepo repository.UserLoginLogRepository
	AuditLogRepo repository.ModerationAuditLogRepository
	StatsRepo    repository.DashboardRepository

	// Services
	AuthzService    *authz.Service
	UserAuthService *service.UserAuthService
	UserService     *service.UserService
	ProductService  *service.ProductService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService

	UserLoginLogService    *service.UserLoginLogService
	ModerationAuditService *service.ModerationAuditService
	DashboardService       *service.DashboardService
}

// NewContainer 初始化容器，使用全局数据库连接
func NewContainer(cfg *config.Config) *Container {
	return NewContainerWithDB(cfg, models.DB)
}

// NewContainerWithDB 使用指定数据库连接初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initMetrics()
	c.initRepositories(db)
	c.initServices(db)

	return c
}

func (c *Container) initMetrics() {
	c.MetricsRegistry = prometheus.NewRegistry()
	c.MetricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	namespace := c.Config.Metrics.Namespace
	c.HTTPMetrics = metrics.NewHTTPMetrics(namespace, c.MetricsRegistry)
	c.BusinessMetrics = metrics.NewBusinessMetrics(namespace, c.MetricsRegistry)
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.LoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.AuditLogRepo = repository.NewModerationAuditLogRepository(db)
	c.StatsRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.BusinessMetrics)
	c.UserService = service.NewUserService(c.Config, c.UserRepo, c.CartRepo, c.PurchaseRepo, c.ProductRepo)
	c.ProductService = service.NewProductService(c.Config, c.ProductRepo, c.QueueClient, c.BusinessMetrics)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.BusinessMetrics)
	c.CheckoutService = service.NewCheckoutService(c.ProductRepo, c.CartRepo, c.PurchaseRepo, c.QueueClient, c.BusinessMetrics)
	c.UserLoginLogService = service.NewUserLoginLogService(c.LoginLogRepo, c.UserRepo)
	c.ModerationAuditService = service.NewModerationAuditService(c.AuditLogRepo)
	c.DashboardService = service.NewDashboardService(c.StatsRepo)
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
