package main

import (
	"flag"
	"os"
	"strings"

	"github.com/ecofinds/internal/authz"
	"github.com/ecofinds/internal/config"
	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/repository"
	"github.com/ecofinds/internal/service"

	"golang.org/x/crypto/bcrypt"
)

const demoSellerUsername = "demo_seller"

func main() {
	var moderator string
	var withDemo bool
	flag.StringVar(&moderator, "moderator", "", "授予 moderator 角色的用户名")
	flag.BoolVar(&withDemo, "demo", false, "写入演示卖家与商品")
	flag.Parse()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(models.DBOptions{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		LogLevel: cfg.Database.LogLevel,
		Pool: models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		},
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	defer func() { _ = models.CloseDB() }()

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to bootstrap roles: %v", err)
	}

	userRepo := repository.NewUserRepository(models.DB)
	if withDemo {
		seedDemoCatalog(userRepo, repository.NewProductRepository(models.DB))
	}

	if username := strings.TrimSpace(moderator); username != "" {
		user, err := userRepo.GetByUsername(username)
		if err != nil {
			stdLog.Fatalf("Failed to load user %s: %v", username, err)
		}
		if user == nil {
			stdLog.Fatalf("User not found: %s", username)
		}
		if err := authzService.AddUserRole(user.ID, constants.RoleModerator); err != nil {
			stdLog.Fatalf("Failed to grant moderator role: %v", err)
		}
		targetID := user.ID
		auditService := service.NewModerationAuditService(repository.NewModerationAuditLogRepository(models.DB))
		if err := auditService.Record(service.ModerationAuditRecordInput{
			Action:     constants.ModerationActionGrantRole,
			TargetUser: &targetID,
			Detail:     constants.RoleModerator,
		}); err != nil {
			stdLog.Printf("Failed to record moderation audit: %v", err)
		}
		stdLog.Printf("Granted %s role to %s (id=%d)", constants.RoleModerator, user.Username, user.ID)
	}

	stdLog.Println("Seed completed")
}

func seedDemoCatalog(userRepo repository.UserRepository, productRepo repository.ProductRepository) {
	stdLog := logger.StdLogger()

	seller, err := userRepo.GetByUsername(demoSellerUsername)
	if err != nil {
		stdLog.Fatalf("Failed to load demo seller: %v", err)
	}
	if seller != nil {
		stdLog.Printf("Demo seller already exists, skip demo catalog")
		return
	}

	password := strings.TrimSpace(os.Getenv("ECO_DEMO_PASSWORD"))
	if password == "" {
		password = "demo-password"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash demo password: %v", err)
	}
	seller = &models.User{
		Username:     demoSellerUsername,
		Email:        "demo_seller@ecofinds.local",
		PasswordHash: string(hash),
		FirstName:    "Demo",
		LastName:     "Seller",
		Status:       constants.UserStatusActive,
	}
	if err := userRepo.Create(seller); err != nil {
		stdLog.Fatalf("Failed to create demo seller: %v", err)
	}

	products := []models.Product{
		{
			Title:       "Refurbished Mechanical Keyboard",
			Description: "Brown switches, all keys tested, light wear on the space bar.",
			Category:    constants.CategoryElectronics,
			Price:       models.MustMoney("45.00"),
			Condition:   constants.ConditionLikeNew,
			Tags:        models.StringArray{"keyboard", "computer"},
			Location:    models.Location{City: "Portland", State: "OR", Country: "USA"},
		},
		{
			Title:       "Denim Jacket",
			Description: "Classic blue denim jacket, size M, washed once.",
			Category:    constants.CategoryClothing,
			Price:       models.MustMoney("18.50"),
			Condition:   constants.ConditionGood,
			Tags:        models.StringArray{"jacket", "denim"},
		},
		{
			Title:       "Cast Iron Skillet",
			Description: "Seasoned 10 inch skillet, no rust.",
			Category:    constants.CategoryHomeGarden,
			Price:       models.MustMoney("12.00"),
			Condition:   constants.ConditionFair,
			Tags:        models.StringArray{"kitchen", "cookware"},
		},
	}
	for i := range products {
		product := &products[i]
		product.SellerID = seller.ID
		product.Availability = constants.AvailabilityAvailable
		product.IsActive = true
		product.Images = models.ProductImages{{URL: constants.DefaultProductImageURL, Alt: "Product image"}}
		if err := productRepo.Create(product); err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Title, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Title)
	}
}
