package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ecofinds/internal/config"
	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db           *gorm.DB
	cfg          *config.Config
	userRepo     *repository.GormUserRepository
	productRepo  *repository.GormProductRepository
	cartRepo     *repository.GormCartRepository
	purchaseRepo *repository.GormPurchaseRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	// 单连接避免共享缓存模式下的表锁冲突
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-secret"
	cfg.UserJWT.ExpireHours = 1
	cfg.Security.PasswordPolicy.MinLength = 6
	cfg.Catalog.DefaultPageSize = 12
	cfg.Catalog.MaxPageSize = 100
	cfg.Catalog.PlaceholderImage = "/placeholder-image.jpg"

	return &testEnv{
		db:           db,
		cfg:          cfg,
		userRepo:     repository.NewUserRepository(db),
		productRepo:  repository.NewProductRepository(db),
		cartRepo:     repository.NewCartRepository(db),
		purchaseRepo: repository.NewPurchaseRepository(db),
	}
}

func (e *testEnv) cartService() *CartService {
	return NewCartService(e.cartRepo, e.productRepo, nil)
}

func (e *testEnv) checkoutService() *CheckoutService {
	return NewCheckoutService(e.productRepo, e.cartRepo, e.purchaseRepo, nil, nil)
}

func (e *testEnv) productService() *ProductService {
	return NewProductService(e.cfg, e.productRepo, nil, nil)
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (e *testEnv) createProduct(t *testing.T, sellerID uint, title, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		SellerID:     sellerID,
		Title:        title,
		Description:  title + " description",
		Category:     constants.CategoryBooks,
		Price:        models.MustMoney(price),
		Condition:    constants.ConditionGood,
		Availability: constants.AvailabilityAvailable,
		IsActive:     true,
	}
	if err := e.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (e *testEnv) setProductColumn(t *testing.T, productID uint, column string, value interface{}) {
	t.Helper()
	if err := e.db.Model(&models.Product{}).Where("id = ?", productID).Update(column, value).Error; err != nil {
		t.Fatalf("update product %s failed: %v", column, err)
	}
}

func (e *testEnv) reloadProduct(t *testing.T, productID uint) *models.Product {
	t.Helper()
	var product models.Product
	if err := e.db.First(&product, productID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return &product
}

func (e *testEnv) cartLines(t *testing.T, userID uint) []models.CartItem {
	t.Helper()
	var items []models.CartItem
	if err := e.db.Where("user_id = ?", userID).Order("id asc").Find(&items).Error; err != nil {
		t.Fatalf("list cart items failed: %v", err)
	}
	return items
}

func (e *testEnv) purchaseRows(t *testing.T, userID uint) []models.PurchaseRecord {
	t.Helper()
	var records []models.PurchaseRecord
	if err := e.db.Where("user_id = ?", userID).Order("id asc").Find(&records).Error; err != nil {
		t.Fatalf("list purchase records failed: %v", err)
	}
	return records
}

func quantity(n int) *int {
	return &n
}
