//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	_ = db.Migrator().DropTable(models.AllModels()...)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(models.AllModels()...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresProductSearchMatchesTagsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)

	product := &models.Product{
		SellerID:    1,
		Title:       "Road bike",
		Description: "Aluminium frame",
		Category:    constants.CategorySportsOutdoors,
		Price:       models.MustMoney("120.00"),
		Tags:        models.StringArray{"cycling", "commuter"},
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	items, total, err := repo.List(ProductListFilter{Search: "COMMUTER", OnlyActive: true})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != product.ID {
		t.Fatalf("search by tag want product %d, got total=%d items=%d", product.ID, total, len(items))
	}
}

func TestPostgresMarkSoldIfAvailableOnlyOnce(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)

	product := &models.Product{
		SellerID:    1,
		Title:       "Desk lamp",
		Description: "Warm light",
		Category:    constants.CategoryHomeGarden,
		Price:       models.MustMoney("15.50"),
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	first, err := repo.MarkSoldIfAvailable(product.ID)
	if err != nil || first != 1 {
		t.Fatalf("first mark sold want 1, got %d err=%v", first, err)
	}
	second, err := repo.MarkSoldIfAvailable(product.ID)
	if err != nil || second != 0 {
		t.Fatalf("second mark sold want 0, got %d err=%v", second, err)
	}
}
