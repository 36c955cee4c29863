package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// openTestDB 每个测试使用独立的内存库
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, sellerID uint, title, category, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		SellerID:    sellerID,
		Title:       title,
		Description: title + " description",
		Category:    category,
		Price:       models.MustMoney(price),
		Condition:   constants.ConditionGood,
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}
