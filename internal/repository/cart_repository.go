package repository

import (
	"errors"
	"time"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	Get(userID, productID uint) (*models.CartItem, error)
	AddQuantity(userID, productID uint, quantity int, now time.Time) (bool, error)
	SetQuantity(userID, productID uint, quantity int) (int64, error)
	DeleteByUserAndProduct(userID, productID uint) error
	ClearByUser(userID uint) error
	CountByUser(userID uint) (int64, error)
	DeleteStale() (int64, error)
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项（预加载商品，按加入时间排序）
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("added_at asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get 获取单个购物车项
func (r *GormCartRepository) Get(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// AddQuantity 原子地插入或累加数量，返回是否新建了购物车行
func (r *GormCartRepository) AddQuantity(userID, productID uint, quantity int, now time.Time) (bool, error) {
	if userID == 0 || productID == 0 || quantity <= 0 {
		return false, errors.New("invalid cart add params")
	}
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&count).Error; err != nil {
			return err
		}
		created = count == 0
		item := &models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   now,
			UpdatedAt: now,
		}
		return tx.Omit("Product").Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
				"updated_at": now,
			}),
		}).Create(item).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// SetQuantity 设置购物车项数量，返回影响行数
func (r *GormCartRepository) SetQuantity(userID, productID uint, quantity int) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteByUserAndProduct 删除购物车项
func (r *GormCartRepository) DeleteByUserAndProduct(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{}).Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// CountByUser 统计购物车行数
func (r *GormCartRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteStale 清理引用已删除、已下架或已售商品的购物车行，保留预留中的商品
func (r *GormCartRepository) DeleteStale() (int64, error) {
	purchasable := r.db.Model(&models.Product{}).
		Select("id").
		Where("is_active = ? AND availability <> ?", true, constants.AvailabilitySold)
	result := r.db.Where("product_id NOT IN (?)", purchasable).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
