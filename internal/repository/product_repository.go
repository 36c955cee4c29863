package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	UpdateFields(id uint, fields map[string]interface{}, expectedAvailability string) (int64, error)
	Deactivate(id uint) (int64, error)
	IncrementViews(id uint) error
	MarkSoldIfAvailable(id uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if category := strings.TrimSpace(filter.Category); category != "" && category != constants.CategoryAll {
		query = query.Where("category = ?", category)
	}
	if condition := strings.TrimSpace(filter.Condition); condition != "" {
		query = query.Where("condition = ?", condition)
	}
	if availability := strings.TrimSpace(filter.Availability); availability != "" {
		query = query.Where("availability = ?", availability)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", filter.MinPrice.StringFixed(2))
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", filter.MaxPrice.StringFixed(2))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(search) + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"title", "description"}, []string{"tags"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithSeller {
		query = query.Preload("Seller")
	}
	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	if err := query.Order(productOrderClause(filter.SortBy, filter.SortOrder)).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// productOrderClause 将外部排序字段映射为列名，未知字段回退为创建时间
func productOrderClause(sortBy, sortOrder string) string {
	column := "created_at"
	switch strings.TrimSpace(sortBy) {
	case constants.ProductSortPrice:
		column = "price"
	case constants.ProductSortViews:
		column = "views"
	case constants.ProductSortTitle:
		column = "title"
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(sortOrder), constants.SortOrderAsc) {
		direction = "ASC"
	}
	return column + " " + direction + ", id " + direction
}

// GetByID 根据 ID 获取商品（含卖家）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, nil
	}
	var product models.Product
	if err := r.db.Preload("Seller").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Omit("Seller").Create(product).Error
}

// UpdateFields 只写入给定列；expectedAvailability 非空时追加可售状态条件，返回影响行数
func (r *GormProductRepository) UpdateFields(id uint, fields map[string]interface{}, expectedAvailability string) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid product id")
	}
	if len(fields) == 0 {
		return 0, nil
	}
	query := r.db.Model(&models.Product{}).Where("id = ? AND is_active = ?", id, true)
	if expectedAvailability != "" {
		query = query.Where("availability = ?", expectedAvailability)
	}
	result := query.Updates(fields)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Deactivate 下架商品（软删除）
func (r *GormProductRepository) Deactivate(id uint) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementViews 浏览数 +1
func (r *GormProductRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// MarkSoldIfAvailable 条件写：仅当商品仍上架且可售时标记为已售，返回影响行数
func (r *GormProductRepository) MarkSoldIfAvailable(id uint) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid product id")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND availability = ? AND is_active = ?", id, constants.AvailabilityAvailable, true).
		Updates(map[string]interface{}{
			"availability": constants.AvailabilitySold,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
