package repository

import (
	"github.com/ecofinds/internal/models"

	"gorm.io/gorm"
)

// PurchaseRepository 购买记录数据访问接口，只追加不修改
type PurchaseRepository interface {
	CreateBatch(records []models.PurchaseRecord) error
	ListByUser(filter PurchaseListFilter) ([]models.PurchaseRecord, int64, error)
	CountByUser(userID uint) (int64, error)
	WithTx(tx *gorm.DB) PurchaseRepository
}

// GormPurchaseRepository GORM 实现
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建购买记录仓库
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPurchaseRepository) WithTx(tx *gorm.DB) PurchaseRepository {
	if tx == nil {
		return r
	}
	return &GormPurchaseRepository{db: tx}
}

// CreateBatch 批量写入购买记录
func (r *GormPurchaseRepository) CreateBatch(records []models.PurchaseRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Omit("Product").Create(&records).Error
}

// ListByUser 按购买时间倒序获取用户购买记录
func (r *GormPurchaseRepository) ListByUser(filter PurchaseListFilter) ([]models.PurchaseRecord, int64, error) {
	query := r.db.Model(&models.PurchaseRecord{}).Where("user_id = ?", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.PurchaseRecord
	query = query.Preload("Product").Scopes(paginate(filter.Page, filter.PageSize))
	if err := query.Order("purchased_at desc, id desc").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// CountByUser 统计用户购买记录数
func (r *GormPurchaseRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.PurchaseRecord{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
