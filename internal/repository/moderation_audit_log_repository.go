package repository

import (
	"github.com/ecofinds/internal/models"

	"gorm.io/gorm"
)

// ModerationAuditLogRepository 审核审计日志数据访问接口
type ModerationAuditLogRepository interface {
	Create(log *models.ModerationAuditLog) error
	List(filter ModerationAuditLogListFilter) ([]models.ModerationAuditLog, int64, error)
}

// GormModerationAuditLogRepository GORM 实现
type GormModerationAuditLogRepository struct {
	db *gorm.DB
}

// NewModerationAuditLogRepository 创建审核审计日志仓库
func NewModerationAuditLogRepository(db *gorm.DB) *GormModerationAuditLogRepository {
	return &GormModerationAuditLogRepository{db: db}
}

// Create 创建审核审计日志
func (r *GormModerationAuditLogRepository) Create(log *models.ModerationAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// List 查询审核审计日志
func (r *GormModerationAuditLogRepository) List(filter ModerationAuditLogListFilter) ([]models.ModerationAuditLog, int64, error) {
	query := r.db.Model(&models.ModerationAuditLog{})
	if filter.OperatorID != 0 {
		query = query.Where("operator_id = ?", filter.OperatorID)
	}
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	logs := make([]models.ModerationAuditLog, 0)
	if err := query.Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
