package repository

import (
	"strings"
	"time"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"

	"gorm.io/gorm"
)

// UserLoginLogRepository 登录尝试流水，只追加不修改
type UserLoginLogRepository interface {
	Append(entry *models.UserLoginLog) error
	ListForAccount(query LoginLogQuery) ([]models.UserLoginLog, int64, error)
	CountFailuresSince(query LoginLogQuery, since time.Time) (int64, error)
}

// GormUserLoginLogRepository GORM 实现
type GormUserLoginLogRepository struct {
	db *gorm.DB
}

// NewUserLoginLogRepository 创建登录流水仓库
func NewUserLoginLogRepository(db *gorm.DB) *GormUserLoginLogRepository {
	return &GormUserLoginLogRepository{db: db}
}

func (r *GormUserLoginLogRepository) Append(entry *models.UserLoginLog) error {
	if entry == nil {
		return nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.Create(entry).Error
}

// ListForAccount 账号名下的登录尝试，新的在前；失败时未关联用户的记录按提交的账号标识归属
func (r *GormUserLoginLogRepository) ListForAccount(query LoginLogQuery) ([]models.UserLoginLog, int64, error) {
	logs := make([]models.UserLoginLog, 0)
	if query.UserID == 0 && len(query.Identifiers) == 0 {
		return logs, 0, nil
	}
	scoped := r.accountScope(query)

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := scoped.Scopes(paginate(query.Page, query.PageSize)).
		Order("created_at desc, id desc").
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// CountFailuresSince 统计账号自某时刻起的失败次数
func (r *GormUserLoginLogRepository) CountFailuresSince(query LoginLogQuery, since time.Time) (int64, error) {
	if query.UserID == 0 && len(query.Identifiers) == 0 {
		return 0, nil
	}
	query.Status = constants.LoginLogStatusFailed
	var count int64
	err := r.accountScope(query).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *GormUserLoginLogRepository) accountScope(query LoginLogQuery) *gorm.DB {
	identifiers := make([]string, 0, len(query.Identifiers))
	for _, identifier := range query.Identifiers {
		if identifier = strings.ToLower(strings.TrimSpace(identifier)); identifier != "" {
			identifiers = append(identifiers, identifier)
		}
	}

	db := r.db.Model(&models.UserLoginLog{})
	switch {
	case query.UserID != 0 && len(identifiers) > 0:
		db = db.Where("(user_id = ? OR (user_id = 0 AND LOWER(identifier) IN ?))", query.UserID, identifiers)
	case query.UserID != 0:
		db = db.Where("user_id = ?", query.UserID)
	default:
		db = db.Where("user_id = 0 AND LOWER(identifier) IN ?", identifiers)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	return db
}
