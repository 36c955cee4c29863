package repository

import (
	"fmt"
	"time"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 市场统计聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetPurchaseTrends(startAt, endAt time.Time) ([]DashboardPurchaseTrendRow, error)
	GetCategoryStats() ([]DashboardCategoryRow, error)
}

// DashboardOverviewRow 总览原始统计结果
type DashboardOverviewRow struct {
	UsersTotal     int64
	NewUsers       int64
	ActiveListings int64
	SoldListings   int64
	NewListings    int64
	Purchases      int64
	ItemsSold      int64
	GMV            float64
}

// DashboardPurchaseTrendRow 按天的成交趋势
type DashboardPurchaseTrendRow struct {
	Day       string
	Purchases int64
	GMV       float64
}

// DashboardCategoryRow 分类维度的在售与已售数量
type DashboardCategoryRow struct {
	Category  string
	Available int64
	Sold      int64
}

// GormDashboardRepository GORM 统计聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建统计仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计，新增类指标按 [startAt, endAt) 计算
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	if err := r.db.Model(&models.User{}).Count(&result.UsersTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.NewUsers).Error; err != nil {
		return result, err
	}

	productBase := func() *gorm.DB {
		return r.db.Model(&models.Product{}).Where("is_active = ?", true)
	}
	if err := productBase().Where("availability = ?", constants.AvailabilityAvailable).Count(&result.ActiveListings).Error; err != nil {
		return result, err
	}
	if err := productBase().Where("availability = ?", constants.AvailabilitySold).Count(&result.SoldListings).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.NewListings).Error; err != nil {
		return result, err
	}

	purchaseBase := func() *gorm.DB {
		return r.db.Model(&models.PurchaseRecord{}).
			Where("purchased_at >= ? AND purchased_at < ?", startAt, endAt)
	}
	if err := purchaseBase().Count(&result.Purchases).Error; err != nil {
		return result, err
	}
	if err := purchaseBase().Select("COALESCE(SUM(quantity), 0)").Scan(&result.ItemsSold).Error; err != nil {
		return result, err
	}
	if err := purchaseBase().Select("COALESCE(SUM(price * quantity), 0)").Scan(&result.GMV).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetPurchaseTrends 获取按天的成交趋势
func (r *GormDashboardRepository) GetPurchaseTrends(startAt, endAt time.Time) ([]DashboardPurchaseTrendRow, error) {
	dayExpr := "CAST(date(purchased_at) AS TEXT)"
	rows := make([]DashboardPurchaseTrendRow, 0)
	if err := r.db.Model(&models.PurchaseRecord{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as purchases, COALESCE(SUM(price * quantity), 0) as gmv", dayExpr)).
		Where("purchased_at >= ? AND purchased_at < ?", startAt, endAt).
		Group(dayExpr).
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetCategoryStats 按分类统计上架商品的在售与已售数量
func (r *GormDashboardRepository) GetCategoryStats() ([]DashboardCategoryRow, error) {
	rows := make([]DashboardCategoryRow, 0)
	if err := r.db.Model(&models.Product{}).
		Select("category, "+
			"SUM(CASE WHEN availability = ? THEN 1 ELSE 0 END) as available, "+
			"SUM(CASE WHEN availability = ? THEN 1 ELSE 0 END) as sold",
			constants.AvailabilityAvailable, constants.AvailabilitySold).
		Where("is_active = ?", true).
		Group("category").
		Order("category asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
