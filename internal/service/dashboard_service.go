package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecofinds/internal/cache"
	"github.com/ecofinds/internal/repository"
)

const (
	dashboardCacheTTL      = 45 * time.Second
	dashboardCustomMaxDays = 90
)

// DashboardService 市场统计服务
// 说明：为审核后台聚合用户、商品与成交数据。
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建统计服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardQueryInput 统计查询输入
type DashboardQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	Timezone     string
	ForceRefresh bool
}

// DashboardOverviewResponse 统计总览响应
type DashboardOverviewResponse struct {
	Range      string                 `json:"range"`
	From       string                 `json:"from"`
	To         string                 `json:"to"`
	Timezone   string                 `json:"timezone"`
	KPI        DashboardKPI           `json:"kpi"`
	Categories []DashboardCategoryKPI `json:"categories"`
}

// DashboardKPI 核心指标
type DashboardKPI struct {
	UsersTotal     int64  `json:"usersTotal"`
	NewUsers       int64  `json:"newUsers"`
	ActiveListings int64  `json:"activeListings"`
	SoldListings   int64  `json:"soldListings"`
	NewListings    int64  `json:"newListings"`
	Purchases      int64  `json:"purchases"`
	ItemsSold      int64  `json:"itemsSold"`
	GMV            string `json:"gmv"`
	SellThroughPct string `json:"sellThroughRate"`
}

// DashboardCategoryKPI 分类指标
type DashboardCategoryKPI struct {
	Category  string `json:"category"`
	Available int64  `json:"available"`
	Sold      int64  `json:"sold"`
}

// DashboardTrendPoint 趋势点
type DashboardTrendPoint struct {
	Day       string `json:"day"`
	Purchases int64  `json:"purchases"`
	GMV       string `json:"gmv"`
}

// DashboardTrendResponse 趋势响应
type DashboardTrendResponse struct {
	Range    string                `json:"range"`
	From     string                `json:"from"`
	To       string                `json:"to"`
	Timezone string                `json:"timezone"`
	Points   []DashboardTrendPoint `json:"points"`
}

type dashboardWindow struct {
	rangeKey string
	startAt  time.Time
	endAt    time.Time
	timezone string
}

// GetOverview 获取统计总览
func (s *DashboardService) GetOverview(ctx context.Context, input DashboardQueryInput) (*DashboardOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverviewResponse{Categories: []DashboardCategoryKPI{}}, nil
	}

	window, err := resolveDashboardWindow(input, time.Now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:overview:%s:%d:%d:%s",
		window.rangeKey,
		window.startAt.Unix(),
		window.endAt.Unix(),
		window.timezone,
	)
	if !input.ForceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	categoryRows, err := s.repo.GetCategoryStats()
	if err != nil {
		return nil, err
	}

	sellThrough := 0.0
	if listed := overview.ActiveListings + overview.SoldListings; listed > 0 {
		sellThrough = float64(overview.SoldListings) / float64(listed) * 100
	}

	categories := make([]DashboardCategoryKPI, 0, len(categoryRows))
	for _, row := range categoryRows {
		categories = append(categories, DashboardCategoryKPI{
			Category:  row.Category,
			Available: row.Available,
			Sold:      row.Sold,
		})
	}

	response := &DashboardOverviewResponse{
		Range:    window.rangeKey,
		From:     window.startAt.Format(time.RFC3339),
		To:       window.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone: window.timezone,
		KPI: DashboardKPI{
			UsersTotal:     overview.UsersTotal,
			NewUsers:       overview.NewUsers,
			ActiveListings: overview.ActiveListings,
			SoldListings:   overview.SoldListings,
			NewListings:    overview.NewListings,
			Purchases:      overview.Purchases,
			ItemsSold:      overview.ItemsSold,
			GMV:            formatMoneyValue(overview.GMV),
			SellThroughPct: formatPercentValue(sellThrough),
		},
		Categories: categories,
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// GetTrends 获取成交趋势
func (s *DashboardService) GetTrends(ctx context.Context, input DashboardQueryInput) (*DashboardTrendResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardTrendResponse{Points: []DashboardTrendPoint{}}, nil
	}

	window, err := resolveDashboardWindow(input, time.Now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:trends:%s:%d:%d:%s",
		window.rangeKey,
		window.startAt.Unix(),
		window.endAt.Unix(),
		window.timezone,
	)
	if !input.ForceRefresh {
		var cached DashboardTrendResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.repo.GetPurchaseTrends(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	points := make([]DashboardTrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, DashboardTrendPoint{
			Day:       row.Day,
			Purchases: row.Purchases,
			GMV:       formatMoneyValue(row.GMV),
		})
	}

	response := &DashboardTrendResponse{
		Range:    window.rangeKey,
		From:     window.startAt.Format(time.RFC3339),
		To:       window.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone: window.timezone,
		Points:   points,
	}
	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

func resolveDashboardWindow(input DashboardQueryInput, now time.Time) (dashboardWindow, error) {
	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	if rangeKey == "" {
		rangeKey = "7d"
	}

	timezone := strings.TrimSpace(input.Timezone)
	location := time.Local
	if timezone != "" {
		if parsed, err := time.LoadLocation(timezone); err == nil {
			location = parsed
		} else {
			timezone = ""
		}
	}
	if timezone == "" {
		timezone = location.String()
	}

	localNow := now.In(location)
	todayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, location)
	window := dashboardWindow{rangeKey: rangeKey, timezone: timezone}

	switch rangeKey {
	case "today":
		window.startAt = todayStart
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "7d":
		window.startAt = todayStart.AddDate(0, 0, -6)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "30d":
		window.startAt = todayStart.AddDate(0, 0, -29)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "custom":
		if input.From == nil || input.To == nil {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		startAt := input.From.In(location)
		endAt := input.To.In(location)
		if endAt.Before(startAt) {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		if endAt.Sub(startAt) > time.Hour*24*dashboardCustomMaxDays {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		window.startAt = startAt
		window.endAt = endAt.Add(time.Second)
	default:
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}

	if !window.endAt.After(window.startAt) {
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	return window, nil
}

func formatMoneyValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatPercentValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
