package moderation

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/service"

	"github.com/gin-gonic/gin"
)

func parseDashboardQuery(c *gin.Context) (service.DashboardQueryInput, bool) {
	input := service.DashboardQueryInput{
		Range:    strings.TrimSpace(c.Query("range")),
		Timezone: strings.TrimSpace(c.Query("tz")),
	}
	input.ForceRefresh, _ = strconv.ParseBool(strings.TrimSpace(c.Query("refresh")))
	for _, item := range []struct {
		key  string
		dest **time.Time
	}{
		{"from", &input.From},
		{"to", &input.To},
	} {
		raw := strings.TrimSpace(c.Query(item.key))
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.dashboard_range_invalid", nil)
			return input, false
		}
		*item.dest = &parsed
	}
	return input, true
}

func respondDashboardError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrDashboardRangeInvalid) {
		respondError(c, response.CodeBadRequest, "error.dashboard_range_invalid", nil)
		return
	}
	respondError(c, response.CodeInternal, "error.internal", err)
}

// GetStats 市场统计总览
func (h *Handler) GetStats(c *gin.Context) {
	input, ok := parseDashboardQuery(c)
	if !ok {
		return
	}
	overview, err := h.DashboardService.GetOverview(c.Request.Context(), input)
	if err != nil {
		respondDashboardError(c, err)
		return
	}
	response.Success(c, overview)
}

// GetStatsTrends 成交趋势
func (h *Handler) GetStatsTrends(c *gin.Context) {
	input, ok := parseDashboardQuery(c)
	if !ok {
		return
	}
	trends, err := h.DashboardService.GetTrends(c.Request.Context(), input)
	if err != nil {
		respondDashboardError(c, err)
		return
	}
	response.Success(c, trends)
}
