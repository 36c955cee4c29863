package moderation

import (
	"strconv"
	"strings"

	handlershared "github.com/ecofinds/internal/http/handlers/shared"
	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs 审核操作审计日志
func (h *Handler) ListAuditLogs(c *gin.Context) {
	filter := repository.ModerationAuditLogListFilter{
		Page:     handlershared.QueryInt(c, "page", 1),
		PageSize: handlershared.QueryInt(c, "limit", 20),
		Action:   strings.TrimSpace(c.Query("action")),
	}
	if raw := strings.TrimSpace(c.Query("operatorId")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.OperatorID = uint(id)
	}
	if raw := strings.TrimSpace(c.Query("productId")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
			return
		}
		filter.ProductID = uint(id)
	}

	page, err := h.ModerationAuditService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, page)
}
