package moderation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ecofinds/internal/constants"
	handlershared "github.com/ecofinds/internal/http/handlers/shared"
	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/i18n"
	"github.com/ecofinds/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 审核商品列表，includeInactive=true 时包含已下架商品
func (h *Handler) ListProducts(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(strings.TrimSpace(c.Query("includeInactive")))
	query := service.ProductListQuery{
		Category:     strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		Condition:    strings.TrimSpace(c.Query("condition")),
		Availability: strings.TrimSpace(c.Query("availability")),
		Page:         handlershared.QueryInt(c, "page", 1),
		Limit:        handlershared.QueryInt(c, "limit", 0),
		SortBy:       strings.TrimSpace(c.Query("sortBy")),
		SortOrder:    strings.TrimSpace(c.Query("sortOrder")),
	}

	products, pagination, err := h.ProductService.ListForModeration(query, includeInactive)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"products":   products,
		"pagination": pagination,
	})
}

// DeactivateProduct 强制下架商品
func (h *Handler) DeactivateProduct(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "id", "error.product_id_invalid")
	if !ok {
		return
	}
	if err := h.ProductService.Deactivate(productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	moderatorID := handlershared.ContextUint(c, "user_id")
	if err := h.ModerationAuditService.Record(service.ModerationAuditRecordInput{
		OperatorID: moderatorID,
		Action:     constants.ModerationActionDeactivateProduct,
		ProductID:  &productID,
		RequestID:  handlershared.RequestID(c),
	}); err != nil {
		requestLog(c).Warnw("moderation_audit_record_failed", "error", err)
	}
	requestLog(c).Infow("moderation_product_deactivated",
		"product_id", productID,
		"moderator_id", moderatorID,
	)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.product_deleted"), gin.H{"productId": productID})
}
