package public

import (
	"strings"

	handlershared "github.com/ecofinds/internal/http/handlers/shared"
	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/i18n"
	"github.com/ecofinds/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// parseProductListQuery 解析列表查询参数，价格区间非法时返回字段错误
func parseProductListQuery(c *gin.Context) (service.ProductListQuery, *service.ValidationError) {
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

	var fields []service.FieldError
	for _, bound := range []struct {
		name   string
		target **decimal.Decimal
	}{
		{name: "minPrice", target: &query.MinPrice},
		{name: "maxPrice", target: &query.MaxPrice},
	} {
		raw := strings.TrimSpace(c.Query(bound.name))
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil || value.IsNegative() {
			fields = append(fields, service.FieldError{Field: bound.name, Message: bound.name + " must be a non-negative number"})
			continue
		}
		*bound.target = &value
	}
	if len(fields) > 0 {
		return query, &service.ValidationError{Fields: fields}
	}
	return query, nil
}

// ListProducts 商品列表（搜索/筛选/排序/分页）
func (h *Handler) ListProducts(c *gin.Context) {
	query, vErr := parseProductListQuery(c)
	if vErr != nil {
		handlershared.RespondValidationError(c, vErr)
		return
	}

	products, pagination, err := h.ProductService.ListPublic(query)
	if err != nil {
		respondProductReadError(c, err)
		return
	}
	response.Success(c, gin.H{
		"products":   products,
		"pagination": pagination,
	})
}

// ListCategories 商品分类
func (h *Handler) ListCategories(c *gin.Context) {
	response.Success(c, gin.H{"categories": h.ProductService.Categories()})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := getProductIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetDetail(productID)
	if err != nil {
		respondProductReadError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// ListSellerProducts 某个卖家的上架商品
func (h *Handler) ListSellerProducts(c *gin.Context) {
	sellerID, ok := handlershared.ParseUintParam(c, "userId", "error.user_id_invalid")
	if !ok {
		return
	}
	products, err := h.ProductService.ListBySeller(sellerID)
	if err != nil {
		respondProductReadError(c, err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// ListMyProducts 我发布的商品
func (h *Handler) ListMyProducts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	products, err := h.ProductService.ListMine(uid)
	if err != nil {
		respondProductReadError(c, err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// CreateProduct 发布商品
func (h *Handler) CreateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var input service.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Create(uid, input)
	if err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "success.product_created"), gin.H{"product": product})
}

// UpdateProduct 编辑自己的商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := getProductIDParam(c, "id")
	if !ok {
		return
	}
	var input service.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Update(uid, productID, input)
	if err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.product_updated"), gin.H{"product": product})
}

// DeleteProduct 下架自己的商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := getProductIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(uid, productID); err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.product_deleted"), nil)
}
