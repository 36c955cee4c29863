package public

import (
	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/i18n"
	"github.com/ecofinds/internal/service"

	"github.com/gin-gonic/gin"
)

// respondCart 写操作成功后返回最新购物车
func (h *Handler) respondCart(c *gin.Context, uid uint, created bool, msgKey string) {
	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	msg := i18n.T(i18n.ResolveLocale(c), msgKey)
	if created {
		response.Created(c, msg, view)
		return
	}
	response.SuccessWithMsg(c, msg, view)
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车，新建行返回 201，合并数量返回 200
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var input service.AddCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	created, err := h.CartService.Add(uid, input)
	if err != nil {
		respondCartAddError(c, err)
		return
	}
	h.respondCart(c, uid, created, "success.cart_added")
}

// UpdateCartItem 修改购物车数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := getProductIDParam(c, "productId")
	if !ok {
		return
	}
	var input service.UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.UpdateQuantity(uid, productID, input); err != nil {
		respondCartUpdateError(c, err)
		return
	}
	h.respondCart(c, uid, false, "success.cart_updated")
}

// RemoveCartItem 移除购物车商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := getProductIDParam(c, "productId")
	if !ok {
		return
	}
	if err := h.CartService.Remove(uid, productID); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	h.respondCart(c, uid, false, "success.cart_removed")
}

// Checkout 结算购物车
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	receipt, err := h.CheckoutService.Checkout(uid)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.checkout"), receipt)
}
