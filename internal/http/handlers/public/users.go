package public

import (
	handlershared "github.com/ecofinds/internal/http/handlers/shared"
	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/i18n"
	"github.com/ecofinds/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProfile 个人资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	profile, err := h.UserService.GetProfile(uid)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	response.Success(c, profile)
}

// UpdateProfile 更新个人资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserService.UpdateProfile(uid, input)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.profile_updated"), gin.H{"user": user})
}

// GetPurchaseHistory 购买记录（最新在前）
func (h *Handler) GetPurchaseHistory(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page := handlershared.QueryInt(c, "page", 1)
	limit := handlershared.QueryInt(c, "limit", 0)

	history, err := h.UserService.PurchaseHistory(uid, page, limit)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	response.Success(c, history)
}

// GetLoginLogs 当前用户的登录记录
func (h *Handler) GetLoginLogs(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page := handlershared.QueryInt(c, "page", 1)
	limit := handlershared.QueryInt(c, "limit", 20)

	logs, err := h.UserLoginLogService.ListByUser(uid, page, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, logs)
}
