package public

import (
	"errors"

	handlershared "github.com/ecofinds/internal/http/handlers/shared"
	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/i18n"
	"github.com/ecofinds/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

// respondWithMappedError 依次处理字段校验错误、带 key 的业务错误与映射规则，未命中时返回兜底错误。
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	if vErr, ok := service.AsValidationError(err); ok {
		handlershared.RespondValidationError(c, vErr)
		return
	}
	if handlershared.RespondLocalizedError(c, err) {
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrUsernameTaken, code: response.CodeBadRequest, key: "error.username_taken"},
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, key: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

var productReadErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
}

var productWriteErrorRules = []mappedHandlerError{
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.product_forbidden"},
	{target: service.ErrProductConflict, code: response.CodeConflict, key: "error.product_conflict"},
}

var cartAddErrorRules = []mappedHandlerError{
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, key: "error.product_unavailable"},
	{target: service.ErrSelfReference, code: response.CodeBadRequest, key: "error.cart_self_reference"},
}

var cartUpdateErrorRules = []mappedHandlerError{
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, key: "error.cart_empty"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrUsernameTaken, code: response.CodeBadRequest, key: "error.username_taken"},
}

func respondAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
}

func respondProductReadError(c *gin.Context, err error) {
	respondWithMappedError(c, err, productReadErrorRules, response.CodeInternal, "error.internal")
}

func respondProductWriteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(productReadErrorRules, productWriteErrorRules), response.CodeInternal, "error.internal")
}

func respondCartAddError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(productReadErrorRules, cartAddErrorRules), response.CodeInternal, "error.internal")
}

func respondCartUpdateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartUpdateErrorRules, response.CodeInternal, "error.internal")
}

func respondProfileError(c *gin.Context, err error) {
	respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
}

// respondCheckoutError 不可购买错误需附带明细，其余走映射规则
func respondCheckoutError(c *gin.Context, err error) {
	if unavailable, ok := service.AsItemsUnavailableError(err); ok {
		msg := i18n.T(i18n.ResolveLocale(c), "error.cart_items_unavailable")
		response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{
			"message":          msg,
			"unavailableItems": unavailable.Items,
		})
		return
	}
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
}
