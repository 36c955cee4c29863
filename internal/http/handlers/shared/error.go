package shared

import (
	"errors"

	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/i18n"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	RespondErrorWithMsg(c, code, msg, err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// RespondValidationError 返回逐字段的校验错误（400）。
func RespondValidationError(c *gin.Context, vErr *service.ValidationError) {
	msg := i18n.T(i18n.ResolveLocale(c), "error.validation_failed")
	response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{"errors": vErr.Fields})
}

// localizedError 携带 i18n key 与参数的业务错误（如密码策略）
type localizedError interface {
	Key() string
	Args() []interface{}
}

// RespondLocalizedError 按错误自带的 i18n key 返回 400，不具备 key 时返回 false。
func RespondLocalizedError(c *gin.Context, err error) bool {
	var target localizedError
	if !errors.As(err, &target) {
		return false
	}
	msg := i18n.Sprintf(i18n.ResolveLocale(c), target.Key(), target.Args()...)
	response.Error(c, response.CodeBadRequest, msg)
	return true
}
