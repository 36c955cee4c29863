package public

import (
	"strings"
	"time"

	"github.com/ecofinds/internal/constants"
	handlershared "github.com/ecofinds/internal/http/handlers/shared"
	"github.com/ecofinds/internal/http/response"
	"github.com/ecofinds/internal/i18n"
	"github.com/ecofinds/internal/service"

	"github.com/gin-gonic/gin"
)

// UserLoginRequest 登录请求，email / username / identifier 任选其一
type UserLoginRequest struct {
	Email      string `json:"email"`
	Username   string `json:"username"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r UserLoginRequest) identifier() string {
	for _, candidate := range []string{r.Identifier, r.Email, r.Username} {
		if value := strings.TrimSpace(candidate); value != "" {
			return value
		}
	}
	return ""
}

func authPayload(result *service.AuthResult) gin.H {
	return gin.H{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt.Format(time.RFC3339),
		"user":      result.User,
	}
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.UserAuthService.Register(input)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "success.registered"), authPayload(result))
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	identifier := req.identifier()
	result, err := h.UserAuthService.Login(service.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
	})
	if err != nil {
		h.recordLogin(c, identifier, 0, err)
		respondAuthError(c, err)
		return
	}
	h.recordLogin(c, identifier, result.User.ID, nil)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.login"), authPayload(result))
}

func (h *Handler) recordLogin(c *gin.Context, identifier string, userID uint, loginErr error) {
	status := constants.LoginLogStatusSuccess
	if loginErr != nil {
		status = constants.LoginLogStatusFailed
	}
	if err := h.UserLoginLogService.Record(service.RecordUserLoginInput{
		UserID:     userID,
		Identifier: identifier,
		Status:     status,
		FailReason: service.LoginFailReason(loginErr),
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		RequestID:  handlershared.RequestID(c),
	}); err != nil {
		requestLog(c).Warnw("user_login_log_record_failed", "error", err)
	}
}

// Me 当前登录用户
func (h *Handler) Me(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user})
}
