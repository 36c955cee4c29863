package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"
)

const sessionStateTTL = 15 * time.Minute

// SessionState 鉴权中间件每次请求需要的账号状态，登录、改密、吊销后回写
type SessionState struct {
	UserID        uint   `json:"uid"`
	Active        bool   `json:"active"`
	TokenVersion  uint64 `json:"ver"`
	RevokedBefore int64  `json:"revoked_before"` // Unix 秒，0 表示从未吊销
}

func sessionStateKey(userID uint) string {
	return "session:" + strconv.FormatUint(uint64(userID), 10)
}

// NewSessionState 由账号记录生成会话状态
func NewSessionState(user *models.User) *SessionState {
	if user == nil {
		return nil
	}
	state := &SessionState{
		UserID:       user.ID,
		Active:       strings.EqualFold(strings.TrimSpace(user.Status), constants.UserStatusActive),
		TokenVersion: user.TokenVersion,
	}
	if user.TokenInvalidBefore != nil {
		state.RevokedBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// Accepts token 版本一致且签发时间不早于吊销时间
func (s *SessionState) Accepts(tokenVersion uint64, issuedAt time.Time) bool {
	if s == nil || tokenVersion != s.TokenVersion {
		return false
	}
	if s.RevokedBefore <= 0 {
		return true
	}
	return !issuedAt.IsZero() && issuedAt.Unix() >= s.RevokedBefore
}

// LoadSessionState 读取会话状态，第二个返回值表示是否命中
func LoadSessionState(ctx context.Context, userID uint) (*SessionState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state SessionState
	hit, err := GetJSON(ctx, sessionStateKey(userID), &state)
	if err != nil || !hit {
		return nil, false, err
	}
	return &state, true, nil
}

// SaveSessionState 回写会话状态
func SaveSessionState(ctx context.Context, state *SessionState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, sessionStateKey(state.UserID), state, sessionStateTTL)
}
