package service

import (
	"errors"
	"strings"
	"time"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/repository"
)

const loginFailureWindow = 24 * time.Hour

// UserLoginLogService 用户登录日志服务
type UserLoginLogService struct {
	repo     repository.UserLoginLogRepository
	userRepo repository.UserRepository
}

// NewUserLoginLogService 创建用户登录日志服务
func NewUserLoginLogService(repo repository.UserLoginLogRepository, userRepo repository.UserRepository) *UserLoginLogService {
	return &UserLoginLogService{repo: repo, userRepo: userRepo}
}

// RecordUserLoginInput 登录日志记录输入
type RecordUserLoginInput struct {
	UserID     uint
	Identifier string
	Status     string
	FailReason string
	ClientIP   string
	UserAgent  string
	RequestID  string
}

// LoginLogPage 登录日志分页结果，RecentFailures 为最近 24 小时的失败次数
type LoginLogPage struct {
	Logs           []models.UserLoginLog `json:"logs"`
	RecentFailures int64                 `json:"recentFailures"`
	Pagination     Pagination            `json:"pagination"`
}

// Record 记录登录行为
func (s *UserLoginLogService) Record(input RecordUserLoginInput) error {
	if s == nil || s.repo == nil {
		return nil
	}

	identifier := strings.TrimSpace(input.Identifier)
	if normalized, err := normalizeEmail(identifier); err == nil {
		identifier = normalized
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != constants.LoginLogStatusSuccess {
		status = constants.LoginLogStatusFailed
	}

	failReason := strings.ToLower(strings.TrimSpace(input.FailReason))
	if status == constants.LoginLogStatusSuccess {
		failReason = ""
	} else if failReason == "" {
		failReason = constants.LoginLogFailReasonInternalError
	}

	return s.repo.Append(&models.UserLoginLog{
		UserID:     input.UserID,
		Identifier: identifier,
		Status:     status,
		FailReason: failReason,
		ClientIP:   strings.TrimSpace(input.ClientIP),
		UserAgent:  strings.TrimSpace(input.UserAgent),
		RequestID:  strings.TrimSpace(input.RequestID),
		CreatedAt:  time.Now(),
	})
}

// ListByUser 用户侧查询自己的登录日志
func (s *UserLoginLogService) ListByUser(userID uint, page, pageSize int) (*LoginLogPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	if s == nil || s.repo == nil || userID == 0 {
		return &LoginLogPage{Logs: []models.UserLoginLog{}, Pagination: buildPagination(page, pageSize, 0, 0)}, nil
	}
	query := repository.LoginLogQuery{
		UserID:      userID,
		Identifiers: s.accountIdentifiers(userID),
		Page:        page,
		PageSize:    pageSize,
	}
	logs, total, err := s.repo.ListForAccount(query)
	if err != nil {
		return nil, err
	}
	failures, err := s.repo.CountFailuresSince(query, time.Now().Add(-loginFailureWindow))
	if err != nil {
		return nil, err
	}
	return &LoginLogPage{
		Logs:           logs,
		RecentFailures: failures,
		Pagination:     buildPagination(page, pageSize, len(logs), total),
	}, nil
}

// accountIdentifiers 账号可用于登录的标识（用户名与邮箱）
func (s *UserLoginLogService) accountIdentifiers(userID uint) []string {
	if s.userRepo == nil {
		return nil
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return nil
	}
	return []string{user.Username, user.Email}
}

// LoginFailReason 将登录错误映射为日志失败原因
func LoginFailReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidEmail):
		return constants.LoginLogFailReasonInvalidCredentials
	case errors.Is(err, ErrUserDisabled):
		return constants.LoginLogFailReasonUserDisabled
	default:
		if _, ok := AsValidationError(err); ok {
			return constants.LoginLogFailReasonBadRequest
		}
		return constants.LoginLogFailReasonInternalError
	}
}
