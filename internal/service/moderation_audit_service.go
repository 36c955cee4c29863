package service

import (
	"strings"
	"time"

	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/repository"
)

// ModerationAuditRecordInput 审核审计记录输入
type ModerationAuditRecordInput struct {
	OperatorID uint
	Action     string
	ProductID  *uint
	TargetUser *uint
	RequestID  string
	Detail     string
}

// ModerationAuditPage 审核审计日志分页结果
type ModerationAuditPage struct {
	Logs       []models.ModerationAuditLog `json:"logs"`
	Pagination Pagination                  `json:"pagination"`
}

// ModerationAuditService 审核审计服务
type ModerationAuditService struct {
	repo repository.ModerationAuditLogRepository
}

// NewModerationAuditService 创建审核审计服务
func NewModerationAuditService(repo repository.ModerationAuditLogRepository) *ModerationAuditService {
	return &ModerationAuditService{repo: repo}
}

// Record 记录审核操作，缺少动作时忽略
func (s *ModerationAuditService) Record(input ModerationAuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	action := strings.TrimSpace(input.Action)
	if action == "" {
		return nil
	}
	return s.repo.Create(&models.ModerationAuditLog{
		OperatorID: input.OperatorID,
		Action:     action,
		ProductID:  input.ProductID,
		TargetUser: input.TargetUser,
		RequestID:  strings.TrimSpace(input.RequestID),
		Detail:     strings.TrimSpace(input.Detail),
		CreatedAt:  time.Now(),
	})
}

// List 查询审核审计日志
func (s *ModerationAuditService) List(filter repository.ModerationAuditLogListFilter) (*ModerationAuditPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	filter.Action = strings.TrimSpace(filter.Action)
	if s == nil || s.repo == nil {
		return &ModerationAuditPage{Logs: []models.ModerationAuditLog{}, Pagination: buildPagination(filter.Page, filter.PageSize, 0, 0)}, nil
	}
	logs, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	return &ModerationAuditPage{
		Logs:       logs,
		Pagination: buildPagination(filter.Page, filter.PageSize, len(logs), total),
	}, nil
}
