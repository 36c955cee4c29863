package models

import "time"

// ModerationAuditLog 审核操作审计日志
// 说明：记录审核员下架商品、授予角色等操作，按操作人与时间检索。
type ModerationAuditLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OperatorID uint      `gorm:"index;not null;default:0" json:"operatorId"`
	Action     string    `gorm:"type:varchar(60);index;not null" json:"action"`
	ProductID  *uint     `gorm:"index" json:"productId,omitempty"`
	TargetUser *uint     `gorm:"index" json:"targetUserId,omitempty"`
	RequestID  string    `gorm:"type:varchar(64);index;not null;default:''" json:"requestId"`
	Detail     string    `gorm:"type:text" json:"detail"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

// TableName 指定表名
func (ModerationAuditLog) TableName() string {
	return "moderation_audit_logs"
}
