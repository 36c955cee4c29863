package models

import "time"

// UserLoginLog 用户登录日志
// 说明：记录每次登录尝试的结果，供用户在个人中心查看自己的登录记录。
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                               // 主键
	UserID     uint      `gorm:"index" json:"-"`                                     // 用户ID（失败时可为0）
	Identifier string    `gorm:"type:varchar(255);index;not null" json:"identifier"` // 登录时提交的邮箱或用户名
	Status     string    `gorm:"type:varchar(20);index;not null" json:"status"`      // 登录结果（success/failed）
	FailReason string    `gorm:"type:varchar(40);index" json:"failReason"`           // 失败原因枚举
	ClientIP   string    `gorm:"type:varchar(64);index" json:"clientIp"`             // 客户端IP
	UserAgent  string    `gorm:"type:text" json:"userAgent"`                         // 客户端UA
	RequestID  string    `gorm:"type:varchar(64);index" json:"requestId"`            // 请求追踪ID
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`                             // 记录时间
}

// TableName 指定表名
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
