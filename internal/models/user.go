package models

import "time"

// User 用户表
type User struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                                  // 主键
	Username           string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"` // 用户名
	Email              string     `gorm:"uniqueIndex;not null" json:"email,omitempty"`           // 邮箱
	PasswordHash       string     `gorm:"not null" json:"-"`                                     // 密码哈希（不返回给前端）
	FirstName          string     `gorm:"type:varchar(50);default:''" json:"firstName"`          // 名
	LastName           string     `gorm:"type:varchar(50);default:''" json:"lastName"`           // 姓
	Bio                string     `gorm:"type:varchar(500);default:''" json:"bio"`               // 简介
	Avatar             string     `gorm:"type:varchar(500);default:''" json:"avatar"`            // 头像地址
	Status             string     `gorm:"default:'active'" json:"status,omitempty"`              // 账号状态
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`                           // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`                                        // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty"`                                 // 最后登录时间
	CreatedAt          time.Time  `gorm:"index" json:"createdAt"`                                // 创建时间
	UpdatedAt          time.Time  `json:"updatedAt"`                                             // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// PublicProfile 对外展示的卖家信息，不包含邮箱与账号状态
func (u *User) PublicProfile() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
