package models

import (
	"time"

	"github.com/ecofinds/internal/constants"
)

// Product 商品表
type Product struct {
	ID           uint          `gorm:"primarykey" json:"id"`                                                    // 主键
	SellerID     uint          `gorm:"not null;index" json:"sellerId"`                                          // 卖家用户ID
	Title        string        `gorm:"type:varchar(100);not null" json:"title"`                                 // 标题
	Description  string        `gorm:"type:text;not null" json:"description"`                                   // 描述
	Category     string        `gorm:"type:varchar(40);not null;index" json:"category"`                         // 分类（固定枚举）
	Price        Money         `gorm:"type:decimal(20,2);not null;default:0" json:"price"`                      // 价格
	Condition    string        `gorm:"type:varchar(20);not null;default:'Good'" json:"condition"`               // 成色
	Availability string        `gorm:"type:varchar(20);not null;default:'Available';index" json:"availability"` // 售卖状态
	Images       ProductImages `gorm:"type:json" json:"images"`                                                 // 图片列表
	Tags         StringArray   `gorm:"type:json" json:"tags"`                                                   // 标签（小写去重）
	Location     Location      `gorm:"type:json" json:"location"`                                               // 所在地
	Views        int64         `gorm:"not null;default:0" json:"views"`                                         // 浏览次数
	IsActive     bool          `gorm:"not null;default:true;index" json:"isActive"`                             // 是否上架（软删除标记）
	CreatedAt    time.Time     `gorm:"index" json:"createdAt"`                                                  // 创建时间
	UpdatedAt    time.Time     `json:"updatedAt"`                                                               // 更新时间

	Seller *User `gorm:"foreignKey:SellerID" json:"seller,omitempty"` // 卖家
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsPurchasable 是否可购买：上架且可售
func (p *Product) IsPurchasable() bool {
	return p != nil && p.IsActive && p.Availability == constants.AvailabilityAvailable
}

// IsOwnedBy 是否为该用户发布
func (p *Product) IsOwnedBy(userID uint) bool {
	return p != nil && userID != 0 && p.SellerID == userID
}
