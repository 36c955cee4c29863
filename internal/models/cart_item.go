package models

import "time"

// CartItem 购物车行，同一用户同一商品仅一行
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"-"`                                               // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"-"`               // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product;index" json:"productId"` // 商品ID（弱引用）
	Quantity  int       `gorm:"not null" json:"quantity"`                                          // 数量
	AddedAt   time.Time `gorm:"not null" json:"addedAt"`                                           // 加入时间
	UpdatedAt time.Time `json:"updatedAt"`                                                         // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
