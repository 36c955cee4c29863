package models

import "time"

// PurchaseRecord 购买记录，追加写入后不可修改
type PurchaseRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`                     // 主键
	UserID      uint      `gorm:"not null;index" json:"-"`                  // 买家用户ID
	ProductID   uint      `gorm:"not null;index" json:"productId"`          // 商品ID（弱引用）
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`  // 购买时的商品标题
	Quantity    int       `gorm:"not null" json:"quantity"`                 // 数量
	Price       Money     `gorm:"type:decimal(20,2);not null" json:"price"` // 购买时的单价
	PurchasedAt time.Time `gorm:"not null;index" json:"purchasedAt"`        // 购买时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品（仅展示）
}

// TableName 指定表名
func (PurchaseRecord) TableName() string {
	return "purchase_records"
}

// Subtotal 小计 = 单价 x 数量
func (r PurchaseRecord) Subtotal() Money {
	return r.Price.MulInt(r.Quantity)
}
