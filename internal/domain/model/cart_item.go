package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// カートの明細
// priceは追加・更新時点の商品価格のスナップショット（商品価格の変更には自動では追従しない）。
// (cart_id, product_id) は一意：同一商品の追加は数量加算になる。
type CartItem struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    string          `gorm:"type:uuid;not null;uniqueIndex:uq_cart_product" json:"cart_id"`
	ProductID string          `gorm:"type:uuid;not null;uniqueIndex:uq_cart_product" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
