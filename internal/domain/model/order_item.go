package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 注文明細。priceは注文確定時点の商品価格（カート追加時の価格ではない）。
// totalはprice×quantityを冗長に保存する（後から商品価格が変わっても集計が崩れないように）。
type OrderItem struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID string          `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
