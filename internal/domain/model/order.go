package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 注文確定後のスナップショット。明細とtotalは作成後不変。
type Order struct {
	ID                   string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Items                []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total                decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status               OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	ShippingAddress      string          `gorm:"type:text" json:"shipping_address"`
	DeliveryInstructions string          `gorm:"type:text" json:"delivery_instructions"`
	CreatedAt            time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// delivered / cancelled が終端
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		return false
	}
}
