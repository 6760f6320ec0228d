package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order item status constants. Items carry their own state so partial
// fulfillment can be tracked per product line.
const (
	ItemStatusPending            = "Pending"
	ItemStatusProcessing         = "Processing"
	ItemStatusPartiallyShipped   = "Partially Shipped"
	ItemStatusShipped            = "Shipped"
	ItemStatusPartiallyDelivered = "Partially Delivered"
	ItemStatusDelivered          = "Delivered"
	ItemStatusCancelled          = "Cancelled"
	ItemStatusReturnInitiated    = "Return Initiated"
	ItemStatusRefunded           = "Refunded"
	ItemStatusExchanged          = "Exchanged"
)

// OrderItem is one product line bound to exactly one order. Price is the
// unit price snapshotted at purchase time and never changes afterwards.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Quantity  int       `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Status    string    `gorm:"default:'Pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
