package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status constants
const (
	OrderStatusPending           = "pending"
	OrderStatusProcessing        = "processing"
	OrderStatusConfirmed         = "confirmed"
	OrderStatusShipped           = "shipped"
	OrderStatusDelivered         = "delivered"
	OrderStatusCancelled         = "cancelled"
	OrderStatusPartiallyRefunded = "partially_refunded"
	OrderStatusRefunded          = "refunded"
)

// CancellableOrderStatuses lists the order states a cancellation may start
// from. Once an order is shipped or terminal it stays out of this set.
var CancellableOrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusConfirmed,
}

// OrderCancellable reports whether an order in the given status may still
// be cancelled.
func OrderCancellable(status string) bool {
	for _, s := range CancellableOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// PriceBreakdown is the fee schedule snapshot stored with each order.
// It is computed once at checkout and never recomputed.
type PriceBreakdown struct {
	OrderTotal   float64 `json:"order_total"`
	ProductPrice float64 `json:"product_price"`
	DeliveryFee  float64 `json:"delivery_fee"`
	PlatformFee  float64 `json:"platform_fee"`
	Taxes        float64 `json:"taxes"`
	Discount     float64 `json:"discount"`
}

// ShippingAddress is snapshotted onto the order at checkout
type ShippingAddress struct {
	FullName   string `gorm:"not null" json:"full_name"`
	Phone      string `gorm:"not null" json:"phone"`
	Address    string `gorm:"not null" json:"address"`
	City       string `gorm:"not null" json:"city"`
	State      string `gorm:"not null" json:"state"`
	PostalCode string `gorm:"not null" json:"postal_code"`
	Country    string `gorm:"not null" json:"country"`
}

// Order is the aggregate root of a purchase. It references its Payment;
// the Payment also back-references the order, so at checkout the payment
// is created first and its order id backfilled inside the transaction.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Subtotal        float64         `json:"subtotal"`
	PayableAmount   float64         `gorm:"not null" json:"payable_amount"`
	PriceBreakdown  PriceBreakdown  `gorm:"embedded;embeddedPrefix:breakdown_" json:"price_breakdown"`
	Status          string          `gorm:"default:'pending'" json:"status"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentID       uuid.UUID       `gorm:"type:uuid" json:"payment_id"`
	Payment         Payment         `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
