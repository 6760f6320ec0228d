package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Refund/exchange request types and statuses
const (
	RefundTypeRefund   = "Refund"
	RefundTypeExchange = "Exchange"

	RefundStatusPending   = "Pending"
	RefundStatusApproved  = "Approved"
	RefundStatusPicked    = "Picked"
	RefundStatusRejected  = "Rejected"
	RefundStatusCompleted = "Completed"
)

// RefundExchange is a refund or exchange request raised against one order
// item. Cancelling a paid order creates one Refund record per item; they
// are processed by a separate fulfillment pipeline.
type RefundExchange struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	ItemID       uuid.UUID `gorm:"type:uuid;index;not null" json:"item_id"`
	PaymentID    uuid.UUID `gorm:"type:uuid;not null" json:"payment_id"`
	RefundAmount float64   `gorm:"not null" json:"refund_amount"`
	Type         string    `gorm:"not null" json:"type"`
	Status       string    `gorm:"default:'Pending'" json:"status"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *RefundExchange) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
