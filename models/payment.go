package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment modes
const (
	PaymentModeCOD        = "COD"
	PaymentModeCreditCard = "CreditCard"
	PaymentModeDebitCard  = "DebitCard"
	PaymentModeUPI        = "UPI"
	PaymentModeNetBanking = "NetBanking"
)

// Payment statuses
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusPaid      = "Paid"
	PaymentStatusFailed    = "Failed"
	PaymentStatusRefunded  = "Refunded"
	PaymentStatusCancelled = "Cancelled"
)

// ValidPaymentMode reports whether mode is one of the supported payment modes.
func ValidPaymentMode(mode string) bool {
	switch mode {
	case PaymentModeCOD, PaymentModeCreditCard, PaymentModeDebitCard, PaymentModeUPI, PaymentModeNetBanking:
		return true
	}
	return false
}

// Payment records one payment attempt per order. OrderID is nullable
// because the payment row is created before the order it belongs to.
type Payment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	Amount      float64    `gorm:"not null" json:"amount"`
	PaymentMode string     `gorm:"not null" json:"payment_mode"`
	Status      string     `gorm:"default:'Pending'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
