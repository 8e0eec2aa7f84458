// FILE: internal/entity/payment_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusAuthorized        PaymentStatus = "authorized"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusCancelled         PaymentStatus = "cancelled"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

// Live reports whether the payment still represents an open authorization
// attempt. A booking may hold at most one live payment.
func (s PaymentStatus) Live() bool {
	return s == PaymentStatusPending || s == PaymentStatusAuthorized
}

// Payment tracks one authorization attempt against the external processor.
// OrderId is the value we hand to the processor as its order reference
// (the payment's own UUID), TransactionId is the processor's intent id.
// Amount is stored in major units; minor units exist only on the wire.
type Payment struct {
	Id                 uuid.UUID
	BookingId          uuid.UUID
	OrderId            string
	TransactionId      string
	Amount             float64
	Currency           string
	Status             PaymentStatus
	PaymentMethod      string
	CardBrand          string
	CardLast4          string
	CaptureDeadline    time.Time
	AuthorizedAt       *time.Time
	CapturedAt         *time.Time
	CancelledAt        *time.Time
	CompletedAt        *time.Time
	FailureReason      string
	CancellationReason string
	RefundId           string
	RefundReason       string
	RefundAmount       float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Charged reports whether money has actually moved for this payment.
func (p *Payment) Charged() bool {
	switch p.Status {
	case PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusPartiallyRefunded:
		return true
	}
	return false
}
