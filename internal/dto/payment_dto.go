// FILE: internal/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAuthorizationRequest struct {
	BookingId uuid.UUID `json:"booking_id" validate:"required"`
	// CardToken is the tokenized card produced by the client SDK; raw card
	// data never reaches this service.
	CardToken string `json:"card_token" validate:"required"`
}

type CreateAuthorizationResponse struct {
	PaymentId     uuid.UUID `json:"payment_id"`
	OrderId       string    `json:"order_id"`
	TransactionId string    `json:"transaction_id,omitempty"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	RedirectUrl   string    `json:"redirect_url,omitempty"`
}

type RefundRequest struct {
	// Amount in major units. Zero or omitted means a full refund.
	Amount float64 `json:"amount" validate:"omitempty,gt=0"`
	Reason string  `json:"reason"`
}

type PaymentResponse struct {
	Id                 uuid.UUID  `json:"id"`
	BookingId          uuid.UUID  `json:"booking_id"`
	OrderId            string     `json:"order_id"`
	TransactionId      string     `json:"transaction_id,omitempty"`
	Amount             float64    `json:"amount"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	PaymentMethod      string     `json:"payment_method,omitempty"`
	CardBrand          string     `json:"card_brand,omitempty"`
	CardLast4          string     `json:"card_last4,omitempty"`
	CaptureDeadline    time.Time  `json:"capture_deadline"`
	AuthorizedAt       *time.Time `json:"authorized_at,omitempty"`
	CapturedAt         *time.Time `json:"captured_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	FailureReason      string     `json:"failure_reason,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	RefundId           string     `json:"refund_id,omitempty"`
	RefundReason       string     `json:"refund_reason,omitempty"`
	RefundAmount       float64    `json:"refund_amount,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	StatusMessage     string `json:"status_message"`
	PaymentType       string `json:"payment_type"`
	Bank              string `json:"bank"`
	MaskedCard        string `json:"masked_card"`
	RefundAmount      string `json:"refund_amount"`
	// Signature validation fields
	SignatureKey string `json:"signature_key"`
	StatusCode   string `json:"status_code"`
	GrossAmount  string `json:"gross_amount"`
}
