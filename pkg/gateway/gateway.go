// FILE: pkg/gateway/gateway.go
package gateway

import "context"

// Transaction statuses as reported by the processor. These are the raw
// processor vocabulary; the payment service maps them onto its own states.
const (
	StatusPending       = "pending"
	StatusAuthorize     = "authorize"
	StatusCapture       = "capture"
	StatusSettlement    = "settlement"
	StatusDeny          = "deny"
	StatusCancel        = "cancel"
	StatusExpire        = "expire"
	StatusRefund        = "refund"
	StatusPartialRefund = "partial_refund"
)

// AuthorizationRequest describes a hold-only (manual capture) charge.
// AmountMinor is in minor units (cents); adapters convert as their
// processor requires. Metadata travels opaquely for audit/dispute purposes.
type AuthorizationRequest struct {
	OrderID       string
	AmountMinor   int64
	Currency      string
	CardToken     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ItemID        string
	ItemName      string
	Quantity      int
	Metadata      map[string]interface{}
}

// Authorization is the client-facing handle for a created hold.
type Authorization struct {
	OrderID       string
	TransactionID string
	RedirectURL   string
}

// TransactionStatus is the processor's live view of an intent.
type TransactionStatus struct {
	OrderID       string
	TransactionID string
	Status        string
	FraudStatus   string
	StatusMessage string
	CardBrand     string
	MaskedCard    string
}

type RefundResult struct {
	RefundID      string
	TransactionID string
	Status        string
}

// PaymentGateway abstracts the external payment processor. All calls are
// fallible, at-least-once side effects; callers must treat local state and
// processor state as reconciled only through GetStatus or webhook events.
type PaymentGateway interface {
	CreateAuthorization(ctx context.Context, req *AuthorizationRequest) (*Authorization, error)
	GetStatus(ctx context.Context, orderID string) (*TransactionStatus, error)
	Capture(ctx context.Context, transactionID string, amountMinor int64) (*TransactionStatus, error)
	Cancel(ctx context.Context, orderID string) (*TransactionStatus, error)
	Refund(ctx context.Context, orderID string, amountMinor int64, reason string) (*RefundResult, error)
}
