// FILE: pkg/gateway/midtrans.go
package gateway

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// MidtransGateway drives Midtrans Core API card transactions with manual
// capture: a charge of type "authorize" places the hold, capture converts
// it into a charge, cancel releases it.
type MidtransGateway struct {
	client    coreapi.Client
	serverKey string
}

func NewMidtransGateway(serverKey string, isProduction bool) *MidtransGateway {
	env := midtrans.Sandbox
	if isProduction {
		env = midtrans.Production
	}

	var client coreapi.Client
	client.New(serverKey, env)

	return &MidtransGateway{
		client:    client,
		serverKey: serverKey,
	}
}

func (g *MidtransGateway) CreateAuthorization(ctx context.Context, req *AuthorizationRequest) (*Authorization, error) {
	chargeReq := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeCreditCard,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.AmountMinor,
		},
		CreditCard: &coreapi.CreditCardDetails{
			TokenID:        req.CardToken,
			Authentication: true,
			Type:           "authorize",
		},
		CustomerDetails: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.ItemID,
				Price: req.AmountMinor,
				Qty:   1,
				Name:  req.ItemName,
			},
		},
		Metadata: req.Metadata,
	}

	resp, err := g.client.ChargeTransaction(chargeReq)
	if err != nil {
		return nil, fmt.Errorf("midtrans charge failed: %v", err.GetMessage())
	}

	return &Authorization{
		OrderID:       resp.OrderID,
		TransactionID: resp.TransactionID,
		RedirectURL:   resp.RedirectURL,
	}, nil
}

func (g *MidtransGateway) GetStatus(ctx context.Context, orderID string) (*TransactionStatus, error) {
	resp, err := g.client.CheckTransaction(orderID)
	if err != nil {
		return nil, fmt.Errorf("midtrans status check failed: %v", err.GetMessage())
	}
	return &TransactionStatus{
		OrderID:       resp.OrderID,
		TransactionID: resp.TransactionID,
		Status:        resp.TransactionStatus,
		FraudStatus:   resp.FraudStatus,
		StatusMessage: resp.StatusMessage,
		CardBrand:     resp.Bank,
		MaskedCard:    resp.MaskedCard,
	}, nil
}

func (g *MidtransGateway) Capture(ctx context.Context, transactionID string, amountMinor int64) (*TransactionStatus, error) {
	resp, err := g.client.CaptureTransaction(&coreapi.CaptureReq{
		TransactionID: transactionID,
		GrossAmt:      float64(amountMinor),
	})
	if err != nil {
		return nil, fmt.Errorf("midtrans capture failed: %v", err.GetMessage())
	}
	return &TransactionStatus{
		OrderID:       resp.OrderID,
		TransactionID: resp.TransactionID,
		Status:        resp.TransactionStatus,
		FraudStatus:   resp.FraudStatus,
		StatusMessage: resp.StatusMessage,
		CardBrand:     resp.Bank,
		MaskedCard:    resp.MaskedCard,
	}, nil
}

func (g *MidtransGateway) Cancel(ctx context.Context, orderID string) (*TransactionStatus, error) {
	resp, err := g.client.CancelTransaction(orderID)
	if err != nil {
		return nil, fmt.Errorf("midtrans cancel failed: %v", err.GetMessage())
	}
	return &TransactionStatus{
		OrderID:       resp.OrderID,
		TransactionID: resp.TransactionID,
		Status:        resp.TransactionStatus,
		StatusMessage: resp.StatusMessage,
	}, nil
}

func (g *MidtransGateway) Refund(ctx context.Context, orderID string, amountMinor int64, reason string) (*RefundResult, error) {
	resp, err := g.client.RefundTransaction(orderID, &coreapi.RefundReq{
		Amount: amountMinor,
		Reason: reason,
	})
	if err != nil {
		return nil, fmt.Errorf("midtrans refund failed: %v", err.GetMessage())
	}
	return &RefundResult{
		RefundID:      resp.RefundKey,
		TransactionID: resp.TransactionID,
		Status:        resp.TransactionStatus,
	}, nil
}

// VerifySignature checks the webhook authenticity signature:
// SHA512(order_id + status_code + gross_amount + server_key).
func VerifySignature(serverKey, orderID, statusCode, grossAmount, signatureKey string) bool {
	input := orderID + statusCode + grossAmount + serverKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
	return subtle.ConstantTimeCompare([]byte(signatureKey), []byte(expected)) == 1
}
