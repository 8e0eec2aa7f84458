package mapper

import (
	"huntstay-be/internal/entity"
	"huntstay-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:                 p.Id,
		BookingId:          p.BookingId,
		OrderId:            p.OrderId,
		TransactionId:      p.TransactionId,
		Amount:             p.Amount,
		Currency:           p.Currency,
		Status:             entity.PaymentStatus(p.Status),
		PaymentMethod:      p.PaymentMethod,
		CardBrand:          p.CardBrand,
		CardLast4:          p.CardLast4,
		CaptureDeadline:    p.CaptureDeadline,
		AuthorizedAt:       p.AuthorizedAt,
		CapturedAt:         p.CapturedAt,
		CancelledAt:        p.CancelledAt,
		CompletedAt:        p.CompletedAt,
		FailureReason:      p.FailureReason,
		CancellationReason: p.CancellationReason,
		RefundId:           p.RefundId,
		RefundReason:       p.RefundReason,
		RefundAmount:       p.RefundAmount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:                 p.Id,
		BookingId:          p.BookingId,
		OrderId:            p.OrderId,
		TransactionId:      p.TransactionId,
		Amount:             p.Amount,
		Currency:           p.Currency,
		Status:             string(p.Status),
		PaymentMethod:      p.PaymentMethod,
		CardBrand:          p.CardBrand,
		CardLast4:          p.CardLast4,
		CaptureDeadline:    p.CaptureDeadline,
		AuthorizedAt:       p.AuthorizedAt,
		CapturedAt:         p.CapturedAt,
		CancelledAt:        p.CancelledAt,
		CompletedAt:        p.CompletedAt,
		FailureReason:      p.FailureReason,
		CancellationReason: p.CancellationReason,
		RefundId:           p.RefundId,
		RefundReason:       p.RefundReason,
		RefundAmount:       p.RefundAmount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
