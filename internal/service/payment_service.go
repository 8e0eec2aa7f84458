// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"huntstay-be/internal/dto"
	"huntstay-be/internal/entity"
	"huntstay-be/internal/pkg/apperror"
	"huntstay-be/internal/pkg/logger"
	"huntstay-be/internal/repository/specification"
	"huntstay-be/internal/repository/unitofwork"
	"huntstay-be/pkg/events"
	"huntstay-be/pkg/gateway"
	pktNats "huntstay-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentSettings struct {
	Currency             string
	CaptureWindowDays    int
	ProviderResponseDays int
	ServerKey            string
}

type IPaymentService interface {
	CreateAuthorization(ctx context.Context, actorId uuid.UUID, role string, req *dto.CreateAuthorizationRequest) (*dto.CreateAuthorizationResponse, error)
	ConfirmAuthorization(ctx context.Context, actorId uuid.UUID, role string, paymentId uuid.UUID) (*dto.PaymentResponse, error)
	Capture(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID) (*dto.PaymentResponse, error)
	CancelAuthorization(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, reason string) (*dto.PaymentResponse, error)
	Refund(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, req *dto.RefundRequest) (*dto.PaymentResponse, error)
	GetByBooking(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID) (*dto.PaymentResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory       unitofwork.RepositoryFactory
	gateway          gateway.PaymentGateway
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	settings         PaymentSettings
	log              logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	paymentGateway gateway.PaymentGateway,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	settings PaymentSettings,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:       uowFactory,
		gateway:          paymentGateway,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		settings:         settings,
		log:              log,
	}
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
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
		FailureReason:      p.FailureReason,
		CancellationReason: p.CancellationReason,
		RefundId:           p.RefundId,
		RefundReason:       p.RefundReason,
		RefundAmount:       p.RefundAmount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func last4(masked string) string {
	if len(masked) >= 4 {
		return masked[len(masked)-4:]
	}
	return masked
}

func (s *paymentService) CreateAuthorization(ctx context.Context, actorId uuid.UUID, role string, req *dto.CreateAuthorizationRequest) (*dto.CreateAuthorizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindByID(ctx, req.BookingId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if booking == nil {
		return nil, apperror.NotFound("BOOKING_NOT_FOUND", "booking not found")
	}
	if role != string(entity.RoleAdmin) && booking.GuestId != actorId {
		return nil, apperror.Forbidden("only the booking guest can pay for it")
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, apperror.Conflict("INVALID_STATUS", "payment can only be authorized for a pending booking")
	}

	// One live payment per booking. A matching one is returned as-is; a
	// stale one (booking was repriced) is released and replaced.
	live, err := uow.PaymentRepository().FindLiveByBooking(ctx, booking.Id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if live != nil {
		if live.Amount == booking.TotalPrice {
			return &dto.CreateAuthorizationResponse{
				PaymentId:     live.Id,
				OrderId:       live.OrderId,
				TransactionId: live.TransactionId,
				Status:        string(live.Status),
				Amount:        live.Amount,
				Currency:      live.Currency,
			}, nil
		}

		if live.Status == entity.PaymentStatusAuthorized {
			if _, err := s.gateway.Cancel(ctx, live.OrderId); err != nil {
				return nil, apperror.External("PAYMENT_GATEWAY_ERROR", "failed to release the stale authorization", err)
			}
		}
		if err := uow.PaymentRepository().Delete(ctx, live.Id); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	now := time.Now()
	paymentId := uuid.New()
	payment := &entity.Payment{
		Id:              paymentId,
		BookingId:       booking.Id,
		OrderId:         paymentId.String(),
		Amount:          booking.TotalPrice,
		Currency:        s.settings.Currency,
		Status:          entity.PaymentStatusPending,
		PaymentMethod:   "card",
		CaptureDeadline: now.AddDate(0, 0, s.settings.CaptureWindowDays),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	auth, err := s.gateway.CreateAuthorization(ctx, &gateway.AuthorizationRequest{
		OrderID:       payment.OrderId,
		AmountMinor:   MinorUnits(payment.Amount),
		Currency:      payment.Currency,
		CardToken:     req.CardToken,
		CustomerName:  booking.LeadHunterName,
		CustomerEmail: booking.LeadHunterEmail,
		CustomerPhone: booking.LeadHunterPhone,
		ItemID:        booking.PackageId,
		ItemName:      booking.PackageName,
		Quantity:      booking.GuestCount,
		Metadata: map[string]interface{}{
			"booking_id":  booking.Id.String(),
			"property_id": booking.PropertyId.String(),
		},
	})
	if err != nil {
		// Rollback leaves no local trace; the guest may simply retry.
		return nil, apperror.External("PAYMENT_GATEWAY_ERROR", "the payment processor rejected the authorization", err)
	}
	payment.TransactionId = auth.TransactionID

	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		// Processor hold exists but the row does not; the webhook for this
		// order id finds nothing and the hold expires unclaimed.
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("payment", "authorization created", map[string]interface{}{
		"payment_id": payment.Id,
		"booking_id": booking.Id,
		"order_id":   payment.OrderId,
		"amount":     payment.Amount,
	})

	return &dto.CreateAuthorizationResponse{
		PaymentId:     payment.Id,
		OrderId:       payment.OrderId,
		TransactionId: payment.TransactionId,
		Status:        string(payment.Status),
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		RedirectUrl:   auth.RedirectURL,
	}, nil
}

// ConfirmAuthorization polls the processor and promotes a PENDING payment to
// AUTHORIZED. It is idempotent; the webhook usually wins the race.
func (s *paymentService) ConfirmAuthorization(ctx context.Context, actorId uuid.UUID, role string, paymentId uuid.UUID) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	payment, err := uow.PaymentRepository().FindByID(ctx, paymentId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if payment == nil {
		return nil, apperror.NotFound("PAYMENT_NOT_FOUND", "payment not found")
	}

	booking, err := uow.BookingRepository().FindByID(ctx, payment.BookingId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if booking == nil {
		return nil, apperror.NotFound("BOOKING_NOT_FOUND", "booking not found")
	}
	if role != string(entity.RoleAdmin) && booking.GuestId != actorId {
		return nil, apperror.Forbidden("you do not have access to this payment")
	}

	if payment.Status != entity.PaymentStatusPending {
		return toPaymentResponse(payment), nil
	}

	status, err := s.gateway.GetStatus(ctx, payment.OrderId)
	if err != nil {
		return nil, apperror.External("PAYMENT_GATEWAY_ERROR", "failed to query the payment processor", err)
	}

	switch status.Status {
	case gateway.StatusAuthorize:
		now := time.Now()
		payment.Status = entity.PaymentStatusAuthorized
		payment.AuthorizedAt = &now
		payment.TransactionId = status.TransactionID
		payment.CardBrand = status.CardBrand
		payment.CardLast4 = last4(status.MaskedCard)
		payment.UpdatedAt = now
		booking.PaymentStatus = entity.PaymentStatusAuthorized
		// The outfitter's decision window opens when the hold lands, not
		// when the booking was drafted.
		responseDeadline := now.AddDate(0, 0, s.settings.ProviderResponseDays)
		booking.ProviderResponseDeadline = &responseDeadline
		booking.UpdatedAt = now

		if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
			return nil, apperror.Internal(err)
		}
		if err := uow.BookingRepository().Update(ctx, booking); err != nil {
			return nil, apperror.Internal(err)
		}
		if err := uow.Commit(); err != nil {
			return nil, apperror.Internal(err)
		}
	case gateway.StatusDeny:
		now := time.Now()
		payment.Status = entity.PaymentStatusFailed
		payment.FailureReason = status.StatusMessage
		payment.UpdatedAt = now
		booking.PaymentStatus = entity.PaymentStatusFailed
		booking.UpdatedAt = now

		if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
			return nil, apperror.Internal(err)
		}
		if err := uow.BookingRepository().Update(ctx, booking); err != nil {
			return nil, apperror.Internal(err)
		}
		if err := uow.Commit(); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	return toPaymentResponse(payment), nil
}

// Capture charges the authorized hold and confirms the booking. Called when
// the outfitter accepts the booking request.
func (s *paymentService) Capture(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindByID(ctx, bookingId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if booking == nil {
		return nil, apperror.NotFound("BOOKING_NOT_FOUND", "booking not found")
	}
	if role != string(entity.RoleAdmin) && booking.PropertySnapshot.ProviderId != actorId {
		return nil, apperror.Forbidden("only the property owner or an admin can accept a booking")
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, apperror.Conflict("INVALID_STATUS", "only pending bookings can be accepted")
	}

	payment, err := uow.PaymentRepository().FindAuthorizedByBooking(ctx, bookingId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if payment == nil {
		return nil, apperror.Conflict("PAYMENT_NOT_AUTHORIZED", "no authorized payment exists for this booking")
	}

	now := time.Now()
	if now.After(payment.CaptureDeadline) {
		return nil, apperror.Conflict("AUTHORIZATION_EXPIRED", "the payment authorization has expired; ask the guest to pay again")
	}

	if _, err := s.gateway.Capture(ctx, payment.TransactionId, MinorUnits(payment.Amount)); err != nil {
		return nil, apperror.External("PAYMENT_GATEWAY_ERROR", "failed to capture the payment", err)
	}

	payment.Status = entity.PaymentStatusPaid
	payment.CapturedAt = &now
	payment.CompletedAt = &now
	payment.UpdatedAt = now

	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentStatus = entity.PaymentStatusPaid
	booking.ConfirmedAt = &now
	booking.UpdatedAt = now

	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("payment", "payment captured", map[string]interface{}{
		"payment_id": payment.Id,
		"booking_id": bookingId,
		"amount":     payment.Amount,
	})

	s.notify(ctx, &dto.BookingNotificationMessage{
		Kind:         "booking_confirmed",
		Email:        booking.LeadHunterEmail,
		PropertyName: booking.PropertySnapshot.PropertyName,
		CheckInDate:  booking.CheckInDate.Format(dateLayout),
		CheckOutDate: booking.CheckOutDate.Format(dateLayout),
	})
	s.emitEvent(ctx, "PAYMENT_CAPTURED", payment)

	return toPaymentResponse(payment), nil
}

// CancelAuthorization releases an uncaptured hold. The guest is never charged
// on this path regardless of who triggers it.
func (s *paymentService) CancelAuthorization(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, reason string) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindByID(ctx, bookingId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if booking == nil {
		return nil, apperror.NotFound("BOOKING_NOT_FOUND", "booking not found")
	}
	if role != string(entity.RoleAdmin) && booking.GuestId != actorId && booking.PropertySnapshot.ProviderId != actorId {
		return nil, apperror.Forbidden("you do not have access to this booking")
	}

	payment, err := uow.PaymentRepository().FindLiveByBooking(ctx, bookingId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if payment == nil {
		return nil, apperror.NotFound("PAYMENT_NOT_FOUND", "no open payment exists for this booking")
	}

	if _, err := s.gateway.Cancel(ctx, payment.OrderId); err != nil {
		if payment.Status == entity.PaymentStatusAuthorized {
			return nil, apperror.External("PAYMENT_GATEWAY_ERROR", "failed to release the authorization", err)
		}
		// A PENDING attempt may have nothing to cancel at the processor.
		s.log.Warn("payment", "cancel of pending payment failed at the processor", map[string]interface{}{
			"payment_id": payment.Id,
			"error":      err.Error(),
		})
	}

	now := time.Now()
	payment.Status = entity.PaymentStatusCancelled
	payment.CancellationReason = reason
	payment.CancelledAt = &now
	payment.UpdatedAt = now
	booking.PaymentStatus = entity.PaymentStatusCancelled
	booking.UpdatedAt = now

	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("payment", "authorization cancelled", map[string]interface{}{
		"payment_id": payment.Id,
		"booking_id": bookingId,
	})
	s.emitEvent(ctx, "PAYMENT_CANCELLED", payment)

	return toPaymentResponse(payment), nil
}

func (s *paymentService) Refund(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, req *dto.RefundRequest) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindByID(ctx, bookingId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if booking == nil {
		return nil, apperror.NotFound("BOOKING_NOT_FOUND", "booking not found")
	}
	if role != string(entity.RoleAdmin) && booking.GuestId != actorId && booking.PropertySnapshot.ProviderId != actorId {
		return nil, apperror.Forbidden("only the booking guest, the property owner, or an admin can issue refunds")
	}
	// A stay that already happened is settled business; only an admin can
	// override that.
	if booking.Status == entity.BookingStatusCompleted && role != string(entity.RoleAdmin) {
		return nil, apperror.Forbidden("refunds on completed bookings require an admin")
	}

	payments, err := uow.PaymentRepository().FindAll(ctx,
		specification.Filter("booking_id", bookingId),
		specification.StatusIn{Statuses: []string{
			string(entity.PaymentStatusPaid),
			string(entity.PaymentStatusPartiallyRefunded),
		}},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(payments) == 0 {
		return nil, apperror.Conflict("PAYMENT_NOT_CAPTURED", "no captured payment exists for this booking")
	}
	payment := payments[0]

	remaining := decimal.NewFromFloat(payment.Amount).Sub(decimal.NewFromFloat(payment.RefundAmount))
	amount := decimal.NewFromFloat(req.Amount)
	if amount.IsZero() {
		amount = remaining
	}
	if amount.GreaterThan(remaining) {
		return nil, apperror.Validation("REFUND_EXCEEDS_CAPTURED",
			fmt.Sprintf("refund of %s exceeds the refundable %s", amount.StringFixed(2), remaining.StringFixed(2)))
	}
	if !amount.IsPositive() {
		return nil, apperror.Validation("INVALID_REFUND_AMOUNT", "refund amount must be positive")
	}

	result, err := s.gateway.Refund(ctx, payment.OrderId, MinorUnits(amount.InexactFloat64()), req.Reason)
	if err != nil {
		return nil, apperror.External("PAYMENT_GATEWAY_ERROR", "the payment processor rejected the refund", err)
	}

	now := time.Now()
	payment.RefundId = result.RefundID
	payment.RefundReason = req.Reason
	payment.RefundAmount = decimal.NewFromFloat(payment.RefundAmount).Add(amount).InexactFloat64()
	fullyRefunded := amount.Equal(remaining)
	if fullyRefunded {
		payment.Status = entity.PaymentStatusRefunded
	} else {
		payment.Status = entity.PaymentStatusPartiallyRefunded
	}
	payment.UpdatedAt = now

	booking.PaymentStatus = payment.Status
	if fullyRefunded && booking.CanTransitionTo(entity.BookingStatusRefunded) {
		booking.Status = entity.BookingStatusRefunded
	}
	booking.UpdatedAt = now

	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("payment", "refund issued", map[string]interface{}{
		"payment_id":    payment.Id,
		"booking_id":    bookingId,
		"refund_amount": amount.InexactFloat64(),
		"full":          fullyRefunded,
	})

	s.notify(ctx, &dto.BookingNotificationMessage{
		Kind:         "payment_refunded",
		Email:        booking.LeadHunterEmail,
		PropertyName: booking.PropertySnapshot.PropertyName,
		Amount:       fmt.Sprintf("%s %s", amount.StringFixed(2), payment.Currency),
	})
	s.emitEvent(ctx, "PAYMENT_REFUNDED", payment)

	return toPaymentResponse(payment), nil
}

// HandleNotification reconciles processor webhooks against local state.
// Every branch is idempotent: replays and out-of-order deliveries resolve to
// no-ops once local state already reflects the reported status.
func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if !gateway.VerifySignature(s.settings.ServerKey, req.OrderId, req.StatusCode, req.GrossAmount, req.SignatureKey) {
		s.log.Warn("webhook", "invalid signature", map[string]interface{}{"order_id": req.OrderId})
		return apperror.Forbidden("invalid webhook signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	payment, err := uow.PaymentRepository().FindByOrderID(ctx, req.OrderId)
	if err != nil {
		return apperror.Internal(err)
	}
	if payment == nil {
		// The processor knows an order we never persisted (the authorization
		// transaction rolled back after the processor call). Acknowledge and
		// let the unclaimed hold expire.
		s.log.Warn("webhook", "notification for unknown order", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	}

	booking, err := uow.BookingRepository().FindByID(ctx, payment.BookingId)
	if err != nil {
		return apperror.Internal(err)
	}
	if booking == nil {
		return apperror.Internal(fmt.Errorf("payment %s references missing booking %s", payment.Id, payment.BookingId))
	}

	now := time.Now()
	changed := false
	confirmedBooking := false

	switch req.TransactionStatus {
	case gateway.StatusAuthorize:
		if payment.Status == entity.PaymentStatusPending {
			payment.Status = entity.PaymentStatusAuthorized
			payment.AuthorizedAt = &now
			if req.TransactionId != "" {
				payment.TransactionId = req.TransactionId
			}
			if req.MaskedCard != "" {
				payment.CardLast4 = last4(req.MaskedCard)
			}
			booking.PaymentStatus = entity.PaymentStatusAuthorized
			responseDeadline := now.AddDate(0, 0, s.settings.ProviderResponseDays)
			booking.ProviderResponseDeadline = &responseDeadline
			changed = true
		}

	case gateway.StatusCapture, gateway.StatusSettlement:
		// Settlement only lands on a held authorization; a capture event for
		// a payment still pending means the authorize event has not been
		// reconciled yet, and the processor will redeliver.
		if payment.Status == entity.PaymentStatusAuthorized {
			payment.Status = entity.PaymentStatusPaid
			payment.CapturedAt = &now
			payment.CompletedAt = &now
			booking.PaymentStatus = entity.PaymentStatusPaid
			if booking.Status == entity.BookingStatusPending {
				booking.Status = entity.BookingStatusConfirmed
				booking.ConfirmedAt = &now
				confirmedBooking = true
			}
			changed = true
		}

	case gateway.StatusDeny:
		if !payment.Charged() && payment.Status != entity.PaymentStatusFailed {
			payment.Status = entity.PaymentStatusFailed
			payment.FailureReason = req.StatusMessage
			booking.PaymentStatus = entity.PaymentStatusFailed
			changed = true
		}

	case gateway.StatusCancel, gateway.StatusExpire:
		if !payment.Charged() && payment.Status != entity.PaymentStatusCancelled {
			payment.Status = entity.PaymentStatusCancelled
			payment.CancelledAt = &now
			payment.CancellationReason = req.TransactionStatus
			booking.PaymentStatus = entity.PaymentStatusCancelled
			changed = true
		}

	case gateway.StatusRefund, gateway.StatusPartialRefund:
		refunded, parseErr := strconv.ParseFloat(req.RefundAmount, 64)
		if parseErr != nil || refunded <= 0 {
			refunded = payment.Amount
		}
		target := entity.PaymentStatusPartiallyRefunded
		if req.TransactionStatus == gateway.StatusRefund || refunded >= payment.Amount {
			target = entity.PaymentStatusRefunded
		}
		if payment.Status != target {
			payment.Status = target
			if refunded > payment.RefundAmount {
				payment.RefundAmount = refunded
			}
			booking.PaymentStatus = target
			if target == entity.PaymentStatusRefunded && booking.CanTransitionTo(entity.BookingStatusRefunded) {
				booking.Status = entity.BookingStatusRefunded
			}
			changed = true
		}

	default:
		// "pending" and anything unrecognized: nothing to reconcile.
	}

	if !changed {
		s.log.Info("webhook", "notification already reconciled", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	}

	payment.UpdatedAt = now
	booking.UpdatedAt = now

	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return apperror.Internal(err)
	}
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}

	s.log.Info("webhook", "payment reconciled", map[string]interface{}{
		"order_id":       req.OrderId,
		"gateway_status": req.TransactionStatus,
		"payment_status": payment.Status,
	})

	if confirmedBooking {
		s.notify(ctx, &dto.BookingNotificationMessage{
			Kind:         "booking_confirmed",
			Email:        booking.LeadHunterEmail,
			PropertyName: booking.PropertySnapshot.PropertyName,
			CheckInDate:  booking.CheckInDate.Format(dateLayout),
			CheckOutDate: booking.CheckOutDate.Format(dateLayout),
		})
	}
	s.emitEvent(ctx, "PAYMENT_RECONCILED", payment)

	return nil
}

func (s *paymentService) GetByBooking(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindByID(ctx, bookingId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if booking == nil {
		return nil, apperror.NotFound("BOOKING_NOT_FOUND", "booking not found")
	}
	if !canAccessBooking(booking, actorId, role) {
		return nil, apperror.Forbidden("you do not have access to this booking")
	}

	payments, err := uow.PaymentRepository().FindAll(ctx,
		specification.Filter("booking_id", bookingId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(payments) == 0 {
		return nil, apperror.NotFound("PAYMENT_NOT_FOUND", "no payment exists for this booking")
	}
	return toPaymentResponse(payments[0]), nil
}

func (s *paymentService) notify(ctx context.Context, msg *dto.BookingNotificationMessage) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("payment", "failed to publish notification", map[string]interface{}{"error": err.Error()})
	}
}

func (s *paymentService) emitEvent(ctx context.Context, eventType string, payment *entity.Payment) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"payment_id":  payment.Id,
			"booking_id":  payment.BookingId,
			"order_id":    payment.OrderId,
			"amount":      payment.Amount,
			"currency":    payment.Currency,
			"status":      payment.Status,
			"occurred_at": time.Now(),
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("payment", "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
