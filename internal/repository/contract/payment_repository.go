package contract

import (
	"context"

	"huntstay-be/internal/entity"
	"huntstay-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	Update(ctx context.Context, payment *entity.Payment) error
	// Delete hard-deletes a stale payment row so a fresh authorization can
	// replace it without leaving two live attempts on one booking.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error)
	// FindLiveByBooking returns the booking's payment in PENDING or
	// AUTHORIZED status, or nil when there is none.
	FindLiveByBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindAuthorizedByBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
