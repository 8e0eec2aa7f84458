package contract

import (
	"context"
	"time"

	"huntstay-be/internal/entity"
	"huntstay-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountOverlapping counts PENDING/CONFIRMED bookings on the property whose
	// half-open date range overlaps [checkIn, checkOut). It must run inside
	// the same transaction as the insert that depends on it.
	CountOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int64, error)
}
