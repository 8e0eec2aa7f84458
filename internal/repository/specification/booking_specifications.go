package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForProperty filters bookings (or payments joined through bookings) by property.
type ForProperty struct {
	PropertyID uuid.UUID
}

func (s ForProperty) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("property_id = ?", s.PropertyID)
}

// ForGuest filters bookings by the guest user.
type ForGuest struct {
	GuestID uuid.UUID
}

func (s ForGuest) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("guest_id = ?", s.GuestID)
}

// ForBooking filters payments by booking.
type ForBooking struct {
	BookingID uuid.UUID
}

func (s ForBooking) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("booking_id = ?", s.BookingID)
}

// OverlappingRange matches bookings whose half-open [check_in, check_out)
// range overlaps the given one: a_in < b_out AND b_in < a_out. A checkout
// on the same day as another check-in does not conflict.
type OverlappingRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (s OverlappingRange) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("check_in_date < ? AND check_out_date > ?", s.CheckOut, s.CheckIn)
}

// ExcludeID lets an update-in-place recheck skip the booking being updated.
type ExcludeID struct {
	ID uuid.UUID
}

func (s ExcludeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.ID)
}
