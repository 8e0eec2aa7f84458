// FILE: internal/entity/booking_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
	BookingStatusRefunded  BookingStatus = "refunded"
)

// Active reports whether the booking blocks its date range.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// PropertySnapshot is an immutable copy of the property captured at
// booking-creation time. Later edits to the live property never change it.
type PropertySnapshot struct {
	PropertyName        string    `json:"property_name"`
	PropertyAddress     string    `json:"property_address"`
	PropertyCity        string    `json:"property_city"`
	PropertyState       string    `json:"property_state"`
	PropertyZip         string    `json:"property_zip"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	TotalAcres          float64   `json:"total_acres"`
	ProviderId          uuid.UUID `json:"provider_id"`
	ProviderName        string    `json:"provider_name"`
	ProviderPhone       string    `json:"provider_phone"`
	ProviderEmail       string    `json:"provider_email"`
	Rules               string    `json:"rules"`
	SafetyInfo          string    `json:"safety_info"`
	LicenseRequirements string    `json:"license_requirements"`
	SeasonInfo          string    `json:"season_info"`
	SnapshotCreatedAt   time.Time `json:"snapshot_created_at"`
}

type Booking struct {
	Id         uuid.UUID
	PropertyId uuid.UUID
	GuestId    uuid.UUID

	CheckInDate  time.Time
	CheckOutDate time.Time
	GuestCount   int

	LeadHunterName  string
	LeadHunterPhone string
	LeadHunterEmail string

	PackageId       string
	PackageName     string
	PackageType     string
	PackageDuration int

	PackagePrice float64
	ServiceFee   float64
	Taxes        float64
	TotalPrice   float64

	AccommodationIncluded bool
	AccommodationType     string
	AccommodationName     string

	SpecialRequests string
	BookingNotes    string
	BookingSource   string
	ReferralCode    string

	PropertySnapshot PropertySnapshot

	// BookingDeadline is check-in minus the cancellation lead time. Past it,
	// only the provider or an admin may cancel.
	BookingDeadline          time.Time
	ProviderResponseDeadline *time.Time

	Status             BookingStatus
	PaymentStatus      PaymentStatus
	CancellationReason string

	ConfirmedAt *time.Time
	CancelledAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanTransitionTo enforces the booking state machine:
// PENDING -> {CONFIRMED, CANCELLED}; CONFIRMED -> {CANCELLED, COMPLETED, NO_SHOW, REFUNDED}.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		switch next {
		case BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow, BookingStatusRefunded:
			return true
		}
	}
	return false
}

// Cancellable rejects terminal states before any cancel attempt.
func (b *Booking) Cancellable() bool {
	return b.Status != BookingStatusCancelled && b.Status != BookingStatusCompleted
}
