// FILE: internal/dto/booking_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookingCreateRequest struct {
	PropertyId   uuid.UUID `json:"property_id" validate:"required"`
	CheckInDate  string    `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string    `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	GuestCount   int       `json:"guest_count" validate:"required,gt=0"`

	LeadHunterName  string `json:"lead_hunter_name" validate:"required"`
	LeadHunterPhone string `json:"lead_hunter_phone" validate:"required"`
	LeadHunterEmail string `json:"lead_hunter_email" validate:"required,email"`

	// Either package_id or package_name must resolve against the property catalog.
	PackageId   string `json:"package_id"`
	PackageName string `json:"package_name"`

	// ClientTotalPrice is what the guest's UI displayed. The server recomputes
	// the total and rejects the booking if they disagree by more than a cent.
	ClientTotalPrice float64 `json:"client_total_price" validate:"required,gt=0"`

	SpecialRequests string `json:"special_requests"`
	BookingNotes    string `json:"booking_notes"`
	BookingSource   string `json:"booking_source"`
	ReferralCode    string `json:"referral_code"`
}

// BookingUpdateRequest carries guest-editable fields. Once a booking is
// confirmed, only the contact and note fields are honored; the rest are
// silently dropped.
type BookingUpdateRequest struct {
	CheckInDate  *string `json:"check_in_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate *string `json:"check_out_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	GuestCount   *int    `json:"guest_count,omitempty" validate:"omitempty,gt=0"`

	LeadHunterName  *string `json:"lead_hunter_name,omitempty"`
	LeadHunterPhone *string `json:"lead_hunter_phone,omitempty"`
	LeadHunterEmail *string `json:"lead_hunter_email,omitempty" validate:"omitempty,email"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	BookingNotes    *string `json:"booking_notes,omitempty"`
}

type BookingCancelRequest struct {
	Reason string `json:"reason"`
}

type BookingStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed no_show refunded"`
	Reason string `json:"reason"`
}

type PricingBreakdown struct {
	PackagePrice float64 `json:"package_price"`
	ServiceFee   float64 `json:"service_fee"`
	Taxes        float64 `json:"taxes"`
	TotalPrice   float64 `json:"total_price"`
}

type BookingResponse struct {
	Id         uuid.UUID `json:"id"`
	PropertyId uuid.UUID `json:"property_id"`
	GuestId    uuid.UUID `json:"guest_id"`

	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	GuestCount   int    `json:"guest_count"`

	LeadHunterName  string `json:"lead_hunter_name"`
	LeadHunterPhone string `json:"lead_hunter_phone"`
	LeadHunterEmail string `json:"lead_hunter_email"`

	PackageId       string `json:"package_id"`
	PackageName     string `json:"package_name"`
	PackageType     string `json:"package_type"`
	PackageDuration int    `json:"package_duration"`

	Pricing PricingBreakdown `json:"pricing"`

	AccommodationIncluded bool   `json:"accommodation_included"`
	AccommodationType     string `json:"accommodation_type,omitempty"`
	AccommodationName     string `json:"accommodation_name,omitempty"`

	SpecialRequests string `json:"special_requests,omitempty"`
	BookingNotes    string `json:"booking_notes,omitempty"`
	BookingSource   string `json:"booking_source,omitempty"`
	ReferralCode    string `json:"referral_code,omitempty"`

	PropertyName string `json:"property_name"`
	ProviderName string `json:"provider_name"`

	Status             string `json:"status"`
	PaymentStatus      string `json:"payment_status"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	BookingDeadline          time.Time  `json:"booking_deadline"`
	ProviderResponseDeadline *time.Time `json:"provider_response_deadline,omitempty"`
	ConfirmedAt              *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt              *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt              *time.Time `json:"completed_at,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

type AvailabilityQuery struct {
	CheckInDate      string `query:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate     string `query:"check_out_date" validate:"required,datetime=2006-01-02"`
	ExcludeBookingId string `query:"exclude_booking_id"`
}

type AvailabilityResponse struct {
	PropertyId   uuid.UUID `json:"property_id"`
	CheckInDate  string    `json:"check_in_date"`
	CheckOutDate string    `json:"check_out_date"`
	Available    bool      `json:"available"`
}

type BookingListQuery struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

type BookingStatisticsResponse struct {
	TotalBookings     int64   `json:"total_bookings"`
	PendingBookings   int64   `json:"pending_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
}
