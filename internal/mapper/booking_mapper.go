package mapper

import (
	"encoding/json"

	"huntstay-be/internal/entity"
	"huntstay-be/internal/model"

	"gorm.io/datatypes"
)

type BookingMapper struct{}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{}
}

func (m *BookingMapper) ToEntity(b *model.Booking) *entity.Booking {
	if b == nil {
		return nil
	}

	var snapshot entity.PropertySnapshot
	if len(b.PropertySnapshot) > 0 {
		_ = json.Unmarshal(b.PropertySnapshot, &snapshot)
	}

	return &entity.Booking{
		Id:         b.Id,
		PropertyId: b.PropertyId,
		GuestId:    b.GuestId,

		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		GuestCount:   b.GuestCount,

		LeadHunterName:  b.LeadHunterName,
		LeadHunterPhone: b.LeadHunterPhone,
		LeadHunterEmail: b.LeadHunterEmail,

		PackageId:       b.PackageId,
		PackageName:     b.PackageName,
		PackageType:     b.PackageType,
		PackageDuration: b.PackageDuration,

		PackagePrice: b.PackagePrice,
		ServiceFee:   b.ServiceFee,
		Taxes:        b.Taxes,
		TotalPrice:   b.TotalPrice,

		AccommodationIncluded: b.AccommodationIncluded,
		AccommodationType:     b.AccommodationType,
		AccommodationName:     b.AccommodationName,

		SpecialRequests: b.SpecialRequests,
		BookingNotes:    b.BookingNotes,
		BookingSource:   b.BookingSource,
		ReferralCode:    b.ReferralCode,

		PropertySnapshot: snapshot,

		BookingDeadline:          b.BookingDeadline,
		ProviderResponseDeadline: b.ProviderResponseDeadline,

		Status:             entity.BookingStatus(b.Status),
		PaymentStatus:      entity.PaymentStatus(b.PaymentStatus),
		CancellationReason: b.CancellationReason,

		ConfirmedAt: b.ConfirmedAt,
		CancelledAt: b.CancelledAt,
		CompletedAt: b.CompletedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (m *BookingMapper) ToModel(b *entity.Booking) *model.Booking {
	if b == nil {
		return nil
	}

	snapshot, _ := json.Marshal(b.PropertySnapshot)

	return &model.Booking{
		Id:         b.Id,
		PropertyId: b.PropertyId,
		GuestId:    b.GuestId,

		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		GuestCount:   b.GuestCount,

		LeadHunterName:  b.LeadHunterName,
		LeadHunterPhone: b.LeadHunterPhone,
		LeadHunterEmail: b.LeadHunterEmail,

		PackageId:       b.PackageId,
		PackageName:     b.PackageName,
		PackageType:     b.PackageType,
		PackageDuration: b.PackageDuration,

		PackagePrice: b.PackagePrice,
		ServiceFee:   b.ServiceFee,
		Taxes:        b.Taxes,
		TotalPrice:   b.TotalPrice,

		AccommodationIncluded: b.AccommodationIncluded,
		AccommodationType:     b.AccommodationType,
		AccommodationName:     b.AccommodationName,

		SpecialRequests: b.SpecialRequests,
		BookingNotes:    b.BookingNotes,
		BookingSource:   b.BookingSource,
		ReferralCode:    b.ReferralCode,

		PropertySnapshot: datatypes.JSON(snapshot),

		BookingDeadline:          b.BookingDeadline,
		ProviderResponseDeadline: b.ProviderResponseDeadline,

		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		CancellationReason: b.CancellationReason,

		ConfirmedAt: b.ConfirmedAt,
		CancelledAt: b.CancelledAt,
		CompletedAt: b.CompletedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
