// FILE: internal/service/booking_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"huntstay-be/internal/dto"
	"huntstay-be/internal/entity"
	"huntstay-be/internal/pkg/apperror"
	"huntstay-be/internal/pkg/logger"
	"huntstay-be/internal/repository/specification"
	"huntstay-be/internal/repository/unitofwork"
	"huntstay-be/pkg/events"
	pktNats "huntstay-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type BookingSettings struct {
	CancellationLeadDays int
}

type IBookingService interface {
	IsAvailable(ctx context.Context, propertyId uuid.UUID, query *dto.AvailabilityQuery) (*dto.AvailabilityResponse, error)
	Create(ctx context.Context, guestId uuid.UUID, req *dto.BookingCreateRequest) (*dto.BookingResponse, error)
	GetByID(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID) (*dto.BookingResponse, error)
	ListForGuest(ctx context.Context, guestId uuid.UUID, query *dto.BookingListQuery) ([]*dto.BookingResponse, error)
	ListForProperty(ctx context.Context, actorId uuid.UUID, role string, propertyId uuid.UUID, query *dto.BookingListQuery) ([]*dto.BookingResponse, error)
	Update(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, req *dto.BookingUpdateRequest) (*dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, req *dto.BookingStatusUpdateRequest) (*dto.BookingResponse, error)
	Cancel(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, reason string) (*dto.BookingResponse, error)
	Delete(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID) error
	Statistics(ctx context.Context, actorId uuid.UUID, role string, propertyId uuid.UUID) (*dto.BookingStatisticsResponse, error)
}

type bookingService struct {
	uowFactory       unitofwork.RepositoryFactory
	pricing          IPricingService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	settings         BookingSettings
	log              logger.ILogger
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	pricing IPricingService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	settings BookingSettings,
	log logger.ILogger,
) IBookingService {
	return &bookingService{
		uowFactory:       uowFactory,
		pricing:          pricing,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		settings:         settings,
		log:              log,
	}
}

func parseDateRange(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(dateLayout, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("INVALID_DATES", "check_in_date must be YYYY-MM-DD")
	}
	checkOut, err := time.Parse(dateLayout, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("INVALID_DATES", "check_out_date must be YYYY-MM-DD")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, apperror.Validation("INVALID_DATES", "check_out_date must be after check_in_date")
	}
	return checkIn, checkOut, nil
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		Id:              b.Id,
		PropertyId:      b.PropertyId,
		GuestId:         b.GuestId,
		CheckInDate:     b.CheckInDate.Format(dateLayout),
		CheckOutDate:    b.CheckOutDate.Format(dateLayout),
		GuestCount:      b.GuestCount,
		LeadHunterName:  b.LeadHunterName,
		LeadHunterPhone: b.LeadHunterPhone,
		LeadHunterEmail: b.LeadHunterEmail,
		PackageId:       b.PackageId,
		PackageName:     b.PackageName,
		PackageType:     b.PackageType,
		PackageDuration: b.PackageDuration,
		Pricing: dto.PricingBreakdown{
			PackagePrice: b.PackagePrice,
			ServiceFee:   b.ServiceFee,
			Taxes:        b.Taxes,
			TotalPrice:   b.TotalPrice,
		},
		AccommodationIncluded:    b.AccommodationIncluded,
		AccommodationType:        b.AccommodationType,
		AccommodationName:        b.AccommodationName,
		SpecialRequests:          b.SpecialRequests,
		BookingNotes:             b.BookingNotes,
		BookingSource:            b.BookingSource,
		ReferralCode:             b.ReferralCode,
		PropertyName:             b.PropertySnapshot.PropertyName,
		ProviderName:             b.PropertySnapshot.ProviderName,
		Status:                   string(b.Status),
		PaymentStatus:            string(b.PaymentStatus),
		CancellationReason:       b.CancellationReason,
		BookingDeadline:          b.BookingDeadline,
		ProviderResponseDeadline: b.ProviderResponseDeadline,
		ConfirmedAt:              b.ConfirmedAt,
		CancelledAt:              b.CancelledAt,
		CompletedAt:              b.CompletedAt,
		CreatedAt:                b.CreatedAt,
		UpdatedAt:                b.UpdatedAt,
	}
}

// canAccessBooking gates reads: the guest who booked, the provider who owns
// the property, or an admin.
func canAccessBooking(b *entity.Booking, actorId uuid.UUID, role string) bool {
	if role == string(entity.RoleAdmin) {
		return true
	}
	if b.GuestId == actorId {
		return true
	}
	return b.PropertySnapshot.ProviderId == actorId
}

func (s *bookingService) IsAvailable(ctx context.Context, propertyId uuid.UUID, query *dto.AvailabilityQuery) (*dto.AvailabilityResponse, error) {
	checkIn, checkOut, err := parseDateRange(query.CheckInDate, query.CheckOutDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindByID(ctx, propertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}

	var excludeID *uuid.UUID
	if query.ExcludeBookingId != "" {
		id, err := uuid.Parse(query.ExcludeBookingId)
		if err != nil {
			return nil, apperror.Validation("INVALID_BOOKING_ID", "exclude_booking_id must be a UUID")
		}
		excludeID = &id
	}

	count, err := uow.BookingRepository().CountOverlapping(ctx, propertyId, checkIn, checkOut, excludeID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.AvailabilityResponse{
		PropertyId:   propertyId,
		CheckInDate:  query.CheckInDate,
		CheckOutDate: query.CheckOutDate,
		Available:    count == 0,
	}, nil
}

func (s *bookingService) Create(ctx context.Context, guestId uuid.UUID, req *dto.BookingCreateRequest) (*dto.BookingResponse, error) {
	checkIn, checkOut, err := parseDateRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	today := time.Now().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return nil, apperror.Validation("INVALID_DATES", "check_in_date cannot be in the past")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	property, err := uow.PropertyRepository().FindByID(ctx, req.PropertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}
	if !property.Bookable() {
		return nil, apperror.Conflict("PROPERTY_NOT_BOOKABLE", "property is not open for bookings")
	}

	pkg := property.FindPackage(req.PackageId, req.PackageName)
	if pkg == nil {
		return nil, apperror.NotFound("PACKAGE_NOT_FOUND", "hunting package not found on this property")
	}
	if req.GuestCount > pkg.MaxHunters {
		return nil, apperror.Validation("GUEST_COUNT_EXCEEDED",
			fmt.Sprintf("package %q allows at most %d hunters", pkg.Name, pkg.MaxHunters))
	}

	quote := s.pricing.Quote(pkg, req.GuestCount)
	if err := s.pricing.Validate(req.ClientTotalPrice, quote); err != nil {
		return nil, err
	}

	// Overlap check runs inside the same transaction as the insert; the
	// database exclusion constraint backstops concurrent writers.
	overlapping, err := uow.BookingRepository().CountOverlapping(ctx, property.Id, checkIn, checkOut, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if overlapping > 0 {
		return nil, apperror.Conflict("DATES_UNAVAILABLE", "the requested dates are no longer available")
	}

	provider, err := uow.UserRepository().FindByID(ctx, property.ProviderId)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	snapshot := entity.PropertySnapshot{
		PropertyName:        property.Name,
		PropertyAddress:     property.Address,
		PropertyCity:        property.City,
		PropertyState:       property.State,
		PropertyZip:         property.ZipCode,
		Latitude:            property.Latitude,
		Longitude:           property.Longitude,
		TotalAcres:          property.TotalAcres,
		ProviderId:          property.ProviderId,
		Rules:               property.Rules,
		SafetyInfo:          property.SafetyInfo,
		LicenseRequirements: property.LicenseRequirements,
		SeasonInfo:          property.SeasonInfo,
		SnapshotCreatedAt:   now,
	}
	if provider != nil {
		snapshot.ProviderName = provider.FullName
		snapshot.ProviderPhone = provider.Phone
		snapshot.ProviderEmail = provider.Email
	}

	accommodationIncluded := pkg.AccommodationStatus == entity.AccommodationIncluded
	var accommodationType, accommodationName string
	if accommodationIncluded && len(property.Accommodations) > 0 {
		accommodationType = property.Accommodations[0].Type
		accommodationName = property.Accommodations[0].Name
	}

	booking := &entity.Booking{
		Id:                    uuid.New(),
		PropertyId:            property.Id,
		GuestId:               guestId,
		CheckInDate:           checkIn,
		CheckOutDate:          checkOut,
		GuestCount:            req.GuestCount,
		LeadHunterName:        req.LeadHunterName,
		LeadHunterPhone:       req.LeadHunterPhone,
		LeadHunterEmail:       req.LeadHunterEmail,
		PackageId:             pkg.Id,
		PackageName:           pkg.Name,
		PackageType:           pkg.HuntingType,
		PackageDuration:       pkg.Duration,
		PackagePrice:          quote.PackagePrice,
		ServiceFee:            quote.ServiceFee,
		Taxes:                 quote.Taxes,
		TotalPrice:            quote.TotalPrice,
		AccommodationIncluded: accommodationIncluded,
		AccommodationType:     accommodationType,
		AccommodationName:     accommodationName,
		SpecialRequests:       req.SpecialRequests,
		BookingNotes:          req.BookingNotes,
		BookingSource:         req.BookingSource,
		ReferralCode:          req.ReferralCode,
		PropertySnapshot:      snapshot,
		BookingDeadline:       checkIn.AddDate(0, 0, -s.settings.CancellationLeadDays),
		Status:                entity.BookingStatusPending,
		PaymentStatus:         entity.PaymentStatusPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := uow.BookingRepository().Create(ctx, booking); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("booking", "booking created", map[string]interface{}{
		"booking_id":  booking.Id,
		"property_id": property.Id,
		"guest_id":    guestId,
		"total_price": booking.TotalPrice,
	})

	s.notify(ctx, &dto.BookingNotificationMessage{
		Kind:         "booking_created",
		Email:        booking.LeadHunterEmail,
		PropertyName: snapshot.PropertyName,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
	})
	s.emitEvent(ctx, "BOOKING_CREATED", booking)

	return toBookingResponse(booking), nil
}

func (s *bookingService) GetByID(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID) (*dto.BookingResponse, error) {
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
	return toBookingResponse(booking), nil
}

func (s *bookingService) ListForGuest(ctx context.Context, guestId uuid.UUID, query *dto.BookingListQuery) ([]*dto.BookingResponse, error) {
	specs := []specification.Specification{
		specification.ForGuest{GuestID: guestId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if query.Status != "" {
		specs = append(specs, specification.Filter("status", query.Status))
	}
	if query.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: query.Offset})
	}
	return s.list(ctx, specs...)
}

func (s *bookingService) ListForProperty(ctx context.Context, actorId uuid.UUID, role string, propertyId uuid.UUID, query *dto.BookingListQuery) ([]*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindByID(ctx, propertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}
	if role != string(entity.RoleAdmin) && property.ProviderId != actorId {
		return nil, apperror.Forbidden("you do not own this property")
	}

	specs := []specification.Specification{
		specification.ForProperty{PropertyID: propertyId},
		specification.OrderBy{Field: "check_in_date", Desc: false},
	}
	if query.Status != "" {
		specs = append(specs, specification.Filter("status", query.Status))
	}
	if query.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: query.Offset})
	}
	return s.list(ctx, specs...)
}

func (s *bookingService) list(ctx context.Context, specs ...specification.Specification) ([]*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	bookings, err := uow.BookingRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	res := make([]*dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, toBookingResponse(b))
	}
	return res, nil
}

func (s *bookingService) Update(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, req *dto.BookingUpdateRequest) (*dto.BookingResponse, error) {
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
	if !canAccessBooking(booking, actorId, role) {
		return nil, apperror.Forbidden("you do not have access to this booking")
	}
	if !booking.Status.Active() {
		return nil, apperror.Conflict("INVALID_STATUS", "only pending or confirmed bookings can be edited")
	}

	// The property owner only manages booking notes; guest-facing contact
	// fields and the itinerary stay with the guest (and admins).
	isProvider := role != string(entity.RoleAdmin) && booking.GuestId != actorId

	if req.BookingNotes != nil {
		booking.BookingNotes = *req.BookingNotes
	}
	if !isProvider {
		if req.LeadHunterName != nil {
			booking.LeadHunterName = *req.LeadHunterName
		}
		if req.LeadHunterPhone != nil {
			booking.LeadHunterPhone = *req.LeadHunterPhone
		}
		if req.LeadHunterEmail != nil {
			booking.LeadHunterEmail = *req.LeadHunterEmail
		}
		if req.SpecialRequests != nil {
			booking.SpecialRequests = *req.SpecialRequests
		}
	}

	// Dates and guest count lock once the booking is confirmed; requests
	// touching them are silently dropped rather than rejected.
	if !isProvider && booking.Status == entity.BookingStatusPending {
		checkIn, checkOut := booking.CheckInDate, booking.CheckOutDate
		datesChanged := false
		if req.CheckInDate != nil || req.CheckOutDate != nil {
			inStr, outStr := booking.CheckInDate.Format(dateLayout), booking.CheckOutDate.Format(dateLayout)
			if req.CheckInDate != nil {
				inStr = *req.CheckInDate
			}
			if req.CheckOutDate != nil {
				outStr = *req.CheckOutDate
			}
			checkIn, checkOut, err = parseDateRange(inStr, outStr)
			if err != nil {
				return nil, err
			}
			datesChanged = true
		}

		if datesChanged {
			overlapping, err := uow.BookingRepository().CountOverlapping(ctx, booking.PropertyId, checkIn, checkOut, &booking.Id)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			if overlapping > 0 {
				return nil, apperror.Conflict("DATES_UNAVAILABLE", "the requested dates are no longer available")
			}
			booking.CheckInDate = checkIn
			booking.CheckOutDate = checkOut
			booking.BookingDeadline = checkIn.AddDate(0, 0, -s.settings.CancellationLeadDays)
		}

		if req.GuestCount != nil && *req.GuestCount != booking.GuestCount {
			// Reprice against the booked package terms, not the live catalog.
			basePrice := decimal.NewFromFloat(booking.PackagePrice).
				Div(decimal.NewFromInt(int64(booking.GuestCount))).
				InexactFloat64()
			property, err := uow.PropertyRepository().FindByID(ctx, booking.PropertyId)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			maxHunters := *req.GuestCount
			if property != nil {
				if pkg := property.FindPackage(booking.PackageId, booking.PackageName); pkg != nil {
					maxHunters = pkg.MaxHunters
				}
			}
			if *req.GuestCount > maxHunters {
				return nil, apperror.Validation("GUEST_COUNT_EXCEEDED",
					fmt.Sprintf("package %q allows at most %d hunters", booking.PackageName, maxHunters))
			}

			quote := s.pricing.Quote(&entity.HuntingPackage{Price: basePrice}, *req.GuestCount)
			booking.GuestCount = *req.GuestCount
			booking.PackagePrice = quote.PackagePrice
			booking.ServiceFee = quote.ServiceFee
			booking.Taxes = quote.Taxes
			booking.TotalPrice = quote.TotalPrice
		}
	}

	booking.UpdatedAt = time.Now()
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	return toBookingResponse(booking), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, req *dto.BookingStatusUpdateRequest) (*dto.BookingResponse, error) {
	next := entity.BookingStatus(req.Status)
	if next == entity.BookingStatusCancelled {
		return s.Cancel(ctx, actorId, role, bookingId, req.Reason)
	}

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
		return nil, apperror.Forbidden("only the property owner or an admin can change booking status")
	}
	if !booking.CanTransitionTo(next) {
		return nil, apperror.Conflict("INVALID_TRANSITION",
			fmt.Sprintf("cannot move booking from %s to %s", booking.Status, next))
	}

	now := time.Now()
	switch next {
	case entity.BookingStatusConfirmed:
		// Confirmation normally flows through payment capture; this path is
		// for reconciling a booking whose payment is already settled.
		if booking.PaymentStatus != entity.PaymentStatusPaid {
			return nil, apperror.Conflict("PAYMENT_NOT_CAPTURED", "booking can only be confirmed once payment is captured")
		}
		booking.Status = entity.BookingStatusConfirmed
		booking.ConfirmedAt = &now
	case entity.BookingStatusCompleted:
		if now.Before(booking.CheckOutDate) {
			return nil, apperror.Conflict("INVALID_TRANSITION", "booking cannot be completed before the check-out date")
		}
		booking.Status = entity.BookingStatusCompleted
		booking.CompletedAt = &now
	case entity.BookingStatusNoShow:
		booking.Status = entity.BookingStatusNoShow
	case entity.BookingStatusRefunded:
		if role != string(entity.RoleAdmin) {
			return nil, apperror.Forbidden("only an admin can mark a booking refunded here")
		}
		booking.Status = entity.BookingStatusRefunded
	default:
		return nil, apperror.Validation("INVALID_STATUS", "unsupported status")
	}

	booking.UpdatedAt = now
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("booking", "booking status updated", map[string]interface{}{
		"booking_id": bookingId,
		"status":     next,
	})
	s.emitEvent(ctx, "BOOKING_STATUS_CHANGED", booking)

	return toBookingResponse(booking), nil
}

func (s *bookingService) Cancel(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID, reason string) (*dto.BookingResponse, error) {
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
	if !canAccessBooking(booking, actorId, role) {
		return nil, apperror.Forbidden("you do not have access to this booking")
	}
	if !booking.Cancellable() {
		return nil, apperror.Conflict("INVALID_STATUS", "booking is already in a terminal state")
	}

	isGuest := booking.GuestId == actorId && role != string(entity.RoleAdmin) &&
		booking.PropertySnapshot.ProviderId != actorId
	if isGuest && time.Now().After(booking.BookingDeadline) {
		return nil, apperror.Conflict("CANCELLATION_WINDOW_CLOSED",
			"the self-service cancellation window has closed; contact the outfitter")
	}

	now := time.Now()
	booking.Status = entity.BookingStatusCancelled
	booking.CancellationReason = reason
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	// A captured payment is not released by cancelling; reverting the mirror
	// to pending marks the booking as still owed a refund.
	refundOwed := booking.PaymentStatus == entity.PaymentStatusPaid
	if refundOwed {
		booking.PaymentStatus = entity.PaymentStatusPending
	}

	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("booking", "booking cancelled", map[string]interface{}{
		"booking_id":     bookingId,
		"actor_id":       actorId,
		"payment_status": booking.PaymentStatus,
	})
	if refundOwed {
		// Money already moved; the refund flow settles it.
		s.log.Warn("booking", "cancelled booking has captured payment awaiting refund", map[string]interface{}{
			"booking_id": bookingId,
		})
	}

	s.notify(ctx, &dto.BookingNotificationMessage{
		Kind:         "booking_cancelled",
		Email:        booking.LeadHunterEmail,
		PropertyName: booking.PropertySnapshot.PropertyName,
		CheckInDate:  booking.CheckInDate.Format(dateLayout),
		CheckOutDate: booking.CheckOutDate.Format(dateLayout),
		Reason:       reason,
	})
	s.emitEvent(ctx, "BOOKING_CANCELLED", booking)

	return toBookingResponse(booking), nil
}

func (s *bookingService) Delete(ctx context.Context, actorId uuid.UUID, role string, bookingId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindByID(ctx, bookingId)
	if err != nil {
		return apperror.Internal(err)
	}
	if booking == nil {
		return apperror.NotFound("BOOKING_NOT_FOUND", "booking not found")
	}
	// Guests may discard their own unpaid pending request; anything further
	// along is an admin-only cleanup.
	if role != string(entity.RoleAdmin) {
		if booking.GuestId != actorId {
			return apperror.Forbidden("you do not have access to this booking")
		}
		if booking.Status != entity.BookingStatusPending {
			return apperror.Conflict("INVALID_STATUS", "only pending bookings can be deleted")
		}
	}

	// A booking whose payment was ever captured must go through
	// cancel+refund so the charge stays on record.
	charged, err := uow.PaymentRepository().Count(ctx,
		specification.Filter("booking_id", bookingId),
		specification.StatusIn{Statuses: []string{
			string(entity.PaymentStatusPaid),
			string(entity.PaymentStatusPartiallyRefunded),
		}},
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if charged > 0 {
		return apperror.Conflict("PAYMENT_CAPTURED", "a captured payment exists; cancel and refund the booking instead")
	}

	payment, err := uow.PaymentRepository().FindLiveByBooking(ctx, bookingId)
	if err != nil {
		return apperror.Internal(err)
	}
	if payment != nil {
		return apperror.Conflict("PAYMENT_STILL_OPEN", "release the payment authorization before deleting the booking")
	}

	if err := uow.BookingRepository().Delete(ctx, bookingId); err != nil {
		return apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *bookingService) Statistics(ctx context.Context, actorId uuid.UUID, role string, propertyId uuid.UUID) (*dto.BookingStatisticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindByID(ctx, propertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}
	if role != string(entity.RoleAdmin) && property.ProviderId != actorId {
		return nil, apperror.Forbidden("you do not own this property")
	}

	stats := &dto.BookingStatisticsResponse{}
	repo := uow.BookingRepository()
	forProperty := specification.ForProperty{PropertyID: propertyId}

	if stats.TotalBookings, err = repo.Count(ctx, forProperty); err != nil {
		return nil, apperror.Internal(err)
	}
	counts := map[entity.BookingStatus]*int64{
		entity.BookingStatusPending:   &stats.PendingBookings,
		entity.BookingStatusConfirmed: &stats.ConfirmedBookings,
		entity.BookingStatusCancelled: &stats.CancelledBookings,
		entity.BookingStatusCompleted: &stats.CompletedBookings,
	}
	for status, dst := range counts {
		if *dst, err = repo.Count(ctx, forProperty, specification.Filter("status", string(status))); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	// Revenue counts bookings where money settled.
	settled, err := repo.FindAll(ctx, forProperty, specification.StatusIn{
		Statuses: []string{string(entity.BookingStatusConfirmed), string(entity.BookingStatusCompleted)},
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	revenue := decimal.Zero
	for _, b := range settled {
		revenue = revenue.Add(decimal.NewFromFloat(b.TotalPrice))
	}
	stats.TotalRevenue = revenue.InexactFloat64()

	return stats, nil
}

func (s *bookingService) notify(ctx context.Context, msg *dto.BookingNotificationMessage) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("booking", "failed to publish notification", map[string]interface{}{"error": err.Error()})
	}
}

func (s *bookingService) emitEvent(ctx context.Context, eventType string, booking *entity.Booking) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"booking_id":  booking.Id,
			"property_id": booking.PropertyId,
			"guest_id":    booking.GuestId,
			"status":      booking.Status,
			"total_price": booking.TotalPrice,
			"occurred_at": time.Now(),
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("booking", "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
