// FILE: internal/service/service_fakes_test.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"huntstay-be/internal/dto"
	"huntstay-be/internal/entity"
	"huntstay-be/internal/repository/contract"
	"huntstay-be/internal/repository/specification"
	"huntstay-be/internal/repository/unitofwork"
	"huntstay-be/pkg/gateway"

	"github.com/google/uuid"
)

// memStore is the shared backing store for the fake repositories. FindByID
// and FindAll hand out copies and Update writes copies back, mirroring how
// rows round-trip through the database; mutations on a fetched entity only
// become visible once Update runs.
type memStore struct {
	users      map[uuid.UUID]*entity.User
	properties map[uuid.UUID]*entity.Property
	bookings   map[uuid.UUID]*entity.Booking
	payments   map[uuid.UUID]*entity.Payment
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[uuid.UUID]*entity.User),
		properties: make(map[uuid.UUID]*entity.Property),
		bookings:   make(map[uuid.UUID]*entity.Booking),
		payments:   make(map[uuid.UUID]*entity.Payment),
	}
}

func copyUser(u *entity.User) *entity.User             { c := *u; return &c }
func copyProperty(p *entity.Property) *entity.Property { c := *p; return &c }
func copyBooking(b *entity.Booking) *entity.Booking    { c := *b; return &c }
func copyPayment(p *entity.Payment) *entity.Payment    { c := *p; return &c }

type memUowFactory struct{ store *memStore }

func newMemUowFactory(store *memStore) unitofwork.RepositoryFactory {
	return &memUowFactory{store: store}
}

func (f *memUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: f.store}
}

// memUow is transactionless: the services under test persist nothing on
// their failure paths, so rollback has nothing to undo.
type memUow struct{ store *memStore }

func (u *memUow) Begin(ctx context.Context) error { return nil }
func (u *memUow) Commit() error                   { return nil }
func (u *memUow) Rollback() error                 { return nil }

func (u *memUow) UserRepository() contract.UserRepository {
	return &memUserRepo{s: u.store}
}

func (u *memUow) PropertyRepository() contract.PropertyRepository {
	return &memPropertyRepo{s: u.store}
}

func (u *memUow) BookingRepository() contract.BookingRepository {
	return &memBookingRepo{s: u.store}
}

func (u *memUow) PaymentRepository() contract.PaymentRepository {
	return &memPaymentRepo{s: u.store}
}

// --- users ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.users[user.Id] = copyUser(user)
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.users[user.Id] = copyUser(user)
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.s.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (r *memUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.s.users)), nil
}

// --- properties ---

type memPropertyRepo struct{ s *memStore }

func (r *memPropertyRepo) Create(ctx context.Context, property *entity.Property) error {
	r.s.properties[property.Id] = copyProperty(property)
	return nil
}

func (r *memPropertyRepo) Update(ctx context.Context, property *entity.Property) error {
	r.s.properties[property.Id] = copyProperty(property)
	return nil
}

func (r *memPropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.properties, id)
	return nil
}

func (r *memPropertyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	if p, ok := r.s.properties[id]; ok {
		return copyProperty(p), nil
	}
	return nil, nil
}

func propertyMatches(p *entity.Property, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.FilterBy:
			switch v.Field {
			case "status":
				if string(p.Status) != fmt.Sprint(v.Value) {
					return false
				}
			case "is_listed":
				if p.IsListed != v.Value.(bool) {
					return false
				}
			case "city":
				if p.City != fmt.Sprint(v.Value) {
					return false
				}
			case "state":
				if p.State != fmt.Sprint(v.Value) {
					return false
				}
			case "provider_id":
				if p.ProviderId != v.Value.(uuid.UUID) {
					return false
				}
			}
		}
	}
	return true
}

func (r *memPropertyRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error) {
	var out []*entity.Property
	for _, p := range r.s.properties {
		if propertyMatches(p, specs) {
			out = append(out, copyProperty(p))
		}
	}
	for _, sp := range specs {
		if ob, ok := sp.(specification.OrderBy); ok {
			sort.Slice(out, func(i, j int) bool {
				if ob.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return paginate(out, specs), nil
}

func (r *memPropertyRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, p := range r.s.properties {
		if propertyMatches(p, specs) {
			n++
		}
	}
	return n, nil
}

// --- bookings ---

type memBookingRepo struct{ s *memStore }

func (r *memBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.bookings[booking.Id] = copyBooking(booking)
	return nil
}

func (r *memBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	r.s.bookings[booking.Id] = copyBooking(booking)
	return nil
}

func (r *memBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.bookings, id)
	return nil
}

func (r *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if b, ok := r.s.bookings[id]; ok {
		return copyBooking(b), nil
	}
	return nil, nil
}

func bookingMatches(b *entity.Booking, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ForProperty:
			if b.PropertyId != v.PropertyID {
				return false
			}
		case specification.ForGuest:
			if b.GuestId != v.GuestID {
				return false
			}
		case specification.ExcludeID:
			if b.Id == v.ID {
				return false
			}
		case specification.FilterBy:
			if v.Field == "status" && string(b.Status) != fmt.Sprint(v.Value) {
				return false
			}
		case specification.StatusIn:
			found := false
			for _, s := range v.Statuses {
				if s == string(b.Status) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func (r *memBookingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if bookingMatches(b, specs) {
			out = append(out, copyBooking(b))
		}
	}
	for _, sp := range specs {
		if ob, ok := sp.(specification.OrderBy); ok {
			sort.Slice(out, func(i, j int) bool {
				var a, b2 time.Time
				switch ob.Field {
				case "check_in_date":
					a, b2 = out[i].CheckInDate, out[j].CheckInDate
				default:
					a, b2 = out[i].CreatedAt, out[j].CreatedAt
				}
				if ob.Desc {
					return a.After(b2)
				}
				return a.Before(b2)
			})
		}
	}
	return paginate(out, specs), nil
}

func (r *memBookingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, b := range r.s.bookings {
		if bookingMatches(b, specs) {
			n++
		}
	}
	return n, nil
}

func (r *memBookingRepo) CountOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.s.bookings {
		if b.PropertyId != propertyID || !b.Status.Active() {
			continue
		}
		if excludeID != nil && b.Id == *excludeID {
			continue
		}
		// Half-open [check_in, check_out) overlap.
		if b.CheckInDate.Before(checkOut) && b.CheckOutDate.After(checkIn) {
			n++
		}
	}
	return n, nil
}

// --- payments ---

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.s.payments[payment.Id] = copyPayment(payment)
	return nil
}

func (r *memPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.s.payments[payment.Id] = copyPayment(payment)
	return nil
}

func (r *memPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.payments, id)
	return nil
}

func (r *memPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	if p, ok := r.s.payments[id]; ok {
		return copyPayment(p), nil
	}
	return nil, nil
}

func (r *memPaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	for _, p := range r.s.payments {
		if p.OrderId == orderID {
			return copyPayment(p), nil
		}
	}
	return nil, nil
}

func (r *memPaymentRepo) FindLiveByBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, p := range r.s.payments {
		if p.BookingId == bookingID && p.Status.Live() {
			return copyPayment(p), nil
		}
	}
	return nil, nil
}

func (r *memPaymentRepo) FindAuthorizedByBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, p := range r.s.payments {
		if p.BookingId == bookingID && p.Status == entity.PaymentStatusAuthorized {
			return copyPayment(p), nil
		}
	}
	return nil, nil
}

func paymentMatches(p *entity.Payment, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ForBooking:
			if p.BookingId != v.BookingID {
				return false
			}
		case specification.FilterBy:
			switch v.Field {
			case "booking_id":
				if p.BookingId != v.Value.(uuid.UUID) {
					return false
				}
			case "status":
				if string(p.Status) != fmt.Sprint(v.Value) {
					return false
				}
			}
		case specification.StatusIn:
			found := false
			for _, s := range v.Statuses {
				if s == string(p.Status) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func (r *memPaymentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if paymentMatches(p, specs) {
			out = append(out, copyPayment(p))
		}
	}
	for _, sp := range specs {
		if ob, ok := sp.(specification.OrderBy); ok {
			sort.Slice(out, func(i, j int) bool {
				if ob.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return paginate(out, specs), nil
}

func (r *memPaymentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, p := range r.s.payments {
		if paymentMatches(p, specs) {
			n++
		}
	}
	return n, nil
}

func paginate[T any](items []T, specs []specification.Specification) []T {
	for _, sp := range specs {
		if pg, ok := sp.(specification.Pagination); ok {
			if pg.Offset >= len(items) {
				return nil
			}
			items = items[pg.Offset:]
			if pg.Limit < len(items) {
				items = items[:pg.Limit]
			}
		}
	}
	return items
}

// --- gateway ---

type fakeRefundCall struct {
	OrderID     string
	AmountMinor int64
	Reason      string
}

// fakeGateway records every processor call and serves canned responses.
type fakeGateway struct {
	authRequests []*gateway.AuthorizationRequest
	authErr      error

	statusResult *gateway.TransactionStatus
	statusErr    error
	statusCalls  int

	captureCalls   []string
	captureAmounts []int64
	captureErr     error

	cancelCalls []string
	cancelErr   error

	refundCalls []fakeRefundCall
	refundErr   error
}

func (g *fakeGateway) CreateAuthorization(ctx context.Context, req *gateway.AuthorizationRequest) (*gateway.Authorization, error) {
	g.authRequests = append(g.authRequests, req)
	if g.authErr != nil {
		return nil, g.authErr
	}
	return &gateway.Authorization{
		OrderID:       req.OrderID,
		TransactionID: "txn-" + req.OrderID,
		RedirectURL:   "https://processor.test/redirect/" + req.OrderID,
	}, nil
}

func (g *fakeGateway) GetStatus(ctx context.Context, orderID string) (*gateway.TransactionStatus, error) {
	g.statusCalls++
	if g.statusErr != nil {
		return nil, g.statusErr
	}
	if g.statusResult != nil {
		return g.statusResult, nil
	}
	return &gateway.TransactionStatus{OrderID: orderID, Status: gateway.StatusPending}, nil
}

func (g *fakeGateway) Capture(ctx context.Context, transactionID string, amountMinor int64) (*gateway.TransactionStatus, error) {
	g.captureCalls = append(g.captureCalls, transactionID)
	g.captureAmounts = append(g.captureAmounts, amountMinor)
	if g.captureErr != nil {
		return nil, g.captureErr
	}
	return &gateway.TransactionStatus{TransactionID: transactionID, Status: gateway.StatusCapture}, nil
}

func (g *fakeGateway) Cancel(ctx context.Context, orderID string) (*gateway.TransactionStatus, error) {
	g.cancelCalls = append(g.cancelCalls, orderID)
	if g.cancelErr != nil {
		return nil, g.cancelErr
	}
	return &gateway.TransactionStatus{OrderID: orderID, Status: gateway.StatusCancel}, nil
}

func (g *fakeGateway) Refund(ctx context.Context, orderID string, amountMinor int64, reason string) (*gateway.RefundResult, error) {
	g.refundCalls = append(g.refundCalls, fakeRefundCall{OrderID: orderID, AmountMinor: amountMinor, Reason: reason})
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	return &gateway.RefundResult{
		RefundID:      fmt.Sprintf("rf-%d", len(g.refundCalls)),
		TransactionID: "txn-" + orderID,
		Status:        gateway.StatusRefund,
	}, nil
}

// --- publisher / logger ---

type recordingPublisher struct{ messages [][]byte }

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.messages = append(p.messages, payload)
	return nil
}

func (p *recordingPublisher) kinds() []string {
	out := make([]string, 0, len(p.messages))
	for _, raw := range p.messages {
		var msg dto.BookingNotificationMessage
		if err := json.Unmarshal(raw, &msg); err == nil {
			out = append(out, msg.Kind)
		}
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- fixtures ---

// fixture seeds the store with a guest, a provider, an admin and one
// approved, listed property with a bookable package.
type fixture struct {
	store    *memStore
	guest    *entity.User
	provider *entity.User
	admin    *entity.User
	property *entity.Property
}

func newFixture() *fixture {
	store := newMemStore()

	guest := &entity.User{
		Id:       uuid.New(),
		Email:    "hunter@example.com",
		FullName: "Hank Hunter",
		Phone:    "+1-555-0101",
		Role:     entity.RoleUser,
		IsActive: true,
	}
	provider := &entity.User{
		Id:       uuid.New(),
		Email:    "outfitter@example.com",
		FullName: "Olivia Outfitter",
		Phone:    "+1-555-0102",
		Role:     entity.RoleProvider,
		IsActive: true,
	}
	admin := &entity.User{
		Id:       uuid.New(),
		Email:    "admin@example.com",
		FullName: "Ada Admin",
		Role:     entity.RoleAdmin,
		IsActive: true,
	}
	store.users[guest.Id] = guest
	store.users[provider.Id] = provider
	store.users[admin.Id] = admin

	property := &entity.Property{
		Id:         uuid.New(),
		ProviderId: provider.Id,
		Name:       "Cedar Ridge Ranch",
		Address:    "1 Ridge Rd",
		City:       "Kerrville",
		State:      "TX",
		ZipCode:    "78028",
		Latitude:   30.05,
		Longitude:  -99.14,
		TotalAcres: 1200,
		Rules:      "No night hunting",
		HuntingPackages: []entity.HuntingPackage{
			{
				Id:                  "pkg-whitetail",
				Name:                "3-Day Whitetail Hunt",
				Price:               100,
				MaxHunters:          4,
				Duration:            3,
				HuntingType:         "rifle",
				AccommodationStatus: entity.AccommodationIncluded,
			},
			{
				Id:          "pkg-hog",
				Name:        "Weekend Hog Hunt",
				Price:       60,
				MaxHunters:  2,
				Duration:    2,
				HuntingType: "rifle",
			},
		},
		Accommodations: []entity.Accommodation{{Type: "lodge", Name: "Main Lodge"}},
		Status:         entity.PropertyStatusApproved,
		IsListed:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	store.properties[property.Id] = property

	return &fixture{store: store, guest: guest, provider: provider, admin: admin, property: property}
}

// seedBooking stores a two-guest whitetail booking 30 days out, priced by the
// standard 10% fee and 8% tax rates (200.00 + 20.00 + 16.00 = 236.00).
func (f *fixture) seedBooking(status entity.BookingStatus, payStatus entity.PaymentStatus) *entity.Booking {
	checkIn := time.Now().AddDate(0, 0, 30).Truncate(24 * time.Hour)
	checkOut := checkIn.AddDate(0, 0, 3)
	now := time.Now()

	b := &entity.Booking{
		Id:              uuid.New(),
		PropertyId:      f.property.Id,
		GuestId:         f.guest.Id,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		GuestCount:      2,
		LeadHunterName:  f.guest.FullName,
		LeadHunterPhone: f.guest.Phone,
		LeadHunterEmail: f.guest.Email,
		PackageId:       "pkg-whitetail",
		PackageName:     "3-Day Whitetail Hunt",
		PackageType:     "rifle",
		PackageDuration: 3,
		PackagePrice:    200,
		ServiceFee:      20,
		Taxes:           16.00,
		TotalPrice:      236.00,
		PropertySnapshot: entity.PropertySnapshot{
			PropertyName:      f.property.Name,
			PropertyCity:      f.property.City,
			PropertyState:     f.property.State,
			ProviderId:        f.provider.Id,
			ProviderName:      f.provider.FullName,
			ProviderEmail:     f.provider.Email,
			SnapshotCreatedAt: now,
		},
		BookingDeadline: checkIn.AddDate(0, 0, -7),
		Status:          status,
		PaymentStatus:   payStatus,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	f.store.bookings[b.Id] = b
	return b
}

func (f *fixture) seedPayment(bookingID uuid.UUID, status entity.PaymentStatus, amount float64) *entity.Payment {
	now := time.Now()
	p := &entity.Payment{
		Id:              uuid.New(),
		BookingId:       bookingID,
		Amount:          amount,
		Currency:        "USD",
		Status:          status,
		PaymentMethod:   "card",
		CaptureDeadline: now.AddDate(0, 0, 7),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	p.OrderId = p.Id.String()
	p.TransactionId = "txn-" + p.OrderId
	if status == entity.PaymentStatusAuthorized || status == entity.PaymentStatusPaid {
		p.AuthorizedAt = &now
	}
	if status == entity.PaymentStatusPaid {
		p.CapturedAt = &now
	}
	f.store.payments[p.Id] = p
	return p
}
