package unitofwork

import (
	"context"

	"huntstay-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PropertyRepository() contract.PropertyRepository
	BookingRepository() contract.BookingRepository
	PaymentRepository() contract.PaymentRepository
}
