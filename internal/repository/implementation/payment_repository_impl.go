package implementation

import (
	"context"
	"errors"

	"huntstay-be/internal/entity"
	"huntstay-be/internal/mapper"
	"huntstay-be/internal/model"
	"huntstay-be/internal/repository/contract"
	"huntstay-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Payment{}, id).Error
}

func (r *PaymentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var m model.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	var m model.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindLiveByBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	return r.findOneByBookingAndStatus(ctx, bookingID, []string{
		string(entity.PaymentStatusPending),
		string(entity.PaymentStatusAuthorized),
	})
}

func (r *PaymentRepositoryImpl) FindAuthorizedByBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	return r.findOneByBookingAndStatus(ctx, bookingID, []string{
		string(entity.PaymentStatusAuthorized),
	})
}

func (r *PaymentRepositoryImpl) findOneByBookingAndStatus(ctx context.Context, bookingID uuid.UUID, statuses []string) (*entity.Payment, error) {
	var m model.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var models []*model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Payment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PaymentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Payment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
