package contract

import (
	"context"

	"huntstay-be/internal/entity"
	"huntstay-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	Update(ctx context.Context, property *entity.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
