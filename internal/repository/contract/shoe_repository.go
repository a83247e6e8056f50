package contract

import (
	"context"

	"wide-toebox-be/internal/entity"
	"wide-toebox-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ShoeRepository interface {
	Create(ctx context.Context, shoe *entity.Shoe) error
	Update(ctx context.Context, shoe *entity.Shoe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shoe, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Shoe, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
