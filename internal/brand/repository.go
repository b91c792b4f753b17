package brand

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/brand/dto"
	"github.com/rasoihq/kitchen-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, b *model.Brand) error
	FindByID(ctx context.Context, id string) (*model.Brand, error)
	FindByName(ctx context.Context, name string) (*model.Brand, error)
	FindAll(ctx context.Context, filters *dto.BrandFilters) ([]model.Brand, int, error)
	Update(ctx context.Context, b *model.Brand) error
	Delete(ctx context.Context, id string) error
}
