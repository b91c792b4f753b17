package brand

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/brand/dto"
	"github.com/rasoihq/kitchen-service/internal/model"
)

type UseCase interface {
	CreateBrand(ctx context.Context, input *dto.CreateBrandInput) (*model.Brand, error)
	GetBrand(ctx context.Context, id string) (*model.Brand, error)
	ListBrands(ctx context.Context, filters *dto.BrandFilters) ([]model.Brand, int, error)
	UpdateBrand(ctx context.Context, input *dto.UpdateBrandInput) (*model.Brand, error)
	DeleteBrand(ctx context.Context, id string) error
}
