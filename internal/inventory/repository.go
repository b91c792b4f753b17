package inventory

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/inventory/dto"
	"github.com/rasoihq/kitchen-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id string) (*model.InventoryItem, error)
	// FindByNameBrand matches case-insensitively on the (name, brand) pair.
	FindByNameBrand(ctx context.Context, name, brand string) (*model.InventoryItem, error)
	FindAll(ctx context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error)
	// ListAll returns the whole inventory snapshot in stable (creation) order,
	// for computation passes.
	ListAll(ctx context.Context) ([]model.InventoryItem, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id string) error

	// Movements / audit
	LogMovement(ctx context.Context, movement *model.InventoryMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)

	// Transaction support
	AdjustStockWithMovement(ctx context.Context, item *model.InventoryItem, movement *model.InventoryMovement) error
}
