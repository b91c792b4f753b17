package inventory

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/inventory/dto"
	"github.com/rasoihq/kitchen-service/internal/model"
)

type UseCase interface {
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*model.InventoryItem, error)
	ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error)
	UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
	SearchItems(ctx context.Context, query string, page, pageSize int) ([]model.InventoryItem, int, error)
}
