package procurement

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/procurement/dto"
)

type Repository interface {
	CreateRequest(ctx context.Context, req *model.ProcurementRequest) error
	FindRequestByID(ctx context.Context, id string) (*model.ProcurementRequest, error)
	ListRequests(ctx context.Context) ([]model.ProcurementRequest, error)
	DeleteRequest(ctx context.Context, id string) error

	FindOrderByID(ctx context.Context, id string) (*model.PurchaseOrder, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.PurchaseOrder, int, error)

	// FinalizeOrder assigns the next order number, inserts the order with its
	// line items and deletes the sourcing manual requests, all in one
	// transaction.
	FinalizeOrder(ctx context.Context, order *model.PurchaseOrder, requestIDs []string) error

	// ReceiveOrderWithRestock flips the order to received and applies the
	// prepared inventory increments and movements atomically. Returns
	// ErrAlreadyReceived when the order is not pending anymore.
	ReceiveOrderWithRestock(ctx context.Context, order *model.PurchaseOrder, items []model.InventoryItem, movements []model.InventoryMovement) error
}
