package procurement

import (
	"context"
	"errors"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/procurement/dto"
)

var (
	ErrDerivedDelete   = errors.New("derived shortages cannot be deleted")
	ErrAlreadyReceived = errors.New("order has already been received")
	ErrNoVendor        = errors.New("order has no vendor assigned")
	ErrNoItems         = errors.New("order has no line items")
	ErrLineUnmatched   = errors.New("no inventory record matches an order line")
	ErrBusy            = errors.New("order is being processed by another request")
)

// InventorySource is the slice of the inventory surface procurement reads:
// the snapshot for shortage detection and per-line lookup on receipt.
type InventorySource interface {
	ListAll(ctx context.Context) ([]model.InventoryItem, error)
	FindByID(ctx context.Context, id string) (*model.InventoryItem, error)
	FindByNameBrand(ctx context.Context, name, brand string) (*model.InventoryItem, error)
}

type UseCase interface {
	// Queue returns derived shortages merged with manual requests, newest first.
	Queue(ctx context.Context) ([]model.PendingProcurement, error)
	CreateRequest(ctx context.Context, input *dto.CreateRequestInput) (*model.ProcurementRequest, error)
	DeleteRequest(ctx context.Context, id string) error

	// DraftOrder resolves selected queue entries into zero-priced line items.
	DraftOrder(ctx context.Context, ids []string) ([]model.PurchaseOrderItem, error)
	FinalizeOrder(ctx context.Context, input *dto.FinalizeOrderInput) (*model.PurchaseOrder, error)
	GetOrder(ctx context.Context, id string) (*model.PurchaseOrder, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.PurchaseOrder, int, error)
	// ReceiveOrder restocks inventory from the order's lines and flips it to
	// received, exactly once.
	ReceiveOrder(ctx context.Context, id, userID string) (*model.PurchaseOrder, error)
}
