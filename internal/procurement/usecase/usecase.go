package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/config"
	"github.com/rasoihq/kitchen-service/internal/events"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/procurement"
	"github.com/rasoihq/kitchen-service/internal/procurement/dto"
	"github.com/rasoihq/kitchen-service/pkg/cache"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

type procurementUseCase struct {
	repo      procurement.Repository
	inventory procurement.InventorySource
	cache     *cache.RedisClient
	notifier  events.Notifier
	cfg       config.ProcurementConfig
	logger    logger.ZapLogger
}

func NewProcurementUseCase(repo procurement.Repository, inv procurement.InventorySource, redis *cache.RedisClient, notifier events.Notifier, cfg config.ProcurementConfig, log logger.ZapLogger) procurement.UseCase {
	return &procurementUseCase{
		repo:      repo,
		inventory: inv,
		cache:     redis,
		notifier:  notifier,
		cfg:       cfg,
		logger:    log,
	}
}

func (uc *procurementUseCase) Queue(ctx context.Context) ([]model.PendingProcurement, error) {
	items, err := uc.inventory.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := uc.repo.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	return procurement.BuildQueue(items, requests, time.Now()), nil
}

func (uc *procurementUseCase) CreateRequest(ctx context.Context, input *dto.CreateRequestInput) (*model.ProcurementRequest, error) {
	now := time.Now()
	requiredBy := now
	if input.RequiredBy != "" {
		parsed, err := time.Parse(model.PlanDateLayout, input.RequiredBy)
		if err != nil {
			return nil, errors.New("invalid required_by date, expected YYYY-MM-DD")
		}
		requiredBy = parsed
	}

	req := &model.ProcurementRequest{
		ID:             uuid.New().String(),
		IngredientName: input.IngredientName,
		Brand:          input.Brand,
		Unit:           input.Unit,
		RequiredQty:    input.RequiredQty,
		CurrentStock:   input.CurrentStock,
		ShortageQty:    input.ShortageQty,
		RequiredBy:     requiredBy,
		CreatedAt:      now,
	}
	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionProcurements, stream.ActionCreated, req.ID)
	return req, nil
}

func (uc *procurementUseCase) DeleteRequest(ctx context.Context, id string) error {
	if strings.HasPrefix(id, model.DerivedShortagePrefix) {
		return procurement.ErrDerivedDelete
	}
	if err := uc.repo.DeleteRequest(ctx, id); err != nil {
		return err
	}

	uc.notifier.Notify(ctx, events.CollectionProcurements, stream.ActionDeleted, id)
	return nil
}

// DraftOrder turns selected queue entries into zero-priced line items seeded
// with the required quantity. Derived ids resolve against live inventory,
// manual ids against their persisted request.
func (uc *procurementUseCase) DraftOrder(ctx context.Context, ids []string) ([]model.PurchaseOrderItem, error) {
	lines := make([]model.PurchaseOrderItem, 0, len(ids))
	for _, id := range ids {
		if itemID, ok := strings.CutPrefix(id, model.DerivedShortagePrefix); ok {
			item, err := uc.inventory.FindByID(ctx, itemID)
			if err != nil {
				return nil, err
			}
			if item == nil {
				continue
			}
			shortage := model.DerivedShortage(item, time.Now())
			lines = append(lines, model.PurchaseOrderItem{
				IngredientName: shortage.IngredientName,
				Brand:          shortage.Brand,
				Quantity:       shortage.RequiredQty,
				Unit:           shortage.Unit,
				PriceAtOrder:   decimal.Zero,
			})
			continue
		}

		req, err := uc.repo.FindRequestByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if req == nil {
			continue
		}
		lines = append(lines, model.PurchaseOrderItem{
			IngredientName: req.IngredientName,
			Brand:          req.Brand,
			Quantity:       req.RequiredQty,
			Unit:           req.Unit,
			PriceAtOrder:   decimal.Zero,
		})
	}
	return lines, nil
}

func (uc *procurementUseCase) FinalizeOrder(ctx context.Context, input *dto.FinalizeOrderInput) (*model.PurchaseOrder, error) {
	if strings.TrimSpace(input.VendorName) == "" {
		return nil, procurement.ErrNoVendor
	}
	if len(input.Items) == 0 {
		return nil, procurement.ErrNoItems
	}

	now := time.Now()
	order := &model.PurchaseOrder{
		BaseModel:        model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		VendorName:       input.VendorName,
		Status:           model.POPending,
		ExpectedDelivery: now.AddDate(0, 0, uc.cfg.ExpectedDeliveryDays),
	}
	if input.VendorID != "" {
		order.VendorID = &input.VendorID
	}

	total := decimal.Zero
	for _, line := range input.Items {
		item := model.PurchaseOrderItem{
			ID:             uuid.New().String(),
			OrderID:        order.ID,
			IngredientName: line.IngredientName,
			Brand:          line.Brand,
			Quantity:       line.Quantity,
			Unit:           line.Unit,
			PriceAtOrder:   line.UnitPrice,
		}
		total = total.Add(item.LineTotal())
		order.Items = append(order.Items, item)
	}
	order.TotalCost = total

	// Only manual requests get deleted; derived shortages vanish on restock.
	requestIDs := make([]string, 0, len(input.RequestIDs))
	for _, id := range input.RequestIDs {
		if !strings.HasPrefix(id, model.DerivedShortagePrefix) {
			requestIDs = append(requestIDs, id)
		}
	}

	if err := uc.repo.FinalizeOrder(ctx, order, requestIDs); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionOrders, stream.ActionCreated, order.ID)
	for _, id := range requestIDs {
		uc.notifier.Notify(ctx, events.CollectionProcurements, stream.ActionDeleted, id)
	}
	return order, nil
}

func (uc *procurementUseCase) GetOrder(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	return uc.repo.FindOrderByID(ctx, id)
}

func (uc *procurementUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.PurchaseOrder, int, error) {
	return uc.repo.ListOrders(ctx, filters)
}

func (uc *procurementUseCase) ReceiveOrder(ctx context.Context, id, userID string) (*model.PurchaseOrder, error) {
	lockKey := "lock:order:receive:" + id
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 10*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire receive lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, procurement.ErrBusy
	}
	defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)

	order, err := uc.repo.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("purchase order not found")
	}
	if order.Status != model.POPending {
		return nil, procurement.ErrAlreadyReceived
	}

	now := time.Now()
	var createdBy *string
	if userID != "" {
		createdBy = &userID
	}
	refType := "purchase_order"

	var updated []model.InventoryItem
	var movements []model.InventoryMovement
	for i := range order.Items {
		line := &order.Items[i]
		item, err := uc.inventory.FindByNameBrand(ctx, line.IngredientName, line.Brand)
		if err != nil {
			return nil, err
		}
		if item == nil {
			if uc.cfg.ReceiptMissPolicy == "error" {
				return nil, fmt.Errorf("%w: %s (%s)", procurement.ErrLineUnmatched, line.IngredientName, line.Brand)
			}
			uc.logger.Warn("order line matched no inventory item, skipping",
				zap.String("order_id", id),
				zap.String("ingredient", line.IngredientName),
				zap.String("brand", line.Brand))
			continue
		}

		before := item.Quantity
		item.Quantity += line.Quantity
		item.LastPrice = line.PriceAtOrder
		item.LastRestocked = &now
		item.UpdatedAt = now
		item.Reclassify()
		updated = append(updated, *item)

		movements = append(movements, model.InventoryMovement{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			MovementType:   model.MovementReceipt,
			QuantityChange: line.Quantity,
			QuantityBefore: before,
			QuantityAfter:  item.Quantity,
			ReferenceType:  &refType,
			ReferenceID:    &order.ID,
			Notes:          "purchase order receipt " + order.OrderNumber,
			CreatedBy:      createdBy,
			CreatedAt:      now,
		})
	}

	order.Status = model.POReceived
	order.ReceivedAt = &now
	order.UpdatedAt = now
	if err := uc.repo.ReceiveOrderWithRestock(ctx, order, updated, movements); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionOrders, stream.ActionUpdated, order.ID)
	for i := range updated {
		uc.notifier.Notify(ctx, events.CollectionInventory, stream.ActionUpdated, updated[i].ID)
	}
	return order, nil
}
