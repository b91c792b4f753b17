package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/events"
	"github.com/rasoihq/kitchen-service/internal/inventory"
	"github.com/rasoihq/kitchen-service/internal/inventory/dto"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/pkg/cache"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/search"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

const itemsIndex = "inventory_items"

type inventoryUseCase struct {
	repo     inventory.Repository
	cache    *cache.RedisClient
	es       *search.Client
	notifier events.Notifier
	logger   logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, redis *cache.RedisClient, es *search.Client, notifier events.Notifier, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:     repo,
		cache:    redis,
		es:       es,
		notifier: notifier,
		logger:   log,
	}
}

func (uc *inventoryUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.InventoryItem, error) {
	existing, err := uc.repo.FindByNameBrand(ctx, input.Name, input.Brand)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("an item with this name and brand already exists")
	}

	now := time.Now()
	item := &model.InventoryItem{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:         input.Name,
		Brand:        input.Brand,
		Category:     input.Category,
		Unit:         input.Unit,
		Quantity:     input.Quantity,
		Reserved:     input.Reserved,
		ReorderLevel: input.ReorderLevel,
		LastPrice:    input.LastPrice,
	}
	item.Reclassify()

	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, item, stream.ActionCreated)
	return item, nil
}

func (uc *inventoryUseCase) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *inventoryUseCase) ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error) {
	cacheKey, err := uc.listCacheKey(filters)
	if err == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached struct {
				Items []model.InventoryItem
				Count int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Items, cached.Count, nil
			}
		}
	}

	items, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		payload := struct {
			Items []model.InventoryItem
			Count int
		}{Items: items, Count: count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return items, count, nil
}

func (uc *inventoryUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.InventoryItem, error) {
	item, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("inventory item not found")
	}

	item.Name = input.Name
	item.Brand = input.Brand
	item.Category = input.Category
	item.Unit = input.Unit
	item.Quantity = input.Quantity
	item.Reserved = input.Reserved
	item.ReorderLevel = input.ReorderLevel
	item.LastPrice = input.LastPrice
	item.UpdatedAt = time.Now()
	item.Reclassify()

	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, item, stream.ActionUpdated)
	return item, nil
}

func (uc *inventoryUseCase) DeleteItem(ctx context.Context, id string) error {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), itemsIndex, id); err != nil {
				uc.logger.Error("failed to delete item from search index", zap.Error(err))
			}
		}()
	}
	uc.notifier.Notify(ctx, events.CollectionInventory, stream.ActionDeleted, id)
	return nil
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, error) {
	lockKey := "lock:inventory:" + input.ItemID
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, errors.New("system busy, please try again later")
	}
	defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)

	item, err := uc.repo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("inventory item not found")
	}

	now := time.Now()
	quantityBefore := item.Quantity
	item.Quantity += input.QuantityChange
	if item.Quantity < 0 {
		return nil, errors.New("insufficient inventory")
	}
	item.UpdatedAt = now
	item.Reclassify()

	var refID, refType, createdBy *string
	if input.ReferenceID != "" {
		refID = &input.ReferenceID
	}
	if input.ReferenceType != "" {
		refType = &input.ReferenceType
	}
	if input.UserID != "" {
		createdBy = &input.UserID
	}

	movement := &model.InventoryMovement{
		ID:             uuid.New().String(),
		ItemID:         item.ID,
		MovementType:   model.MovementAdjustment,
		QuantityChange: input.QuantityChange,
		QuantityBefore: quantityBefore,
		QuantityAfter:  item.Quantity,
		ReferenceType:  refType,
		ReferenceID:    refID,
		Notes:          input.Reason,
		CreatedBy:      createdBy,
		CreatedAt:      now,
	}

	if err := uc.repo.AdjustStockWithMovement(ctx, item, movement); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, item, stream.ActionUpdated)
	return item, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) SearchItems(ctx context.Context, query string, page, pageSize int) ([]model.InventoryItem, int, error) {
	if query != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"query_string": map[string]interface{}{
					"query":  fmt.Sprintf("*%s*", query),
					"fields": []string{"name^3", "brand", "category"},
				},
			},
			"from": (page - 1) * pageSize,
		}
		if pageSize > 0 {
			q["size"] = pageSize
		}

		res, err := uc.es.Search(ctx, itemsIndex, q)
		if err == nil {
			var items []model.InventoryItem
			for _, hit := range res.Hits.Hits {
				var item model.InventoryItem
				if err := json.Unmarshal(hit.Source, &item); err == nil {
					items = append(items, item)
				}
			}
			return items, res.Hits.Total.Value, nil
		}
		uc.logger.Error("search failed, falling back to DB", zap.Error(err))
	}

	// SQL fallback: status-agnostic full list filtered by name prefix is good
	// enough when ES is down.
	return uc.repo.FindAll(ctx, &dto.ItemFilters{Page: page, PageSize: pageSize})
}

func (uc *inventoryUseCase) listCacheKey(filters *dto.ItemFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("inventory:list:%x", md5.Sum(data)), nil
}

// afterWrite handles the bookkeeping every successful item write shares:
// search sync, cache invalidation via change event, subscriber notification.
func (uc *inventoryUseCase) afterWrite(ctx context.Context, item *model.InventoryItem, action string) {
	if uc.es != nil {
		go uc.syncToElastic(context.Background(), item)
	}
	uc.notifier.Notify(ctx, events.CollectionInventory, action, item.ID)
}

func (uc *inventoryUseCase) syncToElastic(ctx context.Context, item *model.InventoryItem) {
	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"brand": { "type": "text" },
				"category": { "type": "text" },
				"status": { "type": "keyword" },
				"quantity": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, itemsIndex, mapping)

	if err := uc.es.Index(ctx, itemsIndex, item.ID, item); err != nil {
		uc.logger.Error("failed to index inventory item", zap.Error(err))
	}
}
