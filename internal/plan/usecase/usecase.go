package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/events"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/plan"
	"github.com/rasoihq/kitchen-service/internal/plan/dto"
	"github.com/rasoihq/kitchen-service/pkg/cache"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

type planUseCase struct {
	repo      plan.Repository
	recipes   plan.RecipeSource
	inventory plan.InventorySource
	cache     *cache.RedisClient
	notifier  events.Notifier
	logger    logger.ZapLogger
}

func NewPlanUseCase(repo plan.Repository, recipes plan.RecipeSource, inv plan.InventorySource, redis *cache.RedisClient, notifier events.Notifier, log logger.ZapLogger) plan.UseCase {
	return &planUseCase{
		repo:      repo,
		recipes:   recipes,
		inventory: inv,
		cache:     redis,
		notifier:  notifier,
		logger:    log,
	}
}

func (uc *planUseCase) CreatePlan(ctx context.Context, input *dto.CreatePlanInput) (*model.ProductionPlan, error) {
	date, err := time.Parse(model.PlanDateLayout, input.Date)
	if err != nil {
		return nil, errors.New("invalid plan date, expected YYYY-MM-DD")
	}

	now := time.Now()
	p := &model.ProductionPlan{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Date:       date,
		Meals:      input.Meals,
		Headcounts: input.Headcounts,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionPlans, stream.ActionCreated, p.ID)
	return p, nil
}

func (uc *planUseCase) GetPlan(ctx context.Context, id string) (*model.ProductionPlan, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *planUseCase) ListPlans(ctx context.Context, filters *dto.PlanFilters) ([]model.ProductionPlan, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *planUseCase) UpdatePlan(ctx context.Context, input *dto.UpdatePlanInput) (*model.ProductionPlan, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("plan not found")
	}
	if p.IsConsumed {
		return nil, plan.ErrAlreadyConsumed
	}

	if input.Date != "" {
		date, err := time.Parse(model.PlanDateLayout, input.Date)
		if err != nil {
			return nil, errors.New("invalid plan date, expected YYYY-MM-DD")
		}
		p.Date = date
	}
	p.Meals = input.Meals
	p.Headcounts = input.Headcounts
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionPlans, stream.ActionUpdated, p.ID)
	return p, nil
}

func (uc *planUseCase) DeletePlan(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	if p.IsConsumed {
		return plan.ErrAlreadyConsumed
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.notifier.Notify(ctx, events.CollectionPlans, stream.ActionDeleted, id)
	return nil
}

func (uc *planUseCase) ApprovePlan(ctx context.Context, id string) (*model.ProductionPlan, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("plan not found")
	}
	if p.IsApproved {
		return p, nil
	}

	p.IsApproved = true
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionPlans, stream.ActionUpdated, p.ID)
	return p, nil
}

func (uc *planUseCase) CheckMissingRecipes(ctx context.Context, id string) ([]string, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("plan not found")
	}

	recipes, err := uc.recipes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return plan.MissingRecipes(p, model.BuildRecipeIndex(recipes)), nil
}

// ConsumePlan turns a plan's recorded cooking into inventory deductions. Every
// dish must resolve to a recipe before anything is deducted; the whole
// operation commits or fails as one transaction.
func (uc *planUseCase) ConsumePlan(ctx context.Context, id, userID string) (*model.ProductionPlan, error) {
	lockKey := "lock:plan:consume:" + id
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 10*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire consume lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, plan.ErrBusy
	}
	defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("plan not found")
	}
	if !p.IsApproved {
		return nil, plan.ErrNotApproved
	}
	if p.IsConsumed {
		return nil, plan.ErrAlreadyConsumed
	}

	recipes, err := uc.recipes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := model.BuildRecipeIndex(recipes)
	if missing := plan.MissingRecipes(p, idx); len(missing) > 0 {
		uc.logger.Warn("plan consume blocked by missing recipes",
			zap.String("plan_id", id), zap.Strings("dishes", missing))
		return nil, plan.ErrMissingRecipes
	}

	items, err := uc.inventory.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	deductions := plan.BuildDeductions(p, idx, items)

	now := time.Now()
	var createdBy *string
	if userID != "" {
		createdBy = &userID
	}
	refType := "production_plan"

	byID := make(map[string]*model.InventoryItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	var updated []model.InventoryItem
	var movements []model.InventoryMovement
	for itemID, qty := range deductions {
		if qty <= 0 {
			continue
		}
		item := byID[itemID]
		before := item.Quantity
		item.Quantity -= qty
		if item.Quantity < 0 {
			// Stock records can lag reality; deduct what exists and floor at zero.
			item.Quantity = 0
		}
		item.UpdatedAt = now
		item.Reclassify()
		updated = append(updated, *item)

		movements = append(movements, model.InventoryMovement{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			MovementType:   model.MovementConsumption,
			QuantityChange: item.Quantity - before,
			QuantityBefore: before,
			QuantityAfter:  item.Quantity,
			ReferenceType:  &refType,
			ReferenceID:    &p.ID,
			Notes:          "production plan consumption",
			CreatedBy:      createdBy,
			CreatedAt:      now,
		})
	}

	p.IsConsumed = true
	p.UpdatedAt = now
	if err := uc.repo.ConsumeWithDeductions(ctx, p, updated, movements); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionPlans, stream.ActionUpdated, p.ID)
	for i := range updated {
		uc.notifier.Notify(ctx, events.CollectionInventory, stream.ActionUpdated, updated[i].ID)
	}
	return p, nil
}
