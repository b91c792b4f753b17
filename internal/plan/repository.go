package plan

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/plan/dto"
)

type Repository interface {
	Create(ctx context.Context, plan *model.ProductionPlan) error
	FindByID(ctx context.Context, id string) (*model.ProductionPlan, error)
	FindAll(ctx context.Context, filters *dto.PlanFilters) ([]model.ProductionPlan, int, error)
	// ListOpen returns approved plans whose inventory has not been deducted yet.
	ListOpen(ctx context.Context) ([]model.ProductionPlan, error)
	Update(ctx context.Context, plan *model.ProductionPlan) error
	Delete(ctx context.Context, id string) error

	// ConsumeWithDeductions flips is_consumed, writes the deducted item rows and
	// logs their movements in one transaction. Returns ErrAlreadyConsumed when
	// another caller got there first.
	ConsumeWithDeductions(ctx context.Context, plan *model.ProductionPlan, items []model.InventoryItem, movements []model.InventoryMovement) error
}
