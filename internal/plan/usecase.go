package plan

import (
	"context"
	"errors"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/plan/dto"
)

var (
	ErrNotApproved     = errors.New("plan is not approved")
	ErrAlreadyConsumed = errors.New("plan has already been consumed")
	ErrMissingRecipes  = errors.New("plan has dishes without recipes")
	ErrBusy            = errors.New("plan is being processed by another request")
)

// RecipeSource supplies the full recipe set for matching dishes.
type RecipeSource interface {
	ListAll(ctx context.Context) ([]model.Recipe, error)
}

// InventorySource supplies the inventory snapshot deductions apply to.
type InventorySource interface {
	ListAll(ctx context.Context) ([]model.InventoryItem, error)
}

type UseCase interface {
	CreatePlan(ctx context.Context, input *dto.CreatePlanInput) (*model.ProductionPlan, error)
	GetPlan(ctx context.Context, id string) (*model.ProductionPlan, error)
	ListPlans(ctx context.Context, filters *dto.PlanFilters) ([]model.ProductionPlan, int, error)
	UpdatePlan(ctx context.Context, input *dto.UpdatePlanInput) (*model.ProductionPlan, error)
	DeletePlan(ctx context.Context, id string) error

	ApprovePlan(ctx context.Context, id string) (*model.ProductionPlan, error)
	// CheckMissingRecipes lists planned dishes that no recipe resolves.
	CheckMissingRecipes(ctx context.Context, id string) ([]string, error)
	// ConsumePlan deducts ingredient stock for everything cooked under the plan.
	ConsumePlan(ctx context.Context, id, userID string) (*model.ProductionPlan, error)
}
