package recipe

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/recipe/dto"
)

type Repository interface {
	// Create and Update write the recipe and its ingredient rows in one
	// transaction; Update replaces the ingredient set wholesale.
	Create(ctx context.Context, r *model.Recipe) error
	Update(ctx context.Context, r *model.Recipe) error
	FindByID(ctx context.Context, id string) (*model.Recipe, error)
	FindByName(ctx context.Context, name string) (*model.Recipe, error)
	FindAll(ctx context.Context, filters *dto.RecipeFilters) ([]model.Recipe, int, error)
	// ListAll returns every recipe with ingredients attached, for computation
	// passes that need the full BOM set.
	ListAll(ctx context.Context) ([]model.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// PlanSource is the slice of the plan store the recipe domain needs to surface
// dishes that are planned but have no recipe yet.
type PlanSource interface {
	ListOpen(ctx context.Context) ([]model.ProductionPlan, error)
}
