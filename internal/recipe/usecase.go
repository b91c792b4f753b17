package recipe

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/recipe/dto"
)

type UseCase interface {
	CreateRecipe(ctx context.Context, input *dto.CreateRecipeInput) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	ListRecipes(ctx context.Context, filters *dto.RecipeFilters) ([]model.Recipe, int, error)
	UpdateRecipe(ctx context.Context, input *dto.UpdateRecipeInput) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	SearchRecipes(ctx context.Context, query string, page, pageSize int) ([]model.Recipe, int, error)
	// PendingDishes lists dish names that appear in open (approved, unconsumed)
	// plans but resolve to no recipe.
	PendingDishes(ctx context.Context) ([]string, error)
}
