package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/events"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/recipe"
	"github.com/rasoihq/kitchen-service/internal/recipe/dto"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/search"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

const recipesIndex = "recipes"

type recipeUseCase struct {
	repo     recipe.Repository
	plans    recipe.PlanSource
	es       *search.Client
	notifier events.Notifier
	logger   logger.ZapLogger
}

func NewRecipeUseCase(repo recipe.Repository, plans recipe.PlanSource, es *search.Client, notifier events.Notifier, log logger.ZapLogger) recipe.UseCase {
	return &recipeUseCase{
		repo:     repo,
		plans:    plans,
		es:       es,
		notifier: notifier,
		logger:   log,
	}
}

func (uc *recipeUseCase) CreateRecipe(ctx context.Context, input *dto.CreateRecipeInput) (*model.Recipe, error) {
	existing, err := uc.repo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("a recipe with this name already exists")
	}

	now := time.Now()
	rec := &model.Recipe{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
	}
	rec.Ingredients = buildIngredients(rec.ID, input.Ingredients)

	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, rec, stream.ActionCreated)
	return rec, nil
}

func (uc *recipeUseCase) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *recipeUseCase) ListRecipes(ctx context.Context, filters *dto.RecipeFilters) ([]model.Recipe, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *recipeUseCase) UpdateRecipe(ctx context.Context, input *dto.UpdateRecipeInput) (*model.Recipe, error) {
	rec, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("recipe not found")
	}

	rec.Name = input.Name
	rec.UpdatedAt = time.Now()
	rec.Ingredients = buildIngredients(rec.ID, input.Ingredients)

	if err := uc.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, rec, stream.ActionUpdated)
	return rec, nil
}

func (uc *recipeUseCase) DeleteRecipe(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), recipesIndex, id); err != nil {
				uc.logger.Error("failed to delete recipe from search index", zap.Error(err))
			}
		}()
	}
	uc.notifier.Notify(ctx, events.CollectionRecipes, stream.ActionDeleted, id)
	return nil
}

func (uc *recipeUseCase) SearchRecipes(ctx context.Context, query string, page, pageSize int) ([]model.Recipe, int, error) {
	if query != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"query_string": map[string]interface{}{
					"query":  fmt.Sprintf("*%s*", query),
					"fields": []string{"name^3", "ingredients.name"},
				},
			},
			"from": (page - 1) * pageSize,
		}
		if pageSize > 0 {
			q["size"] = pageSize
		}

		res, err := uc.es.Search(ctx, recipesIndex, q)
		if err == nil {
			var recipes []model.Recipe
			for _, hit := range res.Hits.Hits {
				var rec model.Recipe
				if err := json.Unmarshal(hit.Source, &rec); err == nil {
					recipes = append(recipes, rec)
				}
			}
			return recipes, res.Hits.Total.Value, nil
		}
		uc.logger.Error("recipe search failed, falling back to DB", zap.Error(err))
	}

	return uc.repo.FindAll(ctx, &dto.RecipeFilters{Page: page, PageSize: pageSize})
}

// PendingDishes reports planned dishes with no matching recipe. These are the
// dishes the forecaster silently skips.
func (uc *recipeUseCase) PendingDishes(ctx context.Context) ([]string, error) {
	plans, err := uc.plans.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := model.BuildRecipeIndex(recipes)
	seen := make(map[string]string) // normalized -> display name
	for _, plan := range plans {
		for _, name := range plan.DishNames() {
			if _, ok := idx.Resolve(name); ok {
				continue
			}
			key := model.NormalizeKey(name)
			if _, dup := seen[key]; !dup {
				seen[key] = name
			}
		}
	}

	pending := make([]string, 0, len(seen))
	for _, name := range seen {
		pending = append(pending, name)
	}
	sort.Strings(pending)
	return pending, nil
}

func buildIngredients(recipeID string, inputs []dto.IngredientInput) []model.Ingredient {
	ingredients := make([]model.Ingredient, 0, len(inputs))
	for _, in := range inputs {
		factor := in.ConversionFactor
		if factor == 0 {
			factor = 1
		}
		ingredients = append(ingredients, model.Ingredient{
			ID:               uuid.New().String(),
			RecipeID:         recipeID,
			Name:             in.Name,
			Amount:           in.Amount,
			Unit:             in.Unit,
			InventoryItemID:  in.InventoryItemID,
			ConversionFactor: factor,
		})
	}
	return ingredients
}

func (uc *recipeUseCase) afterWrite(ctx context.Context, rec *model.Recipe, action string) {
	if uc.es != nil {
		go uc.syncToElastic(context.Background(), rec)
	}
	uc.notifier.Notify(ctx, events.CollectionRecipes, action, rec.ID)
}

func (uc *recipeUseCase) syncToElastic(ctx context.Context, rec *model.Recipe) {
	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"ingredients": {
					"properties": {
						"name": { "type": "text" }
					}
				},
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, recipesIndex, mapping)

	if err := uc.es.Index(ctx, recipesIndex, rec.ID, rec); err != nil {
		uc.logger.Error("failed to index recipe", zap.Error(err))
	}
}
