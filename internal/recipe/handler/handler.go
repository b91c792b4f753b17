package handler

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/recipe"
	"github.com/rasoihq/kitchen-service/internal/recipe/dto"
	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/pkg/i18n"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type RecipeHandler struct {
	uc     recipe.UseCase
	logger logger.ZapLogger
}

func NewRecipeHandler(uc recipe.UseCase, log logger.ZapLogger) *RecipeHandler {
	return &RecipeHandler{uc: uc, logger: log}
}

// Create handles POST /api/v1/recipes
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateRecipeInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "name"}))
		return
	}

	rec, err := h.uc.CreateRecipe(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create recipe", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusCreated, rec)
}

// Get handles GET /api/v1/recipes/{id}
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.uc.GetRecipe(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to get recipe", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if rec == nil {
		respond.Error(w, http.StatusNotFound, i18n.T("en", "ErrNotFound", nil))
		return
	}
	respond.JSON(w, http.StatusOK, rec)
}

// List handles GET /api/v1/recipes
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.RecipeFilters{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 0),
	}

	recipes, total, err := h.uc.ListRecipes(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list recipes", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": recipes, "total": total})
}

// Update handles PUT /api/v1/recipes/{id}
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateRecipeInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ID = r.PathValue("id")

	rec, err := h.uc.UpdateRecipe(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to update recipe", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/v1/recipes/{id}
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteRecipe(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to delete recipe", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}
	respond.JSON(w, http.StatusNoContent, nil)
}

// Search handles GET /api/v1/recipes/search
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	recipes, total, err := h.uc.SearchRecipes(
		r.Context(),
		r.URL.Query().Get("q"),
		queryInt(r, "page", 1),
		queryInt(r, "page_size", 20),
	)
	if err != nil {
		h.logger.Error("recipe search failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "search failed")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": recipes, "total": total})
}

// PendingDishes handles GET /api/v1/recipes/pending-dishes
func (h *RecipeHandler) PendingDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.uc.PendingDishes(r.Context())
	if err != nil {
		h.logger.Error("failed to list pending dishes", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to list pending dishes")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"dishes": dishes})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
