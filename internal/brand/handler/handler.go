package handler

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/brand"
	"github.com/rasoihq/kitchen-service/internal/brand/dto"
	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/pkg/i18n"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type BrandHandler struct {
	uc     brand.UseCase
	logger logger.ZapLogger
}

func NewBrandHandler(uc brand.UseCase, log logger.ZapLogger) *BrandHandler {
	return &BrandHandler{uc: uc, logger: log}
}

// Create handles POST /api/v1/brands
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateBrandInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "name"}))
		return
	}

	b, err := h.uc.CreateBrand(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create brand", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusCreated, b)
}

// List handles GET /api/v1/brands
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.BrandFilters{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 0),
	}
	if active := r.URL.Query().Get("is_active"); active != "" {
		v := active == "true"
		filters.IsActive = &v
	}

	brands, total, err := h.uc.ListBrands(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list brands", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to list brands")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": brands, "total": total})
}

// Update handles PATCH /api/v1/brands/{id}
func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateBrandInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ID = r.PathValue("id")

	b, err := h.uc.UpdateBrand(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to update brand", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

// Delete handles DELETE /api/v1/brands/{id}
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteBrand(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to delete brand", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to delete brand")
		return
	}
	respond.JSON(w, http.StatusNoContent, nil)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
