package handler

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/auth"
	"github.com/rasoihq/kitchen-service/internal/inventory"
	"github.com/rasoihq/kitchen-service/internal/inventory/dto"
	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/pkg/i18n"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: log}
}

// Create handles POST /api/v1/inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateItemInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "name"}))
		return
	}

	item, err := h.uc.CreateItem(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create inventory item", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusCreated, item)
}

// Get handles GET /api/v1/inventory/{id}
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.uc.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to get inventory item", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		respond.Error(w, http.StatusNotFound, i18n.T("en", "ErrNotFound", nil))
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

// List handles GET /api/v1/inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.ItemFilters{
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
		LowStock: r.URL.Query().Get("low_stock") == "true",
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 0),
	}

	items, total, err := h.uc.ListItems(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list inventory", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to list inventory")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": items, "total": total})
}

// Update handles PUT /api/v1/inventory/{id}
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateItemInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ID = r.PathValue("id")

	item, err := h.uc.UpdateItem(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to update inventory item", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to delete inventory item", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	respond.JSON(w, http.StatusNoContent, nil)
}

// Adjust handles POST /api/v1/inventory/{id}/adjust
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var input dto.AdjustStockInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ItemID = r.PathValue("id")
	input.UserID = auth.GetUserID(r.Context())

	item, err := h.uc.AdjustStock(r.Context(), &input)
	if err != nil {
		h.logger.Warn("failed to adjust stock", zap.Error(err))
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "busy") {
			status = http.StatusConflict
		}
		respond.Error(w, status, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

// Movements handles GET /api/v1/inventory/movements
func (h *InventoryHandler) Movements(w http.ResponseWriter, r *http.Request) {
	filters := &dto.MovementFilters{
		ItemID:       r.URL.Query().Get("item_id"),
		MovementType: r.URL.Query().Get("movement_type"),
		Page:         queryInt(r, "page", 1),
		PageSize:     queryInt(r, "page_size", 50),
	}

	movements, total, err := h.uc.ListMovements(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list movements", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to list movements")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": movements, "total": total})
}

// Search handles GET /api/v1/inventory/search
func (h *InventoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.uc.SearchItems(
		r.Context(),
		r.URL.Query().Get("q"),
		queryInt(r, "page", 1),
		queryInt(r, "page_size", 20),
	)
	if err != nil {
		h.logger.Error("inventory search failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "search failed")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": items, "total": total})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
