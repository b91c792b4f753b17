package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/auth"
	"github.com/rasoihq/kitchen-service/internal/procurement"
	"github.com/rasoihq/kitchen-service/internal/procurement/dto"
	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/pkg/i18n"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type ProcurementHandler struct {
	uc     procurement.UseCase
	logger logger.ZapLogger
}

func NewProcurementHandler(uc procurement.UseCase, log logger.ZapLogger) *ProcurementHandler {
	return &ProcurementHandler{uc: uc, logger: log}
}

// Queue handles GET /api/v1/procurements
func (h *ProcurementHandler) Queue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.uc.Queue(r.Context())
	if err != nil {
		h.logger.Error("failed to build procurement queue", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to build procurement queue")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": queue})
}

// CreateRequest handles POST /api/v1/procurements
func (h *ProcurementHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateRequestInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(input.IngredientName) == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "ingredient_name"}))
		return
	}

	req, err := h.uc.CreateRequest(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create procurement request", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusCreated, req)
}

// DeleteRequest handles DELETE /api/v1/procurements/{id}
func (h *ProcurementHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteRequest(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, procurement.ErrDerivedDelete) {
			respond.Error(w, http.StatusConflict, i18n.T("en", "ErrDerivedRequestDelete", nil))
			return
		}
		h.logger.Error("failed to delete procurement request", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to delete procurement request")
		return
	}
	respond.JSON(w, http.StatusNoContent, nil)
}

// DraftOrder handles POST /api/v1/orders/draft
func (h *ProcurementHandler) DraftOrder(w http.ResponseWriter, r *http.Request) {
	var input dto.DraftOrderInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines, err := h.uc.DraftOrder(r.Context(), input.IDs)
	if err != nil {
		h.logger.Error("failed to draft order", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to draft order")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": lines})
}

// FinalizeOrder handles POST /api/v1/orders
func (h *ProcurementHandler) FinalizeOrder(w http.ResponseWriter, r *http.Request) {
	var input dto.FinalizeOrderInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.uc.FinalizeOrder(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, procurement.ErrNoVendor):
			respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrOrderNoVendor", nil))
		case errors.Is(err, procurement.ErrNoItems):
			respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrOrderNoItems", nil))
		default:
			h.logger.Error("failed to finalize order", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "failed to finalize order")
		}
		return
	}
	respond.JSON(w, http.StatusCreated, order)
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *ProcurementHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.uc.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to get order", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if order == nil {
		respond.Error(w, http.StatusNotFound, i18n.T("en", "ErrNotFound", nil))
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

// ListOrders handles GET /api/v1/orders
func (h *ProcurementHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filters := &dto.OrderFilters{
		Status:   r.URL.Query().Get("status"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 0),
	}

	orders, total, err := h.uc.ListOrders(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": orders, "total": total})
}

// ReceiveOrder handles POST /api/v1/orders/{id}/receive
func (h *ProcurementHandler) ReceiveOrder(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r.Context())
	order, err := h.uc.ReceiveOrder(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, procurement.ErrAlreadyReceived):
			respond.Error(w, http.StatusConflict, i18n.T("en", "ErrOrderAlreadyReceived", nil))
		case errors.Is(err, procurement.ErrLineUnmatched):
			respond.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, procurement.ErrBusy):
			respond.Error(w, http.StatusServiceUnavailable, i18n.T("en", "ErrBusy", nil))
		default:
			h.logger.Error("failed to receive order", zap.Error(err))
			respond.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
