package handler

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/internal/vendors"
	"github.com/rasoihq/kitchen-service/internal/vendors/dto"
	"github.com/rasoihq/kitchen-service/pkg/i18n"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type VendorHandler struct {
	uc     vendor.UseCase
	logger logger.ZapLogger
}

func NewVendorHandler(uc vendor.UseCase, log logger.ZapLogger) *VendorHandler {
	return &VendorHandler{uc: uc, logger: log}
}

// Create handles POST /api/v1/vendors
func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateVendorInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "name"}))
		return
	}

	v, err := h.uc.CreateVendor(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create vendor", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusCreated, v)
}

// Get handles GET /api/v1/vendors/{id}
func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.uc.GetVendor(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to get vendor", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to get vendor")
		return
	}
	if v == nil {
		respond.Error(w, http.StatusNotFound, i18n.T("en", "ErrNotFound", nil))
		return
	}
	respond.JSON(w, http.StatusOK, v)
}

// List handles GET /api/v1/vendors
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.VendorFilters{
		ActiveOnly: r.URL.Query().Get("active") == "true",
		Page:       queryInt(r, "page", 1),
		PageSize:   queryInt(r, "page_size", 0),
	}

	vendors, total, err := h.uc.ListVendors(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list vendors", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to list vendors")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": vendors, "total": total})
}

// Update handles PUT /api/v1/vendors/{id}
func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateVendorInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ID = r.PathValue("id")

	v, err := h.uc.UpdateVendor(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to update vendor", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, v)
}

// Delete handles DELETE /api/v1/vendors/{id}
func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteVendor(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to delete vendor", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to delete vendor")
		return
	}
	respond.JSON(w, http.StatusNoContent, nil)
}

// SetQuotes handles PUT /api/v1/vendors/{id}/quotes
func (h *VendorHandler) SetQuotes(w http.ResponseWriter, r *http.Request) {
	var input dto.SetQuotesInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.uc.SetQuotes(r.Context(), r.PathValue("id"), input.Quotes)
	if err != nil {
		h.logger.Error("failed to set vendor quotes", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, v)
}

// MarketAnalysis handles GET /api/v1/vendors/market-analysis?item=...
func (h *VendorHandler) MarketAnalysis(w http.ResponseWriter, r *http.Request) {
	itemName := r.URL.Query().Get("item")
	if strings.TrimSpace(itemName) == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "item"}))
		return
	}

	analysis, err := h.uc.MarketAnalysis(r.Context(), itemName)
	if err != nil {
		h.logger.Error("failed to analyze market", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to analyze market")
		return
	}
	if analysis == nil {
		respond.Error(w, http.StatusNotFound, i18n.T("en", "ErrNotFound", nil))
		return
	}
	respond.JSON(w, http.StatusOK, analysis)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
