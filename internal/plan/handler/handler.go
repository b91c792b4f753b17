package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/auth"
	"github.com/rasoihq/kitchen-service/internal/plan"
	"github.com/rasoihq/kitchen-service/internal/plan/dto"
	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/pkg/i18n"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type PlanHandler struct {
	uc     plan.UseCase
	logger logger.ZapLogger
}

func NewPlanHandler(uc plan.UseCase, log logger.ZapLogger) *PlanHandler {
	return &PlanHandler{uc: uc, logger: log}
}

// Create handles POST /api/v1/plans
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreatePlanInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(input.Date) == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "date"}))
		return
	}

	p, err := h.uc.CreatePlan(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create plan", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusCreated, p)
}

// Get handles GET /api/v1/plans/{id}
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to get plan", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to get plan")
		return
	}
	if p == nil {
		respond.Error(w, http.StatusNotFound, i18n.T("en", "ErrNotFound", nil))
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// List handles GET /api/v1/plans
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.PlanFilters{
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
		Approved: queryBool(r, "approved"),
		Consumed: queryBool(r, "consumed"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 0),
	}

	plans, total, err := h.uc.ListPlans(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list plans", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to list plans")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": plans, "total": total})
}

// Update handles PUT /api/v1/plans/{id}
func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdatePlanInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ID = r.PathValue("id")

	p, err := h.uc.UpdatePlan(r.Context(), &input)
	if err != nil {
		h.respondPlanError(w, err, "failed to update plan")
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/v1/plans/{id}
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeletePlan(r.Context(), r.PathValue("id")); err != nil {
		h.respondPlanError(w, err, "failed to delete plan")
		return
	}
	respond.JSON(w, http.StatusNoContent, nil)
}

// Approve handles POST /api/v1/plans/{id}/approve
func (h *PlanHandler) Approve(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.ApprovePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondPlanError(w, err, "failed to approve plan")
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// MissingRecipes handles GET /api/v1/plans/{id}/missing-recipes
func (h *PlanHandler) MissingRecipes(w http.ResponseWriter, r *http.Request) {
	missing, err := h.uc.CheckMissingRecipes(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondPlanError(w, err, "failed to check recipes")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"missing": missing})
}

// Consume handles POST /api/v1/plans/{id}/consume
func (h *PlanHandler) Consume(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r.Context())
	p, err := h.uc.ConsumePlan(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		h.respondPlanError(w, err, "failed to consume plan")
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

func (h *PlanHandler) respondPlanError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, plan.ErrNotApproved):
		respond.Error(w, http.StatusConflict, i18n.T("en", "ErrPlanNotApproved", nil))
	case errors.Is(err, plan.ErrAlreadyConsumed):
		respond.Error(w, http.StatusConflict, i18n.T("en", "ErrPlanAlreadyConsumed", nil))
	case errors.Is(err, plan.ErrMissingRecipes):
		respond.Error(w, http.StatusConflict, i18n.T("en", "ErrPlanMissingRecipes", nil))
	case errors.Is(err, plan.ErrBusy):
		respond.Error(w, http.StatusServiceUnavailable, i18n.T("en", "ErrBusy", nil))
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func queryBool(r *http.Request, key string) *bool {
	if v := r.URL.Query().Get(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}
