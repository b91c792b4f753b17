package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/forecast"
	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type ForecastHandler struct {
	uc     forecast.UseCase
	logger logger.ZapLogger
}

func NewForecastHandler(uc forecast.UseCase, log logger.ZapLogger) *ForecastHandler {
	return &ForecastHandler{uc: uc, logger: log}
}

// Get handles GET /api/v1/forecast
func (h *ForecastHandler) Get(w http.ResponseWriter, r *http.Request) {
	entries, err := h.uc.Forecast(r.Context())
	if err != nil {
		h.logger.Error("failed to compute forecast", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to compute forecast")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
