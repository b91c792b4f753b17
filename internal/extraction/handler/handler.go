package handler

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/extraction"
	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/pkg/i18n"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

// maxUploadBytes caps extraction uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type ExtractionHandler struct {
	uc     extraction.UseCase
	logger logger.ZapLogger
}

func NewExtractionHandler(uc extraction.UseCase, log logger.ZapLogger) *ExtractionHandler {
	return &ExtractionHandler{uc: uc, logger: log}
}

// ImportPriceList handles POST /api/v1/extract/price-list
func (h *ExtractionHandler) ImportPriceList(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		respond.Error(w, http.StatusServiceUnavailable, "document extraction is not configured")
		return
	}

	vendorID := r.URL.Query().Get("vendor_id")
	if vendorID == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "vendor_id"}))
		return
	}

	content, mimeType, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	v, err := h.uc.ImportPriceList(r.Context(), vendorID, content, mimeType)
	if err != nil {
		h.respondExtractionError(w, err, "price list import failed")
		return
	}
	respond.JSON(w, http.StatusOK, v)
}

// ImportRecipe handles POST /api/v1/extract/recipe
func (h *ExtractionHandler) ImportRecipe(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		respond.Error(w, http.StatusServiceUnavailable, "document extraction is not configured")
		return
	}

	content, mimeType, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	rec, err := h.uc.ImportRecipe(r.Context(), content, mimeType)
	if err != nil {
		h.respondExtractionError(w, err, "recipe import failed")
		return
	}
	respond.JSON(w, http.StatusCreated, rec)
}

func (h *ExtractionHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid multipart upload")
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "file"}))
		return nil, "", false
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.logger.Error("failed to read upload", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to read upload")
		return nil, "", false
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return content, mimeType, true
}

func (h *ExtractionHandler) respondExtractionError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, extraction.ErrExtractionFailed) {
		respond.Error(w, http.StatusUnprocessableEntity, i18n.T("en", "ErrExtractionFailed", nil))
		return
	}
	h.logger.Error(logMsg, zap.Error(err))
	respond.Error(w, http.StatusBadRequest, err.Error())
}
