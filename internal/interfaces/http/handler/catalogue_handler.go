package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/application/catalogue"
	"github.com/erp/connector/internal/application/pricing"
)

// CatalogueHandler triggers the catalogue import and the pricing
// refresh on demand.
type CatalogueHandler struct {
	BaseHandler
	importer *catalogue.Importer
	pricing  *pricing.Service
	logger   *zap.Logger
}

// NewCatalogueHandler creates a new catalogue handler
func NewCatalogueHandler(importer *catalogue.Importer, pricing *pricing.Service, logger *zap.Logger) *CatalogueHandler {
	return &CatalogueHandler{
		importer: importer,
		pricing:  pricing,
		logger:   logger.Named("http.catalogue"),
	}
}

// SyncResponse reports the outcome of one catalogue import
type SyncResponse struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Errored   int `json:"errored"`
}

// Sync handles POST /api/v1/catalogue/sync. The import runs within the
// request; callers are operators triggering an ad hoc sync.
func (h *CatalogueHandler) Sync(c *gin.Context) {
	result, err := h.importer.Run(c.Request.Context())
	if err != nil {
		h.logger.Error("Manual catalogue sync failed", zap.Error(err))
		h.RespondError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusOK, SyncResponse{
		Processed: result.Processed,
		Created:   result.Created,
		Updated:   result.Updated,
		Skipped:   result.Skipped,
		Errored:   result.Errored,
	})
}

// RefreshResponse reports the outcome of one pricing refresh
type RefreshResponse struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errored int `json:"errored"`
}

// RefreshPricing handles POST /api/v1/pricing/refresh
func (h *CatalogueHandler) RefreshPricing(c *gin.Context) {
	result, err := h.pricing.Run(c.Request.Context())
	if err != nil {
		h.logger.Error("Manual pricing refresh failed", zap.Error(err))
		h.RespondError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusOK, RefreshResponse{
		Checked: result.Checked,
		Updated: result.Updated,
		Skipped: result.Skipped,
		Errored: result.Errored,
	})
}
