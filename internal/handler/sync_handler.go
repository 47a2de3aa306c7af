package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/yourorg/shorted-service/internal/model"
	"github.com/yourorg/shorted-service/internal/service"
	"github.com/yourorg/shorted-service/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SyncHandler handles key metrics sync HTTP requests
type SyncHandler struct {
	syncService *service.SyncService
	logger      *zap.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *service.SyncService, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// SyncKeyMetrics handles triggering a key metrics sync batch. An empty
// stock_codes list syncs all known stocks. Per-stock failures are normal
// output; the call only fails outright when the code list cannot be
// resolved.
// POST /shorted.v1.ShortedStocksService/SyncKeyMetrics
func (h *SyncHandler) SyncKeyMetrics(c *gin.Context) {
	var request model.SyncKeyMetricsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.syncService.SyncKeyMetrics(c.Request.Context(), request.StockCodes, request.Force)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			utils.SendErrorResponse(c, http.StatusRequestTimeout, "Sync cancelled before it could start")
			return
		}
		h.logger.Error("Failed to sync key metrics",
			zap.Error(err),
			zap.Int("requested", len(request.StockCodes)),
			zap.Bool("force", request.Force))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to sync key metrics")
		return
	}

	c.JSON(http.StatusOK, report)
}
