package handler

import (
	"net/http"

	"github.com/yourorg/shorted-service/internal/model"
	"github.com/yourorg/shorted-service/internal/service"
	"github.com/yourorg/shorted-service/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MoversHandler handles movers HTTP requests
type MoversHandler struct {
	moversService *service.MoversService
	logger        *zap.Logger
}

// NewMoversHandler creates a new movers handler
func NewMoversHandler(moversService *service.MoversService, logger *zap.Logger) *MoversHandler {
	return &MoversHandler{
		moversService: moversService,
		logger:        logger,
	}
}

// GetMovers handles retrieving the ranked movers views for a period
// GET /api/v1/stocks/movers?period=1m|3m|6m|1y
func (h *MoversHandler) GetMovers(c *gin.Context) {
	period, err := model.ParsePeriod(c.DefaultQuery("period", "1m"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.moversService.GetMovers(c.Request.Context(), period)
	if err != nil {
		h.logger.Error("Failed to get movers",
			zap.Error(err),
			zap.String("period", string(period)))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to compute movers")
		return
	}

	c.JSON(http.StatusOK, result)
}
