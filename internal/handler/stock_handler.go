package handler

import (
	"net/http"
	"strconv"

	"github.com/yourorg/shorted-service/internal/service"
	"github.com/yourorg/shorted-service/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StockHandler handles stock registry HTTP requests
type StockHandler struct {
	stockService *service.StockService
	logger       *zap.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService, logger *zap.Logger) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		logger:       logger,
	}
}

// GetStocks handles listing the stock registry with pagination
// GET /api/v1/stocks
func (h *StockHandler) GetStocks(c *gin.Context) {
	params := utils.ParsePaginationParams(c, 20, 100)

	stocks, total, err := h.stockService.GetStocks(
		c.Request.Context(),
		utils.CalculateOffset(params.Page, params.Limit),
		params.Limit,
	)
	if err != nil {
		h.logger.Error("Failed to get stocks", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to get stocks")
		return
	}

	utils.SendPaginatedResponse(c, http.StatusOK, stocks, total, params.Page, params.Limit)
}

// GetStock handles retrieving a single stock with its latest short
// position and synced key metrics
// GET /api/v1/stocks/:code
func (h *StockHandler) GetStock(c *gin.Context) {
	code := c.Param("code")

	details, err := h.stockService.GetStockDetails(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("Failed to get stock details",
			zap.Error(err),
			zap.String("code", code))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to get stock details")
		return
	}

	if details == nil {
		utils.SendErrorResponse(c, http.StatusNotFound, "Stock not found")
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetTopShorts handles retrieving the stocks with the highest latest
// short position
// GET /api/v1/stocks/top-shorts
func (h *StockHandler) GetTopShorts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}

	positions, err := h.stockService.GetTopShorts(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get top shorts", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to get top shorts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"top_shorts": positions})
}
