package service

import (
	"context"

	"github.com/yourorg/shorted-service/internal/model"
	"github.com/yourorg/shorted-service/internal/repository"

	"go.uber.org/zap"
)

// StockService handles stock registry reads
type StockService struct {
	stockRepo   *repository.StockRepository
	metricsRepo *repository.MetricsRepository
	logger      *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(stockRepo *repository.StockRepository, metricsRepo *repository.MetricsRepository, logger *zap.Logger) *StockService {
	return &StockService{
		stockRepo:   stockRepo,
		metricsRepo: metricsRepo,
		logger:      logger,
	}
}

// GetStocks retrieves a page of registry entries plus the total count
func (s *StockService) GetStocks(ctx context.Context, offset, limit int) ([]model.Stock, int, error) {
	return s.stockRepo.GetStocks(ctx, offset, limit)
}

// GetStockDetails retrieves a stock with its latest short position and, if
// the stock has been synced, its key metrics. Returns nil for an unknown
// code.
func (s *StockService) GetStockDetails(ctx context.Context, code string) (*model.StockDetails, error) {
	code = model.NormalizeCode(code)

	stock, err := s.stockRepo.GetStock(ctx, code)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, nil
	}

	details := &model.StockDetails{Stock: *stock}

	latest, err := s.stockRepo.GetLatestShortPosition(ctx, code)
	if err != nil {
		return nil, err
	}
	details.LatestShort = latest

	record, err := s.metricsRepo.GetMetricsRecord(ctx, code)
	if err != nil {
		return nil, err
	}
	if record != nil {
		metrics := record.Metrics
		details.Metrics = &metrics
		updatedAt := record.UpdatedAt
		details.MetricsUpdatedAt = &updatedAt
	}

	return details, nil
}

// GetTopShorts retrieves the stocks with the highest latest short position
func (s *StockService) GetTopShorts(ctx context.Context, limit int) ([]model.StockShortPosition, error) {
	return s.stockRepo.GetTopShorts(ctx, limit)
}
