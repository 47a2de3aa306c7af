package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yourorg/shorted-service/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// StockRepository handles database operations for the stock registry
type StockRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *sqlx.DB, logger *zap.Logger) *StockRepository {
	return &StockRepository{
		db:     db,
		logger: logger,
	}
}

// GetStocks retrieves a page of registry entries plus the total count
func (r *StockRepository) GetStocks(ctx context.Context, offset, limit int) ([]model.Stock, int, error) {
	countQuery := `SELECT COUNT(*) FROM stocks WHERE is_active = true`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		r.logger.Error("Failed to count stocks", zap.Error(err))
		return nil, 0, err
	}

	query := `
		SELECT code, name, exchange, is_active, created_at
		FROM stocks
		WHERE is_active = true
		ORDER BY code
		LIMIT $1 OFFSET $2
	`

	var stocks []model.Stock
	if err := r.db.SelectContext(ctx, &stocks, query, limit, offset); err != nil {
		r.logger.Error("Failed to get stocks", zap.Error(err))
		return nil, 0, err
	}

	return stocks, total, nil
}

// GetStock retrieves a single registry entry, or nil if the code is unknown
func (r *StockRepository) GetStock(ctx context.Context, code string) (*model.Stock, error) {
	query := `
		SELECT code, name, exchange, is_active, created_at
		FROM stocks
		WHERE code = $1
	`

	var stock model.Stock
	err := r.db.GetContext(ctx, &stock, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get stock",
			zap.Error(err),
			zap.String("code", code))
		return nil, err
	}

	return &stock, nil
}

// GetLatestShortPosition retrieves the most recent short-position
// observation for a stock, or nil if none has been recorded
func (r *StockRepository) GetLatestShortPosition(ctx context.Context, code string) (*model.TimeSeriesPoint, error) {
	query := `
		SELECT ts, short_position
		FROM short_positions
		WHERE stock_code = $1
		ORDER BY ts DESC
		LIMIT 1
	`

	var point model.TimeSeriesPoint
	err := r.db.GetContext(ctx, &point, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get latest short position",
			zap.Error(err),
			zap.String("code", code))
		return nil, err
	}

	return &point, nil
}

// GetTopShorts retrieves the stocks with the highest latest short position
func (r *StockRepository) GetTopShorts(ctx context.Context, limit int) ([]model.StockShortPosition, error) {
	query := `
		SELECT latest.stock_code AS code, s.name, latest.short_position, latest.ts AS reported_at
		FROM (
			SELECT DISTINCT ON (stock_code) stock_code, short_position, ts
			FROM short_positions
			ORDER BY stock_code, ts DESC
		) latest
		JOIN stocks s ON s.code = latest.stock_code
		WHERE s.is_active = true
		ORDER BY latest.short_position DESC
		LIMIT $1
	`

	var positions []model.StockShortPosition
	if err := r.db.SelectContext(ctx, &positions, query, limit); err != nil {
		r.logger.Error("Failed to get top shorts", zap.Error(err))
		return nil, err
	}

	return positions, nil
}
