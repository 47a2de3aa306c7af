package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yourorg/shorted-service/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// MetricsRepository handles database operations for per-stock key metrics
type MetricsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewMetricsRepository creates a new metrics repository
func NewMetricsRepository(db *sqlx.DB, logger *zap.Logger) *MetricsRepository {
	return &MetricsRepository{
		db:     db,
		logger: logger,
	}
}

// GetLastUpdated returns the timestamp of the last successful sync for a
// stock, or nil if the stock has never been synced
func (r *MetricsRepository) GetLastUpdated(ctx context.Context, code string) (*time.Time, error) {
	query := `SELECT updated_at FROM stock_metrics WHERE stock_code = $1`

	var updatedAt time.Time
	err := r.db.GetContext(ctx, &updatedAt, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get last updated time",
			zap.Error(err),
			zap.String("stock_code", code))
		return nil, err
	}

	return &updatedAt, nil
}

// GetMetrics returns the stored key metrics for a stock, or nil if the
// stock has never been synced
func (r *MetricsRepository) GetMetrics(ctx context.Context, code string) (*model.KeyMetricsData, error) {
	query := `
		SELECT market_cap, pe_ratio, eps, dividend_yield, beta,
		       fifty_two_week_high, fifty_two_week_low, avg_volume
		FROM stock_metrics
		WHERE stock_code = $1
	`

	var metrics model.KeyMetricsData
	err := r.db.GetContext(ctx, &metrics, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get stock metrics",
			zap.Error(err),
			zap.String("stock_code", code))
		return nil, err
	}

	return &metrics, nil
}

// GetMetricsRecord returns the stored metrics together with the last sync
// timestamp, or nil if the stock has never been synced
func (r *MetricsRepository) GetMetricsRecord(ctx context.Context, code string) (*model.StockMetricsRecord, error) {
	query := `
		SELECT stock_code, market_cap, pe_ratio, eps, dividend_yield, beta,
		       fifty_two_week_high, fifty_two_week_low, avg_volume, updated_at
		FROM stock_metrics
		WHERE stock_code = $1
	`

	row := r.db.QueryRowxContext(ctx, query, code)

	var record model.StockMetricsRecord
	err := row.Scan(
		&record.StockCode,
		&record.Metrics.MarketCap,
		&record.Metrics.PERatio,
		&record.Metrics.EPS,
		&record.Metrics.DividendYield,
		&record.Metrics.Beta,
		&record.Metrics.FiftyTwoWeekHigh,
		&record.Metrics.FiftyTwoWeekLow,
		&record.Metrics.AvgVolume,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get stock metrics record",
			zap.Error(err),
			zap.String("stock_code", code))
		return nil, err
	}

	return &record, nil
}

// Upsert stores a fresh metrics bundle for a stock, fully replacing any
// prior bundle. The write is idempotent; last write wins on updated_at.
func (r *MetricsRepository) Upsert(ctx context.Context, code string, metrics *model.KeyMetricsData, updatedAt time.Time) error {
	query := `
		INSERT INTO stock_metrics (
			stock_code, market_cap, pe_ratio, eps, dividend_yield, beta,
			fifty_two_week_high, fifty_two_week_low, avg_volume, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (stock_code)
		DO UPDATE SET
			market_cap = EXCLUDED.market_cap,
			pe_ratio = EXCLUDED.pe_ratio,
			eps = EXCLUDED.eps,
			dividend_yield = EXCLUDED.dividend_yield,
			beta = EXCLUDED.beta,
			fifty_two_week_high = EXCLUDED.fifty_two_week_high,
			fifty_two_week_low = EXCLUDED.fifty_two_week_low,
			avg_volume = EXCLUDED.avg_volume,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		code,
		metrics.MarketCap,
		metrics.PERatio,
		metrics.EPS,
		metrics.DividendYield,
		metrics.Beta,
		metrics.FiftyTwoWeekHigh,
		metrics.FiftyTwoWeekLow,
		metrics.AvgVolume,
		updatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert stock metrics",
			zap.Error(err),
			zap.String("stock_code", code))
		return err
	}

	return nil
}

// ListKnownCodes returns the codes of all active stocks in the registry
func (r *MetricsRepository) ListKnownCodes(ctx context.Context) ([]string, error) {
	query := `SELECT code FROM stocks WHERE is_active = true ORDER BY code`

	var codes []string
	err := r.db.SelectContext(ctx, &codes, query)
	if err != nil {
		r.logger.Error("Failed to list known stock codes", zap.Error(err))
		return nil, err
	}

	return codes, nil
}
