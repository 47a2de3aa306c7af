package repository

import (
	"context"
	"time"

	"github.com/yourorg/shorted-service/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// TimeSeriesRepository handles database reads of short-position history
type TimeSeriesRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTimeSeriesRepository creates a new time series repository
func NewTimeSeriesRepository(db *sqlx.DB, logger *zap.Logger) *TimeSeriesRepository {
	return &TimeSeriesRepository{
		db:     db,
		logger: logger,
	}
}

// periodLookback converts a movers period into a calendar window for the
// history query. The movers windows themselves are point counts; the
// lookback only bounds how much history is loaded.
func periodLookback(period model.Period) time.Duration {
	switch period {
	case model.Period1M:
		return 31 * 24 * time.Hour
	case model.Period3M:
		return 92 * 24 * time.Hour
	case model.Period6M:
		return 183 * 24 * time.Hour
	case model.Period1Y:
		return 366 * 24 * time.Hour
	default:
		return 31 * 24 * time.Hour
	}
}

// ListShortPositionSeries loads the per-stock short-position series for a
// period. Rows are ordered by stock code then timestamp so the resulting
// slice order is stable across calls.
func (r *TimeSeriesRepository) ListShortPositionSeries(ctx context.Context, period model.Period) ([]model.TimeSeries, error) {
	query := `
		SELECT sp.stock_code, s.name, sp.ts, sp.short_position
		FROM short_positions sp
		JOIN stocks s ON s.code = sp.stock_code
		WHERE s.is_active = true AND sp.ts >= $1
		ORDER BY sp.stock_code, sp.ts
	`

	since := time.Now().Add(-periodLookback(period))

	rows, err := r.db.QueryxContext(ctx, query, since)
	if err != nil {
		r.logger.Error("Failed to query short position series",
			zap.Error(err),
			zap.String("period", string(period)))
		return nil, err
	}
	defer rows.Close()

	var series []model.TimeSeries
	var current *model.TimeSeries

	for rows.Next() {
		var (
			code  string
			name  string
			point model.TimeSeriesPoint
		)
		if err := rows.Scan(&code, &name, &point.Timestamp, &point.ShortPosition); err != nil {
			r.logger.Error("Failed to scan short position row", zap.Error(err))
			return nil, err
		}

		if current == nil || current.StockCode != code {
			series = append(series, model.TimeSeries{StockCode: code, Name: name})
			current = &series[len(series)-1]
		}

		current.Points = append(current.Points, point)
		if current.Min == nil || point.ShortPosition < current.Min.ShortPosition {
			p := point
			current.Min = &p
		}
		if current.Max == nil || point.ShortPosition > current.Max.ShortPosition {
			p := point
			current.Max = &p
		}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate short position rows", zap.Error(err))
		return nil, err
	}

	return series, nil
}
