package service

import (
	"context"

	"github.com/yourorg/shorted-service/internal/model"

	"go.uber.org/zap"
)

// TimeSeriesStore loads short-position history per stock
type TimeSeriesStore interface {
	ListShortPositionSeries(ctx context.Context, period model.Period) ([]model.TimeSeries, error)
}

// MoversService computes ranked movers views over short-position history
type MoversService struct {
	store      TimeSeriesStore
	windows    map[model.Period]int
	maxResults int
	logger     *zap.Logger
}

// NewMoversService creates a new movers service. windowOverrides replaces
// entries of the built-in period window table; maxResults caps each list.
func NewMoversService(store TimeSeriesStore, windowOverrides map[string]int, maxResults int, logger *zap.Logger) *MoversService {
	windows := make(map[model.Period]int, len(defaultPeriodWindows))
	for period, n := range defaultPeriodWindows {
		windows[period] = n
	}
	for period, n := range windowOverrides {
		if parsed, err := model.ParsePeriod(period); err == nil && n > 0 {
			windows[parsed] = n
		}
	}
	if maxResults <= 0 {
		maxResults = defaultMoversLimit
	}
	return &MoversService{
		store:      store,
		windows:    windows,
		maxResults: maxResults,
		logger:     logger,
	}
}

// GetMovers loads the short-position series for a period and ranks them
func (s *MoversService) GetMovers(ctx context.Context, period model.Period) (*model.MoversResult, error) {
	series, err := s.store.ListShortPositionSeries(ctx, period)
	if err != nil {
		s.logger.Error("Failed to load short position series",
			zap.Error(err),
			zap.String("period", string(period)))
		return nil, err
	}

	result := computeMovers(series, s.windows[period], s.maxResults)

	s.logger.Debug("Computed movers",
		zap.String("period", string(period)),
		zap.Int("series", len(series)),
		zap.Int("increases", len(result.BiggestIncreases)))

	return result, nil
}
