package model

import (
	"fmt"
	"time"
)

// Period identifies the lookback window for movers calculations
type Period string

const (
	Period1M Period = "1m"
	Period3M Period = "3m"
	Period6M Period = "6m"
	Period1Y Period = "1y"
)

// ParsePeriod validates a period string from a request
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Period1M, Period3M, Period6M, Period1Y:
		return Period(s), nil
	default:
		return "", fmt.Errorf("invalid period: %q", s)
	}
}

// TimeSeriesPoint is a single short-position observation
type TimeSeriesPoint struct {
	Timestamp     time.Time `db:"ts" json:"timestamp"`
	ShortPosition float64   `db:"short_position" json:"short_position"`
}

// TimeSeries is the short-position history for a single stock. Points are
// ordered by timestamp ascending once loaded; Min and Max cache the extreme
// points of the series.
type TimeSeries struct {
	StockCode string            `json:"stock_code"`
	Name      string            `json:"name"`
	Points    []TimeSeriesPoint `json:"points"`
	Min       *TimeSeriesPoint  `json:"min,omitempty"`
	Max       *TimeSeriesPoint  `json:"max,omitempty"`
}
