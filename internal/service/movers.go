package service

import (
	"sort"

	"github.com/yourorg/shorted-service/internal/model"
)

// defaultMoversLimit caps each ranked movers list
const defaultMoversLimit = 10

// defaultPeriodWindows maps a period to the number of points averaged at
// each end of a series. These are point counts matching the sampling
// density of the upstream feed, not calendar units.
var defaultPeriodWindows = map[model.Period]int{
	model.Period1M: 20,
	model.Period3M: 40,
	model.Period6M: 60,
	model.Period1Y: 10,
}

// WindowFor returns the windowed-average point count for a period
func WindowFor(period model.Period) int {
	return defaultPeriodWindows[period]
}

// seriesStat holds the per-series computation before ranking
type seriesStat struct {
	index      int
	change     float64
	volatility float64
}

// ComputeMovers computes the three ranked movers views for a period using
// the built-in window table and list cap. Pure and deterministic:
// identical inputs always produce identical ordered output.
func ComputeMovers(series []model.TimeSeries, period model.Period) *model.MoversResult {
	return computeMovers(series, WindowFor(period), defaultMoversLimit)
}

func computeMovers(series []model.TimeSeries, window, limit int) *model.MoversResult {
	stats := make([]seriesStat, len(series))
	for i := range series {
		points := sortedPoints(series[i].Points)
		stats[i] = seriesStat{
			index:      i,
			change:     changeOver(points, window),
			volatility: volatilityOf(points),
		}
	}

	// Ties keep input order: rankings use stable sorts with no
	// secondary key.
	increases := make([]seriesStat, len(stats))
	copy(increases, stats)
	sort.SliceStable(increases, func(a, b int) bool {
		return increases[a].change > increases[b].change
	})

	decreases := make([]seriesStat, len(stats))
	copy(decreases, stats)
	sort.SliceStable(decreases, func(a, b int) bool {
		return decreases[a].change < decreases[b].change
	})

	volatile := make([]seriesStat, len(stats))
	copy(volatile, stats)
	sort.SliceStable(volatile, func(a, b int) bool {
		return volatile[a].volatility > volatile[b].volatility
	})

	return &model.MoversResult{
		BiggestIncreases: toEntries(series, increases, limit, false),
		BiggestDecreases: toEntries(series, decreases, limit, false),
		MostVolatile:     toEntries(series, volatile, limit, true),
	}
}

// sortedPoints returns a copy of points ordered by timestamp ascending.
// Caller order is not trusted, and the input series is never mutated.
func sortedPoints(points []model.TimeSeriesPoint) []model.TimeSeriesPoint {
	sorted := make([]model.TimeSeriesPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Timestamp.Before(sorted[b].Timestamp)
	})
	return sorted
}

// changeOver estimates directional change over a series. With at least
// window points at each end it compares the mean of the last window
// against the mean of the first window; shorter series fall back to a
// latest-minus-earliest comparison.
func changeOver(points []model.TimeSeriesPoint, window int) float64 {
	if len(points) == 0 {
		return 0
	}
	if window > 0 && len(points) >= window {
		return mean(points[len(points)-window:]) - mean(points[:window])
	}
	return points[len(points)-1].ShortPosition - points[0].ShortPosition
}

// volatilityOf is the spread between the highest and lowest observation
func volatilityOf(points []model.TimeSeriesPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	min := points[0].ShortPosition
	max := points[0].ShortPosition
	for _, p := range points[1:] {
		if p.ShortPosition < min {
			min = p.ShortPosition
		}
		if p.ShortPosition > max {
			max = p.ShortPosition
		}
	}
	return max - min
}

func mean(points []model.TimeSeriesPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.ShortPosition
	}
	return sum / float64(len(points))
}

func toEntries(series []model.TimeSeries, ranked []seriesStat, limit int, volatility bool) []model.MoverEntry {
	if limit > len(ranked) {
		limit = len(ranked)
	}
	entries := make([]model.MoverEntry, 0, limit)
	for _, stat := range ranked[:limit] {
		value := stat.change
		if volatility {
			value = stat.volatility
		}
		entries = append(entries, model.MoverEntry{
			StockCode: series[stat.index].StockCode,
			Name:      series[stat.index].Name,
			Value:     value,
		})
	}
	return entries
}
