package service

import "time"

// NeedsSync decides whether a stock's key metrics are due for a refresh.
// force always wins, a never-synced stock is always due, and otherwise the
// stock is due once its last sync is older than the threshold.
func NeedsSync(lastUpdated *time.Time, force bool, threshold time.Duration) bool {
	if force {
		return true
	}
	if lastUpdated == nil {
		return true
	}
	return time.Since(*lastUpdated) > threshold
}
