package model

import (
	"strings"
	"time"
)

// Stock represents a registry entry for a listed company tracked by the service
type Stock struct {
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Exchange  string    `db:"exchange" json:"exchange"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// StockShortPosition is the latest reported short position for a stock
type StockShortPosition struct {
	Code          string    `db:"code" json:"code"`
	Name          string    `db:"name" json:"name"`
	ShortPosition float64   `db:"short_position" json:"short_position"`
	ReportedAt    time.Time `db:"reported_at" json:"reported_at"`
}

// StockDetails combines a registry entry with its latest short position
// and most recently synced key metrics
type StockDetails struct {
	Stock            Stock            `json:"stock"`
	LatestShort      *TimeSeriesPoint `json:"latest_short,omitempty"`
	Metrics          *KeyMetricsData  `json:"metrics,omitempty"`
	MetricsUpdatedAt *time.Time       `json:"metrics_updated_at,omitempty"`
}

// NormalizeCode canonicalizes a stock code to its uppercase form
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeCodes canonicalizes a list of stock codes and removes
// duplicates, preserving first-seen order
func NormalizeCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized := NormalizeCode(code)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}
