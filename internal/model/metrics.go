package model

import "time"

// KeyMetricsData is the per-stock metrics bundle fetched from the external
// provider. A fresh bundle fully replaces the stored one on a successful
// sync; there is no field-level merge.
type KeyMetricsData struct {
	MarketCap        float64 `db:"market_cap" json:"market_cap"`
	PERatio          float64 `db:"pe_ratio" json:"pe_ratio"`
	EPS              float64 `db:"eps" json:"eps"`
	DividendYield    float64 `db:"dividend_yield" json:"dividend_yield"`
	Beta             float64 `db:"beta" json:"beta"`
	FiftyTwoWeekHigh float64 `db:"fifty_two_week_high" json:"fifty_two_week_high"`
	FiftyTwoWeekLow  float64 `db:"fifty_two_week_low" json:"fifty_two_week_low"`
	AvgVolume        float64 `db:"avg_volume" json:"avg_volume"`
}

// StockMetricsRecord is the stored form of a stock's key metrics
type StockMetricsRecord struct {
	StockCode string         `db:"stock_code" json:"stock_code"`
	Metrics   KeyMetricsData `json:"metrics"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
