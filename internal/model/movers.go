package model

// MoverEntry pairs a stock with its computed change or volatility value
type MoverEntry struct {
	StockCode string  `json:"stock_code"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
}

// MoversResult holds the three ranked movers views for a period. Each list
// is ordered and capped; computed fresh per request, never cached here.
type MoversResult struct {
	BiggestIncreases []MoverEntry `json:"biggest_increases"`
	BiggestDecreases []MoverEntry `json:"biggest_decreases"`
	MostVolatile     []MoverEntry `json:"most_volatile"`
}
