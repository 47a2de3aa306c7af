package model

// SyncKeyMetricsRequest is the payload accepted by the SyncKeyMetrics
// endpoint. An empty stock_codes list means "sync all known stocks".
type SyncKeyMetricsRequest struct {
	StockCodes []string `json:"stock_codes"`
	Force      bool     `json:"force"`
}

// StockSyncResult is the per-stock outcome of a sync run
type StockSyncResult struct {
	StockCode    string          `json:"stock_code"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Metrics      *KeyMetricsData `json:"metrics,omitempty"`
}

// SyncKeyMetricsResponse aggregates the outcomes of a whole sync run.
// total_requested always equals len(results), and failed always equals
// total_requested - successfully_synced.
type SyncKeyMetricsResponse struct {
	TotalRequested     int32             `json:"total_requested"`
	SuccessfullySynced int32             `json:"successfully_synced"`
	Failed             int32             `json:"failed"`
	Results            []StockSyncResult `json:"results"`
	DurationSeconds    float64           `json:"duration_seconds"`
}
