package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yourorg/shorted-service/internal/model"

	"go.uber.org/zap"
)

const (
	// YahooAPIBaseURL is the default Yahoo Finance API host
	YahooAPIBaseURL = "https://query1.finance.yahoo.com"

	quoteSummaryModules = "summaryDetail,defaultKeyStatistics"
)

// YahooClient fetches per-stock key metrics from the Yahoo Finance
// quoteSummary API
type YahooClient struct {
	baseURL      string
	symbolSuffix string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewYahooClient creates a new Yahoo Finance client. symbolSuffix is
// appended to stock codes to form Yahoo tickers (e.g. ".AX" for ASX).
func NewYahooClient(baseURL, symbolSuffix string, timeout time.Duration, logger *zap.Logger) *YahooClient {
	if baseURL == "" {
		baseURL = YahooAPIBaseURL
	}
	return &YahooClient{
		baseURL:      baseURL,
		symbolSuffix: symbolSuffix,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// yahooValue is Yahoo's {raw, fmt} numeric wrapper
type yahooValue struct {
	Raw float64 `json:"raw"`
}

// yahooQuoteSummary is the response structure from the quoteSummary API
type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				MarketCap        yahooValue `json:"marketCap"`
				TrailingPE       yahooValue `json:"trailingPE"`
				DividendYield    yahooValue `json:"dividendYield"`
				Beta             yahooValue `json:"beta"`
				FiftyTwoWeekHigh yahooValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  yahooValue `json:"fiftyTwoWeekLow"`
				AverageVolume    yahooValue `json:"averageVolume"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				TrailingEps yahooValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Fetch retrieves the key metrics bundle for a stock code. Failures are
// returned as typed FetchErrors so the sync loop can classify them.
func (c *YahooClient) Fetch(ctx context.Context, code string) (*model.KeyMetricsData, error) {
	symbol := code + c.symbolSuffix

	reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(symbol), quoteSummaryModules)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, model.NewFetchError(model.ErrKindTransport, fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to fetch quote summary from Yahoo Finance",
			zap.Error(err),
			zap.String("symbol", symbol))
		return nil, model.NewFetchError(model.ErrKindTransport, fmt.Sprintf("failed to reach Yahoo Finance: %v", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, model.NewFetchError(model.ErrKindNotFound, fmt.Sprintf("symbol %s not found on Yahoo Finance", symbol))
	case http.StatusTooManyRequests:
		return nil, model.NewFetchError(model.ErrKindRateLimited, "Yahoo Finance rate limit exceeded")
	default:
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Error("Yahoo Finance API error response",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("symbol", symbol),
			zap.String("response", string(bodyBytes)))
		return nil, model.NewFetchError(model.ErrKindTransport,
			fmt.Sprintf("Yahoo Finance returned status code %d", resp.StatusCode))
	}

	var summary yahooQuoteSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		c.logger.Error("Failed to decode Yahoo quote summary",
			zap.Error(err),
			zap.String("symbol", symbol))
		return nil, model.NewFetchError(model.ErrKindTransport, fmt.Sprintf("failed to decode quote summary: %v", err))
	}

	if summary.QuoteSummary.Error != nil {
		return nil, model.NewFetchError(model.ErrKindNoData,
			fmt.Sprintf("No data available from Yahoo Finance: %s", summary.QuoteSummary.Error.Description))
	}

	if len(summary.QuoteSummary.Result) == 0 {
		return nil, model.NewFetchError(model.ErrKindNoData, "No data available from Yahoo Finance")
	}

	result := summary.QuoteSummary.Result[0]
	metrics := &model.KeyMetricsData{
		MarketCap:        result.SummaryDetail.MarketCap.Raw,
		PERatio:          result.SummaryDetail.TrailingPE.Raw,
		EPS:              result.DefaultKeyStatistics.TrailingEps.Raw,
		DividendYield:    result.SummaryDetail.DividendYield.Raw,
		Beta:             result.SummaryDetail.Beta.Raw,
		FiftyTwoWeekHigh: result.SummaryDetail.FiftyTwoWeekHigh.Raw,
		FiftyTwoWeekLow:  result.SummaryDetail.FiftyTwoWeekLow.Raw,
		AvgVolume:        result.SummaryDetail.AverageVolume.Raw,
	}

	c.logger.Debug("Fetched key metrics",
		zap.String("symbol", symbol),
		zap.Float64("market_cap", metrics.MarketCap))

	return metrics, nil
}
