package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yourorg/shorted-service/internal/model"

	"go.uber.org/zap"
)

const quoteSummaryBody = `{
	"quoteSummary": {
		"result": [{
			"summaryDetail": {
				"marketCap": {"raw": 150000000000},
				"trailingPE": {"raw": 18.5},
				"dividendYield": {"raw": 0.045},
				"beta": {"raw": 0.9},
				"fiftyTwoWeekHigh": {"raw": 50.5},
				"fiftyTwoWeekLow": {"raw": 38.2},
				"averageVolume": {"raw": 6200000}
			},
			"defaultKeyStatistics": {
				"trailingEps": {"raw": 2.45}
			}
		}],
		"error": null
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *YahooClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewYahooClient(server.URL, ".AX", 5*time.Second, zap.NewNop())
}

func TestYahooFetchSuccess(t *testing.T) {
	var requestedPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(quoteSummaryBody))
	})

	metrics, err := c.Fetch(context.Background(), "BHP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(requestedPath, "BHP.AX") {
		t.Fatalf("expected suffixed symbol in path, got %s", requestedPath)
	}
	if metrics.MarketCap != 150000000000 {
		t.Fatalf("unexpected market cap %v", metrics.MarketCap)
	}
	if metrics.EPS != 2.45 {
		t.Fatalf("unexpected eps %v", metrics.EPS)
	}
	if metrics.FiftyTwoWeekLow != 38.2 {
		t.Fatalf("unexpected 52w low %v", metrics.FiftyTwoWeekLow)
	}
}

func TestYahooFetchNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Fetch(context.Background(), "XYZ")
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, _ := model.ClassifyError(err); kind != model.ErrKindNotFound {
		t.Fatalf("expected not_found, got %s", kind)
	}
}

func TestYahooFetchRateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Fetch(context.Background(), "BHP")
	if kind, _ := model.ClassifyError(err); kind != model.ErrKindRateLimited {
		t.Fatalf("expected rate_limited, got %s", kind)
	}
}

func TestYahooFetchEmptyResultIsNoData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary": {"result": [], "error": null}}`))
	})

	_, err := c.Fetch(context.Background(), "BHP")
	if kind, message := model.ClassifyError(err); kind != model.ErrKindNoData || !strings.Contains(message, "No data available") {
		t.Fatalf("expected no_data, got %s / %s", kind, message)
	}
}

func TestYahooFetchAPIErrorIsNoData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary": {"result": null, "error": {"code": "Not Found", "description": "Quote not found"}}}`))
	})

	_, err := c.Fetch(context.Background(), "BHP")
	if kind, _ := model.ClassifyError(err); kind != model.ErrKindNoData {
		t.Fatalf("expected no_data, got %s", kind)
	}
}

func TestYahooFetchServerErrorIsTransport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Fetch(context.Background(), "BHP")
	if kind, _ := model.ClassifyError(err); kind != model.ErrKindTransport {
		t.Fatalf("expected transport, got %s", kind)
	}
}
