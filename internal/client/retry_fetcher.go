package client

import (
	"context"
	"time"

	"github.com/yourorg/shorted-service/internal/model"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Fetcher retrieves a key metrics bundle for a stock code
type Fetcher interface {
	Fetch(ctx context.Context, code string) (*model.KeyMetricsData, error)
}

// RetryingFetcher wraps a Fetcher with exponential backoff on transient
// failures (rate limits and transport errors). Non-retryable failures
// such as unknown symbols pass through immediately.
type RetryingFetcher struct {
	next            Fetcher
	maxRetries      uint64
	initialInterval time.Duration
	logger          *zap.Logger
}

// NewRetryingFetcher creates a retrying decorator around a fetcher
func NewRetryingFetcher(next Fetcher, maxRetries int, logger *zap.Logger) *RetryingFetcher {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingFetcher{
		next:            next,
		maxRetries:      uint64(maxRetries),
		initialInterval: backoff.DefaultInitialInterval,
		logger:          logger,
	}
}

// Fetch retrieves metrics, retrying transient failures with backoff
func (f *RetryingFetcher) Fetch(ctx context.Context, code string) (*model.KeyMetricsData, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = f.initialInterval

	var metrics *model.KeyMetricsData
	attempt := 0

	operation := func() error {
		attempt++
		result, err := f.next.Fetch(ctx, code)
		if err != nil {
			if !model.IsTransient(err) {
				return backoff.Permanent(err)
			}
			f.logger.Warn("Transient fetch failure, will retry",
				zap.Error(err),
				zap.String("stock_code", code),
				zap.Int("attempt", attempt))
			return err
		}
		metrics = result
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, f.maxRetries), ctx))
	if err != nil {
		return nil, err
	}

	return metrics, nil
}
