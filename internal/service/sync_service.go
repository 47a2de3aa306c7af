package service

import (
	"context"
	"time"

	"github.com/yourorg/shorted-service/internal/model"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// QuoteFetcher retrieves a key metrics bundle from the external provider
type QuoteFetcher interface {
	Fetch(ctx context.Context, code string) (*model.KeyMetricsData, error)
}

// MetricsStore persists per-stock key metrics and resolves the known
// stock registry
type MetricsStore interface {
	GetLastUpdated(ctx context.Context, code string) (*time.Time, error)
	GetMetrics(ctx context.Context, code string) (*model.KeyMetricsData, error)
	Upsert(ctx context.Context, code string, metrics *model.KeyMetricsData, updatedAt time.Time) error
	ListKnownCodes(ctx context.Context) ([]string, error)
}

// ReportPublisher emits a sync report to downstream consumers
type ReportPublisher interface {
	PublishSyncCompleted(ctx context.Context, report *model.SyncKeyMetricsResponse) error
}

// SyncRecorder records sync observability metrics
type SyncRecorder interface {
	RecordOutcome(result string)
	RecordFetchError(kind string)
	RecordSyncDuration(seconds float64)
	RecordBatchSize(n int)
}

// SyncService drives key metrics synchronization batches. It processes
// stocks one at a time with a shared rate gate in front of each external
// call, so the aggregate call rate never exceeds one call per interval.
type SyncService struct {
	store     MetricsStore
	fetcher   QuoteFetcher
	limiter   *rate.Limiter
	threshold time.Duration
	publisher ReportPublisher
	recorder  SyncRecorder
	logger    *zap.Logger
}

// NewSyncService creates a new sync service. limiter gates external
// fetches; publisher and recorder may be nil.
func NewSyncService(
	store MetricsStore,
	fetcher QuoteFetcher,
	limiter *rate.Limiter,
	threshold time.Duration,
	publisher ReportPublisher,
	recorder SyncRecorder,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		store:     store,
		fetcher:   fetcher,
		limiter:   limiter,
		threshold: threshold,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// SyncKeyMetrics synchronizes key metrics for the requested stock codes.
// An empty code list means "all known stocks". Per-stock failures never
// abort the batch; every resolved code yields an entry in the report.
// Only a failure to resolve the code list surfaces as a top-level error.
func (s *SyncService) SyncKeyMetrics(ctx context.Context, codes []string, force bool) (*model.SyncKeyMetricsResponse, error) {
	start := time.Now()

	resolved, err := s.resolveCodes(ctx, codes)
	if err != nil {
		s.logger.Error("Failed to resolve stock codes for sync", zap.Error(err))
		return nil, err
	}

	results := make([]model.StockSyncResult, 0, len(resolved))
	for _, code := range resolved {
		// A cancelled batch keeps the per-stock writes already committed
		if ctx.Err() != nil {
			s.logger.Warn("Sync batch cancelled",
				zap.Int("processed", len(results)),
				zap.Int("resolved", len(resolved)))
			break
		}
		results = append(results, s.syncOne(ctx, code, force))
	}

	report := buildReport(results, time.Since(start))

	s.logger.Info("Key metrics sync completed",
		zap.Int32("total_requested", report.TotalRequested),
		zap.Int32("successfully_synced", report.SuccessfullySynced),
		zap.Int32("failed", report.Failed),
		zap.Float64("duration_seconds", report.DurationSeconds),
		zap.Bool("force", force))

	if s.recorder != nil {
		s.recorder.RecordSyncDuration(report.DurationSeconds)
		s.recorder.RecordBatchSize(len(resolved))
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSyncCompleted(ctx, report); err != nil {
			// Event delivery is best effort; the report still goes back
			// to the caller.
			s.logger.Warn("Failed to publish sync completed event", zap.Error(err))
		}
	}

	return report, nil
}

// resolveCodes produces the effective code list for a sync run
func (s *SyncService) resolveCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return s.store.ListKnownCodes(ctx)
	}
	return model.NormalizeCodes(codes), nil
}

// syncOne processes a single stock. Every failure is converted into a
// failed outcome here; no error crosses the iteration boundary.
func (s *SyncService) syncOne(ctx context.Context, code string, force bool) model.StockSyncResult {
	lastUpdated, err := s.store.GetLastUpdated(ctx, code)
	if err != nil {
		return s.failure(code, err.Error())
	}

	if !NeedsSync(lastUpdated, force, s.threshold) {
		// Fresh enough: report the stored metrics without an external
		// call. This path does not consume rate-limit budget.
		prior, err := s.store.GetMetrics(ctx, code)
		if err != nil {
			s.logger.Warn("Failed to read stored metrics on fast path",
				zap.Error(err),
				zap.String("stock_code", code))
			prior = nil
		}
		return s.success(code, prior)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return s.failure(code, err.Error())
		}
	}

	metrics, err := s.fetcher.Fetch(ctx, code)
	if err != nil {
		kind, message := model.ClassifyError(err)
		s.logger.Warn("Failed to fetch key metrics",
			zap.String("stock_code", code),
			zap.String("kind", kind),
			zap.String("message", message))
		if s.recorder != nil {
			s.recorder.RecordFetchError(kind)
		}
		return s.failure(code, message)
	}

	// The stock is only synced once the bundle is durably stored
	if err := s.store.Upsert(ctx, code, metrics, time.Now()); err != nil {
		return s.failure(code, err.Error())
	}

	return s.success(code, metrics)
}

func (s *SyncService) success(code string, metrics *model.KeyMetricsData) model.StockSyncResult {
	if s.recorder != nil {
		s.recorder.RecordOutcome("success")
	}
	return model.StockSyncResult{
		StockCode: code,
		Success:   true,
		Metrics:   metrics,
	}
}

func (s *SyncService) failure(code, message string) model.StockSyncResult {
	if s.recorder != nil {
		s.recorder.RecordOutcome("failure")
	}
	return model.StockSyncResult{
		StockCode:    code,
		Success:      false,
		ErrorMessage: message,
	}
}

// buildReport assembles the response contract from per-stock outcomes
func buildReport(results []model.StockSyncResult, duration time.Duration) *model.SyncKeyMetricsResponse {
	var succeeded int32
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	total := int32(len(results))
	return &model.SyncKeyMetricsResponse{
		TotalRequested:     total,
		SuccessfullySynced: succeeded,
		Failed:             total - succeeded,
		Results:            results,
		DurationSeconds:    duration.Seconds(),
	}
}
