// Package service orchestrates the ambient request path around the pure
// forensics core: cache lookup, core invocation, cache write, best-effort
// graph export, and report-id/timestamp stamping.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vanshika/fintrace/backend/internal/cache"
	"github.com/vanshika/fintrace/backend/internal/domain"
	"github.com/vanshika/fintrace/backend/internal/forensics"
	"github.com/vanshika/fintrace/backend/internal/graphexport"
	"github.com/vanshika/fintrace/backend/internal/metrics"
)

// coreFunc is the pure analysis entry point, extracted to a field so tests
// can substitute a counting stub without running the real detectors.
type coreFunc func([]domain.Transaction, forensics.Thresholds) domain.AnalysisResult

// ReportService wires ingress output through the core and the ambient
// cache/export/metrics layers, producing a stamped AnalysisReport.
type ReportService struct {
	thresholds forensics.Thresholds
	cache      cache.ReportCache
	cacheTTL   time.Duration
	exporter   *graphexport.Exporter // nil disables export
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
	analyze    coreFunc

	byIDMu  sync.Mutex
	byID    map[string]domain.AnalysisReport
}

// Option configures optional ReportService behaviour.
type Option func(*ReportService)

// WithExporter enables best-effort graph export after each analysis.
func WithExporter(exporter *graphexport.Exporter) Option {
	return func(s *ReportService) { s.exporter = exporter }
}

// NewReportService constructs a ReportService backed by the given cache and
// detector thresholds.
func NewReportService(th forensics.Thresholds, reportCache cache.ReportCache, cacheTTL time.Duration, logger *slog.Logger, opts ...Option) *ReportService {
	s := &ReportService{
		thresholds: th,
		cache:      reportCache,
		cacheTTL:   cacheTTL,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
		analyze:    forensics.Analyze,
		byID:       make(map[string]domain.AnalysisReport),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the full request path for one transaction batch: a cache hit
// on the batch's content key restamps and returns the cached result without
// re-invoking the core; a miss runs the core, stores the result, and
// attempts a best-effort graph export.
func (s *ReportService) Analyze(ctx context.Context, transactions []domain.Transaction) (domain.AnalysisReport, error) {
	key := cache.BatchKey(transactions)

	result, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache lookup failed", "error", err)
	}
	if hit {
		metrics.CacheHitsTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheHitsTotal.WithLabelValues("miss").Inc()

		start := s.now()
		result = s.analyze(transactions, s.thresholds)
		metrics.AnalysisDuration.Observe(s.now().Sub(start).Seconds())
		metrics.SuspiciousAccountsFlagged.Observe(float64(result.Summary.SuspiciousAccountsFlagged))

		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.Warn("report cache write failed", "error", err)
		}
	}

	report := domain.AnalysisReport{
		ReportID:    s.newID(),
		GeneratedAt: s.now(),
		Result:      result,
	}

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, report.ReportID, report.Result); err != nil {
			metrics.GraphExportFailuresTotal.Inc()
			s.logger.Error("graph export failed", "error", err, "report_id", report.ReportID)
		}
	}

	s.byIDMu.Lock()
	s.byID[report.ReportID] = report
	s.byIDMu.Unlock()

	return report, nil
}

// GetReport fetches a previously computed report by its service-assigned
// id. The bool is false if the id is unknown (GET /reports/{id} returns 404
// in that case).
func (s *ReportService) GetReport(reportID string) (domain.AnalysisReport, bool) {
	s.byIDMu.Lock()
	defer s.byIDMu.Unlock()
	report, ok := s.byID[reportID]
	return report, ok
}
