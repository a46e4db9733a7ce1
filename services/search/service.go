package search

import (
	"context"
	"fmt"
	"time"

	providerRepo "providerhub/database/repository/provider"
	"providerhub/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "providerhub/services/search"

// searchMetrics are created from whichever MeterProvider is global when the
// service is built; with no SDK installed they are no-ops.
type searchMetrics struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
}

func newSearchMetrics(meter metric.Meter) (searchMetrics, error) {
	duration, err := meter.Float64Histogram(
		"search.duration",
		metric.WithDescription("Provider search latency"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return searchMetrics{}, err
	}
	requests, err := meter.Int64Counter(
		"search.requests.count",
		metric.WithDescription("Provider searches by execution path and outcome"),
	)
	if err != nil {
		return searchMetrics{}, err
	}
	return searchMetrics{duration: duration, requests: requests}, nil
}

type SearchService interface {
	// Search runs validated filters against the provider store.
	Search(ctx context.Context, filters SearchFilters) (*models.SearchResponse, error)
}

// DefaultSearchService is the production implementation. Cache is optional.
type DefaultSearchService struct {
	Repo   providerRepo.ProviderRepository
	Cache  ResultCache
	Logger *zap.Logger

	tracer  trace.Tracer
	metrics searchMetrics
}

func NewSearchService(repo providerRepo.ProviderRepository, cache ResultCache, logger *zap.Logger) (*DefaultSearchService, error) {
	if repo == nil {
		return nil, fmt.Errorf("search service initialization error: provider repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics, err := newSearchMetrics(otel.Meter(instrumentationName))
	if err != nil {
		return nil, fmt.Errorf("search service initialization error: %w", err)
	}
	return &DefaultSearchService{
		Repo:    repo,
		Cache:   cache,
		Logger:  logger,
		tracer:  otel.Tracer(instrumentationName),
		metrics: metrics,
	}, nil
}

func (s *DefaultSearchService) Search(ctx context.Context, filters SearchFilters) (*models.SearchResponse, error) {
	start := time.Now()
	path := selectPath(filters)

	tracer := s.tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	ctx, span := tracer.Start(ctx, "search.providers", trace.WithAttributes(
		attribute.String("search.path", path.name()),
		attribute.Int("search.page", filters.Page),
		attribute.Int("search.limit", filters.Limit),
	))
	defer span.End()

	key := CacheKey(filters)
	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			s.Logger.Warn("Search cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			span.SetAttributes(attribute.Bool("search.cache_hit", true))
			s.record(ctx, path.name(), "cache_hit", start)
			return cached, nil
		}
	}

	criteria := Compile(filters)
	window := NewWindow(filters.Page, filters.Limit)

	var (
		matches []models.ProviderMatch
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = path.fetch(gctx, s.Repo, criteria, window)
		if err != nil {
			return &StoreError{Op: path.name() + " fetch", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = path.count(gctx, s.Repo, criteria)
		if err != nil {
			return &StoreError{Op: path.name() + " count", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider search failed")
		s.record(ctx, path.name(), "error", start)
		return nil, err
	}

	// The count and the page are read independently; an empty count wins.
	if total == 0 {
		matches = nil
	}
	resp := Shape(matches, Paginate(total, filters.Page, filters.Limit))

	span.SetAttributes(
		attribute.Int64("search.total", total),
		attribute.Int("search.returned", len(resp.Providers)),
	)
	s.Logger.Debug("Provider search completed",
		zap.String("path", path.name()),
		zap.Int64("total", total),
		zap.Int("returned", len(resp.Providers)),
		zap.Int("page", filters.Page),
		zap.Int("limit", filters.Limit),
	)
	s.record(ctx, path.name(), "ok", start)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, resp); err != nil {
			s.Logger.Warn("Search cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return resp, nil
}

func (s *DefaultSearchService) record(ctx context.Context, path, outcome string, start time.Time) {
	attrs := metric.WithAttributes(
		attribute.String("search.path", path),
		attribute.String("search.outcome", outcome),
	)
	if s.metrics.requests != nil {
		s.metrics.requests.Add(ctx, 1, attrs)
	}
	if s.metrics.duration != nil {
		s.metrics.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
	}
}
