package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"quickgfe/domain"
	"quickgfe/observability"
	"quickgfe/repository"
)

const (
	DefaultQuoteCacheTTL = 10 * time.Minute

	// Bump when the quote math changes so stale entries are never served.
	quoteCacheVersion = "v1"
)

// QuoteService wraps the engine with caching, request collapsing,
// tracing and metrics.
type QuoteService struct {
	defaults *Defaults
	cache    repository.CacheRepository
	ttl      time.Duration
	metrics  *observability.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	group    singleflight.Group
}

type QuoteOption func(*QuoteService)

// WithCache enables quote caching. Cache failures never fail a quote.
func WithCache(cache repository.CacheRepository, ttl time.Duration) QuoteOption {
	return func(s *QuoteService) {
		s.cache = cache
		s.ttl = ttl
	}
}

func WithMetrics(m *observability.Metrics) QuoteOption {
	return func(s *QuoteService) { s.metrics = m }
}

func WithLogger(l *slog.Logger) QuoteOption {
	return func(s *QuoteService) { s.logger = l }
}

// NewQuoteService creates a QuoteService over a defaults table.
func NewQuoteService(defaults *Defaults, opts ...QuoteOption) *QuoteService {
	s := &QuoteService{
		defaults: defaults,
		ttl:      DefaultQuoteCacheTTL,
		logger:   observability.DiscardLogger(),
		tracer:   otel.Tracer("quickgfe/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the table the service quotes against.
func (s *QuoteService) Defaults() *Defaults {
	return s.defaults
}

// Quote validates and prices a raw scenario. When ctx is cancelled before
// the result is ready the call returns domain.ErrCancelled.
func (s *QuoteService) Quote(ctx context.Context, req domain.ScenarioRequest) (domain.QuoteOutput, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "QuoteService.Quote")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return domain.QuoteOutput{}, fmt.Errorf("%w: %w", domain.ErrCancelled, err)
	}

	in, pd, err := Resolve(req, s.defaults)
	if err != nil {
		s.record(ctx, span, programLabel(req.Program), start, err)
		return domain.QuoteOutput{}, err
	}
	span.SetAttributes(attribute.String("quote.program", string(in.Program)))

	key, err := quoteCacheKey(in)
	if err != nil {
		return domain.QuoteOutput{}, err
	}

	if out, ok := s.cached(ctx, key); ok {
		span.SetAttributes(attribute.Bool("quote.cache_hit", true))
		s.record(ctx, span, string(in.Program), start, nil)
		return out, nil
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		out, err := Compute(in, pd)
		if err != nil {
			return domain.QuoteOutput{}, err
		}
		s.store(ctx, key, out)
		return out, nil
	})
	span.SetAttributes(attribute.Bool("quote.shared", shared))
	if err != nil {
		s.record(ctx, span, string(in.Program), start, err)
		return domain.QuoteOutput{}, err
	}

	if err := ctx.Err(); err != nil {
		s.record(ctx, span, string(in.Program), start, domain.ErrCancelled)
		return domain.QuoteOutput{}, fmt.Errorf("%w: %w", domain.ErrCancelled, err)
	}

	out := v.(domain.QuoteOutput)
	if shared {
		out = cloneQuote(out)
	}
	s.record(ctx, span, string(in.Program), start, nil)
	return out, nil
}

// cloneQuote gives each caller of a collapsed computation its own line items.
func cloneQuote(q domain.QuoteOutput) domain.QuoteOutput {
	q.Closing.ItemsPayable = slices.Clone(q.Closing.ItemsPayable)
	q.Closing.TitleAndEscrow = slices.Clone(q.Closing.TitleAndEscrow)
	q.Closing.Prepaids = slices.Clone(q.Closing.Prepaids)
	return q
}

func (s *QuoteService) cached(ctx context.Context, key string) (domain.QuoteOutput, bool) {
	if s.cache == nil {
		return domain.QuoteOutput{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		s.metrics.IncrementCacheMiss()
		return domain.QuoteOutput{}, false
	}

	var out domain.QuoteOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.metrics.IncrementCacheError()
		s.logger.WarnContext(ctx, "discarding unreadable cached quote", "key", key, "error", err)
		return domain.QuoteOutput{}, false
	}
	s.metrics.IncrementCacheHit()
	return out, true
}

// store writes a computed quote to the cache (non-critical if it fails).
func (s *QuoteService) store(ctx context.Context, key string, out domain.QuoteOutput) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(out)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode quote for cache", "error", err)
		return
	}
	// The caller may go away before the write; the quote is still worth keeping.
	if err := s.cache.Set(context.WithoutCancel(ctx), key, string(payload), s.ttl); err != nil {
		s.metrics.IncrementCacheError()
		s.logger.WarnContext(ctx, "failed to cache quote", "key", key, "error", err)
	}
}

func (s *QuoteService) record(ctx context.Context, span trace.Span, program string, start time.Time, err error) {
	outcome := outcomeOf(err)
	s.metrics.ObserveQuote(program, outcome, time.Since(start))

	switch outcome {
	case "ok":
	case "invalid", "cancelled":
		s.logger.DebugContext(ctx, "quote not produced", "program", program, "outcome", outcome, "error", err)
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "quote failed", "program", program, "error", err)
	}
}

// programLabel keeps metric labels to the known programs.
func programLabel(tag string) string {
	if p, err := domain.ParseProgram(tag); err == nil {
		return string(p)
	}
	return "unknown"
}

func outcomeOf(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, domain.ErrCancelled):
		return "cancelled"
	case errors.Is(err, domain.ErrConfigurationGap):
		return "config_gap"
	}
	return "error"
}

// quoteCacheKey hashes the canonical input, so requests that differ only in
// spelling (numeric strings, omitted defaults) share an entry.
func quoteCacheKey(in domain.ScenarioInput) (string, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode quote cache key: %w", err)
	}
	return "quote:" + quoteCacheVersion + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16), nil
}
