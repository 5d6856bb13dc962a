package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the quote service. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	QuotesTotal       *prometheus.CounterVec
	QuoteLatency      *prometheus.HistogramVec
	QuoteCacheHits    prometheus.Counter
	QuoteCacheMisses  prometheus.Counter
	QuoteCacheErrors  prometheus.Counter
	LeadsSubmitted    prometheus.Counter
	RateLimitRejected prometheus.Counter
	LiveCancellations prometheus.Counter
}

// NewMetrics registers the collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on /metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QuotesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quickgfe_quotes_total",
			Help: "Quotes computed, by program and outcome",
		}, []string{"program", "outcome"}),
		QuoteLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quickgfe_quote_duration_seconds",
			Help:    "Time to produce a quote, cache lookups included",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"program"}),
		QuoteCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "quickgfe_quote_cache_hits_total",
			Help: "Quotes served from the cache",
		}),
		QuoteCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "quickgfe_quote_cache_misses_total",
			Help: "Quote cache lookups that missed",
		}),
		QuoteCacheErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "quickgfe_quote_cache_errors_total",
			Help: "Quote cache reads or writes that failed",
		}),
		LeadsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "quickgfe_leads_submitted_total",
			Help: "Lead submissions accepted",
		}),
		RateLimitRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "quickgfe_rate_limit_rejected_total",
			Help: "Requests rejected by the per-IP rate limiter",
		}),
		LiveCancellations: f.NewCounter(prometheus.CounterOpts{
			Name: "quickgfe_live_cancellations_total",
			Help: "Live quote computations superseded by a newer edit",
		}),
	}
}

func (m *Metrics) ObserveQuote(program, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.QuotesTotal.WithLabelValues(program, outcome).Inc()
	m.QuoteLatency.WithLabelValues(program).Observe(d.Seconds())
}

func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.QuoteCacheHits.Inc()
}

func (m *Metrics) IncrementCacheMiss() {
	if m == nil {
		return
	}
	m.QuoteCacheMisses.Inc()
}

func (m *Metrics) IncrementCacheError() {
	if m == nil {
		return
	}
	m.QuoteCacheErrors.Inc()
}

func (m *Metrics) IncrementLeadsSubmitted() {
	if m == nil {
		return
	}
	m.LeadsSubmitted.Inc()
}

func (m *Metrics) IncrementRateLimitRejected() {
	if m == nil {
		return
	}
	m.RateLimitRejected.Inc()
}

func (m *Metrics) IncrementLiveCancellations() {
	if m == nil {
		return
	}
	m.LiveCancellations.Inc()
}
