package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickgfe/observability"
	"quickgfe/repository"
	"quickgfe/service"
)

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, limiter *RateLimiter, health HealthChecker) http.Handler {
	t.Helper()
	return NewRouter(testRouterConfig(t, limiter, health))
}

func testRouterConfig(t *testing.T, limiter *RateLimiter, health HealthChecker) RouterConfig {
	t.Helper()
	logger := observability.DiscardLogger()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	defaults := service.StandardDefaults()

	return RouterConfig{
		Logger:         logger,
		Metrics:        metrics,
		RateLimiter:    limiter,
		Quotes:         NewQuoteHandler(service.NewQuoteService(defaults, service.WithMetrics(metrics)), logger),
		Leads:          NewLeadHandler(service.NewLeadService(repository.NewLeadRepositoryMemory(), metrics, logger), logger),
		Programs:       NewProgramHandler(defaults, logger),
		Rates:          NewRateComparisonHandler(service.NewRateComparisonService(), logger),
		Health:         health,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
}

func TestRouter_Routes(t *testing.T) {
	limiter := NewRateLimiter(100, time.Minute)
	defer limiter.Stop()
	r := newTestRouter(t, limiter, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/quote", `{"program": "va", "purchasePrice": 300000}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/rates/compare", `{"loanAmount": 300000, "termMonths": 360}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/programs/va/defaults", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quickgfe_quotes_total")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quote", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_RequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-Id"))
}

func TestRouter_RateLimitsQuotes(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	r := newTestRouter(t, limiter, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/quote", `{"program": "fha", "purchasePrice": 300000}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/quote", `{"program": "fha", "purchasePrice": 300000}`))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/programs/fha/defaults", nil))
	assert.Equal(t, http.StatusOK, w.Code, "defaults are not rate limited")
}

func quoteFrom(forwardedFor string) *http.Request {
	req := postJSON("/quote", `{"program": "fha", "purchasePrice": 300000}`)
	req.RemoteAddr = "192.0.2.50:40000"
	req.Header.Set("X-Forwarded-For", forwardedFor)
	return req
}

func TestRouter_RotatingForwardedForSharesBucket(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	r := newTestRouter(t, limiter, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, quoteFrom("203.0.113.1"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, quoteFrom("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_TrustedProxyHeaders(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	cfg := testRouterConfig(t, limiter, nil)
	cfg.TrustProxyHeaders = true
	r := NewRouter(cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, quoteFrom("203.0.113.1"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, quoteFrom("203.0.113.2"))
	assert.Equal(t, http.StatusOK, w.Code, "each forwarded client has its own bucket")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, quoteFrom("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_Unhealthy(t *testing.T) {
	r := newTestRouter(t, nil, healthFunc(func(context.Context) error { return errors.New("redis down") }))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
