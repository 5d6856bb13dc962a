package observability

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogConfig{Level: "info", Format: "json"})

	logger.Debug("hidden")
	logger.Info("quote computed", "program", "fha")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"program":"fha"`)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveQuote("va", "ok", time.Millisecond)
		m.IncrementCacheHit()
		m.IncrementCacheMiss()
		m.IncrementCacheError()
		m.IncrementLeadsSubmitted()
		m.IncrementRateLimitRejected()
		m.IncrementLiveCancellations()
	})
}

func TestMetrics_Counts(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveQuote("fha", "ok", time.Millisecond)
	m.ObserveQuote("fha", "ok", time.Millisecond)
	m.IncrementCacheHit()

	assert.Equal(t, 2.0, counterValue(t, m.QuotesTotal.WithLabelValues("fha", "ok")))
	assert.Equal(t, 1.0, counterValue(t, m.QuoteCacheHits))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var out dto.Metric
	if err := c.Write(&out); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return out.GetCounter().GetValue()
}
