package providers

import (
	"sightd/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/sights", 200)
	m.ObserveRequestDuration("/sights", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.SetRecordsTotal("active", 10)
	m.IncBackups("ok")
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)

	m.IncRequestsTotal("/sights", 200)
	m.IncRequestsTotal("/sights", 404)
	m.IncRequestsTotal("/sights", 201)
	m.ObserveRequestDuration("/sights", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.SetRecordsTotal("active", 42)
	m.IncBackups("ok")

	mp := m.(*MetricsProvider)
	assert.Equal(t, float64(2), testutil.ToFloat64(mp.requestsTotal.WithLabelValues("/sights", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.requestsTotal.WithLabelValues("/sights", "4xx")))
	assert.Equal(t, float64(42), testutil.ToFloat64(mp.recordsTotal.WithLabelValues("active")))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.backupsTotal.WithLabelValues("ok")))
}

func TestMetricsProvider_RegistersCollectors(t *testing.T) {
	reg := useTestRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	m.IncCacheHits()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "sightd_cache_hits_total")
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{422, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
