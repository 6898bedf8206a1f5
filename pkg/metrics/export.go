package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess       = "success"
	OutcomeEmpty         = "empty"
	OutcomeInvalidFilter = "invalid_filter"
	OutcomeError         = "error"

	CacheExport  = "export"
	CacheOptions = "options"
)

// ExportMetrics records SKU export activity.
type ExportMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	products *prometheus.HistogramVec
	cache    *prometheus.CounterVec
}

// NewExportMetrics registers the export metrics on the provided registerer.
func NewExportMetrics(reg prometheus.Registerer) *ExportMetrics {
	if reg == nil {
		return &ExportMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sku_export_requests_total",
		Help: "SKU export requests by filter type and outcome.",
	}, []string{"filter_type", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sku_export_duration_seconds",
		Help:    "Duration of SKU exports in seconds, cache hits included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"filter_type"})
	products := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sku_export_products",
		Help:    "Number of exported SKU fragments per request.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"filter_type"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sku_export_cache_lookups_total",
		Help: "Cache lookups by cache and result.",
	}, []string{"cache", "result"})
	reg.MustRegister(requests, duration, products, cache)
	return &ExportMetrics{
		requests: requests,
		duration: duration,
		products: products,
		cache:    cache,
	}
}

// ObserveDuration records the duration of an export for the filter type.
func (m *ExportMetrics) ObserveDuration(filterType string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(filterType)).Observe(duration.Seconds())
}

// ObserveCount records how many fragments an export produced.
func (m *ExportMetrics) ObserveCount(filterType string, count int) {
	if m == nil || m.products == nil {
		return
	}
	m.products.WithLabelValues(normalizeLabel(filterType)).Observe(float64(count))
}

// IncRequest counts an export by outcome.
func (m *ExportMetrics) IncRequest(filterType, outcome string) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(filterType), normalizeLabel(outcome)).Inc()
}

// IncCacheLookup counts a hit or miss against the named cache.
func (m *ExportMetrics) IncCacheLookup(cache string, hit bool) {
	if m == nil || m.cache == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(normalizeLabel(cache), result).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
