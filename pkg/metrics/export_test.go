package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestExportMetricsExportsCountersAndHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewExportMetrics(reg)

	metrics.ObserveDuration("category", 250*time.Millisecond)
	metrics.ObserveCount("category", 12)
	metrics.IncRequest("category", OutcomeSuccess)
	metrics.IncRequest("category", OutcomeSuccess)
	metrics.IncRequest("", OutcomeInvalidFilter)
	metrics.IncCacheLookup(CacheExport, true)
	metrics.IncCacheLookup(CacheExport, false)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "sku_export_requests_total", map[string]string{"filter_type": "category", "outcome": OutcomeSuccess}); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 2 {
		t.Fatalf("expected requests=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "sku_export_requests_total", map[string]string{"filter_type": "unknown", "outcome": OutcomeInvalidFilter}); err != nil {
		t.Fatalf("fetch invalid: %v", err)
	} else if got != 1 {
		t.Fatalf("expected invalid=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "sku_export_cache_lookups_total", map[string]string{"cache": CacheExport, "result": "hit"}); err != nil {
		t.Fatalf("fetch cache hit: %v", err)
	} else if got != 1 {
		t.Fatalf("expected hit=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "sku_export_duration_seconds", map[string]string{"filter_type": "category"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "sku_export_products", map[string]string{"filter_type": "category"}); err != nil {
		t.Fatalf("fetch products: %v", err)
	} else if got != 12 {
		t.Fatalf("expected product sum 12, got %f", got)
	}
}

func TestNilExportMetricsIsNoop(t *testing.T) {
	var metrics *ExportMetrics
	metrics.IncRequest("sku", OutcomeSuccess)
	metrics.IncCacheLookup(CacheOptions, false)
	metrics.ObserveDuration("sku", time.Second)
	metrics.ObserveCount("sku", 1)

	NewExportMetrics(nil).IncRequest("sku", OutcomeError)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
