package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/equipment/search", 200, 120*time.Millisecond)
	m.Observe("GET", "/api/equipment/search", 200, 80*time.Millisecond)
	m.Observe("POST", "", 500, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	got, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{"route": "/api/equipment/search", "status": "200"})
	if err != nil {
		t.Fatalf("fetch requests: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected 2 requests, got %f", got)
	}

	if _, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{"route": "unknown", "status": "500"}); err != nil {
		t.Fatalf("expected unknown route label: %v", err)
	}

	sum, err := fetchHistogramSum(mfs, "http_request_duration_seconds", map[string]string{"route": "/api/equipment/search"})
	if err != nil {
		t.Fatalf("fetch duration: %v", err)
	}
	if sum <= 0.19 {
		t.Fatalf("expected duration sum around 0.2, got %f", sum)
	}
}

func TestEmailMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEmailMetrics(reg)
	m.IncSent("welcome")
	m.IncFailed("welcome")
	m.IncFailed("welcome")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "emails_sent_total", map[string]string{"template": "welcome"}); err != nil || got != 1 {
		t.Fatalf("expected sent=1, got %f (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "emails_failed_total", map[string]string{"template": "welcome"}); err != nil || got != 2 {
		t.Fatalf("expected failed=2, got %f (%v)", got, err)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var h *HTTPMetrics
	h.Observe("GET", "/", 200, time.Second)
	var e *EmailMetrics
	e.IncSent("x")
	e.IncFailed("x")

	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Second)
	NewEmailMetrics(nil).IncSent("x")
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
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
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
	for key, value := range want {
		found := false
		for _, pair := range pairs {
			if pair.GetName() == key && pair.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
