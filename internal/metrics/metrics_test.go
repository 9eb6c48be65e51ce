package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchCollectorRecordsMetrics(t *testing.T) {
	collector, err := NewFetchCollector()
	if err != nil {
		t.Fatalf("NewFetchCollector returned error: %v", err)
	}

	collector.ObserveSource(true)
	collector.ObserveSource(true)
	collector.ObserveSource(false)
	collector.AddItems(7)
	collector.ObserveCycle(250 * time.Millisecond)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected metrics handler to return 200, got %d", rr.Code)
	}

	body := rr.Body.String()
	if !strings.Contains(body, `gather_fetch_sources_total{outcome="success"} 2`) {
		t.Fatalf("success counter not recorded, body=%q", body)
	}
	if !strings.Contains(body, `gather_fetch_sources_total{outcome="failure"} 1`) {
		t.Fatalf("failure counter not recorded, body=%q", body)
	}
	if !strings.Contains(body, "gather_fetch_items_total 7") {
		t.Fatalf("items counter not recorded, body=%q", body)
	}
	if !strings.Contains(body, "gather_fetch_cycle_duration_seconds_count 1") {
		t.Fatalf("cycle histogram not recorded, body=%q", body)
	}
}

func TestFetchCollectorsAreIndependent(t *testing.T) {
	a, err := NewFetchCollector()
	if err != nil {
		t.Fatalf("NewFetchCollector returned error: %v", err)
	}
	b, err := NewFetchCollector()
	if err != nil {
		t.Fatalf("NewFetchCollector returned error: %v", err)
	}

	a.ObserveSource(true)

	rr := httptest.NewRecorder()
	b.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if strings.Contains(rr.Body.String(), `gather_fetch_sources_total{outcome="success"} 1`) {
		t.Fatal("collectors share a registry")
	}
}
