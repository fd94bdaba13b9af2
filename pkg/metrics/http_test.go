package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCountsByStatusClass(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/batches", 200, 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/batches", 200, 30*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/batches", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/batches", "2xx")); got != 2 {
		t.Fatalf("expected 2 GET 2xx requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/batches", "4xx")); got != 1 {
		t.Fatalf("expected 1 POST 4xx request, got %v", got)
	}
}

func TestObserveRequestNormalizesEmptyRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "", 500, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "5xx")); got != 1 {
		t.Fatalf("expected unmatched route label, got %v", got)
	}
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/x", 200, time.Millisecond)
	m.IncInFlight()
	m.DecInFlight()

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "/x", 200, time.Millisecond)
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{199: "1xx", 204: "2xx", 301: "3xx", 422: "4xx", 503: "5xx"}
	for status, want := range cases {
		if got := statusClass(status); got != want {
			t.Fatalf("status %d: expected %s, got %s", status, want, got)
		}
	}
}
