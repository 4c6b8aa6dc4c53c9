package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveExport(t *testing.T) {
	m := New()
	m.ObserveExport("pdf", OutcomeOK)
	m.ObserveExport("pdf", OutcomeOK)
	m.ObserveExport("csv", OutcomeUnresolved)

	if got := testutil.ToFloat64(m.exports.WithLabelValues("pdf", OutcomeOK)); got != 2 {
		t.Fatalf("expected 2 pdf exports, got %v", got)
	}
	if got := testutil.ToFloat64(m.exports.WithLabelValues("csv", OutcomeUnresolved)); got != 1 {
		t.Fatalf("expected 1 unresolved csv export, got %v", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveExport("pdf", OutcomeOK)
	m.ObserveEmail(OutcomeOK)
	m.ObserveRequest(http.MethodGet, 200, time.Millisecond)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, 200, 10*time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `invoicedesk_http_requests_total{method="GET",status="200"} 1`) {
		t.Fatalf("missing request counter in output:\n%s", rr.Body.String())
	}
}
