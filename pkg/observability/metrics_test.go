package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestHTTPMiddlewareRecordsRequests(t *testing.T) {
	t.Parallel()

	m := NewMetrics(prometheus.NewRegistry())

	mw := m.HTTPMiddleware(func(r *http.Request) string { return "/api/books/{id}" })
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books/abc", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	metricsRec := httptest.NewRecorder()
	m.Handler().ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := metricsRec.Body.String()
	if !strings.Contains(body, `readinglist_http_requests_total{method="GET",path="/api/books/{id}",status="404"} 1`) {
		t.Errorf("metrics output missing request counter, got:\n%s", body)
	}
}

func TestNewMetricsDefaultsRegistry(t *testing.T) {
	t.Parallel()

	m := NewMetrics(nil)
	m.RegistrationsTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "readinglist_registrations_total 1") {
		t.Error("metrics output missing registrations counter")
	}
}
