package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/people/{id}", "200"))

	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/people/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/people/abc-123", nil))

	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/people/{id}", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}

	// The raw path must not appear as a label value.
	if got := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/people/abc-123", "200")); got != 0 {
		t.Errorf("raw path leaked into the route label: %v", got)
	}
}

func TestMiddlewareRecordsErrorStatus(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/boom", "500"))

	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/boom", "500"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	// A fresh registry avoids duplicate-registration panics across tests.
	reg := prometheus.NewRegistry()
	Register(reg)

	RequestsTotal.WithLabelValues("GET", "/healthz", "200").Inc()
	AuthFailuresTotal.WithLabelValues("bearer").Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "giftwish_requests_total") || !strings.Contains(body, "giftwish_auth_failures_total") {
		t.Errorf("exposition missing expected families:\n%s", body)
	}
}
