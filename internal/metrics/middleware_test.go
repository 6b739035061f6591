package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// debugRouter mirrors the debug listener shape: an instrumented healthz
// plus failing routes.
func debugRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Без явного WriteHeader: middleware обязан посчитать 200.
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func get(t *testing.T, r chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rr
}

func counterValue(method, path, status string) float64 {
	return testutil.ToFloat64(httpRequestsTotal.WithLabelValues(method, path, status))
}

func TestMiddleware_CountsByRouteAndStatus(t *testing.T) {
	r := debugRouter()

	cases := []struct {
		path   string
		status int
	}{
		{"/healthz", http.StatusOK},
		{"/missing", http.StatusNotFound},
		{"/boom", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status := strconv.Itoa(tc.status)
		before := counterValue(http.MethodGet, tc.path, status)

		rr := get(t, r, tc.path)
		if rr.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.path, rr.Code, tc.status)
		}
		if after := counterValue(http.MethodGet, tc.path, status); after != before+1 {
			t.Errorf("%s: counter went %v to %v, want +1", tc.path, before, after)
		}
	}
}

func TestMiddleware_ObservesDuration(t *testing.T) {
	get(t, debugRouter(), "/healthz")

	if n := testutil.CollectAndCount(httpRequestDuration); n == 0 {
		t.Error("duration histogram has no observations")
	}
}

func TestMiddleware_SilentHandlerCountsAs200(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/silent", func(http.ResponseWriter, *http.Request) {})

	before := counterValue(http.MethodGet, "/silent", "200")
	get(t, r, "/silent")
	if got := counterValue(http.MethodGet, "/silent", "200"); got != before+1 {
		t.Errorf("silent handler counter = %v, want %v", got, before+1)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath(""); got != "unknown" {
		t.Errorf(`normalizePath("") = %q, want "unknown"`, got)
	}
	if got := normalizePath("/healthz"); got != "/healthz" {
		t.Errorf("normalizePath(/healthz) = %q, want unchanged", got)
	}
}
