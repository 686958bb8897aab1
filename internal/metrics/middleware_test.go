package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/api/movies/"+id, http.NoBody)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/movies/{id}", "200"))
	if got != 3 {
		t.Errorf("requests for pattern: got %v, want 3", got)
	}
	if n := testutil.CollectAndCount(HTTPRequestDuration); n == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/status/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/status/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/status/twice", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusInternalServerError)
	})

	tests := []struct {
		path   string
		status string
	}{
		{"/status/ok", "200"},
		{"/status/missing", "404"},
		{"/status/twice", "418"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))

			if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", tc.path, tc.status)); got < 1 {
				t.Errorf("requests for %s status %s: got %v", tc.path, tc.status, got)
			}
		})
	}
}

func TestMiddleware_Unmatched(t *testing.T) {
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random/path/123", http.NoBody))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))

	if after-before != 1 {
		t.Errorf("unmatched requests: got %v, want 1", after-before)
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	var during float64
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(HTTPInFlight)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if during < 1 {
		t.Errorf("in flight during request: got %v", during)
	}
	if got := testutil.ToFloat64(HTTPInFlight); got != 0 {
		t.Errorf("in flight after request: got %v", got)
	}
}
