package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/gotransfers/internal/infrastructure/metrics"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	m := metrics.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transfers/some-id", nil)
	rr := httptest.NewRecorder()

	Metrics(m)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected wrapped handler status to pass through, got %d", rr.Code)
	}

	count := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/transfers/:id", "418"))
	if count != 1 {
		t.Fatalf("expected one recorded request, got %v", count)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/transfers/7e6f9e1c", "/api/v1/transfers/:id"},
		{"/api/v1/transfers/", "/api/v1/transfers/"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
