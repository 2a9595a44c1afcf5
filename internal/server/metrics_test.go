package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleMetrics(t *testing.T) {
	t.Parallel()
	s, _ := newMockServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.handleMetrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("metrics body is empty")
	}
	if !strings.Contains(rec.Body.String(), "fibrange_requests_total") {
		t.Error("metrics output missing fibrange_requests_total")
	}
}

func TestHandleMetrics_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	s, _ := newMockServer(t)

	req := httptest.NewRequest(http.MethodPost, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.handleMetrics(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestMetricsMiddleware_TracksRequests(t *testing.T) {
	t.Parallel()
	s, _ := newMockServer(t)

	handled := false
	wrapped := s.metricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		handled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	wrapped(rec, req)

	if !handled {
		t.Error("wrapped handler was not invoked")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
