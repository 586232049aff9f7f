package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if seen == "" {
		t.Fatal("expected a generated request id in the context")
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Fatalf("response header %q does not match context id %q", rec.Header().Get("X-Request-ID"), seen)
	}
}

func TestRequestIDPropagatesCallerValue(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "req-123" {
		t.Fatalf("expected caller id to be kept, got %q", seen)
	}
	if rec.Header().Get("X-Request-ID") != "req-123" {
		t.Fatalf("expected caller id echoed, got %q", rec.Header().Get("X-Request-ID"))
	}
}
