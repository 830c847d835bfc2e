package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authedRequest(t *testing.T, mw func(http.Handler) http.Handler, path, header string) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	return rec
}

func TestBearerAuthValidKey(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret"})
	rec := authedRequest(t, mw, "/api/v1/search", "Bearer secret")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestBearerAuthRejections(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret"})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic secret"},
		{"wrong key", "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := authedRequest(t, mw, "/api/v1/search", tt.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestBearerAuthExemptPaths(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret"})

	for _, path := range []string{"/health", "/metrics"} {
		rec := authedRequest(t, mw, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestBearerAuthDisabled(t *testing.T) {
	mw := BearerAuthMiddleware(nil)
	rec := authedRequest(t, mw, "/api/v1/search", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
