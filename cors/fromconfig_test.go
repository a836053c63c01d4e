package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/crumpet/config"
)

func TestFromConfig_NilConfig(t *testing.T) {
	handler := FromConfig(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin should not be set, got %q", got)
	}
}

func TestFromConfig_Disabled(t *testing.T) {
	cfg := &config.CoreConfig{}
	cfg.CORS.EnableCORS = false

	downstream := &countingHandler{status: http.StatusOK}
	handler := FromConfig(cfg)(downstream)

	// Even OPTIONS passes through when CORS is disabled.
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if downstream.calls != 1 {
		t.Errorf("downstream calls = %d, want 1", downstream.calls)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin should not be set, got %q", got)
	}
}

func TestFromConfig_Enabled(t *testing.T) {
	cfg := &config.CoreConfig{}
	cfg.CORS.EnableCORS = true
	cfg.CORS.CORSAllowedOrigin = "https://app.example.com"
	cfg.CORS.CORSAllowedMethods = []string{"GET", "POST"}
	cfg.CORS.CORSAllowedHeaders = []string{"Authorization", "Content-Type"}
	cfg.CORS.CORSMaxAge = 600
	cfg.CORS.CORSPreflightStatus = http.StatusNoContent

	handler := FromConfig(cfg)(&countingHandler{status: http.StatusOK})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	tests := []struct {
		header string
		want   string
	}{
		{"Access-Control-Allow-Origin", "https://app.example.com"},
		{"Access-Control-Allow-Methods", "GET,POST"},
		{"Access-Control-Allow-Headers", "Authorization,Content-Type"},
		{"Access-Control-Max-Age", "600"},
	}
	for _, tt := range tests {
		if got := rec.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
		}
	}
}
