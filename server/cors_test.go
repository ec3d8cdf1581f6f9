package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sambeau/rechner/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
}

func TestCORS_Disabled(t *testing.T) {
	h := newCORSHandler(okHandler(), config.CORSConfig{})

	req := httptest.NewRequest("GET", "/api/resolve", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected no CORS headers when no origins are configured")
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	h := newCORSHandler(okHandler(), config.CORSConfig{Origins: []string{"https://example.com"}})

	tests := []struct {
		origin   string
		expected string
	}{
		{"https://example.com", "https://example.com"},
		{"https://evil.com", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/resolve", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.expected {
				t.Errorf("expected Allow-Origin %q, got %q", tt.expected, got)
			}
			if rec.Body.String() != "OK" {
				t.Errorf("expected the request to reach the handler")
			}
		})
	}
}

func TestCORS_Wildcard(t *testing.T) {
	h := newCORSHandler(okHandler(), config.CORSConfig{Origins: []string{"*"}})

	req := httptest.NewRequest("GET", "/api/resolve", nil)
	req.Header.Set("Origin", "https://anywhere.org")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected *, got %q", got)
	}
	if rec.Header().Get("Vary") != "" {
		t.Error("wildcard responses do not vary by origin")
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := newCORSHandler(okHandler(), config.CORSConfig{Origins: []string{"https://example.com"}, MaxAge: 600})

	req := httptest.NewRequest("OPTIONS", "/api/resolve", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, HEAD, POST" {
		t.Errorf("unexpected Allow-Methods %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Errorf("unexpected Allow-Headers %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("unexpected Max-Age %q", got)
	}
	if rec.Body.String() != "" {
		t.Error("preflight must not reach the handler")
	}
}
