package server

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sambeau/rechner/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func htmlHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	})
}

func TestCompressionHandler_Disabled(t *testing.T) {
	body := strings.Repeat("<p>Hallo</p>\n", 200)
	cfg := config.CompressionConfig{Enabled: false, Level: "default", MinSize: 16}

	for _, level := range []string{"default", "none"} {
		t.Run(level, func(t *testing.T) {
			c := cfg
			c.Level = level
			if level == "none" {
				c.Enabled = true
			}
			wrapped := newCompressionHandler(htmlHandler(body), c, discardLogger())

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			if rec.Header().Get("Content-Encoding") == "gzip" {
				t.Error("Expected response not to be gzipped")
			}
			if rec.Body.String() != body {
				t.Errorf("Expected uncompressed body")
			}
		})
	}
}

func TestCompressionHandler_GzipResponse(t *testing.T) {
	largeContent := strings.Repeat("<p>Hallo, Welt!</p>\n", 100)

	for _, level := range []string{"fastest", "default", "best"} {
		t.Run(level, func(t *testing.T) {
			cfg := config.CompressionConfig{Enabled: true, Level: level, MinSize: 1024}
			wrapped := newCompressionHandler(htmlHandler(largeContent), cfg, discardLogger())

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			if rec.Header().Get("Content-Encoding") != "gzip" {
				t.Fatalf("Expected gzip encoding, got %q", rec.Header().Get("Content-Encoding"))
			}

			gr, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
			if err != nil {
				t.Fatalf("gzip.NewReader: %v", err)
			}
			defer gr.Close()
			decompressed, err := io.ReadAll(gr)
			if err != nil {
				t.Fatalf("reading gzip body: %v", err)
			}
			if string(decompressed) != largeContent {
				t.Error("Decompressed content doesn't match original")
			}
		})
	}
}

func TestCompressionHandler_SmallResponse(t *testing.T) {
	cfg := config.CompressionConfig{Enabled: true, Level: "default", MinSize: 1024}
	wrapped := newCompressionHandler(htmlHandler("<p>klein</p>"), cfg, discardLogger())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") == "gzip" {
		t.Error("Expected small response not to be gzipped")
	}
}

func TestCompressionHandler_NoAcceptEncoding(t *testing.T) {
	largeContent := strings.Repeat("<p>Hallo, Welt!</p>\n", 100)
	cfg := config.CompressionConfig{Enabled: true, Level: "default", MinSize: 1024}
	wrapped := newCompressionHandler(htmlHandler(largeContent), cfg, discardLogger())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") == "gzip" {
		t.Error("Expected no gzip without Accept-Encoding")
	}
	if rec.Body.String() != largeContent {
		t.Error("Expected uncompressed body")
	}
}
