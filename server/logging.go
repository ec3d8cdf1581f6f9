package server

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sambeau/rechner/config"
)

// NewLogger builds the application logger from the logging section.
func NewLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// requestLogger is middleware that logs HTTP requests
type requestLogger struct {
	handler    http.Handler
	logger     *slog.Logger
	trustProxy bool
}

// responseCapture wraps http.ResponseWriter to capture status code
type responseCapture struct {
	http.ResponseWriter
	status int
}

func (rc *responseCapture) WriteHeader(code int) {
	if rc.status == 0 {
		rc.status = code
	}
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	if rc.status == 0 {
		rc.status = http.StatusOK
	}
	return rc.ResponseWriter.Write(b)
}

// newRequestLogger creates request logging middleware. The client address
// comes from X-Forwarded-For only when trustProxy is set.
func newRequestLogger(handler http.Handler, logger *slog.Logger, trustProxy bool) *requestLogger {
	return &requestLogger{handler: handler, logger: logger, trustProxy: trustProxy}
}

func (rl *requestLogger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rc := &responseCapture{ResponseWriter: w}
	rl.handler.ServeHTTP(rc, r)

	if rc.status == 0 {
		rc.status = http.StatusOK
	}

	duration := time.Since(start)
	rl.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rc.status,
		"duration", duration.String(),
		"duration_ms", duration.Milliseconds(),
		"client_ip", clientKey(r, rl.trustProxy),
		"user_agent", r.UserAgent(),
	)
}
