package server

import (
	"compress/gzip"
	"log/slog"
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"github.com/sambeau/rechner/config"
)

// compressionLevels maps config level names to gzip levels.
var compressionLevels = map[string]int{
	"fastest": gzip.BestSpeed,
	"default": gzip.DefaultCompression,
	"best":    gzip.BestCompression,
}

// newCompressionHandler wraps an HTTP handler with gzip compression middleware.
// Returns the original handler if compression is disabled or level is "none".
func newCompressionHandler(h http.Handler, cfg config.CompressionConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.Level == "none" {
		return h
	}

	level, ok := compressionLevels[cfg.Level]
	if !ok {
		level = gzip.DefaultCompression
	}

	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(cfg.MinSize),
		gzhttp.CompressionLevel(level),
	)
	if err != nil {
		logger.Warn("compression disabled", "error", err)
		return h
	}

	return wrapper(h)
}
