package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sambeau/rechner/config"
	"github.com/sambeau/rechner/pkg/rechner/resolver"
)

// Server represents a rechner HTTP server instance.
type Server struct {
	config     *config.Config
	configPath string
	stdout     io.Writer
	logger     *slog.Logger
	resolver   *resolver.Resolver
	loc        *time.Location
	clock      func() time.Time
	helpPage   []byte
	limiter    *rateLimiter
	mux        *http.ServeMux
	server     *http.Server
}

// New creates a new server with the given configuration. Request and
// application logs go to stderr; startup messages go to stdout.
func New(cfg *config.Config, configPath string, stdout, stderr io.Writer) (*Server, error) {
	r, err := cfg.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("creating resolver: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:     cfg,
		configPath: configPath,
		stdout:     stdout,
		logger:     NewLogger(stderr, cfg.Logging),
		resolver:   r,
		loc:        loc,
		clock:      time.Now,
		limiter:    newRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
		mux:        http.NewServeMux(),
	}

	s.helpPage, err = renderHelpPage(r.Units())
	if err != nil {
		return nil, fmt.Errorf("rendering help page: %w", err)
	}

	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the HTTP mux.
func (s *Server) setupRoutes() {
	s.mux.Handle("/api/resolve", &resolveHandler{server: s})
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok")
	})
	s.mux.HandleFunc("GET /{$}", s.serveHelp)
}

// Handler returns the mux wrapped in the middleware chain, outermost first:
// request logging, compression, CORS.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = newCORSHandler(handler, s.config.CORS)
	handler = newCompressionHandler(handler, s.config.Compression, s.logger)
	if !s.config.Logging.Quiet {
		handler = newRequestLogger(handler, s.logger, s.config.Server.TrustProxy)
	}
	return handler
}

// now returns the current time in the configured zone.
func (s *Server) now() time.Time {
	return s.clock().In(s.loc)
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := s.listenAddr()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(s.stdout, "Starting rechner on http://%s\n", addr)
		if s.configPath != "" {
			s.logger.Info("config loaded", "path", s.configPath)
		}
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintf(s.stdout, "\nShutting down gracefully...\n")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// listenAddr returns the address to listen on based on configuration.
func (s *Server) listenAddr() string {
	return net.JoinHostPort(s.config.Server.Host, strconv.Itoa(s.config.Server.Port))
}
