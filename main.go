package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sambeau/rechner/config"
	"github.com/sambeau/rechner/server"
)

// Version is set at build time via -ldflags
var Version = "0.1.0-dev"

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// overrides are command-line settings that take precedence over the config file.
// Zero values leave the file's setting alone.
type overrides struct {
	host     string
	port     int
	timezone string
	quiet    bool
}

func (o overrides) apply(cfg *config.Config) {
	if o.host != "" {
		cfg.Server.Host = o.host
	}
	if o.port != 0 {
		cfg.Server.Port = o.port
	}
	if o.timezone != "" {
		cfg.Resolver.Timezone = o.timezone
	}
	if o.quiet {
		cfg.Logging.Quiet = true
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := flag.NewFlagSet("rechner", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var o overrides
	configPath := flags.String("config", "", "Path to config file")
	flags.StringVar(&o.host, "host", "", "Override listen host")
	flags.IntVar(&o.port, "port", 0, "Override listen port")
	flags.StringVar(&o.timezone, "timezone", "", "Override the zone that defines today")
	flags.BoolVar(&o.quiet, "quiet", false, "Suppress request logs")
	check := flags.Bool("check", false, "Validate the configuration and exit")
	showVersion := flags.Bool("version", false, "Show version")
	showHelp := flags.Bool("help", false, "Show help")

	if err := flags.Parse(args); err != nil {
		return err
	}

	switch {
	case *showHelp:
		printUsage(stdout)
		return nil
	case *showVersion:
		fmt.Fprintf(stdout, "rechner version %s\n", Version)
		return nil
	}

	cfg, configFile, err := config.LoadWithPath(*configPath, getenv)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	o.apply(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if err := printSummary(stdout, cfg, configFile); err != nil {
		return err
	}
	if *check {
		return nil
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := server.New(cfg, configFile, stdout, stderr)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	return srv.Run(ctx)
}

// printSummary reports the effective settings before the server starts.
func printSummary(w io.Writer, cfg *config.Config, configFile string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	tbl, err := cfg.UnitTable()
	if err != nil {
		return err
	}

	source := configFile
	if source == "" {
		source = "built-in defaults"
	}
	nUnits := len(tbl.Symbols())
	limit := "off"
	if cfg.RateLimit.Requests > 0 {
		limit = fmt.Sprintf("%d per %s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	fmt.Fprintf(w, "config:     %s\n", source)
	fmt.Fprintf(w, "listen:     %s\n", net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)))
	fmt.Fprintf(w, "timezone:   %s\n", loc)
	fmt.Fprintf(w, "units:      %d in %d categories\n", nUnits, len(tbl.Categories()))
	fmt.Fprintf(w, "rate limit: %s\n", limit)
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `rechner - Natural-language calculator over HTTP

Usage:
  rechner [options]

Options:
  --config PATH      Path to config file (default: auto-detect)
  --host HOST        Override listen host
  --port PORT        Override listen port
  --timezone ZONE    Override the zone that defines "today" (IANA name or Local)
  --quiet            Suppress request logs
  --check            Validate the configuration, print it and exit
  --version          Show version
  --help             Show this help

Config Resolution:
  1. --config flag
  2. RECHNER_CONFIG environment variable
  3. ./rechner.yaml
  4. ~/.config/rechner/rechner.yaml
  Without a config file the built-in defaults are used.

Endpoints:
  GET  /api/resolve?q=EXPR   Resolve an expression
  POST /api/resolve          Resolve {"input": EXPR}
  GET  /                     Help page
  GET  /healthz              Health check

Examples:
  rechner                          Start on localhost:8080
  rechner --port 3000              Listen on port 3000
  rechner --timezone UTC --check   Show the effective settings

`)
}
