package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sambeau/rechner/config"
	"github.com/sambeau/rechner/pkg/rechner/repl"
)

// Version is set at compile time via -ldflags
var Version = "0.1.0-dev"

// errNoMatch makes a one-shot run exit non-zero without printing anything.
var errNoMatch = errors.New("no match")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv, time.Now)
	switch {
	case err == nil:
	case errors.Is(err, errNoMatch):
		os.Exit(1)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string, clock func() time.Time) error {
	flags := flag.NewFlagSet("rech", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { printHelp(stderr) }

	var (
		configPath  = flags.String("config", "", "Path to config file")
		nowFlag     = flags.String("now", "", "Resolve against this date instead of the clock")
		showVersion = flags.Bool("version", false, "Show version")
		showHelp    = flags.Bool("help", false, "Show help")
	)

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showHelp {
		printHelp(stdout)
		return nil
	}

	if *showVersion {
		fmt.Fprintf(stdout, "rech version %s\n", Version)
		return nil
	}

	cfg, _, err := config.LoadWithPath(*configPath, getenv)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	r, err := cfg.NewResolver()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	session := repl.NewSession(r, clock, loc, stdout)
	if *nowFlag != "" {
		now, err := repl.ParseNow(*nowFlag, loc)
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		session.Pin(now)
	}

	if flags.NArg() == 0 {
		repl.Start(session, Version)
		return nil
	}

	input := strings.Join(flags.Args(), " ")
	result := r.Resolve(input, session.Now())
	if result == "" {
		return errNoMatch
	}
	fmt.Fprintln(stdout, result)
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `rech - natural-language calculator version %s

Usage:
  rech [options] <expression>
  rech [options]                 Start the interactive REPL

Options:
  --config PATH     Path to config file (default: auto-detect)
  --now DATE        Resolve against DATE instead of the current time
  --version         Show version information
  --help            Show this help message

Expressions:
  29.2.2024             Weekday of a date
  today to 24.12.2030   Days until a date
  2 weeks + today       Shift today by days, weeks, months or years
  today - 1 day         Shift today backwards
  31.1.2023 + 1 month   Shift a date
  3cm in m              Convert units
  (1 + 2)^3             Arithmetic

Exit status is 1 when the expression matched nothing.
`, Version)
}
