package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/peterh/liner"

	"github.com/sambeau/rechner/pkg/rechner/dates"
	"github.com/sambeau/rechner/pkg/rechner/resolver"
)

const PROMPT = ">> "

const RECHNER_LOGO = `
█▀█ █▀▀ █▀▀ █░█ █▄░█ █▀▀ █▀█
█▀▄ ██▄ █▄▄ █▀█ █░▀█ ██▄ █▀▄ `

// Keywords understood by the resolver, offered for tab completion together
// with the unit symbols.
var keywords = []string{
	"today", "to", "in",
	"day", "days", "week", "weeks", "month", "months", "year", "years",
}

// Session holds the state of one interactive session. The clock is either
// live or pinned with :now.
type Session struct {
	resolver *resolver.Resolver
	loc      *time.Location
	clock    func() time.Time
	pinned   time.Time
	out      io.Writer
	words    []string
}

// NewSession creates a session that answers with r. A nil clock means
// time.Now; a nil loc means time.Local.
func NewSession(r *resolver.Resolver, clock func() time.Time, loc *time.Location, out io.Writer) *Session {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	seen := make(map[string]bool)
	var words []string
	for _, w := range append(append([]string{}, keywords...), r.Units().Symbols()...) {
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	sort.Strings(words)
	return &Session{resolver: r, loc: loc, clock: clock, out: out, words: words}
}

// Now returns the time the session resolves against.
func (s *Session) Now() time.Time {
	if !s.pinned.IsZero() {
		return s.pinned
	}
	return s.clock().In(s.loc)
}

// Pin fixes the session clock. A zero time returns to the live clock.
func (s *Session) Pin(t time.Time) {
	s.pinned = t
}

// Eval resolves one line and writes the answer. Lines that match nothing
// produce no output.
func (s *Session) Eval(input string) {
	if result := s.resolver.Resolve(input, s.Now()); result != "" {
		fmt.Fprintln(s.out, result)
	}
}

// Start runs the interactive loop until Ctrl+D, exit or quit.
func Start(s *Session, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.Complete)

	historyFile := filepath.Join(os.TempDir(), ".rechner_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(s.out, "%s", RECHNER_LOGO)
	fmt.Fprintln(s.out, "v", version)
	fmt.Fprintln(s.out, "")
	fmt.Fprintln(s.out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(s.out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(s.out, "Type ':help' for REPL commands")
	fmt.Fprintln(s.out, "")

	for {
		input, err := line.Prompt(PROMPT)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(s.out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(s.out, "\nTschüss!")
				return
			}
			fmt.Fprintf(s.out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(trimmed)

		if trimmed == "exit" || trimmed == "quit" {
			fmt.Fprintln(s.out, "Tschüss!")
			return
		}

		if strings.HasPrefix(trimmed, ":") {
			s.HandleCommand(trimmed)
			continue
		}

		s.Eval(trimmed)
	}
}

// HandleCommand runs a meta-command that starts with ':'.
func (s *Session) HandleCommand(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":help", ":h", ":?":
		fmt.Fprintln(s.out, "REPL Commands:")
		fmt.Fprintln(s.out, "  :help, :h, :?   Show this help")
		fmt.Fprintln(s.out, "  :units          List the known units")
		fmt.Fprintln(s.out, "  :now [date]     Pin the clock to date, or show it")
		fmt.Fprintln(s.out, "  :now reset      Return to the live clock")
		fmt.Fprintln(s.out, "  exit, quit      Exit the REPL")
		fmt.Fprintln(s.out, "")
		fmt.Fprintln(s.out, "Examples:")
		fmt.Fprintln(s.out, "  29.2.2024            weekday of a date")
		fmt.Fprintln(s.out, "  today to 24.12.2030  days until a date")
		fmt.Fprintln(s.out, "  2 weeks + today      shift today")
		fmt.Fprintln(s.out, "  31.1.2023 + 1 month  shift a date")
		fmt.Fprintln(s.out, "  3cm in m             convert units")
		fmt.Fprintln(s.out, "  (1 + 2)^3            arithmetic")

	case ":units":
		printUnits(s.resolver, s.out)

	case ":now":
		switch arg {
		case "":
		case "reset":
			s.Pin(time.Time{})
		default:
			t, err := ParseNow(arg, s.loc)
			if err != nil {
				fmt.Fprintf(s.out, "Invalid date: %v\n", err)
				return
			}
			s.Pin(t)
		}
		fmt.Fprintln(s.out, dates.FormatShort(s.Now()))

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type :help for commands)\n", cmd)
	}
}

// ParseNow reads a clock override in any format dateparse understands.
// Times without a zone are taken to be in loc.
func ParseNow(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q: %w", value, err)
	}
	return t, nil
}

func printUnits(r *resolver.Resolver, out io.Writer) {
	for _, c := range r.Units().Categories() {
		symbols := make([]string, len(c.Units))
		for i, u := range c.Units {
			symbols[i] = u.Symbol
		}
		fmt.Fprintf(out, "  %-8s %s\n", c.Name+":", strings.Join(symbols, ", "))
	}
	fmt.Fprintf(out, "  %-8s %s\n", "Temp.:", "c ↔ f, c ↔ k")
}

// Complete returns completion candidates for the word being typed.
func (s *Session) Complete(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if last := line[len(line)-1]; last == ' ' || last == '\t' {
		return nil
	}

	words := strings.Fields(line)
	lastWord := words[len(words)-1]
	prefix := strings.TrimSuffix(line, lastWord)

	// "3cm" completes on the unit part
	unitPart := strings.TrimLeft(lastWord, "0123456789.,-")
	numPart := lastWord[:len(lastWord)-len(unitPart)]
	if unitPart == "" {
		return nil
	}

	var matches []string
	for _, word := range s.words {
		if strings.HasPrefix(word, strings.ToLower(unitPart)) {
			matches = append(matches, prefix+numPart+word)
		}
	}
	return matches
}
