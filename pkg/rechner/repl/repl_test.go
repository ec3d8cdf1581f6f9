package repl

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sambeau/rechner/pkg/rechner/resolver"
	"github.com/sambeau/rechner/pkg/rechner/units"
)

func fixedClock() time.Time {
	return time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)
}

func newTestSession(out *bytes.Buffer) *Session {
	return NewSession(resolver.New(resolver.Options{}), fixedClock, time.UTC, out)
}

func TestEval(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2^10", "1024\n"},
		{"3cm in m", "0.03 m\n"},
		{"2weeks + today", "14.03.2024 (Donnerstag)\n"},
		{"hello", ""},
		{"29.2.2023", "Ungültiges Datum\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			newTestSession(&out).Eval(tt.input)
			if out.String() != tt.expected {
				t.Errorf("Eval(%q) wrote %q, want %q", tt.input, out.String(), tt.expected)
			}
		})
	}
}

func TestNowCommand(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&out)

	s.HandleCommand(":now")
	if got := out.String(); got != "29.02.2024 (Donnerstag)\n" {
		t.Errorf("unexpected :now output %q", got)
	}

	out.Reset()
	s.HandleCommand(":now 2025-12-24")
	if got := out.String(); got != "24.12.2025 (Mittwoch)\n" {
		t.Errorf("unexpected :now output %q", got)
	}

	out.Reset()
	s.Eval("today + 1 week")
	if got := out.String(); got != "31.12.2025 (Mittwoch)\n" {
		t.Errorf("expected the pinned clock to be used, got %q", got)
	}

	out.Reset()
	s.HandleCommand(":now reset")
	if got := out.String(); got != "29.02.2024 (Donnerstag)\n" {
		t.Errorf("expected the live clock after reset, got %q", got)
	}

	out.Reset()
	s.HandleCommand(":now not a date")
	if !strings.Contains(out.String(), "Invalid date") {
		t.Errorf("expected an error message, got %q", out.String())
	}
	if !s.Now().Equal(fixedClock()) {
		t.Errorf("a failed :now must not change the clock, got %v", s.Now())
	}
}

func TestUnitsCommand(t *testing.T) {
	var out bytes.Buffer
	newTestSession(&out).HandleCommand(":units")
	got := out.String()

	for _, want := range []string{"Länge:", "km", "Gewicht:", "Zeit:", "c ↔ f"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected :units output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestUnitsCommandIncludesCustomUnits(t *testing.T) {
	tbl, err := units.NewTable([]units.Category{
		{Name: "Energie", Units: []units.Unit{{Symbol: "kj", Factor: 1000}, {Symbol: "kcal", Factor: 4184}}},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	var out bytes.Buffer
	s := NewSession(resolver.New(resolver.Options{Units: tbl}), fixedClock, time.UTC, &out)
	s.HandleCommand(":units")
	if !strings.Contains(out.String(), "Energie:") || !strings.Contains(out.String(), "kcal") {
		t.Errorf("expected custom category in output, got:\n%s", out.String())
	}
}

func TestHelpAndUnknownCommands(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&out)

	s.HandleCommand(":help")
	if !strings.Contains(out.String(), ":units") || !strings.Contains(out.String(), ":now") {
		t.Errorf("help should list the commands, got:\n%s", out.String())
	}

	out.Reset()
	s.HandleCommand(":bogus")
	if !strings.Contains(out.String(), "Unknown command: :bogus") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestComplete(t *testing.T) {
	s := newTestSession(&bytes.Buffer{})

	tests := []struct {
		line     string
		contains []string
		empty    bool
	}{
		{line: "", empty: true},
		{line: "3cm ", empty: true},
		{line: "42", empty: true},
		{line: "tod", contains: []string{"today"}},
		{line: "today to", contains: []string{"today to", "today today"}},
		{line: "3k", contains: []string{"3km", "3kg"}},
		{line: "3cm in m", contains: []string{"3cm in m", "3cm in mm", "3cm in mi", "3cm in min"}},
		{line: "2 WEE", contains: []string{"2 week", "2 weeks"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := s.Complete(tt.line)
			if tt.empty {
				if len(got) != 0 {
					t.Errorf("expected no completions, got %v", got)
				}
				return
			}
			for _, want := range tt.contains {
				found := false
				for _, g := range got {
					if g == want {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected %q among completions %v", want, got)
				}
			}
		})
	}
}

func TestParseNow(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}

	got, err := ParseNow("2024-03-10 08:00", berlin)
	if err != nil {
		t.Fatalf("ParseNow: %v", err)
	}
	if got.Location().String() != "Europe/Berlin" || got.Hour() != 8 {
		t.Errorf("expected 08:00 Berlin time, got %v", got)
	}

	if _, err := ParseNow("nonsense", berlin); err == nil {
		t.Error("expected an error for unparseable input")
	}
}
