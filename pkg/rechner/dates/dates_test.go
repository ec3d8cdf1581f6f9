package dates

import (
	"errors"
	"testing"
	"time"
)

func TestWeekday(t *testing.T) {
	tests := []struct {
		day, month, year int
		expected         string
	}{
		{29, 2, 2024, "Donnerstag, 29. Februar 2024"},
		{1, 3, 2024, "Freitag, 1. März 2024"},
		{1, 1, 2000, "Samstag, 1. Januar 2000"},
		{29, 2, 2000, "Dienstag, 29. Februar 2000"},
		{24, 12, 2023, "Sonntag, 24. Dezember 2023"},
		{3, 10, 1990, "Mittwoch, 3. Oktober 1990"},
		{7, 7, 2025, "Montag, 7. Juli 2025"},
		{6, 8, 2024, "Dienstag, 6. August 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := Weekday(tt.day, tt.month, tt.year)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Weekday(%d, %d, %d) = %q, want %q", tt.day, tt.month, tt.year, got, tt.expected)
			}
		})
	}
}

func TestWeekdayInvalid(t *testing.T) {
	tests := []struct {
		day, month, year int
	}{
		{29, 2, 2023},
		{29, 2, 1900},
		{30, 2, 2024},
		{31, 4, 2024},
		{0, 1, 2024},
		{32, 1, 2024},
		{1, 0, 2024},
		{1, 13, 2024},
	}

	for _, tt := range tests {
		_, err := Weekday(tt.day, tt.month, tt.year)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Weekday(%d, %d, %d): expected ErrInvalidDate, got %v", tt.day, tt.month, tt.year, err)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name             string
		day, month, year int
		expected         string
	}{
		{"today", 10, 3, 2024, "Heute"},
		{"tomorrow", 11, 3, 2024, "1 Tag"},
		{"yesterday", 9, 3, 2024, "Gestern"},
		{"future", 20, 3, 2024, "10 Tage"},
		{"past", 5, 3, 2024, "5 Tage vergangen"},
		{"across leap day", 1, 3, 2025, "356 Tage"},
		{"five centuries ahead", 10, 3, 2500, "173855 Tage"},
		{"last four-digit year", 31, 12, 9999, "2913104 Tage"},
		{"first four-digit year", 1, 1, 1000, "374077 Tage vergangen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysUntil(tt.day, tt.month, tt.year, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("DaysUntil(%d.%d.%d) = %q, want %q", tt.day, tt.month, tt.year, got, tt.expected)
			}
		})
	}
}

func TestDaysUntilAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// Clocks go forward on 31.3.2024; that day is only 23 hours long.
	now := time.Date(2024, 3, 10, 23, 59, 0, 0, berlin)
	got, err := DaysUntil(1, 4, 2024, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "22 Tage" {
		t.Errorf("expected 22 Tage, got %q", got)
	}

	// Clocks go back on 27.10.2024.
	now = time.Date(2024, 10, 26, 0, 30, 0, 0, berlin)
	got, err = DaysUntil(28, 10, 2024, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2 Tage" {
		t.Errorf("expected 2 Tage, got %q", got)
	}
}

func TestDaysUntilInvalid(t *testing.T) {
	_, err := DaysUntil(31, 6, 2024, time.Now())
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestAdd(t *testing.T) {
	now := time.Date(2024, 2, 29, 18, 45, 0, 0, time.UTC)

	tests := []struct {
		amount   int
		unit     Unit
		expected string
	}{
		{0, Day, "29.02.2024 (Donnerstag)"},
		{1, Day, "01.03.2024 (Freitag)"},
		{-1, Day, "28.02.2024 (Mittwoch)"},
		{2, Week, "14.03.2024 (Donnerstag)"},
		{1, Month, "29.03.2024 (Freitag)"},
		{1, Year, "01.03.2025 (Samstag)"},
		{4, Year, "29.02.2028 (Dienstag)"},
		{-12, Month, "01.03.2023 (Mittwoch)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := Add(now, tt.amount, tt.unit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Add(%d %s) = %q, want %q", tt.amount, tt.unit, got, tt.expected)
			}
		})
	}
}

// End-of-month overflow rolls into the following month rather than clamping.
func TestAddFromMonthOverflow(t *testing.T) {
	tests := []struct {
		day, month, year, amount int
		expected                 string
	}{
		{31, 1, 2023, 1, "03.03.2023 (Freitag)"},
		{31, 1, 2024, 1, "02.03.2024 (Samstag)"},
		{31, 3, 2024, -1, "02.03.2024 (Samstag)"},
		{30, 11, 2024, 3, "02.03.2025 (Sonntag)"},
	}

	for _, tt := range tests {
		got, err := AddFrom(tt.day, tt.month, tt.year, tt.amount, Month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.expected {
			t.Errorf("AddFrom(%d.%d.%d, %d month) = %q, want %q", tt.day, tt.month, tt.year, tt.amount, got, tt.expected)
		}
	}
}

func TestAddFromInvalid(t *testing.T) {
	if _, err := AddFrom(30, 2, 2024, 1, Day); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for 30.2.2024, got %v", err)
	}
	if _, err := AddFrom(1, 1, 2024, MaxAmount+1, Day); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for oversized offset, got %v", err)
	}
	if _, err := Add(time.Now(), -MaxAmount-1, Year); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for oversized negative offset, got %v", err)
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
		ok   bool
	}{
		{"day", Day, true},
		{"Days", Day, true},
		{"WEEK", Week, true},
		{"weeks", Week, true},
		{"month", Month, true},
		{"Months", Month, true},
		{"year", Year, true},
		{"years", Year, true},
		{"dayss", 0, false},
		{"hour", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseUnit(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseUnit(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
