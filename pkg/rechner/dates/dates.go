// Package dates implements the calendar side of the resolver: weekday lookup,
// day differences relative to today, and date-plus-offset arithmetic.
//
// All output is German. Month and weekday names come from monday's de_DE locale.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// ErrInvalidDate is returned for day/month/year triples that do not name a
// real calendar date, and for offsets too large to represent.
var ErrInvalidDate = errors.New("invalid date")

// MaxAmount bounds the magnitude of an offset in any unit.
const MaxAmount = 1_000_000

const locale = monday.LocaleDeDE

// Layouts are Go reference layouts; monday translates the English names.
const (
	longLayout  = "Monday, 2. January 2006"
	shortLayout = "02.01.2006 (Monday)"
)

// Unit is a calendar offset unit.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Year
)

func (u Unit) String() string {
	switch u {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return "unknown"
	}
}

// ParseUnit accepts day(s), week(s), month(s) and year(s), case-insensitively.
func ParseUnit(s string) (Unit, bool) {
	switch strings.TrimSuffix(strings.ToLower(s), "s") {
	case "day":
		return Day, true
	case "week":
		return Week, true
	case "month":
		return Month, true
	case "year":
		return Year, true
	default:
		return 0, false
	}
}

// Date builds midnight of the given day in loc, rejecting triples that the
// calendar would normalize (Feb 30, month 13, day 0, ...).
func Date(day, month, year int, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %d.%d.%d", ErrInvalidDate, day, month, year)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %d.%d.%d", ErrInvalidDate, day, month, year)
	}
	return t, nil
}

// Midnight truncates t to the start of its calendar day in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Weekday formats a date as "Donnerstag, 29. Februar 2024".
func Weekday(day, month, year int) (string, error) {
	t, err := Date(day, month, year, time.UTC)
	if err != nil {
		return "", err
	}
	return monday.Format(t, longLayout, locale), nil
}

// FormatShort formats a date as "14.03.2024 (Donnerstag)".
func FormatShort(t time.Time) string {
	return monday.Format(t, shortLayout, locale)
}

// DaysBetween returns the signed number of calendar days from a to b, each
// taken in its own location. It works on civil day numbers rather than a
// time.Duration, which cannot span more than about 292 years.
func DaysBetween(a, b time.Time) int {
	return int(civilDay(b) - civilDay(a))
}

// civilDay numbers the calendar day of t, counted from 1.1.1970.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DaysUntil describes how far the given date lies from now.
func DaysUntil(day, month, year int, now time.Time) (string, error) {
	target, err := Date(day, month, year, now.Location())
	if err != nil {
		return "", err
	}
	return describeDays(DaysBetween(now, target)), nil
}

func describeDays(n int) string {
	switch {
	case n == 0:
		return "Heute"
	case n == 1:
		return "1 Tag"
	case n == -1:
		return "Gestern"
	case n < 0:
		return fmt.Sprintf("%d Tage vergangen", -n)
	default:
		return fmt.Sprintf("%d Tage", n)
	}
}

// Shift applies a signed offset to base. Months and years use AddDate, so
// overflow rolls into the next month: Jan 31 + 1 month is Mar 3 (Mar 2 in
// leap years).
func Shift(base time.Time, amount int, unit Unit) (time.Time, error) {
	if amount > MaxAmount || amount < -MaxAmount {
		return time.Time{}, fmt.Errorf("%w: offset %d %s out of range", ErrInvalidDate, amount, unit)
	}
	switch unit {
	case Day:
		return base.AddDate(0, 0, amount), nil
	case Week:
		return base.AddDate(0, 0, amount*7), nil
	case Month:
		return base.AddDate(0, amount, 0), nil
	case Year:
		return base.AddDate(amount, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported unit %d", unit)
	}
}

// Add shifts today (taken from now) and formats the result.
func Add(now time.Time, amount int, unit Unit) (string, error) {
	t, err := Shift(Midnight(now), amount, unit)
	if err != nil {
		return "", err
	}
	return FormatShort(t), nil
}

// AddFrom shifts an explicit date and formats the result.
func AddFrom(day, month, year, amount int, unit Unit) (string, error) {
	base, err := Date(day, month, year, time.UTC)
	if err != nil {
		return "", err
	}
	t, err := Shift(base, amount, unit)
	if err != nil {
		return "", err
	}
	return FormatShort(t), nil
}
