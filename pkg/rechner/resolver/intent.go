package resolver

import "github.com/sambeau/rechner/pkg/rechner/dates"

// Intent is the classified meaning of an input line. Exactly one intent is
// produced per input.
type Intent interface {
	Kind() string
}

// WeekdayQuery is a bare D.M.YYYY date.
type WeekdayQuery struct {
	Day, Month, Year int
}

// DaysUntil is "today to D.M.YYYY".
type DaysUntil struct {
	Day, Month, Year int
}

// RelativeDateAdd shifts today by a signed amount.
type RelativeDateAdd struct {
	Amount int
	Unit   dates.Unit
}

// AbsoluteDateAdd shifts an explicit date by a signed amount.
type AbsoluteDateAdd struct {
	Day, Month, Year int
	Amount           int
	Unit             dates.Unit
}

// UnitConversion is "<number><unit> in <unit>".
type UnitConversion struct {
	Value    float64
	From, To string
}

// ArithmeticExpression is input that passed the arithmetic whitelist.
type ArithmeticExpression struct {
	Raw string
}

// NoMatch is input that fits no shape.
type NoMatch struct{}

func (WeekdayQuery) Kind() string         { return "weekday" }
func (DaysUntil) Kind() string            { return "days_until" }
func (RelativeDateAdd) Kind() string      { return "relative_date_add" }
func (AbsoluteDateAdd) Kind() string      { return "absolute_date_add" }
func (UnitConversion) Kind() string       { return "unit_conversion" }
func (ArithmeticExpression) Kind() string { return "arithmetic" }
func (NoMatch) Kind() string              { return "none" }
