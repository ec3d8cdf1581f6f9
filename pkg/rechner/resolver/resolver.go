// Package resolver classifies a line of free text and produces a German,
// human-readable answer.
//
// Resolve never fails. It returns one of:
//   - "" when nothing matched (including input rejected by the arithmetic whitelist),
//   - MsgInvalidDate or MsgUnknownUnit when a shape matched but made no sense,
//   - the formatted answer otherwise.
package resolver

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/sambeau/rechner/pkg/rechner/calc"
	"github.com/sambeau/rechner/pkg/rechner/dates"
	"github.com/sambeau/rechner/pkg/rechner/units"
)

// User-facing messages for recognized-but-invalid input.
const (
	MsgInvalidDate = "Ungültiges Datum"
	MsgUnknownUnit = "Unbekannte Einheit"
)

// DefaultMaxInputLength is the longest input (in bytes, after folding) that
// is considered at all.
const DefaultMaxInputLength = 512

// MaxInputLimit caps a configured input length. Arithmetic of that length
// never hits the evaluator's token bound.
const MaxInputLimit = calc.MaxTokens

// Options configure a Resolver.
type Options struct {
	Units          *units.Table // nil means units.Default()
	MaxInputLength int          // 0 means DefaultMaxInputLength; capped at MaxInputLimit
}

// Resolver is safe for concurrent use; it holds only immutable data.
type Resolver struct {
	units          *units.Table
	maxInputLength int
	shapes         []shape
}

// shape is one entry in the priority list. match reports whether the input
// has the structure of this shape and, if so, the intent it describes.
type shape struct {
	name  string
	match func(input string) (Intent, bool)
}

const (
	datePattern   = `(\d{1,2})\.(\d{1,2})\.(\d{4})`
	amountPattern = `(\d+)\s*(days?|weeks?|months?|years?)`
	unitPattern   = `([a-z°µ][a-z0-9°²³µ]*)`
)

var (
	bareDateRe        = regexp.MustCompile(`^` + datePattern + `$`)
	daysUntilRe       = regexp.MustCompile(`(?i)^today\s+to\s+` + datePattern + `$`)
	amountPlusTodayRe = regexp.MustCompile(`(?i)^` + amountPattern + `\s*\+\s*today$`)
	todayShiftRe      = regexp.MustCompile(`(?i)^today\s*([+-])\s*` + amountPattern + `$`)
	dateShiftRe       = regexp.MustCompile(`(?i)^` + datePattern + `\s*([+-])\s*` + amountPattern + `$`)
	conversionRe      = regexp.MustCompile(`(?i)^(-?\d+(?:[.,]\d+)?)\s*` + unitPattern + `\s+in\s+` + unitPattern + `$`)
)

var defaultResolver = New(Options{})

// Resolve classifies and evaluates input with the built-in unit table.
func Resolve(input string, now time.Time) string {
	return defaultResolver.Resolve(input, now)
}

// New creates a resolver.
func New(opts Options) *Resolver {
	r := &Resolver{
		units:          opts.Units,
		maxInputLength: opts.MaxInputLength,
	}
	if r.units == nil {
		r.units = units.Default()
	}
	if r.maxInputLength <= 0 {
		r.maxInputLength = DefaultMaxInputLength
	}
	r.maxInputLength = min(r.maxInputLength, MaxInputLimit)

	// Priority order. The first structural match wins even if evaluating it
	// fails later.
	r.shapes = []shape{
		{"weekday", matchWeekday},
		{"days_until", matchDaysUntil},
		{"amount_plus_today", matchAmountPlusToday},
		{"today_shift", matchTodayShift},
		{"date_shift", matchDateShift},
		{"unit_conversion", matchConversion},
		{"arithmetic", matchArithmetic},
	}
	return r
}

// Units returns the table the resolver converts with.
func (r *Resolver) Units() *units.Table {
	return r.units
}

// ShapeNames lists the recognized input shapes in priority order.
func (r *Resolver) ShapeNames() []string {
	names := make([]string, len(r.shapes))
	for i, s := range r.shapes {
		names[i] = s.name
	}
	return names
}

// Normalize folds full-width characters to ASCII and trims whitespace.
func Normalize(input string) string {
	return strings.TrimSpace(width.Fold.String(input))
}

// Classify returns the intent for input without evaluating it.
func (r *Resolver) Classify(input string) Intent {
	input = Normalize(input)
	if input == "" || len(input) > r.maxInputLength {
		return NoMatch{}
	}
	for _, s := range r.shapes {
		if intent, ok := s.match(input); ok {
			return intent
		}
	}
	return NoMatch{}
}

// Resolve classifies input and evaluates the resulting intent against now.
func (r *Resolver) Resolve(input string, now time.Time) (result string) {
	defer func() {
		if recover() != nil {
			result = ""
		}
	}()
	return r.Evaluate(r.Classify(input), now)
}

// Evaluate hands an intent to the component that owns it.
func (r *Resolver) Evaluate(intent Intent, now time.Time) string {
	switch in := intent.(type) {
	case WeekdayQuery:
		return render(dates.Weekday(in.Day, in.Month, in.Year))
	case DaysUntil:
		return render(dates.DaysUntil(in.Day, in.Month, in.Year, now))
	case RelativeDateAdd:
		return render(dates.Add(now, in.Amount, in.Unit))
	case AbsoluteDateAdd:
		return render(dates.AddFrom(in.Day, in.Month, in.Year, in.Amount, in.Unit))
	case UnitConversion:
		res, err := r.units.Convert(in.Value, in.From, in.To)
		return render(res.Text, err)
	case ArithmeticExpression:
		return calc.EvalString(in.Raw)
	default:
		return ""
	}
}

// render maps component errors onto the user-facing messages.
func render(text string, err error) string {
	switch {
	case err == nil:
		return text
	case errors.Is(err, dates.ErrInvalidDate):
		return MsgInvalidDate
	case errors.Is(err, units.ErrUnknownUnit):
		return MsgUnknownUnit
	default:
		return ""
	}
}

func matchWeekday(input string) (Intent, bool) {
	m := bareDateRe.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	return WeekdayQuery{Day: atoi(m[1]), Month: atoi(m[2]), Year: atoi(m[3])}, true
}

func matchDaysUntil(input string) (Intent, bool) {
	m := daysUntilRe.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	return DaysUntil{Day: atoi(m[1]), Month: atoi(m[2]), Year: atoi(m[3])}, true
}

func matchAmountPlusToday(input string) (Intent, bool) {
	m := amountPlusTodayRe.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	unit, _ := dates.ParseUnit(m[2])
	return RelativeDateAdd{Amount: amount("+", m[1]), Unit: unit}, true
}

func matchTodayShift(input string) (Intent, bool) {
	m := todayShiftRe.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	unit, _ := dates.ParseUnit(m[3])
	return RelativeDateAdd{Amount: amount(m[1], m[2]), Unit: unit}, true
}

func matchDateShift(input string) (Intent, bool) {
	m := dateShiftRe.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	unit, _ := dates.ParseUnit(m[6])
	return AbsoluteDateAdd{
		Day:    atoi(m[1]),
		Month:  atoi(m[2]),
		Year:   atoi(m[3]),
		Amount: amount(m[4], m[5]),
		Unit:   unit,
	}, true
}

func matchConversion(input string) (Intent, bool) {
	m := conversionRe.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	value, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return nil, false
	}
	return UnitConversion{Value: value, From: m[2], To: m[3]}, true
}

func matchArithmetic(input string) (Intent, bool) {
	stripped := calc.Strip(input)
	if calc.Validate(stripped) != nil {
		return nil, false
	}
	return ArithmeticExpression{Raw: input}, true
}

// atoi parses a regexp-validated digit group of bounded length.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// amount parses a signed offset. Digit runs too long for an int saturate
// just past dates.MaxAmount so the date component rejects them.
func amount(sign, digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil || n > dates.MaxAmount {
		n = dates.MaxAmount + 1
	}
	if sign == "-" {
		return -n
	}
	return n
}
