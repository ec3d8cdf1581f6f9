package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sambeau/rechner/pkg/rechner/calc"
)

var (
	// ErrUnknownUnit is returned when no category or temperature rule covers a unit pair.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrOutOfRange is returned when a finite value converts to ±Inf or NaN.
	ErrOutOfRange = errors.New("value out of range")
)

// ConversionResult is a converted value together with its display text.
type ConversionResult struct {
	Value float64
	Text  string
}

// Convert converts value from one unit to another using the default table.
func Convert(value float64, from, to string) (ConversionResult, error) {
	return defaultTable.Convert(value, from, to)
}

// Convert converts value between two units of the same category, falling back
// to the temperature rules when no category holds both units.
func (t *Table) Convert(value float64, from, to string) (ConversionResult, error) {
	from = NormalizeSymbol(from)
	to = NormalizeSymbol(to)

	if f, g, ok := t.lookup(from, to); ok {
		v := value * f / g
		if !isFinite(v) {
			return ConversionResult{}, fmt.Errorf("%w: %v %s in %s", ErrOutOfRange, value, from, to)
		}
		return ConversionResult{Value: v, Text: FormatValue(v) + " " + to}, nil
	}

	if res, ok := convertTemperature(value, from, to); ok {
		if !isFinite(res.Value) {
			return ConversionResult{}, fmt.Errorf("%w: %v %s in %s", ErrOutOfRange, value, from, to)
		}
		return res, nil
	}

	return ConversionResult{}, fmt.Errorf("%w: %s in %s", ErrUnknownUnit, from, to)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// NormalizeSymbol lower-cases a unit symbol and spells superscripts as digits.
func NormalizeSymbol(sym string) string {
	sym = strings.ToLower(strings.TrimSpace(sym))
	return superscripts.Replace(sym)
}

var superscripts = strings.NewReplacer("²", "2", "³", "3")

// temperatureRule is one of the supported temperature pairs.
type temperatureRule struct {
	from, to string
	apply    func(float64) float64
	decimals int
	suffix   string
}

// Fahrenheit <-> Kelvin is deliberately absent.
var temperatureRules = []temperatureRule{
	{"c", "f", func(v float64) float64 { return v*9/5 + 32 }, 1, "°F"},
	{"f", "c", func(v float64) float64 { return (v - 32) * 5 / 9 }, 1, "°C"},
	{"c", "k", func(v float64) float64 { return v + 273.15 }, 2, "K"},
	{"k", "c", func(v float64) float64 { return v - 273.15 }, 2, "°C"},
}

func convertTemperature(value float64, from, to string) (ConversionResult, bool) {
	from = strings.TrimPrefix(from, "°")
	to = strings.TrimPrefix(to, "°")
	for _, r := range temperatureRules {
		if r.from != from || r.to != to {
			continue
		}
		v := r.apply(value)
		scale := math.Pow(10, float64(r.decimals))
		v = math.Round(v*scale) / scale
		return ConversionResult{
			Value: v,
			Text:  strconv.FormatFloat(v, 'f', r.decimals, 64) + " " + r.suffix,
		}, true
	}
	return ConversionResult{}, false
}

// FormatValue renders a converted value: scientific notation below 0.01,
// whole numbers the way the calculator prints them, otherwise up to four
// decimals.
func FormatValue(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.Abs(v) < 0.01:
		return formatExponent(v, 2)
	case v == math.Trunc(v):
		return calc.FormatInteger(v)
	default:
		return TrimZeros(strconv.FormatFloat(v, 'f', 4, 64))
	}
}

// formatExponent mimics the "1.23e-4" form: no zero padding on the exponent.
func formatExponent(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'e', decimals, 64)
	mant, exp, found := strings.Cut(s, "e")
	if !found {
		return s
	}
	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%se%+d", mant, n)
}

// TrimZeros strips trailing zeros after a decimal point, and the point itself
// when nothing remains after it.
func TrimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
