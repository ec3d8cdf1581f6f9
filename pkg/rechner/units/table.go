// Package units holds the unit conversion tables and the converter built on them.
//
// Every category maps lower-case unit symbols to the number of base units one
// unit represents (meter, kilogram, liter, square meter, second). Tables are
// built once and never mutated afterwards, so a *Table is safe for concurrent use.
package units

import (
	"fmt"
	"math"
	"strings"
)

// Category names, in scan order.
const (
	CategoryLength = "Länge"
	CategoryWeight = "Gewicht"
	CategoryVolume = "Volumen"
	CategoryArea   = "Fläche"
	CategoryTime   = "Zeit"
)

// Unit is a single symbol within a category.
type Unit struct {
	Symbol string
	Factor float64 // base units per one unit
}

// Category is a named group of mutually convertible units.
type Category struct {
	Name  string
	Units []Unit
}

// builtinCategories is the static table. Order matters: the first category
// containing both units of a conversion wins.
var builtinCategories = []Category{
	{Name: CategoryLength, Units: []Unit{
		{"mm", 0.001},
		{"cm", 0.01},
		{"dm", 0.1},
		{"m", 1},
		{"km", 1000},
		{"in", 0.0254},
		{"ft", 0.3048},
		{"yd", 0.9144},
		{"mi", 1609.344},
	}},
	{Name: CategoryWeight, Units: []Unit{
		{"mg", 0.000001},
		{"g", 0.001},
		{"kg", 1},
		{"t", 1000},
		{"oz", 0.028349523125},
		{"lb", 0.45359237},
	}},
	{Name: CategoryVolume, Units: []Unit{
		{"ml", 0.001},
		{"cl", 0.01},
		{"dl", 0.1},
		{"l", 1},
		{"m3", 1000},
		{"gal", 3.785411784},
	}},
	{Name: CategoryArea, Units: []Unit{
		{"mm2", 0.000001},
		{"cm2", 0.0001},
		{"m2", 1},
		{"a", 100},
		{"ha", 10000},
		{"km2", 1000000},
	}},
	{Name: CategoryTime, Units: []Unit{
		{"ms", 0.001},
		{"s", 1},
		{"min", 60},
		{"h", 3600},
		{"d", 86400},
		{"wk", 604800},
	}},
}

// category is the lookup form of a Category.
type category struct {
	name    string
	order   []string
	factors map[string]float64
}

// Table is an immutable, ordered set of unit categories.
type Table struct {
	categories []category
}

// defaultTable is built from the static categories only.
var defaultTable = mustTable(nil)

// Default returns the built-in table.
func Default() *Table {
	return defaultTable
}

func mustTable(extra []Category) *Table {
	t, err := NewTable(extra)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable builds a table from the built-in categories extended by extra.
// Units added to an existing category (matched by name, case-insensitively)
// are appended to it; unknown categories are appended after the built-ins.
// Redefining an existing unit replaces its factor.
func NewTable(extra []Category) (*Table, error) {
	t := &Table{}
	for _, c := range builtinCategories {
		if err := t.merge(c); err != nil {
			return nil, err
		}
	}
	for _, c := range extra {
		if err := t.merge(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) merge(c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("unit category without name")
	}

	var target *category
	for i := range t.categories {
		if strings.EqualFold(t.categories[i].name, c.Name) {
			target = &t.categories[i]
			break
		}
	}
	if target == nil {
		t.categories = append(t.categories, category{
			name:    c.Name,
			factors: make(map[string]float64),
		})
		target = &t.categories[len(t.categories)-1]
	}

	for _, u := range c.Units {
		sym := strings.ToLower(strings.TrimSpace(u.Symbol))
		if sym == "" {
			return fmt.Errorf("category %s: unit without symbol", c.Name)
		}
		if !(u.Factor > 0) || math.IsInf(u.Factor, 0) {
			return fmt.Errorf("category %s: unit %s: factor must be a positive number, got %v", c.Name, sym, u.Factor)
		}
		if _, exists := target.factors[sym]; !exists {
			target.order = append(target.order, sym)
		}
		target.factors[sym] = u.Factor
	}
	return nil
}

// lookup returns the first category holding both symbols.
func (t *Table) lookup(from, to string) (fromFactor, toFactor float64, ok bool) {
	for _, c := range t.categories {
		f, okFrom := c.factors[from]
		g, okTo := c.factors[to]
		if okFrom && okTo {
			return f, g, true
		}
	}
	return 0, 0, false
}

// Categories returns a copy of the table contents in scan order.
func (t *Table) Categories() []Category {
	out := make([]Category, 0, len(t.categories))
	for _, c := range t.categories {
		cat := Category{Name: c.name, Units: make([]Unit, 0, len(c.order))}
		for _, sym := range c.order {
			cat.Units = append(cat.Units, Unit{Symbol: sym, Factor: c.factors[sym]})
		}
		out = append(out, cat)
	}
	return out
}

// Symbols returns every known unit symbol, including temperature units.
func (t *Table) Symbols() []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range t.categories {
		for _, sym := range c.order {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	for _, sym := range []string{"c", "f", "k"} {
		if !seen[sym] {
			out = append(out, sym)
		}
	}
	return out
}
