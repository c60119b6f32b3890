package util

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is rendered for values that are missing or not a number.
const Placeholder = "--"

// DefaultLocale matches the dashboard's original audience.
const DefaultLocale = "pt-BR"

// Formatter renders numbers and dates for a single locale.
type Formatter struct {
	tag language.Tag
}

// NewFormatter parses a BCP 47 locale such as "pt-BR" or "en-US".
func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag}, nil
}

// MustFormatter is NewFormatter for locales known at compile time.
func MustFormatter(locale string) *Formatter {
	f, err := NewFormatter(locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the canonical locale string.
func (f *Formatter) Locale() string { return f.tag.String() }

// Number formats an optional value with exactly two fractional digits and
// locale digit grouping. Nil, NaN and infinite values yield Placeholder.
func (f *Formatter) Number(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return f.Float(*v)
}

// Float is Number for a value that is always present.
func (f *Formatter) Float(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	// Printers keep per-call state; a fresh one keeps Formatter safe for concurrent use.
	p := message.NewPrinter(f.tag)
	return p.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Float64 returns a pointer to v, for optional fields.
func Float64(v float64) *float64 { return &v }
