// Package money formats and parses the single currency allowance tracks.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO 4217 code every amount is expressed in.
const Currency = gomoney.JPY

// ErrNotInteger is returned by Parse for input that is not a whole amount.
var ErrNotInteger = errors.New("amount is not an integer")

var hundred = decimal.NewFromInt(100)

// Format renders an amount with the currency glyph and digit grouping,
// e.g. 1234 -> "¥1,234", -50 -> "-¥50".
func Format(amount int64) string {
	return gomoney.New(amount, Currency).Display()
}

// Grapheme returns the currency glyph.
func Grapheme() string {
	return gomoney.GetCurrency(Currency).Grapheme
}

// Parse reads a user-entered amount. Surrounding space, a leading currency
// glyph and "," grouping are accepted; fractions are not. Signs parse
// normally and are left to the range checks. Integers beyond int64 clamp
// to MaxInt64 or MinInt64 so they still fail as too large or non-positive.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, Grapheme())
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrNotInteger
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return n, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	return n, nil
}

// Percent returns part/whole as a whole percentage rounded half-up.
// A zero or negative whole yields 0.
func Percent(part, whole int64) int64 {
	if whole <= 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(hundred).
		Div(decimal.NewFromInt(whole)).
		Round(0).
		IntPart()
}

// Fraction returns part/whole clamped to [0, 1]. A zero whole yields 1 when
// anything was spent and 0 otherwise.
func Fraction(part, whole int64) float64 {
	if whole <= 0 {
		if part > 0 {
			return 1
		}
		return 0
	}
	f, _ := decimal.NewFromInt(part).Div(decimal.NewFromInt(whole)).Float64()
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// ShortDate renders a date as "M/D".
func ShortDate(d time.Time) string {
	return fmt.Sprintf("%d/%d", int(d.Month()), d.Day())
}
