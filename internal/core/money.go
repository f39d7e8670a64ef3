// Package core holds the domain types shared by storage, reporting and the
// web layer.
//
// Money is kept in integer cents end to end. Parsing accepts dot or comma
// decimals and rounds half-up on the third fractional digit.
package core

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseAmount converts a user-entered decimal string into Money.
//
// Examples:
//   ParseAmount("12.34")  -> 1234 cents
//   ParseAmount("12,34")  -> 1234 cents
//   ParseAmount("12.345") -> 1235 cents (half-up)
//
// Zero, negative and malformed values return ErrInvalidAmount.
func ParseAmount(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	whole, frac, _ := strings.Cut(s, ".")
	if strings.Contains(frac, ".") {
		return Money{}, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	if !allDigits(whole) || !allDigits(frac) {
		return Money{}, ErrInvalidAmount
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > maxUnits {
		return Money{}, ErrInvalidAmount
	}

	var cents int64
	for i := 0; i < 2 && i < len(frac); i++ {
		cents = cents*10 + int64(frac[i]-'0')
	}
	if len(frac) == 1 {
		cents *= 10
	}
	if len(frac) > 2 && frac[2] >= '5' {
		cents++
	}

	total := units*100 + cents
	if total <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: total}, nil
}

const maxUnits = (1<<63 - 1) / 100

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Validate enforces the record invariant: stored amounts are never negative.
func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) IsZero() bool { return m.Cents == 0 }

// Display formats with thousands separators: "$1,234" or "$1,234.50".
func (m Money) Display() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	s := sign + "$" + humanize.Comma(cents/100)
	if rem := cents % 100; rem != 0 {
		s += "." + strconv.FormatInt(rem/10, 10) + strconv.FormatInt(rem%10, 10)
	}
	return s
}

// Decimal renders the plain amount ("1234.50") for exports and form values.
func (m Money) Decimal() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	rem := cents % 100
	return sign + strconv.FormatInt(cents/100, 10) + "." + strconv.FormatInt(rem/10, 10) + strconv.FormatInt(rem%10, 10)
}
