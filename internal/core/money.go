// Package core holds the piggy bank domain model and the pure
// aggregation and query functions computed over it.
//
// This file contains money parsing and handling. Amounts are held as
// integer cents; every decimal boundary (user input, persisted blobs,
// imported files) rounds half-up at two decimal places, so sums over
// cents are exact and the cached totals never drift.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a currency value in integer cents.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string to Money with half-up rounding
// on the third decimal place. It accepts both dot (12.34) and comma
// (12,34) decimal separators. Returns an error for invalid formats,
// signed values, zero amounts, or amounts over 999999.99.
//
// Examples:
//
//	ParseAmount("12.34")   -> 1234 cents
//	ParseAmount("100.005") -> 10001 cents (rounds up)
//	ParseAmount("12.344")  -> 1234 cents (rounds down)
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return Money{}, ErrInvalidAmount
	}
	cents, err := decimalToCents(s)
	if err != nil {
		return Money{}, err
	}
	m := Money{Cents: cents}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// decimalToCents walks the digits of an unsigned decimal string and
// rounds half-up on the third decimal place.
func decimalToCents(s string) (int64, error) {
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take the first two fractional digits; half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// Add returns the cent-exact sum.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Float returns the decimal value for display purposes only; use cents
// for calculations.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Format renders the amount as $1234.56.
func (m Money) Format() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// MarshalJSON emits a plain two-decimal number so persisted blobs and
// export artifacts keep the original amount shape.
func (m Money) MarshalJSON() ([]byte, error) {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return []byte(fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)), nil
}

// UnmarshalJSON accepts any JSON number (quoted numbers included, for
// leniency with hand-edited blobs) and rounds it half-up to cents. The
// digits are parsed directly rather than through float64 so values like
// 100.005 round to 100.01 regardless of binary representation.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		m.Cents = 0
		return nil
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	var cents int64
	if strings.ContainsAny(s, "eE") {
		// Exponent notation is rare in exported data; fall back to the
		// platform float parser.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
		}
		cents = int64(f*100 + 0.5)
	} else {
		var err error
		cents, err = decimalToCents(s)
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", s, err)
		}
	}
	if neg {
		cents = -cents
	}
	m.Cents = cents
	return nil
}
