// Package core defines the ledger entities and the money/date primitives the
// aggregation engine operates on.
//
// This file handles monetary amounts. Amounts are stored as int64 cents so
// that summation stays exact; sign is implied by the record type, so parsed
// amounts are always magnitudes.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var centsFactor = decimal.NewFromInt(100)

// ParseAmount converts a decimal string to Money with half-up rounding on the
// third decimal place. Both dot (12.34) and comma (12,34) separators are
// accepted. Returns an error for empty or non-numeric input.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,345") -> 1235 cents (rounds up)
//	ParseAmount("-5")     -> 500 cents (magnitude only)
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Abs().Mul(centsFactor).Round(0)
	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// CoerceAmount parses s like ParseAmount but degrades to zero instead of
// returning an error. Snapshot boundaries use it so that a malformed amount
// never breaks aggregation.
func CoerceAmount(s string) Money {
	m, err := ParseAmount(s)
	if err != nil {
		return Money{}
	}
	return m
}

// CoerceFloat converts a float amount to Money, treating NaN and infinities
// as zero and discarding the sign.
func CoerceFloat(v float64) Money {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}
	}
	cents := decimal.NewFromFloat(math.Abs(v)).Mul(centsFactor).Round(0)
	if !cents.BigInt().IsInt64() {
		return Money{}
	}
	return Money{Cents: cents.IntPart()}
}

// Float returns the amount in currency units for view models and display.
// Calculations stay in cents; only the outermost layer converts.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Abs returns the magnitude of the amount.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MarshalJSON emits the amount in currency units with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.New(m.Cents, -2).StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string in currency units.
// Absent or null input is zero; non-numeric input degrades to zero rather
// than failing the surrounding decode.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		m.Cents = 0
		return nil
	}
	*m = CoerceAmount(s)
	return nil
}
