package core

import (
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-4.20", 420, true}, // sign is implied by record type
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestCoerceAmountDefaultsToZero(t *testing.T) {
	for _, in := range []string{"", "not-a-number", "1..2"} {
		if got := CoerceAmount(in); got.Cents != 0 {
			t.Fatalf("%q expected 0 cents, got %d", in, got.Cents)
		}
	}
	if got := CoerceAmount("12.34"); got.Cents != 1234 {
		t.Fatalf("expected 1234 cents, got %d", got.Cents)
	}
}

func TestCoerceFloat(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
	}{
		{12.34, 1234},
		{-12.34, 1234},
		{0, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{0.005, 1},
	}
	for i, tc := range cases {
		if got := CoerceFloat(tc.in); got.Cents != tc.out {
			t.Fatalf("case %d expected %d cents, got %d", i, tc.out, got.Cents)
		}
	}
}

func TestMoneyFloat(t *testing.T) {
	if got := (Money{Cents: 1234}).Float(); got != 12.34 {
		t.Fatalf("expected 12.34, got %v", got)
	}
	if got := (Money{Cents: -50}).Abs(); got.Cents != 50 {
		t.Fatalf("expected 50, got %d", got.Cents)
	}
}
