package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Monetary amounts travel as decimal strings ("150.00") and are stored as
// integer cents. Parsing goes through shopspring/decimal so "150.00" never
// takes a float detour.

// ParseAmountCent converts a decimal string to cents. Amounts with more
// than two decimal places are rejected.
func ParseAmountCent(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	return cents.IntPart(), nil
}

// FormatCent renders cents as a string with exactly two decimal places.
func FormatCent(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
