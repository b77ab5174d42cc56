package api

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// parseAmountMinor converts a decimal string with at most 2 fractional
// digits into positive minor units.
func parseAmountMinor(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}

	if d.Exponent() < -2 {
		return 0, fmt.Errorf("amount supports up to 2 decimals")
	}

	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount supports up to 2 decimals")
	}

	// IntPart wraps values past int64; bound-check through big.Int.
	bi := minor.BigInt()
	if !bi.IsInt64() {
		return 0, fmt.Errorf("amount out of range")
	}

	v := bi.Int64()
	if v <= 0 {
		return 0, fmt.Errorf("amount must be > 0")
	}

	return v, nil
}

// renderMinor formats minor units as a 2-decimal string.
func renderMinor(v int64) string {
	return decimal.New(v, -2).StringFixed(2)
}
