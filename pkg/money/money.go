// Package money parses and formats currency amounts. Amounts are kept as
// exact decimals and only rounded to cents when rendered.
package money

import (
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount parses caller text into a decimal. Negative values are allowed
// here; callers decide whether zero or negatives are acceptable.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidNumeric, "amount is required")
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInvalidNumeric, err, fmt.Sprintf("%q is not a number", raw)).
			WithDetails(map[string]any{"input": raw})
	}
	return d, nil
}

// ParseNonNegative parses a price-like amount that may be zero.
func ParseNonNegative(raw string) (decimal.Decimal, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, pkgerrors.Newf(pkgerrors.CodeInvalidAmount, "amount %s cannot be negative", d.String())
	}
	return d, nil
}

// ParsePositive parses an amount that must be strictly greater than zero.
func ParsePositive(raw string) (decimal.Decimal, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, pkgerrors.Newf(pkgerrors.CodeInvalidAmount, "amount %s must be positive", d.String())
	}
	return d, nil
}

// ApplyPercentOff returns base reduced by percent (0-100).
func ApplyPercentOff(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Sub(percent.Div(hundred)))
}

// Format renders an amount with the currency symbol and two decimals.
func Format(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}
