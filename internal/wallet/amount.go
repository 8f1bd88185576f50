package wallet

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale returns amount * 10^(from-to) as an exact decimal string with
// trailing fractional zeros trimmed. Input that is not a number is returned
// unchanged.
//
//	Scale("10000000000", 0, 6) == "10000"
//	Scale("100", 6, 0) == "100000000"
func Scale(amount string, from, to int) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return amount
	}
	return ScaleDecimal(d, from, to).String()
}

// ScaleDecimal is Scale on a parsed decimal.
func ScaleDecimal(d decimal.Decimal, from, to int) decimal.Decimal {
	return d.Shift(int32(from - to))
}

// ToBaseUnits converts a human amount into an integer number of base units
// for an asset with the given decimals.
func ToBaseUnits(amount string, decimals int) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, amount)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidAmount, amount)
	}
	base := ScaleDecimal(d, decimals, 0)
	if !base.IsInteger() {
		return 0, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidAmount, amount, decimals)
	}
	n := base.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, amount)
	}
	return n.Uint64(), nil
}

// FromBaseUnits renders a base-unit quantity in human units.
func FromBaseUnits(quantity uint64, decimals int) string {
	return ScaleDecimal(decimal.NewFromUint64(quantity), 0, decimals).String()
}
