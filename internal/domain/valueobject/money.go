package valueobject

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places stored for monetary columns.
const MoneyScale = 2

// IsWholeCents reports whether amount is representable in cents without
// rounding. Trailing zeros do not count: 1.500 is whole cents, 0.004 is not.
func IsWholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyScale))
}
