package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimals shown for every amount.
const MoneyPrecision = 2

// FormatMoney prefixes the amount with symbol and pads it to MoneyPrecision decimals.
// Example: FormatMoney("₹", 12.3456) returns "₹12.35"
func FormatMoney(symbol string, amount decimal.Decimal) string {
	return symbol + FormatWithPrecision(amount, MoneyPrecision)
}

// FormatWithPrecision rounds half away from zero and always prints precision decimals.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
