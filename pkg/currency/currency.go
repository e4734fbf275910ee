// Package currency formats monetary amounts for display. Prices in this
// system are integral Vietnamese đồng; there are no fractional units.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Vietnamese)

// VND formats an amount with locale-aware digit grouping and the đồng sign,
// e.g. 5000000 -> "5.000.000 ₫".
func VND(amount int64) string {
	return printer.Sprintf("%v ₫", number.Decimal(amount))
}
