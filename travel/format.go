package travel

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

var amountPrinter = message.NewPrinter(language.English)

// CleanText collapses all whitespace runs into single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// FormatCurrency renders an amount with its currency symbol, falling back to
// the currency code when the symbol is unknown.
func FormatCurrency(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	return symbol + amountPrinter.Sprintf("%.2f", amount)
}

// FormatDuration renders a duration in hours as "2h30" or "45min".
func FormatDuration(hours float64) string {
	wholeHours := int(hours)
	minutes := int((hours - float64(wholeHours)) * 60)
	if wholeHours == 0 {
		return fmt.Sprintf("%dmin", minutes)
	}
	return fmt.Sprintf("%dh%02d", wholeHours, minutes)
}
