package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols covers the currencies the business actually bills in.
// Unknown codes fall back to "CODE amount".
var currencySymbols = map[string]string{
	"USD": "$",
	"MXN": "MX$",
	"EUR": "€",
}

// FormatMoney renders an amount for display: rounded to 2 decimals with
// thousands separators and a currency symbol. Rounding happens here and
// only here; stored amounts keep full precision.
func FormatMoney(amount decimal.Decimal, currency string) string {
	rounded := amount.Round(2)
	neg := rounded.IsNegative()
	s := rounded.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	formatted := b.String() + "." + frac

	sym, ok := currencySymbols[currency]
	if !ok {
		if neg {
			return currency + " -" + formatted
		}
		return currency + " " + formatted
	}
	if neg {
		return "-" + sym + formatted
	}
	return sym + formatted
}
