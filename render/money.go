package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is shown for missing values.
const Placeholder = "-"

// StripAmount keeps only digits and dots.
func StripAmount(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount reads a currency-ish string such as "$1,299.50".
func ParseAmount(raw string) (decimal.Decimal, bool) {
	stripped := StripAmount(raw)
	if stripped == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(stripped)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatCurrency renders raw as $X.XX, or the placeholder when it holds no
// amount.
func FormatCurrency(raw string) string {
	d, ok := ParseAmount(raw)
	if !ok {
		return Placeholder
	}
	return "$" + d.StringFixed(2)
}
