// Package money normalizes price strings scraped from arbitrary pages and
// formats amounts for the rendered quote. Parsing tolerates currency symbols
// and either comma- or dot-decimal convention; formatting is fixed two-decimal
// with thousands separators.
package money

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ParseAmount converts a price token like "$1.234,56" or "1,234.56 USD" into
// a decimal amount. The second return value reports whether a value was found.
//
// Disambiguation rule: when both a comma and a dot appear, the dot is taken as
// a thousands separator and the comma as the decimal point (European style).
// A lone comma is a decimal point. A lone dot is kept as written, so "1.234"
// parses as one point two three four — it is only read as thousands-grouped
// when a comma appears elsewhere in the token.
func ParseAmount(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var printer = message.NewPrinter(language.English)

// Format renders an amount as a fixed two-decimal string with thousands
// separators, e.g. 1234.5 -> "1,234.50". Shared by the quote document and
// the API layer so both show the same figures.
func Format(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatCurrency prefixes Format with a dollar sign, keeping the sign of
// negative amounts outside the symbol: -3 -> "-$3.00".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + Format(-v)
	}
	return "$" + Format(v)
}
