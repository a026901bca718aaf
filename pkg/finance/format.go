package finance

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney formats the amount rounded to cents with thousands separators,
// e.g. 1234567.891 as "1,234,567.89".
func FormatMoney(d decimal.Decimal) string {
	r := RoundCents(d)

	sign := ""
	if r.IsNegative() {
		sign, r = "-", r.Neg()
	}
	s := r.StringFixed(2)
	return sign + humanize.BigComma(r.Truncate(0).BigInt()) + s[len(s)-3:]
}
