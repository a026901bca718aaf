package finance

import (
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput is returned when a numeric argument is out of range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedCurrency is returned when a currency code is not in the rate table.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

var one = decimal.NewFromInt(1)

// RoundCents rounds the amount to 2 decimal places, half away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}
