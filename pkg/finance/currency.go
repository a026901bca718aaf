package finance

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code.
type Currency string

// Supported currencies
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
)

// SupportedCurrencies is the closed set of currencies the rate table covers.
var SupportedCurrencies = []Currency{USD, EUR, GBP, JPY}

// IsSupported returns true if the currency is in SupportedCurrencies.
func (c Currency) IsSupported() bool {
	return slices.Contains(SupportedCurrencies, c)
}

// ParseCurrency normalizes the code and checks it against SupportedCurrencies.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsSupported() {
		return "", unsupported(code)
	}
	return c, nil
}

// Pair is a directed currency pair, the rate converts one unit of From into units of To.
type Pair struct {
	From Currency
	To   Currency
}

// String returns the pair as "FROM:TO".
func (p Pair) String() string {
	return string(p.From) + ":" + string(p.To)
}

// ParsePair parses a "FROM:TO" string.
func ParsePair(s string) (Pair, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return Pair{}, invalidf("currency pair %q must be in FROM:TO format", s)
	}
	f, err := ParseCurrency(from)
	if err != nil {
		return Pair{}, err
	}
	t, err := ParseCurrency(to)
	if err != nil {
		return Pair{}, err
	}
	return Pair{From: f, To: t}, nil
}

// DefaultRates are the static multipliers of the default table, quoted against USD.
var DefaultRates = map[Pair]decimal.Decimal{
	{From: USD, To: EUR}: decimal.RequireFromString("0.85"),
	{From: USD, To: GBP}: decimal.RequireFromString("0.73"),
	{From: USD, To: JPY}: decimal.RequireFromString("110"),
}

var defaultTable = mustExchangeRateTable(USD, DefaultRates)

// DefaultExchangeRateTable returns the built-in USD based table.
func DefaultExchangeRateTable() *ExchangeRateTable {
	return defaultTable
}

// ExchangeRateTable is an immutable set of multipliers between supported currencies.
//
// A rate for (from, to) is resolved from a direct entry, then from the inverse
// of the (to, from) entry, and finally by composing from->base->to.
type ExchangeRateTable struct {
	base  Currency
	rates map[Pair]decimal.Decimal
}

// NewExchangeRateTable validates and copies the rates.
// Every supported currency must be reachable from base with a single
// direct or inverse lookup, so that any pair can be composed.
func NewExchangeRateTable(base Currency, rates map[Pair]decimal.Decimal) (*ExchangeRateTable, error) {
	if !base.IsSupported() {
		return nil, unsupported(string(base))
	}

	t := &ExchangeRateTable{
		base:  base,
		rates: make(map[Pair]decimal.Decimal, len(rates)),
	}
	for pair, rate := range rates {
		if !pair.From.IsSupported() {
			return nil, unsupported(string(pair.From))
		}
		if !pair.To.IsSupported() {
			return nil, unsupported(string(pair.To))
		}
		if pair.From == pair.To {
			return nil, invalidf("rate for %s must be between different currencies", pair)
		}
		if !rate.IsPositive() {
			return nil, invalidf("rate for %s must be positive, got %s", pair, rate)
		}
		t.rates[pair] = rate
	}

	for _, c := range SupportedCurrencies {
		if _, ok := t.direct(c, base); !ok {
			return nil, errors.WithMessagef(ErrInvalidInput, "no rate between %s and base currency %s", c, base)
		}
	}
	return t, nil
}

func mustExchangeRateTable(base Currency, rates map[Pair]decimal.Decimal) *ExchangeRateTable {
	t, err := NewExchangeRateTable(base, rates)
	if err != nil {
		panic(err)
	}
	return t
}

// Base returns the base currency of the table.
func (t *ExchangeRateTable) Base() Currency {
	return t.base
}

// Rate returns the multiplier converting one unit of from into units of to.
func (t *ExchangeRateTable) Rate(from, to Currency) (decimal.Decimal, error) {
	if !from.IsSupported() {
		return decimal.Zero, unsupported(string(from))
	}
	if !to.IsSupported() {
		return decimal.Zero, unsupported(string(to))
	}

	if rate, ok := t.direct(from, to); ok {
		return rate, nil
	}

	toBase, ok1 := t.direct(from, t.base)
	fromBase, ok2 := t.direct(t.base, to)
	if !ok1 || !ok2 {
		return decimal.Zero, errors.Wrapf(ErrUnsupportedCurrency, "no conversion path from %s to %s", from, to)
	}
	return toBase.Mul(fromBase), nil
}

func (t *ExchangeRateTable) direct(from, to Currency) (decimal.Decimal, bool) {
	if from == to {
		return one, true
	}
	if rate, ok := t.rates[Pair{From: from, To: to}]; ok {
		return rate, true
	}
	if rate, ok := t.rates[Pair{From: to, To: from}]; ok {
		return one.Div(rate), true
	}
	return decimal.Zero, false
}

// ConversionRequest is the input of Convert.
type ConversionRequest struct {
	Amount decimal.Decimal
	From   Currency
	To     Currency
}

// Conversion is the result of Convert.
type Conversion struct {
	From   Currency
	To     Currency
	Amount decimal.Decimal
	Rate   decimal.Decimal
}

// Convert returns the amount in the target currency, rounded to cents.
func (t *ExchangeRateTable) Convert(req ConversionRequest) (Conversion, error) {
	if req.Amount.IsNegative() {
		return Conversion{}, invalidf("amount must not be negative, got %s", req.Amount)
	}

	rate, err := t.Rate(req.From, req.To)
	if err != nil {
		return Conversion{}, err
	}

	return Conversion{
		From:   req.From,
		To:     req.To,
		Amount: RoundCents(req.Amount.Mul(rate)),
		Rate:   rate,
	}, nil
}

// Convert converts the amount with the default table.
func Convert(amount decimal.Decimal, from, to Currency) (Conversion, error) {
	return defaultTable.Convert(ConversionRequest{Amount: amount, From: from, To: to})
}

func unsupported(code string) error {
	return errors.Wrapf(ErrUnsupportedCurrency, "%q is not one of %s", code, supportedList())
}

func supportedList() string {
	codes := make([]string, len(SupportedCurrencies))
	for i, c := range SupportedCurrencies {
		codes[i] = string(c)
	}
	return strings.Join(codes, ", ")
}
