package currency

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/finagent/pkg/metricskey"
	"github.com/effective-security/finagent/pkg/schema"
	"github.com/effective-security/finagent/tools"
	"github.com/shopspring/decimal"
)

// ToolName is the name of the currency conversion tool
const ToolName = "convert_currency"

// Request is the input of the tool
type Request struct {
	Amount       float64 `json:"amount" yaml:"amount" jsonschema:"title=Amount,description=Amount to convert in the source currency,example=100" fake:"{float64range:0,100000}"`
	FromCurrency string  `json:"from_currency" yaml:"from_currency" jsonschema:"title=From Currency,description=ISO 4217 code of the source currency,enum=USD,enum=EUR,enum=GBP,enum=JPY" validate:"required" fake:"{randomstring:[USD,EUR,GBP,JPY]}"`
	ToCurrency   string  `json:"to_currency" yaml:"to_currency" jsonschema:"title=To Currency,description=ISO 4217 code of the target currency,enum=USD,enum=EUR,enum=GBP,enum=JPY" validate:"required" fake:"{randomstring:[USD,EUR,GBP,JPY]}"`
}

// Result is the output of the tool
type Result struct {
	ConvertedAmount float64 `json:"converted_amount" yaml:"converted_amount" jsonschema:"description=Amount in the target currency rounded to cents"`
	RateUsed        float64 `json:"rate_used" yaml:"rate_used" jsonschema:"description=Multiplier applied to the amount"`
	FromCurrency    string  `json:"from_currency" yaml:"from_currency" jsonschema:"description=Source currency"`
	ToCurrency      string  `json:"to_currency" yaml:"to_currency" jsonschema:"description=Target currency"`
	Report          string  `json:"report" yaml:"report" jsonschema:"description=Human readable summary"`
}

// Tool converts amounts between currencies with a fixed rate table
type Tool struct {
	name        string
	description string
	funcParams  any
	table       *finance.ExchangeRateTable
}

var _ tools.Tool[Request, Result] = (*Tool)(nil)

// New returns the currency tool with the default rate table
func New() (*Tool, error) {
	return NewWithTable(finance.DefaultExchangeRateTable())
}

// NewWithTable returns the currency tool with the provided rate table
func NewWithTable(table *finance.ExchangeRateTable) (*Tool, error) {
	if table == nil {
		return nil, errors.New("exchange rate table is required")
	}
	sc, err := schema.For[Request]()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &Tool{
		name: ToolName,
		description: fmt.Sprintf("Converts an amount between currencies using fixed exchange rates quoted against %s. "+
			"Supported currencies: USD, EUR, GBP, JPY.", table.Base()),
		funcParams: sc.Parameters,
		table:      table,
	}, nil
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() any {
	return t.funcParams
}

func (t *Tool) Run(_ context.Context, req *Request) (*Result, error) {
	from, err := finance.ParseCurrency(req.FromCurrency)
	if err != nil {
		return nil, err
	}
	to, err := finance.ParseCurrency(req.ToCurrency)
	if err != nil {
		return nil, err
	}

	amount := decimal.NewFromFloat(req.Amount)
	conv, err := t.table.Convert(finance.ConversionRequest{
		Amount: amount,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, err
	}
	metricskey.StatsCurrencyConversions.IncrCounter(1, string(from), string(to))

	return &Result{
		ConvertedAmount: conv.Amount.InexactFloat64(),
		RateUsed:        conv.Rate.Round(6).InexactFloat64(),
		FromCurrency:    string(from),
		ToCurrency:      string(to),
		Report: fmt.Sprintf("%s %s is %s %s at a rate of %s.",
			finance.FormatMoney(amount), from, finance.FormatMoney(conv.Amount), to, conv.Rate.Round(6).String()),
	}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	return tools.CallJSON(ctx, input, t.Run)
}
