package currency_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/finagent/tools"
	"github.com/effective-security/finagent/tools/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tool, err := currency.New()
	require.NoError(t, err)
	assert.Equal(t, currency.ToolName, tool.Name())
	assert.Equal(t, "Converts an amount between currencies using fixed exchange rates quoted against USD. "+
		"Supported currencies: USD, EUR, GBP, JPY.", tool.Description())

	t.Run("USD to EUR", func(t *testing.T) {
		out, err := tool.Call(ctx, `{"amount":100,"from_currency":"USD","to_currency":"EUR"}`)
		require.NoError(t, err)
		assert.Equal(t, `{"converted_amount":85,"rate_used":0.85,"from_currency":"USD","to_currency":"EUR","report":"100.00 USD is 85.00 EUR at a rate of 0.85."}`, out)
	})

	t.Run("cross rate", func(t *testing.T) {
		res, err := tool.Run(ctx, &currency.Request{Amount: 100, FromCurrency: "eur", ToCurrency: "gbp"})
		require.NoError(t, err)
		assert.Equal(t, 85.88, res.ConvertedAmount)
		assert.Equal(t, 0.858824, res.RateUsed)
		assert.Equal(t, "EUR", res.FromCurrency)
		assert.Equal(t, "GBP", res.ToCurrency)
	})

	t.Run("same currency", func(t *testing.T) {
		res, err := tool.Run(ctx, &currency.Request{Amount: 12.34, FromCurrency: "JPY", ToCurrency: "JPY"})
		require.NoError(t, err)
		assert.Equal(t, 12.34, res.ConvertedAmount)
		assert.Equal(t, 1.0, res.RateUsed)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := tool.Call(ctx, `{"amount":100,"from_currency":"XYZ","to_currency":"EUR"}`)
		assert.Equal(t, tools.KindUnsupportedCurrency, tools.Classify(err))

		_, err = tool.Call(ctx, `{"amount":-5,"from_currency":"USD","to_currency":"EUR"}`)
		assert.Equal(t, tools.KindInvalidInput, tools.Classify(err))

		_, err = tool.Call(ctx, `{"amount":5,"from_currency":"USD"}`)
		assert.Equal(t, tools.KindBadArguments, tools.Classify(err))
	})

	t.Run("fake round trip", func(t *testing.T) {
		f := gofakeit.New(20240704)
		for range 100 {
			var req currency.Request
			require.NoError(t, f.Struct(&req))
			req.Amount = float64(int64(req.Amount*100)) / 100

			res, err := tool.Run(ctx, &req)
			require.NoError(t, err, "%+v", req)

			back, err := tool.Run(ctx, &currency.Request{
				Amount:       res.ConvertedAmount,
				FromCurrency: res.ToCurrency,
				ToCurrency:   res.FromCurrency,
			})
			require.NoError(t, err)
			// a cent of the target currency is worth 1/rate cents of the source
			delta := 0.01 + 0.01/res.RateUsed
			assert.InDelta(t, req.Amount, back.ConvertedAmount, delta, "%+v", req)
		}
	})
}

func TestNewWithTable(t *testing.T) {
	t.Parallel()

	_, err := currency.NewWithTable(nil)
	assert.EqualError(t, err, "exchange rate table is required")

	table, err := finance.NewExchangeRateTable(finance.EUR, map[finance.Pair]decimal.Decimal{
		{From: finance.EUR, To: finance.USD}: decimal.RequireFromString("1.1"),
		{From: finance.EUR, To: finance.GBP}: decimal.RequireFromString("0.86"),
		{From: finance.EUR, To: finance.JPY}: decimal.RequireFromString("160"),
	})
	require.NoError(t, err)

	tool, err := currency.NewWithTable(table)
	require.NoError(t, err)
	assert.Contains(t, tool.Description(), "quoted against EUR")

	res, err := tool.Run(context.Background(), &currency.Request{Amount: 10, FromCurrency: "EUR", ToCurrency: "JPY"})
	require.NoError(t, err)
	assert.Equal(t, 1600.0, res.ConvertedAmount)
}
