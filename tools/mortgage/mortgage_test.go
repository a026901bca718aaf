package mortgage_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/finagent/pkg/llmutils"
	"github.com/effective-security/finagent/tools"
	"github.com/effective-security/finagent/tools/mortgage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tool, err := mortgage.New()
	require.NoError(t, err)
	assert.Equal(t, mortgage.ToolName, tool.Name())
	assert.NotEmpty(t, tool.Description())

	exp := `{
	"properties": {
		"principal": {
			"type": "number",
			"title": "Principal",
			"description": "Loan amount borrowed",
			"examples": [
				300000
			]
		},
		"annual_interest_rate": {
			"type": "number",
			"title": "Annual Interest Rate",
			"description": "Nominal annual interest rate in percent, e.g. 4.5 for 4.5%",
			"examples": [
				4.5
			]
		},
		"term_years": {
			"type": "integer",
			"title": "Term Years",
			"description": "Loan term in years",
			"examples": [
				30
			]
		}
	},
	"type": "object",
	"required": [
		"principal",
		"annual_interest_rate",
		"term_years"
	]
}`
	assert.Equal(t, exp, llmutils.ToJSONIndent(tool.Parameters()))

	t.Run("Run", func(t *testing.T) {
		res, err := tool.Run(ctx, &mortgage.Request{
			Principal:          300000,
			AnnualInterestRate: 4.5,
			TermYears:          30,
		})
		require.NoError(t, err)
		assert.Equal(t, 1520.06, res.MonthlyPayment)
		assert.Equal(t, 547221.6, res.TotalPaid)
		assert.Equal(t, 247221.6, res.TotalInterest)
		assert.Equal(t, 360, res.NumberOfPayments)
		assert.Equal(t, "The monthly payment for a loan of 300,000.00 at 4.5% over 30 years is 1,520.06. "+
			"Total paid over 360 payments is 547,221.60, of which 247,221.60 is interest.", res.Report)
	})

	t.Run("Call", func(t *testing.T) {
		out, err := tool.Call(ctx, `{"principal":200000,"annual_interest_rate":0,"term_years":20}`)
		require.NoError(t, err)

		var res mortgage.Result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 833.33, res.MonthlyPayment)
		assert.Equal(t, 240, res.NumberOfPayments)
		assert.Equal(t, 0.0, res.TotalInterest)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := tool.Call(ctx, `{"principal":0,"annual_interest_rate":5,"term_years":30}`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, finance.ErrInvalidInput))
		assert.Equal(t, tools.KindInvalidInput, tools.Classify(err))

		_, err = tool.Call(ctx, `{"principal":"lots"}`)
		assert.Equal(t, tools.KindBadArguments, tools.Classify(err))
	})

	t.Run("fake", func(t *testing.T) {
		f := gofakeit.New(20240704)
		for range 50 {
			var req mortgage.Request
			require.NoError(t, f.Struct(&req))
			res, err := tool.Run(ctx, &req)
			require.NoError(t, err, "%+v", req)
			assert.Greater(t, res.MonthlyPayment, 0.0)
		}
	})
}
