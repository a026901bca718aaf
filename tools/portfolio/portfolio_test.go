package portfolio_test

import (
	"context"
	"testing"

	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/finagent/pkg/llmutils"
	"github.com/effective-security/finagent/tools"
	"github.com/effective-security/finagent/tools/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tool, err := portfolio.New()
	require.NoError(t, err)
	assert.Equal(t, portfolio.ToolName, tool.Name())

	exp := `{
	"properties": {
		"allocation": {
			"additionalProperties": {
				"type": "number"
			},
			"type": "object",
			"title": "Allocation",
			"description": "Portfolio allocation in percent per asset class: stocks, bonds, cash, real estate, commodities, cryptocurrency"
		},
		"risk_tolerance": {
			"type": "string",
			"enum": [
				"low",
				"moderate",
				"high"
			],
			"title": "Risk Tolerance",
			"description": "Investor risk tolerance"
		}
	},
	"type": "object",
	"required": [
		"allocation",
		"risk_tolerance"
	]
}`
	assert.Equal(t, exp, llmutils.ToJSONIndent(tool.Parameters()))

	t.Run("analysis", func(t *testing.T) {
		res, err := tool.Run(ctx, &portfolio.Request{
			Allocation:    map[string]float64{"stocks": 60, "bonds": 30, "cash": 10},
			RiskTolerance: "Low",
		})
		require.NoError(t, err)
		assert.Equal(t, "low", res.RiskTolerance)
		require.Len(t, res.Assets, 6)
		assert.Equal(t, finance.StatusAbove, res.Assets[0].Status)
		assert.Equal(t, []string{finance.ObservationStocksHigh}, res.Observations)
		assert.Equal(t, `Portfolio Analysis for Low Risk Tolerance:

Current Allocation vs. Recommended Range:
- Stocks: 60% (Consider decreasing to 20-40%)
- Bonds: 30% (Consider increasing to 40-60%)
- Cash: 10% (Within recommended range of 10-25%)
- Real estate: 0% (Within recommended range of 0-10%)
- Commodities: 0% (Within recommended range of 0-5%)
- Cryptocurrency: 0% (Within recommended range of 0-0%)

Observations:
- Your stock allocation is high for your risk tolerance.

Note: This is a simplified analysis. Consider consulting a financial advisor for personalized advice.`, res.Report)
	})

	t.Run("call", func(t *testing.T) {
		out, err := tool.Call(ctx, `{"allocation":{"stocks":50,"bonds":30,"cash":10,"real estate":10},"risk_tolerance":"moderate"}`)
		require.NoError(t, err)
		assert.Contains(t, out, `"observations":["Your allocation generally aligns with your risk tolerance."]`)
		assert.Contains(t, out, `{"asset":"stocks","percent":50,"recommended":{"min":40,"max":60},"status":"within"}`)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := tool.Call(ctx, `{"allocation":{"stocks":50},"risk_tolerance":"low"}`)
		assert.Equal(t, tools.KindInvalidInput, tools.Classify(err))

		_, err = tool.Call(ctx, `{"allocation":{"stocks":100},"risk_tolerance":"reckless"}`)
		assert.Equal(t, tools.KindInvalidInput, tools.Classify(err))

		_, err = tool.Call(ctx, `{"allocation":{"stocks":100}}`)
		assert.Equal(t, tools.KindBadArguments, tools.Classify(err))
	})
}
