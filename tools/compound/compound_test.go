package compound_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/effective-security/finagent/tools"
	"github.com/effective-security/finagent/tools/compound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tool, err := compound.New()
	require.NoError(t, err)
	assert.Equal(t, compound.ToolName, tool.Name())

	t.Run("default frequency", func(t *testing.T) {
		out, err := tool.Call(ctx, `{"principal":1000,"annual_rate":10,"years":2}`)
		require.NoError(t, err)

		var res compound.Result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 1210.0, res.FinalBalance)
		assert.Equal(t, 1000.0, res.TotalContributions)
		assert.Equal(t, 210.0, res.InterestEarned)
		assert.Equal(t, 1.21, res.GrowthMultiple)
		assert.Equal(t, `Investment Growth Projection:
- Initial investment: 1,000.00
- Interest rate: 10% (compounded annually)
- Time period: 2 years
- Additional contributions: 0.00 per year
- Final balance: 1,210.00
- Total contributions: 1,000.00
- Interest earned: 210.00
- Growth multiple: 1.21x`, res.Report)
	})

	t.Run("monthly contributions", func(t *testing.T) {
		res, err := tool.Run(ctx, &compound.Request{
			Principal:            1000,
			AnnualRate:           12,
			Years:                1,
			ContributionsPerYear: 1200,
			CompoundFrequency:    "Monthly",
		})
		require.NoError(t, err)
		assert.Equal(t, 2395.08, res.FinalBalance)
		assert.Equal(t, 2200.0, res.TotalContributions)
		assert.Equal(t, 195.08, res.InterestEarned)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := tool.Call(ctx, `{"principal":1000,"annual_rate":10,"years":2,"compound_frequency":"hourly"}`)
		assert.Equal(t, tools.KindInvalidInput, tools.Classify(err))

		_, err = tool.Call(ctx, `{"principal":1000,"annual_rate":10,"years":0}`)
		assert.Equal(t, tools.KindInvalidInput, tools.Classify(err))
	})

	t.Run("fake", func(t *testing.T) {
		f := gofakeit.New(20240704)
		for range 50 {
			var req compound.Request
			require.NoError(t, f.Struct(&req))
			res, err := tool.Run(ctx, &req)
			require.NoError(t, err, "%+v", req)
			assert.GreaterOrEqual(t, res.FinalBalance, res.TotalContributions-0.01, "%+v", req)
		}
	})
}
