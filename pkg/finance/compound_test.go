package finance_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	t.Parallel()

	tcs := map[string]finance.Frequency{
		"":              finance.Annually,
		"Annually":      finance.Annually,
		"semi-annually": finance.SemiAnnually,
		" quarterly ":   finance.Quarterly,
		"MONTHLY":       finance.Monthly,
		"daily":         finance.Daily,
	}
	for in, exp := range tcs {
		f, err := finance.ParseFrequency(in)
		require.NoError(t, err, in)
		assert.Equal(t, exp, f, in)
	}

	_, err := finance.ParseFrequency("weekly")
	require.Error(t, err)
	assert.True(t, errors.Is(err, finance.ErrInvalidInput))
	assert.EqualError(t, err, `invalid compound frequency "weekly", choose from: annually, semi-annually, quarterly, monthly, daily: invalid input`)

	assert.Equal(t, "quarterly", finance.Quarterly.String())
	assert.Equal(t, "unknown", finance.Frequency(7).String())
}

func TestCompoundInterest(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name          string
		inv           finance.Investment
		balance       string
		contributions string
		interest      string
		multiple      string
	}{
		{
			name:          "annual",
			inv:           finance.Investment{Principal: 1000, AnnualRatePercent: 10, Years: 2, Frequency: finance.Annually},
			balance:       "1210.00",
			contributions: "1000.00",
			interest:      "210.00",
			multiple:      "1.21",
		},
		{
			name:          "monthly with contributions",
			inv:           finance.Investment{Principal: 1000, AnnualRatePercent: 12, Years: 1, ContributionsPerYear: 1200, Frequency: finance.Monthly},
			balance:       "2395.08",
			contributions: "2200.00",
			interest:      "195.08",
			multiple:      "2.40",
		},
		{
			name:          "zero rate with contributions",
			inv:           finance.Investment{Principal: 1000, Years: 2, ContributionsPerYear: 1200, Frequency: finance.Monthly},
			balance:       "3400.00",
			contributions: "3400.00",
			interest:      "0.00",
			multiple:      "3.40",
		},
		{
			name:          "tiny rate with contributions",
			inv:           finance.Investment{Principal: 1000, AnnualRatePercent: 1e-12, Years: 2, ContributionsPerYear: 1200, Frequency: finance.Monthly},
			balance:       "3400.00",
			contributions: "3400.00",
			interest:      "0.00",
			multiple:      "3.40",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p, err := finance.CompoundInterest(tc.inv)
			require.NoError(t, err)
			assert.Equal(t, tc.balance, p.FinalBalance.StringFixed(2))
			assert.Equal(t, tc.contributions, p.TotalContributions.StringFixed(2))
			assert.Equal(t, tc.interest, p.InterestEarned.StringFixed(2))
			assert.Equal(t, tc.multiple, p.GrowthMultiple.StringFixed(2))
		})
	}

	invalid := []finance.Investment{
		{Principal: 0, AnnualRatePercent: 5, Years: 1, Frequency: finance.Annually},
		{Principal: 100, AnnualRatePercent: -5, Years: 1, Frequency: finance.Annually},
		{Principal: 100, AnnualRatePercent: 5, Years: 0, Frequency: finance.Annually},
		{Principal: 100, AnnualRatePercent: 5, Years: 1, ContributionsPerYear: -1, Frequency: finance.Annually},
		{Principal: 100, AnnualRatePercent: 5, Years: 1, Frequency: 0},
	}
	for _, inv := range invalid {
		_, err := finance.CompoundInterest(inv)
		assert.True(t, errors.Is(err, finance.ErrInvalidInput), "%+v", inv)
	}
}
