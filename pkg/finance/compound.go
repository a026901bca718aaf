package finance

import (
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Frequency is the number of compounding periods per year.
type Frequency int

// Compounding frequencies
const (
	Annually     Frequency = 1
	SemiAnnually Frequency = 2
	Quarterly    Frequency = 4
	Monthly      Frequency = 12
	Daily        Frequency = 365
)

var frequencyNames = []struct {
	name string
	freq Frequency
}{
	{"annually", Annually},
	{"semi-annually", SemiAnnually},
	{"quarterly", Quarterly},
	{"monthly", Monthly},
	{"daily", Daily},
}

// FrequencyNames returns the accepted frequency names.
func FrequencyNames() []string {
	names := make([]string, len(frequencyNames))
	for i, f := range frequencyNames {
		names[i] = f.name
	}
	return names
}

// ParseFrequency parses a frequency name, an empty name means annually.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Annually, nil
	}
	idx := slices.Index(FrequencyNames(), s)
	if idx < 0 {
		return 0, invalidf("invalid compound frequency %q, choose from: %s", s, strings.Join(FrequencyNames(), ", "))
	}
	return frequencyNames[idx].freq, nil
}

// String returns the frequency name.
func (f Frequency) String() string {
	for _, n := range frequencyNames {
		if n.freq == f {
			return n.name
		}
	}
	return "unknown"
}

// Investment describes a compounding investment with optional yearly contributions.
type Investment struct {
	Principal            float64
	AnnualRatePercent    float64
	Years                int
	ContributionsPerYear float64
	Frequency            Frequency
}

// Projection is the result of CompoundInterest.
type Projection struct {
	FinalBalance       decimal.Decimal
	TotalContributions decimal.Decimal
	InterestEarned     decimal.Decimal
	GrowthMultiple     decimal.Decimal
}

// Validate returns ErrInvalidInput if the investment is out of range.
func (inv Investment) Validate() error {
	switch {
	case !isFinite(inv.Principal) || inv.Principal <= 0:
		return invalidf("principal must be greater than zero, got %v", inv.Principal)
	case !isFinite(inv.AnnualRatePercent) || inv.AnnualRatePercent < 0:
		return invalidf("annual rate must not be negative, got %v", inv.AnnualRatePercent)
	case inv.AnnualRatePercent > MaxAnnualRatePercent:
		return invalidf("annual rate exceeds the maximum of %v%%", MaxAnnualRatePercent)
	case inv.Years <= 0:
		return invalidf("years must be at least one, got %d", inv.Years)
	case !isFinite(inv.ContributionsPerYear) || inv.ContributionsPerYear < 0:
		return invalidf("contributions must not be negative, got %v", inv.ContributionsPerYear)
	case inv.Frequency.String() == "unknown":
		return invalidf("unsupported compound frequency %d", int(inv.Frequency))
	}
	return nil
}

// CompoundInterest projects the balance after Years of compounding.
// Contributions are spread evenly over the compounding periods and
// accumulate as an ordinary annuity.
func CompoundInterest(inv Investment) (Projection, error) {
	if err := inv.Validate(); err != nil {
		return Projection{}, err
	}

	n := float64(inv.Frequency)
	periods := n * float64(inv.Years)
	rate := inv.AnnualRatePercent / 100 / n
	perPeriod := inv.ContributionsPerYear / n

	// (1+rate)^periods - 1 without cancellation for tiny rates
	gain := math.Expm1(periods * math.Log1p(rate))
	final := inv.Principal * (1 + gain)
	if perPeriod > 0 {
		if rate == 0 {
			final += perPeriod * periods
		} else {
			final += perPeriod * gain / rate
		}
	}
	if !isFinite(final) {
		return Projection{}, invalidf("balance is not representable for the given investment")
	}

	balance := decimal.NewFromFloat(final)
	contributions := decimal.NewFromFloat(inv.Principal).
		Add(decimal.NewFromFloat(inv.ContributionsPerYear).Mul(decimal.NewFromInt(int64(inv.Years))))

	return Projection{
		FinalBalance:       RoundCents(balance),
		TotalContributions: RoundCents(contributions),
		InterestEarned:     RoundCents(balance.Sub(contributions)),
		GrowthMultiple:     RoundCents(balance.Div(decimal.NewFromFloat(inv.Principal))),
	}, nil
}
