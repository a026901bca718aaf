package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// MaxAnnualRatePercent is the highest accepted annual interest rate.
	MaxAnnualRatePercent = 1000.0
	// MaxTermYears is the longest accepted loan term.
	MaxTermYears = 50

	monthsPerYear = 12
)

// LoanTerms describes a fixed-rate, fully amortizing loan.
type LoanTerms struct {
	// Principal is the borrowed amount, must be positive.
	Principal float64
	// AnnualRatePercent is the nominal annual rate in percent, e.g. 4.5.
	AnnualRatePercent float64
	// TermYears is the loan term in whole years.
	TermYears int
}

// Payment is the result of MortgagePayment.
type Payment struct {
	Monthly       decimal.Decimal
	TotalPaid     decimal.Decimal
	TotalInterest decimal.Decimal
	Months        int
}

// Validate returns ErrInvalidInput if the terms are out of range.
func (t LoanTerms) Validate() error {
	switch {
	case !isFinite(t.Principal) || t.Principal <= 0:
		return invalidf("principal must be greater than zero, got %v", t.Principal)
	case !isFinite(t.AnnualRatePercent) || t.AnnualRatePercent < 0:
		return invalidf("annual interest rate must not be negative, got %v", t.AnnualRatePercent)
	case t.AnnualRatePercent > MaxAnnualRatePercent:
		return invalidf("annual interest rate exceeds the maximum of %v%%", MaxAnnualRatePercent)
	case t.TermYears <= 0:
		return invalidf("term must be at least one year, got %d", t.TermYears)
	case t.TermYears > MaxTermYears:
		return invalidf("term exceeds the maximum of %d years", MaxTermYears)
	}
	return nil
}

// Months returns the number of monthly payments.
func (t LoanTerms) Months() int {
	return t.TermYears * monthsPerYear
}

// MonthlyRate returns the periodic rate as a fraction.
func (t LoanTerms) MonthlyRate() float64 {
	return t.AnnualRatePercent / monthsPerYear / 100
}

// MortgagePayment returns the fixed monthly payment for the terms,
// rounded to cents.
//
// A zero rate amortizes straight-line, otherwise the standard annuity
// formula P*r*(1+r)^n / ((1+r)^n - 1) is applied.
//
// TotalPaid and TotalInterest derive from the rounded payment. When the rate
// is close to zero, rounding the payment down can leave TotalPaid a few cents
// below the principal; TotalInterest is then reported as zero.
func MortgagePayment(terms LoanTerms) (Payment, error) {
	if err := terms.Validate(); err != nil {
		return Payment{}, err
	}

	months := terms.Months()
	n := float64(months)
	r := terms.MonthlyRate()

	var monthly float64
	if r == 0 {
		monthly = terms.Principal / n
	} else {
		// (1+r)^n - 1 without cancellation for tiny rates
		gain := math.Expm1(n * math.Log1p(r))
		monthly = terms.Principal * r * (1 + gain) / gain
	}
	if !isFinite(monthly) {
		return Payment{}, invalidf("payment is not representable for the given terms")
	}

	payment := RoundCents(decimal.NewFromFloat(monthly))
	total := payment.Mul(decimal.NewFromInt(int64(months)))
	interest := decimal.Max(decimal.Zero, total.Sub(decimal.NewFromFloat(terms.Principal)))

	return Payment{
		Monthly:       payment,
		TotalPaid:     RoundCents(total),
		TotalInterest: RoundCents(interest),
		Months:        months,
	}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
