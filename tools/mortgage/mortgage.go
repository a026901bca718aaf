package mortgage

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/finagent/pkg/schema"
	"github.com/effective-security/finagent/tools"
	"github.com/shopspring/decimal"
)

// ToolName is the name of the mortgage payment tool
const ToolName = "calculate_mortgage_payment"

// Request is the input of the tool
type Request struct {
	Principal          float64 `json:"principal" yaml:"principal" jsonschema:"title=Principal,description=Loan amount borrowed,example=300000" fake:"{float64range:10000,1000000}"`
	AnnualInterestRate float64 `json:"annual_interest_rate" yaml:"annual_interest_rate" jsonschema:"title=Annual Interest Rate,description=Nominal annual interest rate in percent\\, e.g. 4.5 for 4.5%,example=4.5" fake:"{float64range:0,15}"`
	TermYears          int     `json:"term_years" yaml:"term_years" jsonschema:"title=Term Years,description=Loan term in years,example=30" fake:"{number:1,40}"`
}

// Result is the output of the tool
type Result struct {
	MonthlyPayment   float64 `json:"monthly_payment" yaml:"monthly_payment" jsonschema:"description=Fixed monthly payment"`
	TotalPaid        float64 `json:"total_paid" yaml:"total_paid" jsonschema:"description=Sum of all payments"`
	TotalInterest    float64 `json:"total_interest" yaml:"total_interest" jsonschema:"description=Total interest paid over the term"`
	NumberOfPayments int     `json:"number_of_payments" yaml:"number_of_payments" jsonschema:"description=Number of monthly payments"`
	Report           string  `json:"report" yaml:"report" jsonschema:"description=Human readable summary"`
}

// Tool calculates the monthly payment of a fixed-rate loan
type Tool struct {
	name        string
	description string
	funcParams  any
}

var _ tools.Tool[Request, Result] = (*Tool)(nil)

// New returns the mortgage payment tool
func New() (*Tool, error) {
	sc, err := schema.For[Request]()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &Tool{
		name: ToolName,
		description: "Calculates the fixed monthly payment of a mortgage or any fully amortizing loan " +
			"from the principal, the annual interest rate in percent and the term in years.",
		funcParams: sc.Parameters,
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
	p, err := finance.MortgagePayment(finance.LoanTerms{
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualInterestRate,
		TermYears:         req.TermYears,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		MonthlyPayment:   p.Monthly.InexactFloat64(),
		TotalPaid:        p.TotalPaid.InexactFloat64(),
		TotalInterest:    p.TotalInterest.InexactFloat64(),
		NumberOfPayments: p.Months,
		Report: fmt.Sprintf("The monthly payment for a loan of %s at %v%% over %d years is %s. "+
			"Total paid over %d payments is %s, of which %s is interest.",
			finance.FormatMoney(decimal.NewFromFloat(req.Principal)), req.AnnualInterestRate, req.TermYears,
			finance.FormatMoney(p.Monthly), p.Months,
			finance.FormatMoney(p.TotalPaid), finance.FormatMoney(p.TotalInterest)),
	}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	return tools.CallJSON(ctx, input, t.Run)
}
