package compound

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/finagent/pkg/schema"
	"github.com/effective-security/finagent/tools"
	"github.com/shopspring/decimal"
)

// ToolName is the name of the compound interest tool
const ToolName = "calculate_compound_interest"

// Request is the input of the tool
type Request struct {
	Principal            float64 `json:"principal" yaml:"principal" jsonschema:"title=Principal,description=Initial investment amount,example=10000" fake:"{float64range:100,100000}"`
	AnnualRate           float64 `json:"annual_rate" yaml:"annual_rate" jsonschema:"title=Annual Rate,description=Annual interest rate in percent\\, e.g. 7 for 7%,example=7" fake:"{float64range:0,12}"`
	Years                int     `json:"years" yaml:"years" jsonschema:"title=Years,description=Investment horizon in years,example=10" fake:"{number:1,40}"`
	ContributionsPerYear float64 `json:"contributions_per_year,omitempty" yaml:"contributions_per_year,omitempty" jsonschema:"title=Contributions Per Year,description=Additional contributions per year,default=0" fake:"{float64range:0,12000}"`
	CompoundFrequency    string  `json:"compound_frequency,omitempty" yaml:"compound_frequency,omitempty" jsonschema:"title=Compound Frequency,description=How often interest is compounded,enum=annually,enum=semi-annually,enum=quarterly,enum=monthly,enum=daily,default=annually" fake:"{randomstring:[annually,semi-annually,quarterly,monthly,daily]}"`
}

// Result is the output of the tool
type Result struct {
	FinalBalance       float64 `json:"final_balance" yaml:"final_balance" jsonschema:"description=Balance at the end of the horizon"`
	TotalContributions float64 `json:"total_contributions" yaml:"total_contributions" jsonschema:"description=Principal plus all contributions"`
	InterestEarned     float64 `json:"interest_earned" yaml:"interest_earned" jsonschema:"description=Final balance minus total contributions"`
	GrowthMultiple     float64 `json:"growth_multiple" yaml:"growth_multiple" jsonschema:"description=Final balance divided by the principal"`
	Report             string  `json:"report" yaml:"report" jsonschema:"description=Human readable projection"`
}

// Tool projects investment growth with compound interest
type Tool struct {
	name        string
	description string
	funcParams  any
}

var _ tools.Tool[Request, Result] = (*Tool)(nil)

// New returns the compound interest tool
func New() (*Tool, error) {
	sc, err := schema.For[Request]()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &Tool{
		name: ToolName,
		description: "Projects the growth of an investment with compound interest and optional regular contributions. " +
			"Compounding can be annually, semi-annually, quarterly, monthly or daily.",
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
	freq, err := finance.ParseFrequency(req.CompoundFrequency)
	if err != nil {
		return nil, err
	}
	p, err := finance.CompoundInterest(finance.Investment{
		Principal:            req.Principal,
		AnnualRatePercent:    req.AnnualRate,
		Years:                req.Years,
		ContributionsPerYear: req.ContributionsPerYear,
		Frequency:            freq,
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Investment Growth Projection:\n")
	fmt.Fprintf(&b, "- Initial investment: %s\n", finance.FormatMoney(decimal.NewFromFloat(req.Principal)))
	fmt.Fprintf(&b, "- Interest rate: %v%% (compounded %s)\n", req.AnnualRate, freq)
	fmt.Fprintf(&b, "- Time period: %d years\n", req.Years)
	fmt.Fprintf(&b, "- Additional contributions: %s per year\n", finance.FormatMoney(decimal.NewFromFloat(req.ContributionsPerYear)))
	fmt.Fprintf(&b, "- Final balance: %s\n", finance.FormatMoney(p.FinalBalance))
	fmt.Fprintf(&b, "- Total contributions: %s\n", finance.FormatMoney(p.TotalContributions))
	fmt.Fprintf(&b, "- Interest earned: %s\n", finance.FormatMoney(p.InterestEarned))
	fmt.Fprintf(&b, "- Growth multiple: %sx", p.GrowthMultiple.StringFixed(2))

	return &Result{
		FinalBalance:       p.FinalBalance.InexactFloat64(),
		TotalContributions: p.TotalContributions.InexactFloat64(),
		InterestEarned:     p.InterestEarned.InexactFloat64(),
		GrowthMultiple:     p.GrowthMultiple.InexactFloat64(),
		Report:             b.String(),
	}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	return tools.CallJSON(ctx, input, t.Run)
}
