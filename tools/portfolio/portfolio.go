package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/finagent/pkg/schema"
	"github.com/effective-security/finagent/tools"
)

// ToolName is the name of the portfolio analysis tool
const ToolName = "analyze_investment_portfolio"

// Request is the input of the tool
type Request struct {
	Allocation    map[string]float64 `json:"allocation" yaml:"allocation" jsonschema:"title=Allocation,description=Portfolio allocation in percent per asset class: stocks\\, bonds\\, cash\\, real estate\\, commodities\\, cryptocurrency"`
	RiskTolerance string             `json:"risk_tolerance" yaml:"risk_tolerance" jsonschema:"title=Risk Tolerance,description=Investor risk tolerance,enum=low,enum=moderate,enum=high" validate:"required"`
}

// Fake returns an example request
func (Request) Fake() any {
	return &Request{
		Allocation:    map[string]float64{"stocks": 60, "bonds": 30, "cash": 10},
		RiskTolerance: "moderate",
	}
}

// Result is the output of the tool
type Result struct {
	RiskTolerance string                  `json:"risk_tolerance" yaml:"risk_tolerance" jsonschema:"description=Normalized risk tolerance"`
	Assets        []finance.AssetAnalysis `json:"assets" yaml:"assets" jsonschema:"description=Allocation of each asset class compared with the recommended range"`
	Observations  []string                `json:"observations" yaml:"observations" jsonschema:"description=General observations"`
	Report        string                  `json:"report" yaml:"report" jsonschema:"description=Human readable analysis"`
}

// Tool analyzes a portfolio allocation against a risk tolerance
type Tool struct {
	name        string
	description string
	funcParams  any
}

var _ tools.Tool[Request, Result] = (*Tool)(nil)

// New returns the portfolio analysis tool
func New() (*Tool, error) {
	sc, err := schema.For[Request]()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &Tool{
		name: ToolName,
		description: "Analyzes an investment portfolio allocation given in percent per asset class " +
			"and compares it with the ranges recommended for a low, moderate or high risk tolerance.",
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
	a, err := finance.AnalyzePortfolio(req.Allocation, req.RiskTolerance)
	if err != nil {
		return nil, err
	}
	return &Result{
		RiskTolerance: string(a.Risk),
		Assets:        a.Assets,
		Observations:  a.Observations,
		Report:        report(a),
	}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	return tools.CallJSON(ctx, input, t.Run)
}

func report(a finance.Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio Analysis for %s Risk Tolerance:\n\n", capitalize(string(a.Risk)))
	b.WriteString("Current Allocation vs. Recommended Range:\n")
	for _, as := range a.Assets {
		rng := fmt.Sprintf("%v-%v%%", as.Recommended.Min, as.Recommended.Max)
		var note string
		switch as.Status {
		case finance.StatusBelow:
			note = "Consider increasing to " + rng
		case finance.StatusAbove:
			note = "Consider decreasing to " + rng
		default:
			note = "Within recommended range of " + rng
		}
		fmt.Fprintf(&b, "- %s: %v%% (%s)\n", capitalize(string(as.Asset)), as.Percent, note)
	}
	b.WriteString("\nObservations:\n")
	for _, o := range a.Observations {
		fmt.Fprintf(&b, "- %s\n", o)
	}
	b.WriteString("\nNote: This is a simplified analysis. Consider consulting a financial advisor for personalized advice.")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
