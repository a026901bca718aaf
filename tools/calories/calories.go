package calories

import (
	"context"
	"fmt"
	"strconv"

	"github.com/effective-security/finagent/pkg/fitness"
	"github.com/effective-security/finagent/tools"
)

// ToolName is the name of the calories tool
const ToolName = "calculate_calories_burned"

// Request is the input of the tool
type Request struct {
	Activity    string  `json:"activity" yaml:"activity" jsonschema:"title=Activity,description=Type of activity,enum=walking,enum=jogging,enum=running,enum=cycling,enum=swimming,enum=weight lifting,enum=yoga,enum=hiit,enum=dancing,enum=hiking" validate:"required"`
	DurationMin int     `json:"duration_min" yaml:"duration_min" jsonschema:"title=Duration,description=Duration in minutes"`
	WeightKg    float64 `json:"weight_kg" yaml:"weight_kg" jsonschema:"title=Weight,description=Body weight in kilograms"`
}

// Fake returns an example request
func (Request) Fake() any {
	return &Request{Activity: "running", DurationMin: 30, WeightKg: 70}
}

// Result is the output of the tool
type Result struct {
	Activity string  `json:"activity" yaml:"activity"`
	MET      float64 `json:"met" yaml:"met" jsonschema:"description=Metabolic Equivalent of Task of the activity"`
	Calories float64 `json:"calories" yaml:"calories" jsonschema:"description=Estimated kilocalories burned"`
	Report   string  `json:"report" yaml:"report"`
}

// New returns the calories tool
func New() (*tools.Function[Request, Result], error) {
	return tools.NewFunction(ToolName,
		"Estimates the calories burned by an activity from its duration in minutes and the body weight in kilograms.",
		calculate)
}

func calculate(_ context.Context, req *Request) (*Result, error) {
	b, err := fitness.CaloriesBurned(req.Activity, req.DurationMin, req.WeightKg)
	if err != nil {
		return nil, err
	}
	return &Result{
		Activity: b.Activity,
		MET:      b.MET,
		Calories: b.Calories,
		Report: fmt.Sprintf("For %d minutes of %s, a person weighing %s kg would burn approximately %.0f calories.",
			req.DurationMin, b.Activity, strconv.FormatFloat(req.WeightKg, 'f', -1, 64), b.Calories),
	}, nil
}
