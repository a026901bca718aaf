package bmi

import (
	"context"
	"fmt"

	"github.com/effective-security/finagent/pkg/fitness"
	"github.com/effective-security/finagent/tools"
)

// ToolName is the name of the BMI tool
const ToolName = "calculate_bmi"

// Request is the input of the tool
type Request struct {
	WeightKg float64 `json:"weight_kg" yaml:"weight_kg" jsonschema:"title=Weight,description=Body weight in kilograms"`
	HeightCm float64 `json:"height_cm" yaml:"height_cm" jsonschema:"title=Height,description=Body height in centimeters"`
}

// Fake returns an example request
func (Request) Fake() any {
	return &Request{WeightKg: 70, HeightCm: 175}
}

// Result is the output of the tool
type Result struct {
	BMI      float64 `json:"bmi" yaml:"bmi" jsonschema:"description=Body mass index rounded to one decimal"`
	Category string  `json:"category" yaml:"category" jsonschema:"description=underweight\\, normal weight\\, overweight or obese"`
	Report   string  `json:"report" yaml:"report"`
}

// New returns the BMI tool
func New() (*tools.Function[Request, Result], error) {
	return tools.NewFunction(ToolName,
		"Calculates the Body Mass Index from weight in kilograms and height in centimeters, and classifies it.",
		calculate)
}

func calculate(_ context.Context, req *Request) (*Result, error) {
	b, err := fitness.BodyMassIndex(req.WeightKg, req.HeightCm)
	if err != nil {
		return nil, err
	}
	return &Result{
		BMI:      b.Value,
		Category: b.Category,
		Report: fmt.Sprintf("Your BMI is %.1f, which is classified as '%s'. "+
			"A healthy BMI range is between 18.5 and 24.9.", b.Value, b.Category),
	}, nil
}
