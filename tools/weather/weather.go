package weather

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/tools"
)

// ToolName is the name of the weather tool
const ToolName = "get_weather"

// Request is the input of the tool
type Request struct {
	City string `json:"city" yaml:"city" jsonschema:"title=City,description=Name of the city,example=New York" validate:"required" fake:"New York"`
}

// Result is the output of the tool
type Result struct {
	City   string `json:"city" yaml:"city"`
	Report string `json:"report" yaml:"report"`
}

// reports is static sample data, keyed by lower-case city name
var reports = map[string]Result{
	"new york": {
		City:   "New York",
		Report: "The weather in New York is sunny with a temperature of 25 degrees Celsius (77 degrees Fahrenheit).",
	},
}

// New returns the weather tool
func New() (*tools.Function[Request, Result], error) {
	return tools.NewFunction(ToolName,
		"Returns the current weather report for a city.",
		lookup)
}

func lookup(_ context.Context, req *Request) (*Result, error) {
	r, ok := reports[strings.ToLower(strings.TrimSpace(req.City))]
	if !ok {
		return nil, errors.WithMessagef(tools.ErrNotFound, "weather information for %q is not available", req.City)
	}
	return &r, nil
}
