package workout

import (
	"context"
	"fmt"
	"strings"

	"github.com/effective-security/finagent/pkg/fitness"
	"github.com/effective-security/finagent/tools"
)

// ToolName is the name of the workout plan tool
const ToolName = "create_workout_plan"

// Request is the input of the tool
type Request struct {
	FitnessLevel string `json:"fitness_level" yaml:"fitness_level" jsonschema:"title=Fitness Level,description=Current fitness level,enum=beginner,enum=intermediate,enum=advanced" validate:"required"`
	Goal         string `json:"goal" yaml:"goal" jsonschema:"title=Goal,description=Training goal,enum=weight loss,enum=muscle gain,enum=endurance,enum=general fitness" validate:"required"`
	DaysPerWeek  int    `json:"days_per_week" yaml:"days_per_week" jsonschema:"title=Days Per Week,description=Number of workout days per week from 1 to 7,minimum=1,maximum=7"`
}

// Fake returns an example request
func (Request) Fake() any {
	return &Request{FitnessLevel: "beginner", Goal: "general fitness", DaysPerWeek: 3}
}

// Result is the output of the tool
type Result struct {
	FitnessLevel string `json:"fitness_level" yaml:"fitness_level"`
	Goal         string `json:"goal" yaml:"goal"`
	DaysPerWeek  int    `json:"days_per_week" yaml:"days_per_week"`
	Focus        string `json:"focus" yaml:"focus"`
	Schedule     string `json:"schedule" yaml:"schedule"`
	Report       string `json:"report" yaml:"report"`
}

// New returns the workout plan tool
func New() (*tools.Function[Request, Result], error) {
	return tools.NewFunction(ToolName,
		"Creates a weekly workout plan for a fitness level (beginner, intermediate, advanced), "+
			"a goal (weight loss, muscle gain, endurance, general fitness) and the number of workout days per week.",
		create)
}

func create(_ context.Context, req *Request) (*Result, error) {
	p, err := fitness.WorkoutPlan(req.FitnessLevel, req.Goal, req.DaysPerWeek)
	if err != nil {
		return nil, err
	}
	return &Result{
		FitnessLevel: p.Level,
		Goal:         p.Goal,
		DaysPerWeek:  p.DaysPerWeek,
		Focus:        p.Focus,
		Schedule:     p.Schedule,
		Report: fmt.Sprintf("Workout Plan for %s Level with %s Goal (%d days/week):\n"+
			"• Focus: %s\n"+
			"• Recommended Schedule: %s\n\n"+
			"For best results, ensure proper nutrition and recovery between workouts.",
			capitalize(p.Level), capitalize(p.Goal), p.DaysPerWeek, p.Focus, p.Schedule),
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
