package fitness

import (
	"slices"
	"strings"
)

// Fitness levels
const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Advanced     = "advanced"
)

// Goals
const (
	WeightLoss     = "weight loss"
	MuscleGain     = "muscle gain"
	Endurance      = "endurance"
	GeneralFitness = "general fitness"
)

// Levels lists the accepted fitness levels.
var Levels = []string{Beginner, Intermediate, Advanced}

// Goals lists the accepted workout goals.
var Goals = []string{WeightLoss, MuscleGain, Endurance, GeneralFitness}

// ShortWeekSchedule replaces the schedule for fewer than three days a week.
const ShortWeekSchedule = "Focus on full-body workouts and combine cardio with strength when possible."

// Plan is a weekly workout plan.
type Plan struct {
	Level       string
	Goal        string
	DaysPerWeek int
	Focus       string
	Schedule    string
}

type template struct {
	focus    string
	schedule string
}

var plans = map[string]map[string]template{
	Beginner: {
		WeightLoss:     {"Full body workouts with cardio emphasis", "2-3 full body workouts, 2-3 cardio sessions"},
		MuscleGain:     {"Full body resistance training", "3 full body strength workouts, 1 active recovery day"},
		Endurance:      {"Cardio progression", "2-3 cardio sessions, 1-2 light strength workouts"},
		GeneralFitness: {"Balanced approach to fitness fundamentals", "2 strength workouts, 2 cardio sessions, 1 flexibility day"},
	},
	Intermediate: {
		WeightLoss:     {"HIIT and circuit training", "2-3 HIIT sessions, 2 strength circuits, 1 steady-state cardio"},
		MuscleGain:     {"Upper/lower or push/pull/legs split", "4-5 strength workouts following a split routine, 1 active recovery"},
		Endurance:      {"Mixed cardio and endurance strength training", "3-4 varied cardio sessions, 2 endurance-focused strength workouts"},
		GeneralFitness: {"Varied training methods", "2-3 strength sessions, 2 cardio workouts, 1 flexibility/mobility day"},
	},
	Advanced: {
		WeightLoss:     {"Periodized training with caloric deficit", "3-4 high-intensity workouts, 2 strength sessions, strategic cardio"},
		MuscleGain:     {"Specialized split routine", "5-6 targeted strength sessions following a specialized split"},
		Endurance:      {"Periodized endurance program", "4-5 structured cardio sessions, 2 complementary strength workouts"},
		GeneralFitness: {"Periodized approach to all fitness components", "3 strength sessions, 2-3 varied cardio/HIIT, 1 recovery/flexibility"},
	},
}

// WorkoutPlan returns the plan for the case-insensitive level and goal.
// Fewer than three days a week get a full-body schedule,
// three or four days combine some of the workouts.
func WorkoutPlan(level, goal string, daysPerWeek int) (Plan, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	goal = strings.ToLower(strings.TrimSpace(goal))
	switch {
	case !slices.Contains(Levels, level):
		return Plan{}, invalidf("fitness level must be one of: %s", strings.Join(Levels, ", "))
	case !slices.Contains(Goals, goal):
		return Plan{}, invalidf("goal must be one of: %s", strings.Join(Goals, ", "))
	case daysPerWeek < 1 || daysPerWeek > 7:
		return Plan{}, invalidf("days per week must be between 1 and 7, got %d", daysPerWeek)
	}

	tpl := plans[level][goal]
	schedule := tpl.schedule
	switch {
	case daysPerWeek < 3:
		schedule = ShortWeekSchedule
	case daysPerWeek < 5:
		schedule += " (Combine some workouts to fit your schedule)"
	}

	return Plan{
		Level:       level,
		Goal:        goal,
		DaysPerWeek: daysPerWeek,
		Focus:       tpl.focus,
		Schedule:    schedule,
	}, nil
}
