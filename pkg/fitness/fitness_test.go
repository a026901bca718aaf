package fitness_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/fitness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyMassIndex(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		weight, height float64
		value          float64
		category       string
	}{
		{50, 180, 15.4, fitness.Underweight},
		{70, 175, 22.9, fitness.NormalWeight},
		{85, 175, 27.8, fitness.Overweight},
		{100, 175, 32.7, fitness.Obese},
	}
	for _, tc := range tcs {
		bmi, err := fitness.BodyMassIndex(tc.weight, tc.height)
		require.NoError(t, err)
		assert.Equal(t, tc.value, bmi.Value, "%v/%v", tc.weight, tc.height)
		assert.Equal(t, tc.category, bmi.Category, "%v/%v", tc.weight, tc.height)
	}

	for _, in := range [][2]float64{{0, 170}, {-1, 170}, {math.NaN(), 170}, {701, 170}, {70, 0}, {70, math.Inf(1)}, {70, 301}} {
		_, err := fitness.BodyMassIndex(in[0], in[1])
		assert.True(t, errors.Is(err, fitness.ErrInvalidInput), "%v", in)
	}

	_, err := fitness.BodyMassIndex(70, 0)
	assert.EqualError(t, err, "height must be greater than zero, got 0: invalid input")
}

func TestCaloriesBurned(t *testing.T) {
	t.Parallel()

	b, err := fitness.CaloriesBurned(" Running", 30, 70)
	require.NoError(t, err)
	assert.Equal(t, "running", b.Activity)
	assert.Equal(t, 10.0, b.MET)
	assert.Equal(t, 350.0, b.Calories)

	b, err = fitness.CaloriesBurned("yoga", 45, 60)
	require.NoError(t, err)
	assert.Equal(t, 113.0, b.Calories)

	_, err = fitness.CaloriesBurned("chess", 30, 70)
	assert.True(t, errors.Is(err, fitness.ErrUnsupportedActivity))
	assert.EqualError(t, err, `activity "chess" is not supported, supported activities are: `+
		"walking, jogging, running, cycling, swimming, weight lifting, yoga, hiit, dancing, hiking: unsupported activity")

	for _, tc := range []struct {
		minutes int
		weight  float64
	}{{0, 70}, {-5, 70}, {24*60 + 1, 70}, {30, 0}, {30, math.NaN()}} {
		_, err = fitness.CaloriesBurned("walking", tc.minutes, tc.weight)
		assert.True(t, errors.Is(err, fitness.ErrInvalidInput), "%+v", tc)
	}
}

func TestWorkoutPlan(t *testing.T) {
	t.Parallel()

	p, err := fitness.WorkoutPlan("Intermediate", "Muscle Gain", 5)
	require.NoError(t, err)
	assert.Equal(t, fitness.Plan{
		Level:       fitness.Intermediate,
		Goal:        fitness.MuscleGain,
		DaysPerWeek: 5,
		Focus:       "Upper/lower or push/pull/legs split",
		Schedule:    "4-5 strength workouts following a split routine, 1 active recovery",
	}, p)

	p, err = fitness.WorkoutPlan("beginner", "endurance", 4)
	require.NoError(t, err)
	assert.Equal(t, "2-3 cardio sessions, 1-2 light strength workouts (Combine some workouts to fit your schedule)", p.Schedule)

	p, err = fitness.WorkoutPlan("advanced", "weight loss", 2)
	require.NoError(t, err)
	assert.Equal(t, fitness.ShortWeekSchedule, p.Schedule)
	assert.Equal(t, "Periodized training with caloric deficit", p.Focus)

	for _, level := range fitness.Levels {
		for _, goal := range fitness.Goals {
			p, err := fitness.WorkoutPlan(level, goal, 7)
			require.NoError(t, err)
			assert.NotEmpty(t, p.Focus)
			assert.NotEmpty(t, p.Schedule)
		}
	}

	_, err = fitness.WorkoutPlan("expert", "endurance", 3)
	assert.EqualError(t, err, "fitness level must be one of: beginner, intermediate, advanced: invalid input")
	_, err = fitness.WorkoutPlan("beginner", "flexibility", 3)
	assert.EqualError(t, err, "goal must be one of: weight loss, muscle gain, endurance, general fitness: invalid input")
	_, err = fitness.WorkoutPlan("beginner", "endurance", 8)
	assert.EqualError(t, err, "days per week must be between 1 and 7, got 8: invalid input")
}
