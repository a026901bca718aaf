package workout_test

import (
	"context"
	"testing"

	"github.com/effective-security/finagent/tools"
	"github.com/effective-security/finagent/tools/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tool, err := workout.New()
	require.NoError(t, err)
	assert.Equal(t, workout.ToolName, tool.Name())

	res, err := tool.Run(ctx, &workout.Request{FitnessLevel: "Beginner", Goal: "Weight Loss", DaysPerWeek: 4})
	require.NoError(t, err)
	assert.Equal(t, "beginner", res.FitnessLevel)
	assert.Equal(t, `Workout Plan for Beginner Level with Weight loss Goal (4 days/week):
• Focus: Full body workouts with cardio emphasis
• Recommended Schedule: 2-3 full body workouts, 2-3 cardio sessions (Combine some workouts to fit your schedule)

For best results, ensure proper nutrition and recovery between workouts.`, res.Report)

	out, err := tool.Call(ctx, `{"fitness_level":"advanced","goal":"endurance","days_per_week":2}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"schedule":"Focus on full-body workouts and combine cardio with strength when possible."`)

	_, err = tool.Call(ctx, `{"fitness_level":"advanced","goal":"endurance","days_per_week":9}`)
	assert.Equal(t, tools.KindInvalidInput, tools.Classify(err))

	_, err = tool.Call(ctx, `{"fitness_level":"guru","goal":"endurance","days_per_week":3}`)
	assert.Equal(t, tools.KindInvalidInput, tools.Classify(err))

	_, err = tool.Call(ctx, `{"goal":"endurance","days_per_week":3}`)
	assert.Equal(t, tools.KindBadArguments, tools.Classify(err))
}
