package weather_test

import (
	"context"
	"testing"

	"github.com/effective-security/finagent/tools"
	"github.com/effective-security/finagent/tools/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tool, err := weather.New()
	require.NoError(t, err)
	assert.Equal(t, weather.ToolName, tool.Name())

	out, err := tool.Call(ctx, `{"city":"new york"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"city":"New York","report":"The weather in New York is sunny with a temperature of 25 degrees Celsius (77 degrees Fahrenheit)."}`, out)

	_, err = tool.Run(ctx, &weather.Request{City: "London"})
	require.Error(t, err)
	assert.Equal(t, tools.KindNotFound, tools.Classify(err))
	assert.EqualError(t, err, `weather information for "London" is not available: not found`)

	_, err = tool.Call(ctx, `{}`)
	assert.Equal(t, tools.KindBadArguments, tools.Classify(err))
}
