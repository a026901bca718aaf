package callbacks

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTool struct{ name string }

func (t *fakeTool) Name() string                                           { return t.name }
func (t *fakeTool) Description() string                                    { return "desc" }
func (t *fakeTool) Parameters() any                                        { return nil }
func (t *fakeTool) Call(ctx context.Context, input string) (string, error) { return "", nil }

func TestRunID(t *testing.T) {
	t.Parallel()
	assert.Empty(t, RunID(context.Background()))
	assert.Equal(t, "r1", RunID(WithRunID(context.Background(), "r1")))
}

func TestScratchpad_StartRun_EndRun(t *testing.T) {
	t.Parallel()
	sp := NewScratchpad(ModeVerbose)
	ctx := WithRunID(context.Background(), "run-stats")
	sp.StartRun(ctx)

	r := sp.runs["run-stats"]
	require.NotNil(t, r)
	r.stats.ToolsCalls = 3
	r.stats.ToolsCallsSucceeded = 1
	r.stats.ToolsCallsFailed = 2
	r.stats.ToolNotFound = 1
	r.stats.BytesIn = 10
	r.stats.BytesOut = 11

	stats, buf := sp.EndRun(ctx)
	require.NotNil(t, stats)
	assert.Contains(t, string(buf), "Run Started")
	assert.Contains(t, string(buf), "Run Ended")
	assert.Contains(t, string(buf), "Tool calls: 3, Succeeded: 1, Failed: 2, Not Found: 1")
	assert.Contains(t, string(buf), "Bytes In: 10, Bytes Out: 11")
	_, ok := sp.runs["run-stats"]
	assert.False(t, ok)

	s2, _ := sp.EndRun(ctx)
	assert.Nil(t, s2)
}

func TestScratchpad_getRun_nil(t *testing.T) {
	t.Parallel()
	sp := NewScratchpad(ModeDefault)
	assert.Nil(t, sp.getRun(context.Background()))
	assert.Nil(t, sp.getRun(WithRunID(context.Background(), "unknown")))

	// no run ID, nothing is recorded
	sp.StartRun(context.Background())
	assert.Empty(t, sp.runs)
}

func TestScratchpad_OnCallbacks(t *testing.T) {
	t.Parallel()
	sp := NewScratchpad(ModeDefault)
	ctx := WithRunID(context.Background(), "run-cb")
	sp.StartRun(ctx)

	tool := &fakeTool{name: "T1"}
	sp.OnToolStart(ctx, tool, "tinput")
	sp.OnToolEnd(ctx, tool, "tinput", "toutput")
	sp.OnToolError(ctx, tool, "tinput", errors.New("terr"))
	sp.OnToolNotFound(ctx, "T2")

	stats, output := sp.EndRun(ctx)
	require.NotNil(t, stats)
	out := string(output)
	assert.Contains(t, out, "T1 *** Tool Start ***")
	assert.Contains(t, out, "T1 Input: tinput")
	assert.NotContains(t, out, "toutput")
	assert.Contains(t, out, "T1 *** Tool End ***")
	assert.Contains(t, out, "T1 *** Tool Error *** Internal terr")
	assert.Contains(t, out, "*** Tool Not Found *** T2")
	assert.EqualValues(t, 6, stats.BytesIn)
	assert.EqualValues(t, 7, stats.BytesOut)

	// no run, no panic
	sp.OnToolStart(ctx, tool, "tinput")
	sp.OnToolEnd(ctx, tool, "tinput", "toutput")
	sp.OnToolError(ctx, tool, "tinput", errors.New("terr2"))
	sp.OnToolNotFound(ctx, "T3")
}

func Test_run_print_format(t *testing.T) {
	t.Parallel()
	r := &run{stats: RunStats{RunID: "r42"}}

	r.print("hello", "again")
	lines := strings.Split(r.w.String(), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} r42 hello again$`), lines[0])
}
