package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/metricskey"
	"github.com/effective-security/xlog"
	"golang.org/x/sync/errgroup"
)

// ToolCall is a request to execute a tool.
type ToolCall struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Arguments string `json:"arguments" yaml:"arguments"`
}

// Toolbox is a read-only registry of tools.
// Tool names are matched case-insensitively.
type Toolbox struct {
	name        string
	tools       []ITool
	toolsByName map[string]ITool
	toolsNames  []string
	callback    Callback
	concurrency int
}

// Option configures the Toolbox
type Option func(*Toolbox)

// WithCallback sets the tool lifecycle callback.
func WithCallback(cb Callback) Option {
	return func(b *Toolbox) {
		b.callback = cb
	}
}

// WithConcurrency limits the number of tools executed in parallel by ExecuteAll,
// zero or negative means no limit.
func WithConcurrency(n int) Option {
	return func(b *Toolbox) {
		b.concurrency = n
	}
}

// NewToolbox returns a Toolbox with the tools.
// When two tools have the same name, the first one is registered.
func NewToolbox(name string, list []ITool, opts ...Option) *Toolbox {
	b := &Toolbox{
		name:        name,
		toolsByName: make(map[string]ITool, len(list)),
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, tool := range list {
		key := strings.ToLower(tool.Name())
		if _, exists := b.toolsByName[key]; exists {
			logger.KV(xlog.WARNING,
				"toolbox", name,
				"status", "duplicate_tool",
				"tool", tool.Name(),
			)
			continue
		}
		b.toolsByName[key] = tool
		b.tools = append(b.tools, tool)
		b.toolsNames = append(b.toolsNames, tool.Name())
	}
	return b
}

// Name returns the name of the toolbox.
func (b *Toolbox) Name() string {
	return b.name
}

// Tools returns the registered tools in registration order.
func (b *Toolbox) Tools() []ITool {
	return slices.Clone(b.tools)
}

// Names returns the registered tool names in registration order.
func (b *Toolbox) Names() []string {
	return slices.Clone(b.toolsNames)
}

// Get returns the tool by name.
func (b *Toolbox) Get(name string) (ITool, bool) {
	tool, ok := b.toolsByName[strings.ToLower(strings.TrimSpace(name))]
	return tool, ok
}

// Descriptions returns the tool descriptions for a prompt.
func (b *Toolbox) Descriptions() string {
	return GetDescriptions(b.tools...)
}

// Execute runs the tool with the JSON arguments.
// Failures are returned as a Result with an error kind, never as a Go error.
func (b *Toolbox) Execute(ctx context.Context, name, args string) *Result {
	tool, ok := b.Get(name)
	if !ok {
		metricskey.StatsToolCallsNotFound.IncrCounter(1, name)
		if b.callback != nil {
			b.callback.OnToolNotFound(ctx, name)
		}

		availableTools := strings.Join(b.toolsNames, ", ")
		logger.ContextKV(ctx, xlog.WARNING,
			"toolbox", b.name,
			"status", "tool_not_found",
			"tool_name", name,
			"available_tools", availableTools,
		)
		return NewFailure(name, KindToolNotFound,
			fmt.Sprintf("Tool `%s` not found. Please check the tool name and try again with exact match. Available tools: %s", name, availableTools))
	}

	toolName := tool.Name()
	if b.callback != nil {
		b.callback.OnToolStart(ctx, tool, args)
	}

	started := time.Now()
	res, err := b.call(ctx, tool, args)
	metricskey.PerfToolCall.MeasureSince(started, toolName)

	if err != nil {
		result := NewError(toolName, err)
		metricskey.StatsToolCallsFailed.IncrCounter(1, toolName, string(result.Kind))
		if b.callback != nil {
			b.callback.OnToolError(ctx, tool, args, err)
		}

		level := xlog.DEBUG
		if result.Kind == KindInternal {
			level = xlog.ERROR
		}
		logger.ContextKV(ctx, level,
			"toolbox", b.name,
			"status", "tool_call_failed",
			"tool", toolName,
			"kind", result.Kind,
			"err", err.Error(),
		)
		return result
	}

	metricskey.StatsToolCallsSucceeded.IncrCounter(1, toolName)
	if b.callback != nil {
		b.callback.OnToolEnd(ctx, tool, args, res)
	}
	return NewSuccess(toolName, res)
}

func (b *Toolbox) call(ctx context.Context, tool ITool, args string) (res string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("tool %s panicked: %v", tool.Name(), r)
		}
	}()
	if err = ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}
	return tool.Call(ctx, args)
}

// ExecuteAll runs independent tool calls concurrently.
// The results are returned in the order of the calls.
func (b *Toolbox) ExecuteAll(ctx context.Context, calls []ToolCall) []*Result {
	defer metricskey.PerfToolboxExecuteAll.MeasureSince(time.Now(), b.name)

	results := make([]*Result, len(calls))

	var g errgroup.Group
	if b.concurrency > 0 {
		g.SetLimit(b.concurrency)
	}
	for i, tc := range calls {
		g.Go(func() error {
			res := b.Execute(ctx, tc.Name, tc.Arguments)
			res.ID = tc.ID
			results[i] = res
			return nil
		})
	}
	// the goroutines never return an error
	_ = g.Wait()

	return results
}
