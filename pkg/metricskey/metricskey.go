package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	// StatsToolCallsFailed is tagged with the error kind reported to the caller
	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool", "kind"},
	}

	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total tool calls not found",
		RequiredTags: []string{"tool"},
	}

	StatsCurrencyConversions = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_currency_conversions",
		Help:         "stats_currency_conversions provides total currency conversions by pair",
		RequiredTags: []string{"from", "to"},
	}

	StatsMCPToolCalls = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_mcp_tool_calls",
		Help:         "stats_mcp_tool_calls provides total tool calls received over MCP",
		RequiredTags: []string{"tool", "status"},
	}
)

// Perf
var (
	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}

	PerfToolboxExecuteAll = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_toolbox_execute_all",
		Help:         "perf_toolbox_execute_all provides duration of a batch of tool calls",
		RequiredTags: []string{"toolbox"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfToolCall,
	&PerfToolboxExecuteAll,
	&StatsCurrencyConversions,
	&StatsMCPToolCalls,
	&StatsToolCallsFailed,
	&StatsToolCallsNotFound,
	&StatsToolCallsSucceeded,
}
