// Package factory builds the toolbox and its tools from configuration.
package factory

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/callbacks"
	"github.com/effective-security/finagent/tools"
	"github.com/effective-security/finagent/tools/bmi"
	"github.com/effective-security/finagent/tools/calories"
	"github.com/effective-security/finagent/tools/clock"
	"github.com/effective-security/finagent/tools/compound"
	"github.com/effective-security/finagent/tools/currency"
	"github.com/effective-security/finagent/tools/mortgage"
	"github.com/effective-security/finagent/tools/portfolio"
	"github.com/effective-security/finagent/tools/weather"
	"github.com/effective-security/finagent/tools/workout"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finagent", "factory")

// Version of the server, set at build time
var Version = "v0.0.0-dev"

// ToolboxName is the name of the toolbox served by finagent
const ToolboxName = "finagent"

// Toolbox groups
const (
	GroupFinance  = "finance"
	GroupWealth   = "wealth"
	GroupFitness  = "fitness"
	GroupWellness = "wellness"
	GroupUtility  = "utility"
)

// Groups returns the names of the toolbox groups
func Groups() []string {
	return []string{GroupFinance, GroupWealth, GroupFitness, GroupWellness, GroupUtility}
}

// Entry describes a tool that can be enabled in the toolbox
type Entry struct {
	Name string
	// Groups lists the toolbox groups serving the tool
	Groups []string
	// Request is a zero value of the tool input, used for examples
	Request any
	New     func(cfg *Config) (tools.ITool, error)
}

// Registry lists the available tools in the order they are served
var Registry = []Entry{
	{
		Name:    mortgage.ToolName,
		Groups:  []string{GroupFinance},
		Request: mortgage.Request{},
		New: func(*Config) (tools.ITool, error) {
			return mortgage.New()
		},
	},
	{
		Name:    currency.ToolName,
		Groups:  []string{GroupFinance},
		Request: currency.Request{},
		New: func(cfg *Config) (tools.ITool, error) {
			table, err := cfg.Currency.ExchangeRateTable()
			if err != nil {
				return nil, err
			}
			return currency.NewWithTable(table)
		},
	},
	{
		Name:    compound.ToolName,
		Groups:  []string{GroupFinance, GroupWealth, GroupWellness},
		Request: compound.Request{},
		New: func(*Config) (tools.ITool, error) {
			return compound.New()
		},
	},
	{
		Name:    portfolio.ToolName,
		Groups:  []string{GroupFinance, GroupWealth, GroupWellness},
		Request: portfolio.Request{},
		New: func(*Config) (tools.ITool, error) {
			return portfolio.New()
		},
	},
	{
		Name:    bmi.ToolName,
		Groups:  []string{GroupFitness, GroupWellness},
		Request: bmi.Request{},
		New: func(*Config) (tools.ITool, error) {
			return bmi.New()
		},
	},
	{
		Name:    calories.ToolName,
		Groups:  []string{GroupFitness, GroupWellness},
		Request: calories.Request{},
		New: func(*Config) (tools.ITool, error) {
			return calories.New()
		},
	},
	{
		Name:    workout.ToolName,
		Groups:  []string{GroupFitness, GroupWellness},
		Request: workout.Request{},
		New: func(*Config) (tools.ITool, error) {
			return workout.New()
		},
	},
	{
		Name:    weather.ToolName,
		Groups:  []string{GroupUtility},
		Request: weather.Request{},
		New: func(*Config) (tools.ITool, error) {
			return weather.New()
		},
	},
	{
		Name:    clock.ToolName,
		Groups:  []string{GroupUtility},
		Request: clock.Request{},
		New: func(*Config) (tools.ITool, error) {
			return clock.New()
		},
	},
}

// ToolNames returns the names of the registered tools
func ToolNames() []string {
	names := make([]string, 0, len(Registry))
	for _, e := range Registry {
		names = append(names, e.Name)
	}
	return names
}

// Find returns the registry entry by tool name
func Find(name string) (Entry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range Registry {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// NewTools creates the tools of the configured group that are enabled in the config
func NewTools(cfg *Config) ([]tools.ITool, error) {
	group := strings.ToLower(strings.TrimSpace(cfg.Toolbox.Group))
	if group != "" && !slices.Contains(Groups(), group) {
		return nil, errors.Errorf("unknown toolbox group %q, available groups: %s", group, strings.Join(Groups(), ", "))
	}

	enabled := make([]string, 0, len(cfg.Toolbox.Enabled))
	for _, name := range cfg.Toolbox.Enabled {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := Find(name); !ok {
			return nil, errors.Errorf("unknown tool %q, available tools: %s", name, strings.Join(ToolNames(), ", "))
		}
		enabled = append(enabled, name)
	}

	var list []tools.ITool
	for _, e := range Registry {
		if group != "" && !slices.Contains(e.Groups, group) {
			continue
		}
		if len(enabled) > 0 && !slices.Contains(enabled, e.Name) {
			continue
		}
		tool, err := e.New(cfg)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to create tool %s", e.Name)
		}
		list = append(list, tool)
	}
	return list, nil
}

// NewToolbox creates the toolbox with the enabled tools.
// Tool events are logged at debug level in addition to the provided callbacks.
func NewToolbox(cfg *Config, cbs ...tools.Callback) (*tools.Toolbox, error) {
	list, err := NewTools(cfg)
	if err != nil {
		return nil, err
	}

	fan := callbacks.NewFanout(callbacks.NewPackageLogger(logger))
	for _, cb := range cbs {
		fan.Add(cb)
	}

	name := ToolboxName
	if group := strings.ToLower(strings.TrimSpace(cfg.Toolbox.Group)); group != "" {
		name += "/" + group
	}
	tb := tools.NewToolbox(name, list,
		tools.WithCallback(fan),
		tools.WithConcurrency(cfg.Toolbox.Concurrency),
	)
	logger.KV(xlog.INFO, "toolbox", name, "tools", tb.Names())
	return tb, nil
}
