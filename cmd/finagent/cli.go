package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/callbacks"
	"github.com/effective-security/finagent/encoding"
	"github.com/effective-security/finagent/factory"
	"github.com/effective-security/finagent/mcp"
	"github.com/effective-security/finagent/pkg/llmutils"
	"github.com/effective-security/finagent/tools"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finagent", "cmd")

var (
	errUsage      = errors.New("usage")
	errToolFailed = errors.New("tool call failed")
)

var logLevels = map[string]xlog.LogLevel{
	"trace":    xlog.TRACE,
	"debug":    xlog.DEBUG,
	"info":     xlog.INFO,
	"notice":   xlog.NOTICE,
	"warning":  xlog.WARNING,
	"error":    xlog.ERROR,
	"critical": xlog.CRITICAL,
}

var synopsis = map[string]string{
	"serve": "serve [flags]",
	"tools": "tools [flags]",
	"call":  "call [flags] <tool> [arguments|-]\n       finagent call -batch [flags] [calls|-]",
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// commonFlags are accepted by every command that builds the toolbox
type commonFlags struct {
	config string
	group  string
}

func (c *cli) flags(name string) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: finagent %s\n\nFlags:\n", synopsis[name])
		fs.PrintDefaults()
	}

	common := new(commonFlags)
	fs.StringVar(&common.config, "config", os.Getenv("FINAGENT_CONFIG"), "path to the YAML configuration file")
	fs.StringVar(&common.group, "group", "", "toolbox group: "+strings.Join(factory.Groups(), ", ")+", overrides the config")
	return fs, common
}

func (c *cli) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		// the flag package has already printed the usage
		return errUsage
	}
	return nil
}

// usageError prints the message with the usage of the command.
func (c *cli) usageError(fs *flag.FlagSet, msg string) error {
	fmt.Fprintf(c.stderr, "finagent %s: %s\n", fs.Name(), msg)
	fs.Usage()
	return errUsage
}

// load reads the config, applies the flags and sets up the logger on stderr.
func (c *cli) load(common *commonFlags) (*factory.Config, error) {
	cfg, err := factory.LoadConfig(common.config)
	if err != nil {
		return nil, err
	}
	if common.group != "" {
		cfg.Toolbox.Group = common.group
	}
	if err = setupLogger(cfg.Logs, c.stderr); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg factory.LogsConfig, w io.Writer) error {
	level, ok := logLevels[strings.ToLower(strings.TrimSpace(cfg.Level))]
	if !ok {
		return errors.Errorf("invalid log level %q", cfg.Level)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		xlog.SetFormatter(xlog.NewStringFormatter(w))
	case "json":
		xlog.SetFormatter(xlog.NewJSONFormatter(w))
	default:
		return errors.Errorf("invalid log format %q, choose from: text, json", cfg.Format)
	}
	xlog.SetGlobalLogLevel(level)
	return nil
}

func (c *cli) serve(ctx context.Context, args []string) error {
	fs, common := c.flags("serve")
	transport := fs.String("transport", "", "stdio or http, overrides the config")
	addr := fs.String("addr", "", "listen address of the http transport, overrides the config")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	cfg, err := c.load(common)
	if err != nil {
		return err
	}
	if *transport != "" {
		cfg.Server.Transport = *transport
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	tr, err := mcp.ParseTransport(cfg.Server.Transport)
	if err != nil {
		return err
	}

	tb, err := factory.NewToolbox(cfg)
	if err != nil {
		return err
	}
	srv, err := mcp.NewServer(cfg.Server.Name, cfg.Server.Version, tb)
	if err != nil {
		return err
	}

	logger.KV(xlog.NOTICE,
		"status", "starting",
		"server", cfg.Server.Name,
		"version", cfg.Server.Version,
		"transport", tr,
		"toolbox", tb.Name(),
	)
	err = srv.Serve(ctx, tr, cfg.Server.Addr)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.KV(xlog.NOTICE, "status", "stopped")
	return nil
}

func (c *cli) tools(args []string) error {
	fs, common := c.flags("tools")
	examples := fs.Bool("examples", false, "print example arguments for each tool")
	format := fs.String("format", encoding.ModeYAML, "format of the examples: json, yaml or toml")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	cfg, err := c.load(common)
	if err != nil {
		return err
	}
	tb, err := factory.NewToolbox(cfg)
	if err != nil {
		return err
	}

	for i, tool := range tb.Tools() {
		if i > 0 {
			fmt.Fprintln(c.stdout)
		}
		fmt.Fprintf(c.stdout, "%s\n  %s\n", tool.Name(), tool.Description())
		if !*examples {
			continue
		}

		entry, ok := factory.Find(tool.Name())
		if !ok {
			continue
		}
		bs, err := encoding.Example(*format, entry.Request)
		if err != nil {
			return errors.WithMessagef(err, "tool %s", tool.Name())
		}
		fmt.Fprintln(c.stdout, "  Example:")
		for _, line := range strings.Split(strings.TrimRight(string(bs), "\n"), "\n") {
			fmt.Fprintf(c.stdout, "    %s\n", line)
		}
	}
	return nil
}

// batchRequest is the input of call -batch
type batchRequest struct {
	Calls []batchCall `json:"calls"`
}

type batchCall struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type batchResult struct {
	ID     string          `json:"id,omitempty"`
	Tool   string          `json:"tool"`
	Result json.RawMessage `json:"result"`
}

func (c *cli) call(ctx context.Context, args []string) error {
	fs, common := c.flags("call")
	format := fs.String("format", encoding.ModeJSON, "output format: json, yaml, toml or text")
	input := fs.String("input", encoding.ModeJSON, "format of the arguments: json, yaml or toml")
	batch := fs.Bool("batch", false, `run the tool calls of a {"calls":[{"id","name","arguments"}]} document concurrently`)
	trace := fs.Bool("trace", false, "print the run transcript to stderr")
	verbose := fs.Bool("verbose", false, "print every tool input and output to stderr")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	rest := fs.Args()
	var name string
	if !*batch {
		if len(rest) == 0 {
			return c.usageError(fs, "tool name is required")
		}
		name, rest = rest[0], rest[1:]
	}

	outEnc, err := encoding.NewEncoder(*format)
	if err != nil {
		return err
	}
	jsonEnc, err := encoding.NewEncoder(encoding.ModeJSON)
	if err != nil {
		return err
	}

	data, err := c.readArguments(rest, *batch)
	if err != nil {
		return err
	}
	arguments, err := encoding.ToJSON(*input, data)
	if err != nil {
		return errors.WithMessage(err, "invalid arguments")
	}

	var calls []tools.ToolCall
	if *batch {
		if calls, err = parseBatch(arguments); err != nil {
			return err
		}
	}

	cfg, err := c.load(common)
	if err != nil {
		return err
	}

	var cbs []tools.Callback
	if *verbose {
		cbs = append(cbs, callbacks.NewPrinter(c.stderr, callbacks.ModeVerbose))
	}
	sp := callbacks.NewScratchpad(callbacks.ModeVerbose)
	if *trace {
		ctx = callbacks.WithRunID(ctx, uuid.NewString())
		cbs = append(cbs, sp)
		sp.StartRun(ctx)
	}

	tb, err := factory.NewToolbox(cfg, cbs...)
	if err != nil {
		return err
	}

	var results []*tools.Result
	if *batch {
		results = tb.ExecuteAll(ctx, calls)
	} else {
		results = []*tools.Result{tb.Execute(ctx, name, string(arguments))}
	}

	if *trace {
		_, transcript := sp.EndRun(ctx)
		_, _ = c.stderr.Write(transcript)
	}

	text := strings.EqualFold(strings.TrimSpace(*format), encoding.ModePlainText)
	var out []byte
	if *batch {
		out, err = renderBatch(results, jsonEnc, outEnc, text)
	} else {
		out, err = render(results[0], jsonEnc, outEnc, text)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(c.stdout, llmutils.EnsureEndsWithNewline(string(out)))

	for _, res := range results {
		if res.IsError() {
			return errToolFailed
		}
	}
	return nil
}

// readArguments returns the joined arguments, or stdin for "-".
// A batch without arguments is read from stdin.
func (c *cli) readArguments(rest []string, batch bool) ([]byte, error) {
	if (len(rest) == 1 && rest[0] == "-") || (batch && len(rest) == 0) {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read arguments")
		}
		return data, nil
	}
	return []byte(strings.Join(rest, " ")), nil
}

func parseBatch(js []byte) ([]tools.ToolCall, error) {
	var req batchRequest
	if err := json.Unmarshal(llmutils.CleanArguments(string(js)), &req); err != nil {
		return nil, errors.Wrap(err, "invalid batch")
	}
	if len(req.Calls) == 0 {
		return nil, errors.New("invalid batch: at least one call is required")
	}

	calls := make([]tools.ToolCall, len(req.Calls))
	for i, bc := range req.Calls {
		if strings.TrimSpace(bc.Name) == "" {
			return nil, errors.Errorf("invalid batch: call %d has no tool name", i+1)
		}
		calls[i] = tools.ToolCall{
			ID:        bc.ID,
			Name:      bc.Name,
			Arguments: string(bc.Arguments),
		}
	}
	return calls, nil
}

// render prints the report or error message in text mode,
// and the whole result in the other modes.
func render(res *tools.Result, jsonEnc, outEnc encoding.Encoder, text bool) ([]byte, error) {
	if !text {
		return encoding.Transcode([]byte(res.String()), jsonEnc, outEnc)
	}

	s, err := summary(res)
	if err != nil {
		return nil, err
	}
	return outEnc.Marshal(s)
}

// renderBatch prints one labeled summary per call in text mode,
// and {"results":[...]} in the other modes.
func renderBatch(results []*tools.Result, jsonEnc, outEnc encoding.Encoder, text bool) ([]byte, error) {
	if text {
		var b strings.Builder
		for i, res := range results {
			s, err := summary(res)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				b.WriteString("\n")
			}
			label := res.Tool
			if res.ID != "" {
				label = res.ID + " " + label
			}
			fmt.Fprintf(&b, "[%s] %s\n", label, s)
		}
		return []byte(b.String()), nil
	}

	list := make([]batchResult, len(results))
	for i, res := range results {
		list[i] = batchResult{ID: res.ID, Tool: res.Tool, Result: json.RawMessage(res.String())}
	}
	js, err := jsonEnc.Marshal(map[string]any{"results": list})
	if err != nil {
		return nil, err
	}
	return encoding.Transcode(js, jsonEnc, outEnc)
}

// summary returns the report or error message of the result,
// or its JSON when it has neither.
func summary(res *tools.Result) (string, error) {
	m, err := res.Map()
	if err != nil {
		return "", err
	}
	for _, key := range []string{"report", "error_message"} {
		if s, ok := m[key].(string); ok {
			return s, nil
		}
	}
	return res.String(), nil
}

func (c *cli) version() error {
	fmt.Fprintf(c.stdout, "finagent %s\n", factory.Version)
	return nil
}
