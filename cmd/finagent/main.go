// Command finagent serves deterministic financial tools over the Model Context Protocol.
//
//	finagent serve [-config file] [-group name] [-transport stdio|http] [-addr host:port]
//	finagent tools [-config file] [-group name] [-examples] [-format json|yaml|toml]
//	finagent call  [-config file] [-group name] [-format json|yaml|toml|text] [-input json|yaml|toml] [-trace] [-verbose] <tool> [arguments|-]
//	finagent call  -batch [flags] [calls|-]
//	finagent version
//
// A batch document lists independent calls, which run concurrently:
//
//	{"calls":[{"id":"1","name":"calculate_bmi","arguments":{"weight_kg":70,"height_cm":175}}]}
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

const usage = `Usage: finagent <command> [flags]

Commands:
  serve     serve the tools over MCP
  tools     list the available tools
  call      call a tool, or a batch of tools, with JSON, YAML or TOML arguments
  version   print the version
`

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cli := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	var err error
	switch args[0] {
	case "serve":
		err = cli.serve(ctx, args[1:])
	case "tools":
		err = cli.tools(args[1:])
	case "call":
		err = cli.call(ctx, args[1:])
	case "version":
		err = cli.version()
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "finagent: unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "finagent: %v\n", err)
		return 1
	}
	return 0
}
