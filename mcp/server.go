// Package mcp exposes a Toolbox as a Model Context Protocol server.
package mcp

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/metricskey"
	"github.com/effective-security/finagent/pkg/schema"
	"github.com/effective-security/finagent/tools"
	"github.com/effective-security/xlog"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finagent", "mcp")

// Transport specifies how the server talks to the host
type Transport string

const (
	// TransportStdio serves a single session over stdin/stdout
	TransportStdio Transport = "stdio"
	// TransportHTTP serves streamable HTTP sessions
	TransportHTTP Transport = "http"
)

// DefaultEndpoint is the HTTP path of the MCP endpoint
const DefaultEndpoint = "/mcp"

// ShutdownTimeout bounds the graceful shutdown of the HTTP server
var ShutdownTimeout = 10 * time.Second

// ParseTransport returns the transport by name, empty means stdio
func ParseTransport(s string) (Transport, error) {
	switch Transport(strings.ToLower(strings.TrimSpace(s))) {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportHTTP, "streamable-http":
		return TransportHTTP, nil
	default:
		return "", errors.Errorf("unsupported transport %q, choose from: stdio, http", s)
	}
}

// Server serves the tools of a Toolbox to MCP clients.
type Server struct {
	server  *mcpsdk.Server
	toolbox *tools.Toolbox
}

// NewServer returns a server that registers every tool of the toolbox.
func NewServer(name, version string, toolbox *tools.Toolbox) (*Server, error) {
	if toolbox == nil {
		return nil, errors.New("toolbox is required")
	}

	s := &Server{
		server:  mcpsdk.NewServer(&mcpsdk.Implementation{Name: name, Version: version}, nil),
		toolbox: toolbox,
	}

	for _, tool := range toolbox.Tools() {
		inputSchema, err := InputSchema(tool)
		if err != nil {
			return nil, err
		}
		s.server.AddTool(&mcpsdk.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: inputSchema,
		}, s.handler(tool.Name()))
	}

	logger.KV(xlog.DEBUG,
		"server", name,
		"version", version,
		"tools", toolbox.Names(),
	)
	return s, nil
}

// SDK returns the underlying MCP server
func (s *Server) SDK() *mcpsdk.Server {
	return s.server
}

// InputSchema returns the tool parameters as a JSON object schema
func InputSchema(tool tools.ITool) (map[string]any, error) {
	sc, err := schema.FromAny(tool.Parameters())
	if err != nil {
		return nil, errors.WithMessagef(err, "tool %s: invalid parameters", tool.Name())
	}
	if sc.Type != "object" {
		return nil, errors.Errorf("tool %s: parameters must have type object", tool.Name())
	}
	return (&schema.Schema{Parameters: sc}).Map()
}

func (s *Server) handler(name string) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		var args string
		if req.Params != nil {
			args = string(req.Params.Arguments)
		}

		res := s.toolbox.Execute(ctx, name, args)
		metricskey.StatsMCPToolCalls.IncrCounter(1, name, res.Status())

		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: res.String()}},
			IsError: res.IsError(),
		}, nil
	}
}

// Run serves a single session on the transport until the client
// disconnects or ctx is done.
func (s *Server) Run(ctx context.Context, t mcpsdk.Transport) error {
	return s.server.Run(ctx, t)
}

// Handler returns the streamable HTTP handler
func (s *Server) Handler() http.Handler {
	return mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return s.server
	}, nil)
}

// Mux returns the HTTP routes: the MCP endpoint and a health check
func (s *Server) Mux(endpoint string) *http.ServeMux {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	mux := http.NewServeMux()
	mux.Handle(endpoint, s.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

// ListenAndServe serves streamable HTTP on addr until ctx is done,
// then shuts the server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr, endpoint string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Mux(endpoint),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.KV(xlog.INFO, "status", "listening", "addr", addr, "endpoint", endpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return errors.Wrapf(err, "failed to listen on %s", addr)
		}
		return nil
	case <-ctx.Done():
	}

	logger.KV(xlog.INFO, "status", "shutting_down", "addr", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down")
	}
	return nil
}

// Serve runs the server on the transport until ctx is done
func (s *Server) Serve(ctx context.Context, transport Transport, addr string) error {
	switch transport {
	case TransportStdio, "":
		return s.Run(ctx, &mcpsdk.StdioTransport{})
	case TransportHTTP:
		return s.ListenAndServe(ctx, addr, DefaultEndpoint)
	default:
		return errors.Errorf("unsupported transport %q", transport)
	}
}
