// Package mcp implements a Model Context Protocol server exposing solast's
// reader and sanity checker as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/solast-dev/solast/pkg/observability"
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "solast"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 3
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.REDMetrics

	// Tracer is an optional OTel tracer for per-tool-call spans. Nil disables tracing.
	Tracer trace.Tracer
}

// Server wraps the MCP SDK server with solast's tool registrations.
type Server struct {
	inner   *mcpsdk.Server
	mu      sync.RWMutex
	tools   []string
	metrics *observability.REDMetrics
	tracer  trace.Tracer
}

// NewServer creates a new MCP server with all solast tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner:   inner,
		tools:   make([]string, 0, toolCount),
		metrics: deps.Metrics,
		tracer:  deps.Tracer,
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all solast MCP tools to the server.
func (s *Server) registerTools() {
	s.registerParseTool()
	s.registerQueryTool()
	s.registerSanityTool()
}

func (s *Server) registerParseTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameParse,
		Description: parseToolDescription,
	}, withMetrics(s.metrics, ToolNameParse, withTracing(s.tracer, ToolNameParse, handleParse)))

	s.trackTool(ToolNameParse)
}

func (s *Server) registerQueryTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameQuery,
		Description: queryToolDescription,
	}, withMetrics(s.metrics, ToolNameQuery, withTracing(s.tracer, ToolNameQuery, handleQuery)))

	s.trackTool(ToolNameQuery)
}

func (s *Server) registerSanityTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameSanity,
		Description: sanityToolDescription,
	}, withMetrics(s.metrics, ToolNameSanity, withTracing(s.tracer, ToolNameSanity, handleSanity)))

	s.trackTool(ToolNameSanity)
}

// handleParse reads compiler JSON into a typed tree and returns its
// structural skeleton per unit.
func handleParse(
	_ context.Context, _ *mcpsdk.CallToolRequest, in ParseInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateCompilerJSON(in.CompilerJSON); err != nil {
		return errorResult(err)
	}

	result, err := readInput(in.CompilerJSON, in.Lenient)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(unitsToMap(result.Units))
}

// handleQuery reads compiler JSON and returns every node of the requested kind.
func handleQuery(
	_ context.Context, _ *mcpsdk.CallToolRequest, in QueryInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateCompilerJSON(in.CompilerJSON); err != nil {
		return errorResult(err)
	}

	if in.Kind == "" {
		return errorResult(ErrEmptyKind)
	}

	result, err := readInput(in.CompilerJSON, true)
	if err != nil {
		return errorResult(err)
	}

	matches := findByKind(result.Units, node.Kind(in.Kind))

	maps := make([]any, 0, len(matches))
	for _, m := range matches {
		maps = append(maps, node.ToMap(m))
	}

	return jsonResult(maps)
}

// handleSanity reads compiler JSON and runs a full, non-stopping sanity scan
// per unit.
func handleSanity(
	_ context.Context, _ *mcpsdk.CallToolRequest, in SanityInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateCompilerJSON(in.CompilerJSON); err != nil {
		return errorResult(err)
	}

	result, err := readInput(in.CompilerJSON, true)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(sanityReports(result))
}

// mcpSpanPrefix is the prefix for MCP tool span names.
const mcpSpanPrefix = "mcp."

// traceIDMetaKey is the metadata key for trace_id in MCP tool responses.
const traceIDMetaKey = "trace_id"

// withTracing wraps an MCP tool handler to create an OTel span per invocation
// and include trace_id in the response content when sampled.
func withTracing[Input any](
	tracer trace.Tracer,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		result, output, err := handler(ctx, req, input)

		sc := span.SpanContext()
		if sc.IsSampled() && result != nil {
			traceContent := &mcpsdk.TextContent{Text: fmt.Sprintf("%s=%s", traceIDMetaKey, sc.TraceID().String())}
			result.Content = append(result.Content, traceContent)
		}

		return result, output, err
	}
}

// withMetrics wraps an MCP tool handler to record RED metrics per invocation.
func withMetrics[Input any](
	metrics *observability.REDMetrics,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()

		decInflight := metrics.TrackInflight(ctx, "mcp."+toolName)
		defer decInflight()

		result, output, err := handler(ctx, req, input)

		status := "ok"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}

		metrics.RecordRequest(ctx, "mcp."+toolName, status, time.Since(start))

		return result, output, err
	}
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

// Tool description constants.
const (
	parseToolDescription = "Parse Solidity compiler --standard-json AST output into a typed tree. " +
		"Returns the structural skeleton (id, kind, src, children) of every source unit."

	queryToolDescription = "Parse compiler JSON and return every node of a given kind " +
		"(e.g. ContractDefinition, FunctionDefinition) across all source units."

	sanityToolDescription = "Parse compiler JSON and run a full structural sanity scan " +
		"(membership, parentage, exported-symbol coherence) without stopping at the first violation."
)
