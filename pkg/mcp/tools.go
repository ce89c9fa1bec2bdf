package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/solast-dev/solast/pkg/solast"
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
	"github.com/solast-dev/solast/pkg/solast/pkg/reader"
	"github.com/solast-dev/solast/pkg/solast/pkg/sanity"
)

// Tool name constants.
const (
	ToolNameParse   = "solast_parse"
	ToolNameQuery   = "solast_query"
	ToolNameSanity  = "solast_sanity_check"
)

// MaxCompilerJSONBytes is the maximum allowed size for inline compiler JSON input (8 MB).
const MaxCompilerJSONBytes = 8 << 20

// Sentinel errors for tool input validation.
var (
	ErrEmptyCompilerJSON      = errors.New("compiler_json parameter is required and must not be empty")
	ErrCompilerJSONTooLarge   = errors.New("compiler_json input exceeds maximum size")
	ErrEmptyKind              = errors.New("kind parameter is required and must not be empty")
)

// ParseInput is the input schema for the solast_parse tool.
type ParseInput struct {
	CompilerJSON string `json:"compiler_json" jsonschema:"raw solc --standard-json AST output"`
	Lenient      bool   `json:"lenient,omitempty" jsonschema:"tolerate dangling references instead of failing the read"`
}

// QueryInput is the input schema for the solast_query tool.
type QueryInput struct {
	CompilerJSON string `json:"compiler_json" jsonschema:"raw solc --standard-json AST output"`
	Kind         string `json:"kind"          jsonschema:"node kind to search for, e.g. ContractDefinition"`
}

// SanityInput is the input schema for the solast_sanity_check tool.
type SanityInput struct {
	CompilerJSON string `json:"compiler_json" jsonschema:"raw solc --standard-json AST output"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

func validateCompilerJSON(raw string) error {
	if raw == "" {
		return ErrEmptyCompilerJSON
	}

	if len(raw) > MaxCompilerJSONBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCompilerJSONTooLarge, len(raw), MaxCompilerJSONBytes)
	}

	return nil
}

// readInput parses the compiler JSON shared by every tool handler. Lenient
// callers get the raw tree even when sanity checking would otherwise reject
// it, matching reader.Options.Lenient's downgrade of dangling references.
func readInput(raw string, lenient bool) (*solast.Result, error) {
	result, err := solast.Read([]byte(raw), solast.ReadOptions{
		Options:         reader.Options{Lenient: lenient},
		SkipSanityCheck: lenient,
	})
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return result, nil
}

// every SourceUnit rendered as its skeletal tree map, keyed by absolute path.
func unitsToMap(units []*node.SourceUnit) map[string]any {
	out := make(map[string]any, len(units))
	for _, u := range units {
		out[u.AbsolutePath] = node.ToMap(u)
	}

	return out
}

// findByKind collects every node of the given kind across all units.
func findByKind(units []*node.SourceUnit, kind node.Kind) []node.Node {
	var out []node.Node

	for _, u := range units {
		out = append(out, node.FindByKind(u, kind)...)
	}

	return out
}

func sanityReports(result *solast.Result) map[string]sanity.Summary {
	out := make(map[string]sanity.Summary, len(result.Units))
	for _, u := range result.Units {
		out[u.AbsolutePath] = sanity.Report(result.Ctx, u)
	}

	return out
}
