package mcp_test

import (
	"context"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solast-dev/solast/pkg/mcp"
)

const counterJSON = `{
  "sources": {
    "Counter.sol": {
      "ast": {
        "id": 1,
        "nodeType": "SourceUnit",
        "src": "0:60:0",
        "absolutePath": "Counter.sol",
        "license": "MIT",
        "exportedSymbols": {},
        "nodes": [
          {
            "id": 2,
            "nodeType": "ContractDefinition",
            "src": "0:60:0",
            "name": "Counter",
            "contractKind": "contract",
            "abstract": false,
            "fullyImplemented": true,
            "scope": 1,
            "linearizedBaseContracts": [2],
            "baseContracts": [],
            "nodes": []
          }
        ]
      }
    }
  }
}`

func withConnectedClient(t *testing.T, fn func(ctx context.Context, session *mcpsdk.ClientSession)) {
	t.Helper()

	srv := mcp.NewServer(mcp.ServerDeps{})

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	defer func() {
		_ = session.Close()
	}()

	fn(ctx, session)

	cancel()
	<-serverDone
}

func TestMCPServer_InMemoryTransport_ToolsList(t *testing.T) {
	t.Parallel()

	withConnectedClient(t, func(ctx context.Context, session *mcpsdk.ClientSession) {
		toolsResult, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		require.NotNil(t, toolsResult)

		toolNames := make([]string, 0, len(toolsResult.Tools))
		for _, tool := range toolsResult.Tools {
			toolNames = append(toolNames, tool.Name)
		}

		assert.Contains(t, toolNames, mcp.ToolNameParse)
		assert.Contains(t, toolNames, mcp.ToolNameQuery)
		assert.Contains(t, toolNames, mcp.ToolNameSanity)
		assert.Len(t, toolNames, 3)

		for _, tool := range toolsResult.Tools {
			assert.NotNil(t, tool.InputSchema, "tool %s missing input schema", tool.Name)
		}
	})
}

func TestMCPServer_InMemoryTransport_CallParse(t *testing.T) {
	t.Parallel()

	withConnectedClient(t, func(ctx context.Context, session *mcpsdk.ClientSession) {
		result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
			Name: mcp.ToolNameParse,
			Arguments: map[string]any{
				"compiler_json": counterJSON,
			},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.IsError)
		assert.NotEmpty(t, result.Content)
	})
}

func TestMCPServer_InMemoryTransport_CallQuery(t *testing.T) {
	t.Parallel()

	withConnectedClient(t, func(ctx context.Context, session *mcpsdk.ClientSession) {
		result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
			Name: mcp.ToolNameQuery,
			Arguments: map[string]any{
				"compiler_json": counterJSON,
				"kind":          "ContractDefinition",
			},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.IsError)
		assert.NotEmpty(t, result.Content)
	})
}

func TestMCPServer_InMemoryTransport_CallSanityCheck(t *testing.T) {
	t.Parallel()

	withConnectedClient(t, func(ctx context.Context, session *mcpsdk.ClientSession) {
		result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
			Name: mcp.ToolNameSanity,
			Arguments: map[string]any{
				"compiler_json": counterJSON,
			},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.IsError)
		assert.NotEmpty(t, result.Content)
	})
}

func TestMCPServer_InMemoryTransport_CallParse_Error(t *testing.T) {
	t.Parallel()

	withConnectedClient(t, func(ctx context.Context, session *mcpsdk.ClientSession) {
		result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
			Name: mcp.ToolNameParse,
			Arguments: map[string]any{
				"compiler_json": "",
			},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})
}

func TestMCPServer_InMemoryTransport_CallQuery_MissingKind(t *testing.T) {
	t.Parallel()

	withConnectedClient(t, func(ctx context.Context, session *mcpsdk.ClientSession) {
		result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
			Name: mcp.ToolNameQuery,
			Arguments: map[string]any{
				"compiler_json": counterJSON,
				"kind":          "",
			},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})
}
