package solast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solast-dev/solast/pkg/solast"
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

const modernFixture = `{
  "sources": {
    "Counter.sol": {
      "ast": {
        "id": 1,
        "nodeType": "SourceUnit",
        "src": "0:120:0",
        "absolutePath": "Counter.sol",
        "license": "MIT",
        "exportedSymbols": {"Counter": [5]},
        "nodes": [
          {
            "id": 5,
            "nodeType": "ContractDefinition",
            "src": "0:120:0",
            "name": "Counter",
            "contractKind": "contract",
            "abstract": false,
            "fullyImplemented": true,
            "scope": 1,
            "linearizedBaseContracts": [5],
            "baseContracts": [],
            "nodes": [
              {
                "id": 6,
                "nodeType": "VariableDeclaration",
                "src": "20:20:0",
                "name": "value",
                "visibility": "internal",
                "constant": false,
                "stateVariable": true,
                "storageLocation": "default",
                "scope": 5,
                "typeName": {
                  "id": 7,
                  "nodeType": "ElementaryTypeName",
                  "src": "20:7:0",
                  "name": "uint256",
                  "typeDescriptions": {"typeString": "uint256", "typeIdentifier": "t_uint256"}
                },
                "typeDescriptions": {"typeString": "uint256", "typeIdentifier": "t_uint256"}
              }
            ]
          }
        ]
      }
    }
  }
}`

func TestReadModernFixture(t *testing.T) {
	result, err := solast.Read([]byte(modernFixture), solast.ReadOptions{})
	require.NoError(t, err)
	require.Len(t, result.Units, 1)

	unit := result.Units[0]
	require.Equal(t, "Counter.sol", unit.AbsolutePath)
	require.Equal(t, "MIT", unit.License)
	require.Len(t, unit.Nodes, 1)

	contract, ok := unit.Nodes[0].(*node.ContractDefinition)
	require.True(t, ok)
	require.Equal(t, "Counter", contract.Name)
	require.Len(t, contract.Nodes, 1)

	decl, ok := contract.Nodes[0].(*node.VariableDeclaration)
	require.True(t, ok)
	require.Equal(t, "value", decl.Name)
	require.True(t, decl.StateVariable)

	exported := unit.VExportedSymbols()
	require.Contains(t, exported, "Counter")
	require.Equal(t, contract, exported["Counter"][0])
}

const legacyFixture = `{
  "sources": {
    "Old.sol": {
      "legacyAST": {
        "id": 1,
        "name": "SourceUnit",
        "src": "0:60:0",
        "attributes": {"absolutePath": "Old.sol"},
        "children": [
          {
            "id": 2,
            "name": "ContractDefinition",
            "src": "0:60:0",
            "attributes": {
              "name": "Old",
              "contractKind": "contract",
              "fullyImplemented": true,
              "linearizedBaseContracts": [2],
              "scope": 1
            },
            "children": []
          }
        ]
      }
    }
  }
}`

func TestReadLegacyFixture(t *testing.T) {
	result, err := solast.Read([]byte(legacyFixture), solast.ReadOptions{})
	require.NoError(t, err)
	require.Len(t, result.Units, 1)

	unit := result.Units[0]
	require.Equal(t, "Old.sol", unit.AbsolutePath)

	contract, ok := unit.Nodes[0].(*node.ContractDefinition)
	require.True(t, ok)
	require.Equal(t, "Old", contract.Name)
}

func TestReadCompileErrorsPresent(t *testing.T) {
	const withErrors = `{"sources": {}, "errors": [{"severity": "error", "message": "boom"}]}`

	_, err := solast.Read([]byte(withErrors), solast.ReadOptions{})
	require.Error(t, err)

	var compileErr *node.CompileErrorsPresentError
	require.ErrorAs(t, err, &compileErr)
}
