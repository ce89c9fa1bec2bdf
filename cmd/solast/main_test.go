package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// testCase holds the test data for help and subcommand tests.
type testCase struct {
	wantOut string
	args    []string
	wantErr bool
}

func TestSolastCLI_HelpAndSubcommands(t *testing.T) {
	t.Parallel()

	tests := getHelpAndSubcommandTests()

	for _, currentTest := range tests {
		runHelpAndSubcommandTest(t, currentTest)
	}
}

func getHelpAndSubcommandTests() []testCase {
	return []testCase{
		{wantOut: "Parse, query, and validate Solidity compiler AST output", args: []string{"--help"}},
		{wantOut: "Parse one or more solc --standard-json compiler output files", args: []string{"parse", "--help"}},
		{wantOut: "Find every node of a given kind", args: []string{"query", "--help"}},
		{wantOut: "Compare two solc --standard-json compiler outputs", args: []string{"diff", "--help"}},
		{wantOut: "unknown command", args: []string{"unknown"}, wantErr: true},
	}
}

func runHelpAndSubcommandTest(t *testing.T, currentTest testCase) {
	t.Helper()

	rootCmd := buildTestRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(currentTest.args)

	err := rootCmd.Execute()

	assertErrorState(t, currentTest.wantErr, err, currentTest.args)
	assertOutputContains(t, buf.String(), currentTest.wantOut, currentTest.args)
}

func assertErrorState(t *testing.T, wantErr bool, err error, args []string) {
	t.Helper()

	if isErrorExpectedButNotPresent(wantErr, err) {
		t.Errorf("args %v: expected error, got nil", args)
	}

	if isErrorUnexpected(wantErr, err) {
		t.Errorf("args %v: unexpected error: %v", args, err)
	}
}

func isErrorExpectedButNotPresent(wantErr bool, err error) bool {
	return wantErr && err == nil
}

func isErrorUnexpected(wantErr bool, err error) bool {
	return !wantErr && err != nil
}

func assertOutputContains(t *testing.T, output, wantOut string, args []string) {
	t.Helper()

	if !outputContains(output, wantOut) {
		t.Errorf("args %v: output missing %q\ngot: %s", args, wantOut, output)
	}
}

func outputContains(output, wantOut string) bool {
	return strings.Contains(output, wantOut)
}

const mainTestCompilerJSON = `{
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
            "nodes": [
              {
                "id": 3,
                "nodeType": "FunctionDefinition",
                "src": "20:30:0",
                "name": "increment",
                "kind": "function",
                "stateMutability": "nonpayable",
                "virtual": false,
                "visibility": "public",
                "scope": 2,
                "modifiers": [],
                "parameters": {
                  "id": 4,
                  "nodeType": "ParameterList",
                  "src": "20:2:0",
                  "parameters": []
                },
                "returnParameters": {
                  "id": 5,
                  "nodeType": "ParameterList",
                  "src": "25:0:0",
                  "parameters": []
                }
              }
            ]
          }
        ]
      }
    }
  }
}`

func TestSolastCLI_ParseCommand_JSON(t *testing.T) {
	t.Parallel()

	tmpfile := createTempJSONFile(t, mainTestCompilerJSON)
	defer os.Remove(tmpfile)

	output := runParseCommand(t, tmpfile)
	assertOutputNotEmpty(t, output)

	out := unmarshalJSONToMap(t, output)

	unit, ok := out["Counter.sol"].(map[string]any)
	if !ok {
		t.Fatalf("output missing Counter.sol unit: %v", out)
	}

	if !functionNodeExists(unit, "FunctionDefinition") {
		t.Fatalf("no FunctionDefinition node found in output: %+v", unit)
	}
}

func createTempJSONFile(t *testing.T, content string) string {
	t.Helper()

	tmpjson, err := os.CreateTemp(t.TempDir(), "test-*.json")
	if err != nil {
		t.Fatalf("failed to create temp json file: %v", err)
	}

	if _, writeErr := tmpjson.WriteString(content); writeErr != nil {
		t.Fatalf("failed to write temp json file: %v", writeErr)
	}

	tmpjson.Close()

	return tmpjson.Name()
}

func runParseCommand(t *testing.T, filename string) string {
	t.Helper()

	rootCmd := buildTestRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"parse", filename})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("parse command failed: %v", err)
	}

	return strings.TrimSpace(buf.String())
}

func assertOutputNotEmpty(t *testing.T, output string) {
	t.Helper()

	if output == "" {
		t.Fatalf("no output from parse command")
	}
}

func unmarshalJSONToMap(t *testing.T, output string) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal([]byte(output), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, output)
	}

	return out
}

func functionNodeExists(n map[string]any, kind string) bool {
	if n["kind"] == kind {
		return true
	}

	children, hasChildren := n["children"].([]any)
	if !hasChildren {
		return false
	}

	for _, child := range children {
		if childNode, isMap := child.(map[string]any); isMap && functionNodeExists(childNode, kind) {
			return true
		}
	}

	return false
}

func TestSolastCLI_ParseAndQuery_FindsFunctionDefinition(t *testing.T) {
	t.Parallel()

	tmpjson := createTempJSONFile(t, mainTestCompilerJSON)
	defer os.Remove(tmpjson)

	queryOutput := runQueryCommand(t, tmpjson, "FunctionDefinition")
	if !outputContains(queryOutput, "increment") && !outputContains(queryOutput, "FunctionDefinition") {
		t.Errorf("expected query output to reference the found node, got: %s", queryOutput)
	}
}

func runQueryCommand(t *testing.T, filename, kind string) string {
	t.Helper()

	rootCmd := buildTestRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query", "--kind", kind, filename})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("query command failed: %v", err)
	}

	return buf.String()
}

func buildTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "solast",
		Short: "Parse, query, and validate Solidity compiler AST output",
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(diffCmd())

	return rootCmd
}
