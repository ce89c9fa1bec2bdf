package main

import (
	"bytes"
	"os"
	"testing"
)

const diffBeforeJSON = `{
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

const diffAfterJSON = `{
  "sources": {
    "Counter.sol": {
      "ast": {
        "id": 1,
        "nodeType": "SourceUnit",
        "src": "0:90:0",
        "absolutePath": "Counter.sol",
        "license": "MIT",
        "exportedSymbols": {},
        "nodes": [
          {
            "id": 2,
            "nodeType": "ContractDefinition",
            "src": "0:90:0",
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
                "nodeType": "EventDefinition",
                "src": "20:30:0",
                "name": "Incremented",
                "anonymous": false,
                "parameters": {
                  "id": 4,
                  "nodeType": "ParameterList",
                  "src": "20:2:0",
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

func writeTempJSON(t *testing.T, contents string) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "diff-*.json")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	if _, writeErr := f.WriteString(contents); writeErr != nil {
		t.Fatalf("failed to write temp file: %v", writeErr)
	}

	f.Close()

	return f.Name()
}

func TestDetectChangesReportsAddedEventDefinition(t *testing.T) {
	t.Parallel()

	units1, err := readUnits(writeTempJSON(t, diffBeforeJSON))
	if err != nil {
		t.Fatalf("readUnits(before): %v", err)
	}

	units2, err := readUnits(writeTempJSON(t, diffAfterJSON))
	if err != nil {
		t.Fatalf("readUnits(after): %v", err)
	}

	changes := detectChanges(units1, units2, "before.json", "after.json")

	found := false

	for _, c := range changes {
		if c.Kind == "EventDefinition" && c.Delta == 1 {
			found = true
		}
	}

	if !found {
		t.Errorf("expected an EventDefinition delta of +1, got %+v", changes)
	}
}

func TestDetectChangesNoneWhenIdentical(t *testing.T) {
	t.Parallel()

	units, err := readUnits(writeTempJSON(t, diffBeforeJSON))
	if err != nil {
		t.Fatalf("readUnits: %v", err)
	}

	changes := detectChanges(units, units, "a.json", "a.json")
	if len(changes) != 0 {
		t.Errorf("expected no changes comparing a tree to itself, got %+v", changes)
	}
}

func TestPrintUnifiedDiffMentionsAddedNode(t *testing.T) {
	t.Parallel()

	units1, err := readUnits(writeTempJSON(t, diffBeforeJSON))
	if err != nil {
		t.Fatalf("readUnits(before): %v", err)
	}

	units2, err := readUnits(writeTempJSON(t, diffAfterJSON))
	if err != nil {
		t.Fatalf("readUnits(after): %v", err)
	}

	var buf bytes.Buffer

	printUnifiedDiff(units1, units2, &buf)

	if !bytes.Contains(buf.Bytes(), []byte("EventDefinition")) {
		t.Errorf("unified diff output missing added node: %s", buf.String())
	}
}
