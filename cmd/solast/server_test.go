package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const serverTestCompilerJSON = `{
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

func TestHandleParse(t *testing.T) {
	t.Parallel()

	request := ParseRequest{CompilerJSON: serverTestCompilerJSON}

	jsonData, marshalErr := json.Marshal(request)
	if marshalErr != nil {
		t.Fatalf("Failed to marshal request: %v", marshalErr)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/parse", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()

	handleParse(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
		t.Logf("Response body: %s", recorder.Body.String())

		return
	}

	var response ParseResponse

	unmarshalErr := json.Unmarshal(recorder.Body.Bytes(), &response)
	if unmarshalErr != nil {
		t.Fatalf("Failed to unmarshal response: %v", unmarshalErr)
	}

	if response.Error != "" {
		t.Errorf("Expected no error, got: %s", response.Error)

		return
	}

	if _, ok := response.Tree["Counter.sol"]; !ok {
		t.Errorf("expected tree to contain Counter.sol, got: %+v", response.Tree)
	}
}

func TestHandleParseInvalidCompilerJSON(t *testing.T) {
	t.Parallel()

	request := ParseRequest{CompilerJSON: `not json`}

	jsonData, marshalErr := json.Marshal(request)
	if marshalErr != nil {
		t.Fatalf("Failed to marshal request: %v", marshalErr)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/parse", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()

	handleParse(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)

		return
	}

	var response ParseResponse

	unmarshalErr := json.Unmarshal(recorder.Body.Bytes(), &response)
	if unmarshalErr != nil {
		t.Fatalf("Failed to unmarshal response: %v", unmarshalErr)
	}

	if response.Error == "" {
		t.Error("Expected error for invalid compiler JSON, got none")
	}
}

func TestHandleQueryFindsContractDefinition(t *testing.T) {
	t.Parallel()

	request := QueryRequest{CompilerJSON: serverTestCompilerJSON, Kind: "ContractDefinition"}

	jsonData, marshalErr := json.Marshal(request)
	if marshalErr != nil {
		t.Fatalf("Failed to marshal request: %v", marshalErr)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()

	handleQuery(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)

		return
	}

	var response QueryResponse

	unmarshalErr := json.Unmarshal(recorder.Body.Bytes(), &response)
	if unmarshalErr != nil {
		t.Fatalf("Failed to unmarshal response: %v", unmarshalErr)
	}

	if response.Error != "" {
		t.Errorf("Expected no error, got: %s", response.Error)

		return
	}

	if len(response.Results) != 1 {
		t.Errorf("Expected 1 result, got %d: %+v", len(response.Results), response.Results)
	}
}

func TestHandleQueryMissingKind(t *testing.T) {
	t.Parallel()

	request := QueryRequest{CompilerJSON: serverTestCompilerJSON}

	jsonData, marshalErr := json.Marshal(request)
	if marshalErr != nil {
		t.Fatalf("Failed to marshal request: %v", marshalErr)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()

	handleQuery(recorder, req)

	var response QueryResponse

	unmarshalErr := json.Unmarshal(recorder.Body.Bytes(), &response)
	if unmarshalErr != nil {
		t.Fatalf("Failed to unmarshal response: %v", unmarshalErr)
	}

	if response.Error == "" {
		t.Error("Expected error for missing kind, got none")
	}
}

func TestHandleSanityCheck(t *testing.T) {
	t.Parallel()

	request := SanityRequest{CompilerJSON: serverTestCompilerJSON}

	jsonData, marshalErr := json.Marshal(request)
	if marshalErr != nil {
		t.Fatalf("Failed to marshal request: %v", marshalErr)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/sanity", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()

	handleSanityCheck(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)

		return
	}

	var response SanityResponse

	unmarshalErr := json.Unmarshal(recorder.Body.Bytes(), &response)
	if unmarshalErr != nil {
		t.Fatalf("Failed to unmarshal response: %v", unmarshalErr)
	}

	if response.Error != "" {
		t.Errorf("Expected no error, got: %s", response.Error)
	}

	if _, ok := response.Violations["Counter.sol"]; !ok {
		t.Errorf("expected a violations entry for Counter.sol, got: %+v", response.Violations)
	}
}

func TestSolastServer_MiddlewareWrapsRoutes(t *testing.T) {
	t.Parallel()

	tracer := noop.NewTracerProvider().Tracer("test")
	handler := newServerMux(tracer)

	request := QueryRequest{CompilerJSON: serverTestCompilerJSON, Kind: "ContractDefinition"}

	jsonData, marshalErr := json.Marshal(request)
	if marshalErr != nil {
		t.Fatalf("Failed to marshal request: %v", marshalErr)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}
