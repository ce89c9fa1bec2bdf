package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/solast-dev/solast/pkg/observability"
	"github.com/solast-dev/solast/pkg/solast"
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
	"github.com/solast-dev/solast/pkg/solast/pkg/reader"
	"github.com/solast-dev/solast/pkg/solast/pkg/sanity"
)

// Server timeout constants for the development HTTP server.
const (
	serverReadTimeout  = 30 * time.Second
	serverWriteTimeout = 60 * time.Second
	serverIdleTimeout  = 120 * time.Second
)

// ParseRequest holds the request body for the parse API endpoint.
type ParseRequest struct {
	CompilerJSON string `json:"compiler_json"`
	Lenient      bool   `json:"lenient,omitempty"`
}

// QueryRequest holds the request body for the query API endpoint.
type QueryRequest struct {
	CompilerJSON string `json:"compiler_json"`
	Kind         string `json:"kind"`
}

// SanityRequest holds the request body for the sanity API endpoint.
type SanityRequest struct {
	CompilerJSON string `json:"compiler_json"`
}

// ParseResponse holds the response body for the parse API endpoint.
type ParseResponse struct {
	Tree  map[string]any `json:"tree,omitempty"`
	Error string         `json:"error,omitempty"`
}

// QueryResponse holds the response body for the query API endpoint.
type QueryResponse struct {
	Results []any  `json:"results,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SanityResponse holds the response body for the sanity API endpoint.
type SanityResponse struct {
	Violations map[string][]sanity.Violation `json:"violations,omitempty"`
	Error      string                         `json:"error,omitempty"`
}

func serverCmd() *cobra.Command {
	var port string

	var staticDir string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start solast development server",
		Long:  `Start a web server that parses, queries, and sanity-checks solc compiler JSON via HTTP API.`,
		Run: func(_ *cobra.Command, _ []string) {
			startServer(port, staticDir)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "port to listen on")
	cmd.Flags().StringVarP(&staticDir, "static", "s", "", "directory to serve static files from")

	return cmd
}

// newServerMux creates the HTTP mux with all API routes wrapped in tracing middleware.
func newServerMux(tracer trace.Tracer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse", handleParse)
	mux.HandleFunc("/api/query", handleQuery)
	mux.HandleFunc("/api/sanity", handleSanityCheck)

	return observability.HTTPMiddleware(tracer, mux)
}

func startServer(port, staticDir string) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := observability.DefaultConfig()
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))

	providers, initErr := observability.Init(cfg)
	if initErr != nil {
		logger.Error("observability init failed", "error", initErr)

		return
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	handler := newServerMux(providers.Tracer)

	if staticDir != "" {
		mux := http.NewServeMux()
		mux.Handle("/api/", handler)
		mux.HandleFunc("/", func(responseWriter http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/" {
				http.ServeFile(responseWriter, request, filepath.Join(staticDir, "index.html"))
			} else {
				http.ServeFile(responseWriter, request, filepath.Join(staticDir, request.URL.Path[1:]))
			}
		})

		handler = mux
	}

	logger.Info("solast development server starting", "addr", "http://localhost:"+port)

	if staticDir != "" {
		logger.Info("serving static files", "dir", staticDir)
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	err := server.ListenAndServe()
	if err != nil {
		logger.Error("server failed", "error", err)
	}
}

// writeJSON encodes the given value as JSON and writes it to the response writer.
func writeJSON(ctx context.Context, responseWriter http.ResponseWriter, value any) {
	responseWriter.Header().Set("Content-Type", "application/json")

	encodeErr := json.NewEncoder(responseWriter).Encode(value)
	if encodeErr != nil {
		slog.Default().ErrorContext(ctx, "failed to encode JSON response", "error", encodeErr)
	}
}

func handleParse(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	var req ParseRequest

	decodeErr := json.NewDecoder(request.Body).Decode(&req)
	if decodeErr != nil {
		http.Error(responseWriter, "Invalid request body", http.StatusBadRequest)

		return
	}

	response := ParseResponse{}

	result, readErr := solast.Read([]byte(req.CompilerJSON), solast.ReadOptions{Options: reader.Options{Lenient: req.Lenient}})
	if readErr != nil {
		response.Error = fmt.Sprintf("Parse error: %v", readErr)
		writeJSON(request.Context(), responseWriter, response)

		return
	}

	response.Tree = unitsToMap(result.Units)
	writeJSON(request.Context(), responseWriter, response)
}

func handleQuery(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	var req QueryRequest

	decodeErr := json.NewDecoder(request.Body).Decode(&req)
	if decodeErr != nil {
		http.Error(responseWriter, "Invalid request body", http.StatusBadRequest)

		return
	}

	response := QueryResponse{}

	if req.Kind == "" {
		response.Error = "kind is required"
		writeJSON(request.Context(), responseWriter, response)

		return
	}

	result, readErr := solast.Read([]byte(req.CompilerJSON), solast.ReadOptions{Options: reader.Options{Lenient: true}})
	if readErr != nil {
		response.Error = fmt.Sprintf("Parse error: %v", readErr)
		writeJSON(request.Context(), responseWriter, response)

		return
	}

	var results []any

	for _, n := range findByKind(result.Units, node.Kind(req.Kind)) {
		results = append(results, node.ToMap(n))
	}

	response.Results = results
	writeJSON(request.Context(), responseWriter, response)
}

func handleSanityCheck(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	var req SanityRequest

	decodeErr := json.NewDecoder(request.Body).Decode(&req)
	if decodeErr != nil {
		http.Error(responseWriter, "Invalid request body", http.StatusBadRequest)

		return
	}

	response := SanityResponse{}

	result, readErr := solast.Read([]byte(req.CompilerJSON), solast.ReadOptions{Options: reader.Options{Lenient: true}, SkipSanityCheck: true})
	if readErr != nil {
		response.Error = fmt.Sprintf("Parse error: %v", readErr)
		writeJSON(request.Context(), responseWriter, response)

		return
	}

	violations := make(map[string][]sanity.Violation, len(result.Units))

	for _, u := range result.Units {
		summary := sanity.Report(result.Ctx, u)
		violations[u.AbsolutePath] = summary.Violations
	}

	response.Violations = violations
	writeJSON(request.Context(), responseWriter, response)
}

func unitsToMap(units []*node.SourceUnit) map[string]any {
	out := make(map[string]any, len(units))

	for _, u := range units {
		out[u.AbsolutePath] = node.ToMap(u)
	}

	return out
}
