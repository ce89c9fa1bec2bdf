package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solast-dev/solast/pkg/solast"
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
	"github.com/solast-dev/solast/pkg/solast/pkg/reader"
)

// ErrKindRequired is returned when query is invoked without a --kind filter
// and not in interactive mode.
var ErrKindRequired = errors.New("a --kind filter is required outside interactive mode")

// ErrUnsupportedQFmt is returned for an unknown --format value.
var ErrUnsupportedQFmt = errors.New("unsupported format")

func queryCmd() *cobra.Command {
	var kind, output, format string

	var interactive, lenient bool

	cmd := &cobra.Command{
		Use:   "query [files...]",
		Short: "Query a parsed compiler JSON tree by node kind",
		Long: `Find every node of a given kind across one or more solc --standard-json
compiler outputs.

Examples:
  solast query --kind FunctionDefinition build-info.json   # Find all functions
  solast query --kind EventDefinition *.json                # Find all events
  solast query -t build-info.json                           # Interactive mode
  solast query --kind Literal -                              # Query from stdin`,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if interactive {
				input := ""
				if len(args) > 0 {
					input = args[0]
				}

				return runInteractiveQuery(input, lenient)
			}

			if kind == "" {
				return ErrKindRequired
			}

			return runQuery(kind, args, output, format, lenient, cobraCmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "node kind to search for, e.g. ContractDefinition")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, compact, count)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "t", false, "interactive query mode")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "tolerate dangling references instead of failing the read")

	return cmd
}

func runQuery(kind string, files []string, output, format string, lenient bool, writer io.Writer) error {
	if len(files) == 0 {
		return queryStdin(kind, output, format, lenient, writer)
	}

	for _, file := range files {
		if err := queryFile(file, kind, output, format, lenient, writer); err != nil {
			return fmt.Errorf("failed to query %s: %w", file, err)
		}
	}

	return nil
}

func queryStdin(kind, output, format string, lenient bool, writer io.Writer) error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	units, err := parseForQuery(raw, lenient)
	if err != nil {
		return err
	}

	return outputResults(findByKind(units, node.Kind(kind)), output, format, writer)
}

func queryFile(file, kind, output, format string, lenient bool, writer io.Writer) error {
	raw, resolvedPath, err := safeReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", file, err)
	}

	units, err := parseForQuery(raw, lenient)
	if err != nil {
		return fmt.Errorf("parse error in %s: %w", resolvedPath, err)
	}

	return outputResults(findByKind(units, node.Kind(kind)), output, format, writer)
}

func parseForQuery(raw []byte, lenient bool) ([]*node.SourceUnit, error) {
	result, err := solast.Read(raw, solast.ReadOptions{Options: reader.Options{Lenient: lenient}})
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return result.Units, nil
}

func runInteractiveQuery(input string, lenient bool) error {
	units, err := loadInteractiveInput(input, lenient)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Interactive solast Query Mode")
	fmt.Fprintln(os.Stdout, "Type 'help' for usage, 'quit' to exit")
	fmt.Fprintln(os.Stdout)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(os.Stdout, "solast> ")

		if !scanner.Scan() {
			break
		}

		kind := strings.TrimSpace(scanner.Text())
		if kind == "" {
			continue
		}

		if kind == "quit" || kind == "exit" {
			break
		}

		if kind == "help" {
			printQueryHelp()

			continue
		}

		executeInteractiveQuery(units, kind)

		fmt.Fprintln(os.Stdout)
	}

	return nil
}

func loadInteractiveInput(input string, lenient bool) ([]*node.SourceUnit, error) {
	var raw []byte

	var err error

	if input != "" && input != "-" {
		raw, _, err = safeReadFile(input)
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return parseForQuery(raw, lenient)
}

func executeInteractiveQuery(units []*node.SourceUnit, kind string) {
	results := findByKind(units, node.Kind(kind))

	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No results found")

		return
	}

	fmt.Fprintf(os.Stdout, "Found %d results:\n", len(results))

	for idx, n := range results {
		fmt.Fprintf(os.Stdout, "[%d] %s#%d [%s]\n", idx+1, n.Kind(), n.ID(), n.Src())
	}
}

func findByKind(units []*node.SourceUnit, kind node.Kind) []node.Node {
	var out []node.Node

	for _, u := range units {
		out = append(out, node.FindByKind(u, kind)...)
	}

	return out
}

func outputResults(results []node.Node, output, format string, writer io.Writer) error {
	outputWriter := writer

	if output != "" {
		outFile, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer outFile.Close()

		outputWriter = outFile
	}

	mapped := nodesToMap(results)

	switch format {
	case formatJSON:
		enc := json.NewEncoder(outputWriter)
		enc.SetIndent("", "  ")

		if err := enc.Encode(mapped); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case "compact":
		enc := json.NewEncoder(outputWriter)

		if err := enc.Encode(mapped); err != nil {
			return fmt.Errorf("failed to encode compact JSON: %w", err)
		}

		return nil
	case "count":
		count := 0

		if arr, isArr := mapped["results"].([]any); isArr {
			count = len(arr)
		}

		fmt.Fprintf(outputWriter, "%d\n", count)

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedQFmt, format)
	}
}

func printQueryHelp() {
	fmt.Fprintln(os.Stdout, "Usage:")
	fmt.Fprintln(os.Stdout, "  <Kind>    - list every node of that kind, e.g. FunctionDefinition")
	fmt.Fprintln(os.Stdout, "  help      - show this help")
	fmt.Fprintln(os.Stdout, "  quit      - exit")
	fmt.Fprintln(os.Stdout)
}

// nodesToMap converts a slice of nodes to a map for JSON output.
func nodesToMap(nodes []node.Node) map[string]any {
	results := make([]any, len(nodes))
	for idx, n := range nodes {
		results[idx] = node.ToMap(n)
	}

	return map[string]any{"results": results}
}
