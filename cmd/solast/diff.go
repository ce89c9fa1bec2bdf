package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/solast-dev/solast/pkg/solast"
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
	"github.com/solast-dev/solast/pkg/solast/pkg/reader"
)

// diffArgCount is the number of arguments expected by the diff command.
const diffArgCount = 2

// ErrUnsupportedDiffFmt is returned for an unknown --format value.
var ErrUnsupportedDiffFmt = errors.New("unsupported format")

func diffCmd() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "diff file1 file2",
		Short: "Compare two compiler JSON outputs and summarize kind-count changes",
		Long: `Compare two solc --standard-json compiler outputs: a unified text diff of
their printed trees, or a per-kind node-count delta summary.

Examples:
  solast diff before.json after.json              # Unified diff of printed trees
  solast diff -f summary before.json after.json   # Per-kind count delta table
  solast diff -f json before.json after.json      # Delta list as JSON`,
		Args: cobra.ExactArgs(diffArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "unified", "output format (unified, summary, json)")

	return cmd
}

func runDiff(file1, file2, output, format string) error {
	units1, err := readUnits(file1)
	if err != nil {
		return err
	}

	units2, err := readUnits(file2)
	if err != nil {
		return err
	}

	var writer io.Writer = os.Stdout

	if output != "" {
		outputFile, createErr := os.Create(output)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer outputFile.Close()

		writer = outputFile
	}

	switch format {
	case "unified":
		printUnifiedDiff(units1, units2, writer)

		return nil
	case "summary":
		printChangeSummary(detectChanges(units1, units2, file1, file2), writer)

		return nil
	case formatJSON:
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")

		if encErr := enc.Encode(detectChanges(units1, units2, file1, file2)); encErr != nil {
			return fmt.Errorf("failed to encode JSON: %w", encErr)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedDiffFmt, format)
	}
}

func readUnits(file string) ([]*node.SourceUnit, error) {
	raw, resolvedPath, err := safeReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", file, err)
	}

	result, err := solast.Read(raw, solast.ReadOptions{Options: reader.Options{Lenient: true}})
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", resolvedPath, err)
	}

	return result.Units, nil
}

// Change is a per-kind node-count delta between two compiler outputs.
type Change struct {
	Kind  string `json:"kind"`
	File1 string `json:"file1"`
	File2 string `json:"file2"`
	Delta int    `json:"delta"`
}

func detectChanges(units1, units2 []*node.SourceUnit, file1, file2 string) []Change {
	counts1 := kindCounts(units1)
	counts2 := kindCounts(units2)

	kinds := make(map[string]struct{}, len(counts1)+len(counts2))
	for k := range counts1 {
		kinds[k] = struct{}{}
	}

	for k := range counts2 {
		kinds[k] = struct{}{}
	}

	changes := make([]Change, 0, len(kinds))

	for k := range kinds {
		delta := counts2[k] - counts1[k]
		if delta == 0 {
			continue
		}

		changes = append(changes, Change{Kind: k, File1: file1, File2: file2, Delta: delta})
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Kind < changes[j].Kind })

	return changes
}

func kindCounts(units []*node.SourceUnit) map[string]int {
	counts := make(map[string]int)

	for _, u := range units {
		for _, n := range node.Descendants(u, true) {
			counts[string(n.Kind())]++
		}
	}

	return counts
}

func printedTrees(units []*node.SourceUnit) string {
	var out string

	for _, u := range units {
		out += node.Print(u, 0)
	}

	return out
}

func printUnifiedDiff(units1, units2 []*node.SourceUnit, writer io.Writer) {
	dmp := diffmatchpatch.New()

	diffs := dmp.DiffMain(printedTrees(units1), printedTrees(units2), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	fmt.Fprintln(writer, dmp.DiffPrettyText(diffs))
}

func printChangeSummary(changes []Change, writer io.Writer) {
	fmt.Fprintf(writer, "Change Summary:\n")

	if len(changes) == 0 {
		fmt.Fprintf(writer, "  (no node-count changes)\n")

		return
	}

	for _, change := range changes {
		sign := "+"
		if change.Delta < 0 {
			sign = ""
		}

		fmt.Fprintf(writer, "  %s: %s%d\n", change.Kind, sign, change.Delta)
	}
}
