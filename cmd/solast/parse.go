package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/solast-dev/solast/pkg/solast"
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
	"github.com/solast-dev/solast/pkg/solast/pkg/reader"
)

// ErrUnsupportedParseFmt is returned when an unknown --format value is given.
var ErrUnsupportedParseFmt = errors.New("unsupported format")

const (
	formatTree = "tree"
	formatNone = "none"
)

func parseCmd() *cobra.Command {
	var output, format string
	var workers int
	var progress, lenient bool

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse solc --standard-json AST output into a typed tree",
		Long: `Parse one or more solc --standard-json compiler output files into solast's typed tree.

Examples:
  solast parse build-info.json              # Parse a single compiler output file
  cat build-info.json | solast parse -      # Parse from stdin
  solast parse -o tree.json build-info.json # Save to file
  solast parse -f tree build-info.json      # Render as an indented tree instead of JSON
  solast parse -f none *.json -w 8          # Parse only, discard output, 8 parallel workers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args, output, format, progress, lenient, workers, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format (json, tree, none)")
	cmd.Flags().BoolVarP(&progress, "progress", "p", false, "show progress for multiple files")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "tolerate dangling references instead of failing the read")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of parallel workers (default: number of CPUs)")

	return cmd
}

func runParse(files []string, output, format string, progress, lenient bool, workers int, writer io.Writer) error {
	if len(files) == 0 {
		return parseStdin(output, format, lenient, writer)
	}

	if progress && len(files) > 1 {
		fmt.Fprintf(os.Stderr, "Parsing %d files...\n", len(files))
	}

	if len(files) > 1 && format == formatNone {
		return runParseParallel(files, lenient, progress, workers)
	}

	for idx, file := range files {
		if progress {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", idx+1, len(files), file)
		}

		if err := parseFile(file, output, format, lenient, writer); err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}
	}

	return nil
}

// runParseParallel reads files concurrently using a worker pool, discarding
// results. Each worker shares solast.Read, which is safe for concurrent use
// since every call builds its own node.Context.
func runParseParallel(files []string, lenient, progress bool, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > len(files) {
		workers = len(files)
	}

	fileCh := make(chan string, workers)

	var firstErr atomic.Value

	var completed atomic.Int64

	total := int64(len(files))

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for file := range fileCh {
				if firstErr.Load() != nil {
					return
				}

				if err := readOnly(file, lenient); err != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("failed to parse %s: %w", file, err))

					return
				}

				done := completed.Add(1)
				if progress {
					fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", done, total, file)
				}
			}
		}()
	}

	for _, f := range files {
		if firstErr.Load() != nil {
			break
		}

		fileCh <- f
	}

	close(fileCh)
	wg.Wait()

	if errVal := firstErr.Load(); errVal != nil {
		if err, ok := errVal.(error); ok {
			return err
		}
	}

	return nil
}

func readOnly(file string, lenient bool) error {
	raw, _, err := safeReadFile(file)
	if err != nil {
		return err
	}

	_, err = solast.Read(raw, solast.ReadOptions{Options: reader.Options{Lenient: lenient}})

	return err
}

func parseStdin(output, format string, lenient bool, writer io.Writer) error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	result, err := solast.Read(raw, solast.ReadOptions{Options: reader.Options{Lenient: lenient}})
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	return outputUnits(result.Units, output, format, writer)
}

func parseFile(file, output, format string, lenient bool, writer io.Writer) error {
	raw, resolvedPath, err := safeReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", file, err)
	}

	result, err := solast.Read(raw, solast.ReadOptions{Options: reader.Options{Lenient: lenient}})
	if err != nil {
		return fmt.Errorf("parse error in %s: %w", resolvedPath, err)
	}

	if format == formatNone {
		return nil
	}

	return outputUnits(result.Units, output, format, writer)
}

func outputUnits(units []*node.SourceUnit, output, format string, writer io.Writer) error {
	if output != "" {
		outputFile, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer outputFile.Close()

		writer = outputFile
	}

	switch format {
	case formatJSON:
		out := make(map[string]any, len(units))
		for _, u := range units {
			out[u.AbsolutePath] = node.ToMap(u)
		}

		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")

		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case formatTree:
		for _, u := range units {
			fmt.Fprintln(writer, node.Print(u, 0))
		}

		return nil
	case formatNone:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedParseFmt, format)
	}
}
