package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solast-dev/solast/pkg/solast"
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
	"github.com/solast-dev/solast/pkg/solast/pkg/reader"
	"github.com/solast-dev/solast/pkg/solast/pkg/sanity"
)

// minExploreArgs is the minimum number of args for find/query subcommands.
const minExploreArgs = 2

// ErrNoFileSpecified is returned when explore is invoked without a file.
var ErrNoFileSpecified = errors.New("no file specified for exploration")

func exploreCmd() *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Interactively explore a parsed compiler JSON tree",
		Long: `Start an interactive session to explore a solc --standard-json compiler
output once parsed into solast's typed tree.

Examples:
  solast explore build-info.json              # Explore a compiler output file`,
		RunE: func(_ *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}

			return runExplore(file, lenient)
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "tolerate dangling references instead of failing the read")

	return cmd
}

func runExplore(file string, lenient bool) error {
	if file == "" {
		return ErrNoFileSpecified
	}

	raw, resolvedPath, err := safeReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", file, err)
	}

	result, err := solast.Read(raw, solast.ReadOptions{Options: reader.Options{Lenient: lenient}})
	if err != nil {
		return fmt.Errorf("parse error in %s: %w", resolvedPath, err)
	}

	fmt.Printf("Exploring %s (%d source unit(s))\n", file, len(result.Units)) //nolint:forbidigo // CLI user output
	fmt.Println("Type 'help' for commands, 'quit' to exit")                  //nolint:forbidigo // CLI user output
	fmt.Println()                                                            //nolint:forbidigo // CLI user output

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("explore> ") //nolint:forbidigo // CLI user output

		if !scanner.Scan() {
			break
		}

		cmdText := strings.TrimSpace(scanner.Text())
		if cmdText == "" {
			continue
		}

		if cmdText == "quit" || cmdText == "exit" {
			break
		}

		if cmdText == "help" {
			printExploreHelp()

			continue
		}

		parts := strings.Fields(cmdText)
		if len(parts) == 0 {
			continue
		}

		handleExploreParts(parts, result)

		fmt.Println() //nolint:forbidigo // CLI user output
	}

	return nil
}

func handleExploreParts(parts []string, result *solast.Result) {
	switch parts[0] {
	case "tree":
		printTrees(result.Units)
	case "stats":
		printStats(result.Units)
	case "sanity":
		printSanity(result)
	case "find":
		if len(parts) < minExploreArgs {
			fmt.Println("Usage: find <Kind>") //nolint:forbidigo // CLI user output

			return
		}

		findNodes(result.Units, parts[1])
	default:
		fmt.Printf("Unknown command: %s\n", parts[0])     //nolint:forbidigo // CLI user output
		fmt.Println("Type 'help' for available commands") //nolint:forbidigo // CLI user output
	}
}

func printTrees(units []*node.SourceUnit) {
	for _, u := range units {
		fmt.Println(node.Print(u, 0)) //nolint:forbidigo // CLI user output
	}
}

func printStats(units []*node.SourceUnit) {
	stats := make(map[string]int)
	totalNodes := 0

	for _, u := range units {
		for _, n := range node.Descendants(u, true) {
			stats[string(n.Kind())]++
			totalNodes++
		}
	}

	fmt.Printf("Total nodes: %d\n", totalNodes) //nolint:forbidigo // CLI user output
	fmt.Println("By kind:")                     //nolint:forbidigo // CLI user output

	for kind, count := range stats {
		fmt.Printf("  %s: %d\n", kind, count) //nolint:forbidigo // CLI user output
	}
}

func printSanity(result *solast.Result) {
	for _, u := range result.Units {
		summary := sanity.Report(result.Ctx, u)
		fmt.Printf("%s:\n%s\n", u.AbsolutePath, summary.Table()) //nolint:forbidigo // CLI user output
	}
}

func findNodes(units []*node.SourceUnit, kind string) {
	var results []node.Node
	for _, u := range units {
		results = append(results, node.FindByKind(u, node.Kind(kind))...)
	}

	fmt.Printf("Found %d node(s) of kind '%s':\n", len(results), kind) //nolint:forbidigo // CLI user output

	for idx, result := range results {
		fmt.Printf("[%d] %s#%d [%s]\n", idx+1, result.Kind(), result.ID(), result.Src()) //nolint:forbidigo // CLI user output
	}
}

func printExploreHelp() {
	fmt.Println("Available commands:")                            //nolint:forbidigo // CLI user output
	fmt.Println("  tree                    - Show AST tree(s)")   //nolint:forbidigo // CLI user output
	fmt.Println("  stats                   - Show node kind counts") //nolint:forbidigo // CLI user output
	fmt.Println("  sanity                  - Run the sanity checker and show violations") //nolint:forbidigo // CLI user output
	fmt.Println("  find <Kind>             - Find nodes by kind") //nolint:forbidigo // CLI user output
	fmt.Println("  help                    - Show this help")     //nolint:forbidigo // CLI user output
	fmt.Println("  quit                    - Exit exploration")   //nolint:forbidigo // CLI user output
	fmt.Println()                                                 //nolint:forbidigo // CLI user output
}
