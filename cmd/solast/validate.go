package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/solast-dev/solast/pkg/solast/pkg/spec"
)

// complianceMax is the maximum compliance percentage.
const complianceMax = 100

// exitCodeValidationFailure is the exit code for validation failures.
const exitCodeValidationFailure = 2

func validateCmd() *cobra.Command {
	var schemaPath string

	var colorize, nocolor bool

	cmd := &cobra.Command{
		Use:   "validate <tree.json|->",
		Short: "Validate a solast JSON tree against the embedded node schema",
		Long: `Validate a JSON tree (one source unit's entry from the path-keyed map
that "solast parse -f json" emits) against the embedded node schema: id, kind, src, and children, with kind drawn from the
closed set of Solidity AST node kinds.

Examples:
  solast validate tree.json
  solast validate - < tree.json
  solast validate --schema custom-schema.json tree.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], schemaPath, false, colorize, nocolor)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a JSON schema file (default: embedded node schema)")
	cmd.Flags().BoolVar(&colorize, "color", false, "force colored output")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(inputPath, schemaPath string, quiet, colorize, nocolor bool) error {
	if nocolor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	} else if colorize {
		color.NoColor = false //nolint:reassign // intentional override of library global
	}

	inputReader, inputLabel := loadInput(inputPath)

	var inputData any

	dec := json.NewDecoder(inputReader)
	dec.UseNumber()

	if decodeErr := dec.Decode(&inputData); decodeErr != nil {
		fmt.Fprintf(os.Stderr, "Invalid JSON in %s: %v\n", inputLabel, decodeErr)
		os.Exit(exitCodeValidationFailure)
	}

	schemaLoader := loadSchema(schemaPath)

	inputLoader := gojsonschema.NewGoLoader(inputData)

	result, err := gojsonschema.Validate(schemaLoader, inputLoader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Schema validation error: %v\n", err)
		os.Exit(exitCodeValidationFailure)
	}

	if result.Valid() {
		if !quiet {
			color.New(color.FgGreen).Fprintf(os.Stdout, "tree is valid (%s)\n", inputLabel)
			color.New(color.FgGreen).Fprintf(os.Stdout, "  Compliance: 100%%\n")
		}

		return nil
	}

	compliance := calculateCompliance(inputData, result.Errors())

	color.New(color.FgRed).Fprintf(os.Stdout, "tree validation failed (%s)\n", inputLabel)
	color.New(color.FgYellow).Fprintf(os.Stdout, "  Compliance: %d%%\n", compliance)

	fmt.Fprintf(os.Stdout, "\nErrors:\n")

	for _, verr := range result.Errors() {
		actualValue := getActualValue(inputData, verr.Field())

		if actualValue != "" {
			color.New(color.FgRed).Fprintf(os.Stdout, "  - %s: %s (got %q)\n", verr.Field(), verr.Description(), actualValue)
		} else {
			color.New(color.FgRed).Fprintf(os.Stdout, "  - %s: %s\n", verr.Field(), verr.Description())
		}
	}

	fmt.Fprintf(os.Stdout, "\nRecommendations:\n")
	provideRecommendations(result.Errors())

	os.Exit(1)

	return nil
}

//nolint:nonamedreturns // named returns needed for gocritic unnamedResult
func loadInput(inputPath string) (inputReader io.Reader, inputLabel string) {
	if inputPath == "-" {
		return os.Stdin, "stdin"
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
		os.Exit(exitCodeValidationFailure)
	}

	return inputFile, inputPath
}

func loadSchema(schemaPath string) gojsonschema.JSONLoader {
	if schemaPath == "" {
		schemaBytes, err := spec.SchemaFS.ReadFile(spec.SchemaFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read embedded schema: %v\n", err)
			os.Exit(exitCodeValidationFailure)
		}

		return gojsonschema.NewBytesLoader(schemaBytes)
	}

	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read schema file: %v\n", err)
		os.Exit(exitCodeValidationFailure)
	}

	return gojsonschema.NewBytesLoader(schemaBytes)
}

func provideRecommendations(validationErrors []gojsonschema.ResultError) {
	recommendations := make(map[string]string)

	for _, validationErr := range validationErrors {
		field := validationErr.Field()
		description := validationErr.Description()

		classifyRecommendation(recommendations, field, description)
	}

	seen := make(map[string]bool)

	for _, rec := range recommendations {
		if !seen[rec] {
			color.New(color.FgCyan).Fprintf(os.Stdout, "  - %s\n", rec)
			seen[rec] = true
		}
	}

	if len(validationErrors) > 0 {
		fmt.Fprintf(os.Stdout, "\nGeneral tips:\n")
		color.New(color.FgCyan).Fprintf(os.Stdout, "  - Regenerate the tree with `solast parse -f json`\n")
		color.New(color.FgCyan).Fprintf(os.Stdout, "  - kind must be one of the closed set of Solidity AST node kinds\n")
		color.New(color.FgCyan).Fprintf(os.Stdout, "  - Ensure every node carries id, kind, src, and children\n")
		color.New(color.FgCyan).Fprintf(os.Stdout, "  - src must match offset:length:fileIndex\n")
	}
}

func classifyRecommendation(recommendations map[string]string, field, description string) {
	switch {
	case strings.Contains(description, "kind") && strings.Contains(description, "one of"):
		recommendations["kind"] = "Use a canonical node kind like ContractDefinition, FunctionDefinition, Identifier, etc."

	case strings.Contains(description, "is required"):
		if strings.Contains(field, "kind") {
			recommendations["required_kind"] = "Every node must have a 'kind' field"
		} else if strings.Contains(field, "src") {
			recommendations["required_src"] = "Every node must have a 'src' field"
		}

	case strings.Contains(description, "src"):
		recommendations["src_format"] = "src must match offset:length:fileIndex, e.g. \"12:34:0\""

	case strings.Contains(description, "additionalProperties"):
		recommendations["shape"] = "Only id, kind, src, and children are allowed on a node"

	case strings.Contains(description, "children"):
		recommendations["children"] = "children must be an array of nodes (or omitted for leaves)"
	}
}

func calculateCompliance(inputData any, validationErrors []gojsonschema.ResultError) int {
	totalNodes := countNodes(inputData)
	if totalNodes == 0 {
		return 0
	}

	validNodes := totalNodes - len(validationErrors)
	compliance := int(float64(validNodes) / float64(totalNodes) * complianceMax)

	if compliance < 0 {
		compliance = 0
	} else if compliance > complianceMax {
		compliance = complianceMax
	}

	return compliance
}

func countNodes(data any) int {
	count := 1

	switch typedData := data.(type) {
	case map[string]any:
		if children, hasChildren := typedData["children"].([]any); hasChildren {
			for _, child := range children {
				count += countNodes(child)
			}
		}
	case []any:
		for _, item := range typedData {
			count += countNodes(item)
		}
	}

	return count
}

func getActualValue(data any, fieldPath string) string {
	parts := strings.Split(fieldPath, ".")

	current := data

	for _, part := range parts {
		switch typedVal := current.(type) {
		case map[string]any:
			val, found := typedVal[part]
			if !found {
				return ""
			}

			current = val
		case []any:
			idx, convErr := strconv.Atoi(part)
			if convErr != nil || idx < 0 || idx >= len(typedVal) {
				return ""
			}

			current = typedVal[idx]
		default:
			return ""
		}
	}

	return formatValue(current)
}

func formatValue(value any) string {
	switch typedVal := value.(type) {
	case string:
		return typedVal
	case float64:
		return strconv.FormatFloat(typedVal, 'f', -1, 64)
	case int:
		return strconv.Itoa(typedVal)
	case bool:
		return strconv.FormatBool(typedVal)
	default:
		return fmt.Sprintf("%v", typedVal)
	}
}
