package reader

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

// topLevel is the { "sources": {...}, "errors": [...] } shape §6.1 defines
// for compiler JSON output.
type topLevel struct {
	Sources map[string]json.RawMessage `json:"sources"`
	Errors  []json.RawMessage          `json:"errors"`
}

// compileError is the union of the modern ({severity, message, ...}) and
// legacy (a plain message string) error-list shapes.
type compileError struct {
	Severity string
	Message  string
}

func decodeCompileErrors(raws []json.RawMessage) []compileError {
	out := make([]compileError, 0, len(raws))

	for _, raw := range raws {
		var obj struct {
			Severity        string `json:"severity"`
			Message         string `json:"message"`
			FormattedMessage string `json:"formattedMessage"`
		}

		if err := json.Unmarshal(raw, &obj); err == nil && (obj.Severity != "" || obj.Message != "") {
			msg := obj.Message
			if msg == "" {
				msg = obj.FormattedMessage
			}

			out = append(out, compileError{Severity: obj.Severity, Message: msg})

			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			out = append(out, compileError{Message: s})
		}
	}

	return out
}

// isCompileFailure reports whether errs, per §6.1, should fail the read:
// modern severity "error", or a legacy message not spelled "Warning".
func isCompileFailure(errs []compileError) bool {
	for _, e := range errs {
		if e.Severity != "" {
			if e.Severity == "error" {
				return true
			}

			continue
		}

		if e.Severity == "" && e.Message != "Warning" {
			return true
		}
	}

	return false
}

// Read parses raw Solidity compiler JSON (the { sources, errors } shape of
// §6.1) into one SourceUnit per source, all registered in a single fresh
// Context. Schema selection happens per source: a section whose typed AST
// field's root object carries "nodeType" is read with the modern registry,
// everything else with the legacy one.
func Read(raw []byte, opts Options) ([]*node.SourceUnit, *node.Context, error) {
	var top topLevel
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, nil, fmt.Errorf("reader: malformed compiler output: %w", err)
	}

	if errs := decodeCompileErrors(top.Errors); isCompileFailure(errs) {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Message
		}

		return nil, nil, &node.CompileErrorsPresentError{Messages: messages}
	}

	ctx := node.NewContext("reader", 0)
	f := node.NewFactory(ctx)

	modern := modernRegistry(opts)
	legacy := legacyRegistry(opts)

	paths := make([]string, 0, len(top.Sources))
	for path := range top.Sources {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	units := make([]*node.SourceUnit, 0, len(paths))
	roots := make([]node.Node, 0, len(paths))

	for _, path := range paths {
		astRaw, ok := extractAST(top.Sources[path])
		if !ok {
			continue
		}

		m, err := decodeRawNode(astRaw)
		if err != nil {
			return nil, nil, err
		}

		var v view
		var reg Registry

		if isModern(m) {
			v, err = newModernView(astRaw)
			reg = modern
		} else {
			v, err = newLegacyView(astRaw)
			reg = legacy
		}

		if err != nil {
			return nil, nil, err
		}

		bs := &builderState{ctx: ctx, f: f, reg: reg}

		built, err := bs.build(v)
		if err != nil {
			return nil, nil, err
		}

		unit, ok := built.(*node.SourceUnit)
		if !ok {
			src, _ := v.src()

			return nil, nil, &node.SchemaMismatchError{Src: src, Reason: "top-level AST node is not a SourceUnit"}
		}

		units = append(units, unit)
		roots = append(roots, unit)
	}

	if err := link(ctx, roots, opts); err != nil {
		return nil, nil, err
	}

	return units, ctx, nil
}

// extractAST picks the typed AST field out of one source section, trying
// the three spellings §6.1 allows in order. A section carrying only
// "source" (raw text, no AST) is skipped.
func extractAST(section json.RawMessage) (json.RawMessage, bool) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(section, &m); err != nil {
		return nil, false
	}

	for _, key := range []string{"ast", "legacyAST", "AST"} {
		if raw, ok := m[key]; ok && string(raw) != "null" {
			return raw, true
		}
	}

	return nil, false
}
