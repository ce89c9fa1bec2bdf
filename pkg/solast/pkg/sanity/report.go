package sanity

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

// Violation is one sanity-check failure rendered for display. It mirrors
// whichever typed error (§7) the checker actually raised.
type Violation struct {
	Kind      string
	NodeId    int
	Attribute string
	Message   string
}

// Summary collects every violation found across a full scan of a unit,
// for presentation. Check/IsSane, not Summary, remain the pass/fail source
// of truth: a Summary with zero Violations still means the tree passed
// Check, but a caller that only wants a table should prefer Report over
// wiring up its own Walk.
type Summary struct {
	Violations []Violation
}

// Sane reports whether no violation was found.
func (s Summary) Sane() bool { return len(s.Violations) == 0 }

// Table renders the summary as a go-pretty table for CLI display.
func (s Summary) Table() string {
	tbl := table.NewWriter()
	tbl.AppendHeader(table.Row{"Kind", "Node", "Attribute", "Message"})

	for _, v := range s.Violations {
		tbl.AppendRow(table.Row{v.Kind, v.NodeId, v.Attribute, v.Message})
	}

	if len(s.Violations) == 0 {
		tbl.AppendRow(table.Row{"-", "-", "-", "tree is sane"})
	}

	return tbl.Render()
}

// Report runs every §4.5 check over unit's full reachable subtree,
// collecting all violations rather than stopping at the first the way
// Check does, for CLI/MCP presentation.
func Report(ctx *node.Context, unit *node.SourceUnit) Summary {
	var summary Summary

	node.Walk(unit, func(n node.Node) bool {
		if err := checkMembership(ctx, n); err != nil {
			summary.Violations = append(summary.Violations, toViolation(err))
		}

		if err := checkParentage(n); err != nil {
			summary.Violations = append(summary.Violations, toViolation(err))
		}

		return true
	})

	if err := checkExportedSymbols(ctx, unit); err != nil {
		summary.Violations = append(summary.Violations, toViolation(err))
	}

	return summary
}

func toViolation(err error) Violation {
	switch e := err.(type) {
	case *node.MissingNodeError:
		return Violation{Kind: "Membership", NodeId: e.Id, Message: e.Error()}
	case *node.ParentageInconsistentError:
		return Violation{Kind: "Parentage", NodeId: e.ChildId, Message: e.Error()}
	case *node.DanglingReferenceError:
		return Violation{Kind: "DanglingReference", NodeId: e.OwnerId, Attribute: e.Attribute, Message: e.Error()}
	case *node.CoverageViolationError:
		return Violation{Kind: "Coverage", NodeId: e.NodeId, Message: e.Error()}
	default:
		return Violation{Kind: "Unknown", Message: err.Error()}
	}
}
