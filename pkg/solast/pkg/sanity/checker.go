// Package sanity implements the structural checks a tree built by
// pkg/solast/pkg/reader is expected to satisfy, per §4.5: every reachable
// node belongs to its context, every structural child's parent pointer
// agrees with its owner, and every source unit's exported symbols resolve.
package sanity

import (
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

// Check walks unit's entire reachable subtree against ctx and fails on the
// first violation found, in pre-order. It never recovers from a violation
// internally: a caller wanting a boolean should use IsSane instead.
func Check(ctx *node.Context, unit *node.SourceUnit) error {
	var checkErr error

	node.Walk(unit, func(n node.Node) bool {
		if checkErr != nil {
			return false
		}

		if err := checkMembership(ctx, n); err != nil {
			checkErr = err

			return false
		}

		if err := checkParentage(n); err != nil {
			checkErr = err

			return false
		}

		return true
	})

	if checkErr != nil {
		return checkErr
	}

	return checkExportedSymbols(ctx, unit)
}

// IsSane converts Check's result into a boolean, swallowing sanity
// violations and re-raising everything else (a programming error calling
// Check incorrectly, not a tree defect), per §4.5.
func IsSane(ctx *node.Context, unit *node.SourceUnit) (bool, error) {
	err := Check(ctx, unit)
	if err == nil {
		return true, nil
	}

	switch err.(type) {
	case *node.MissingNodeError, *node.ParentageInconsistentError,
		*node.CoverageViolationError, *node.DanglingReferenceError,
		*node.WrongContextError:
		return false, nil
	}

	return false, err
}

// checkMembership verifies every reachable node is registered in ctx under
// its own id, per §4.5's Membership rule.
func checkMembership(ctx *node.Context, n node.Node) error {
	if !ctx.Contains(n) {
		return &node.MissingNodeError{Id: n.ID()}
	}

	return nil
}

// checkParentage verifies every structural child's parent back-pointer
// equals n, per §4.5's Parentage rule. Leaf variants (pragmas, structured
// documentation, enum values, break/continue/throw, inline assembly,
// placeholder statements, elementary type names, literals) have no
// children and trivially satisfy this.
func checkParentage(n node.Node) error {
	for _, c := range n.Children() {
		if c == nil {
			continue
		}

		parent := c.Parent()
		if parent != n {
			parentID := 0
			if parent != nil {
				parentID = parent.ID()
			}

			return &node.ParentageInconsistentError{
				ChildId:          c.ID(),
				ExpectedParentId: n.ID(),
				ActualParentId:   parentID,
			}
		}
	}

	return nil
}

// checkExportedSymbols verifies every id a source unit's ExportedSymbols
// names resolves through ctx, per §4.5's Exported-symbols coherence rule.
// It intentionally does not also require the resolved declaration's own
// name to equal the map key: imported symbols are routinely re-exported
// under a local alias distinct from their declaration name.
func checkExportedSymbols(ctx *node.Context, unit *node.SourceUnit) error {
	for name, ids := range unit.ExportedSymbols {
		for _, id := range ids {
			if id == 0 {
				continue
			}

			if ctx.LookupRef(id) == nil {
				return &node.DanglingReferenceError{
					OwnerId:   unit.ID(),
					Attribute: "ExportedSymbols[" + name + "]",
					TargetId:  int(id),
				}
			}
		}
	}

	return nil
}
