package reader

import "github.com/solast-dev/solast/pkg/solast/pkg/node"

// link is Pass 2 of a read: a walk over the tree Pass 1 already built and
// registered. Every V* accessor on Node already resolves references
// lazily against the context, so Pass 2 never rebuilds anything; it only
// validates that required references actually resolve and runs the
// caller's OnNode callback, per §4.3.
func link(ctx *node.Context, roots []node.Node, opts Options) error {
	var walkErr error

	for _, root := range roots {
		node.Walk(root, func(n node.Node) bool {
			if walkErr != nil {
				return false
			}

			if err := checkRequiredRefs(ctx, n, opts.Lenient); err != nil {
				walkErr = err

				return false
			}

			if opts.OnNode != nil {
				opts.OnNode(n)
			}

			return true
		})

		if walkErr != nil {
			return walkErr
		}
	}

	return nil
}

// requireRef fails DanglingReference when id is non-zero but does not
// resolve, or when id is zero for an attribute that may never be omitted.
func requireRef(ctx *node.Context, ownerID int, attribute string, id node.RefID, allowZero bool, lenient bool) error {
	if id == 0 {
		if allowZero {
			return nil
		}
	} else if ctx.LookupRef(id) != nil {
		return nil
	}

	if lenient {
		return nil
	}

	return &node.DanglingReferenceError{OwnerId: ownerID, Attribute: attribute, TargetId: int(id)}
}

func requireRefList(ctx *node.Context, ownerID int, attribute string, ids []node.RefID, allowZero bool, lenient bool) error {
	for _, id := range ids {
		if err := requireRef(ctx, ownerID, attribute, id, allowZero, lenient); err != nil {
			return err
		}
	}

	return nil
}

// checkRequiredRefs enumerates the referential attributes each kind
// carries, per §4.1's structural/referential split. ReferencedDeclaration
// fields are left nullable everywhere: §9's open question on optional
// referencedDeclaration settles on tolerating an absent declaration rather
// than failing the read. Assignments tolerates zero elements by design
// (omitted tuple positions). Scope, SourceUnit and
// FunctionReturnParameters are structurally guaranteed by the compiler and
// so are required.
func checkRequiredRefs(ctx *node.Context, n node.Node, lenient bool) error {
	id := n.ID()

	switch v := n.(type) {
	case *node.ImportDirective:
		return requireRef(ctx, id, "SourceUnit", v.SourceUnit, false, lenient)
	case *node.ContractDefinition:
		if err := requireRef(ctx, id, "Scope", v.Scope, false, lenient); err != nil {
			return err
		}

		if err := requireRefList(ctx, id, "LinearizedBaseContracts", v.LinearizedBaseContracts, false, lenient); err != nil {
			return err
		}

		if err := requireRefList(ctx, id, "ContractDependencies", v.ContractDependencies, false, lenient); err != nil {
			return err
		}

		return requireRefList(ctx, id, "UsedErrors", v.UsedErrors, false, lenient)
	case *node.FunctionDefinition:
		return requireRef(ctx, id, "Scope", v.Scope, false, lenient)
	case *node.ModifierDefinition:
		return requireRef(ctx, id, "Scope", v.Scope, false, lenient)
	case *node.EventDefinition:
		return requireRef(ctx, id, "Scope", v.Scope, false, lenient)
	case *node.ErrorDefinition:
		return requireRef(ctx, id, "Scope", v.Scope, false, lenient)
	case *node.StructDefinition:
		return requireRef(ctx, id, "Scope", v.Scope, false, lenient)
	case *node.EnumDefinition:
		return requireRef(ctx, id, "Scope", v.Scope, false, lenient)
	case *node.UserDefinedValueTypeDefinition:
		return requireRef(ctx, id, "Scope", v.Scope, false, lenient)
	case *node.VariableDeclaration:
		return requireRef(ctx, id, "Scope", v.Scope, false, lenient)
	case *node.UserDefinedTypeName:
		return requireRef(ctx, id, "ReferencedDeclaration", v.ReferencedDeclaration, true, lenient)
	case *node.IdentifierPath:
		return requireRef(ctx, id, "ReferencedDeclaration", v.ReferencedDeclaration, true, lenient)
	case *node.Identifier:
		return requireRef(ctx, id, "ReferencedDeclaration", v.ReferencedDeclaration, true, lenient)
	case *node.MemberAccess:
		return requireRef(ctx, id, "ReferencedDeclaration", v.ReferencedDeclaration, true, lenient)
	case *node.Return:
		return requireRef(ctx, id, "FunctionReturnParameters", v.FunctionReturnParameters, false, lenient)
	case *node.VariableDeclarationStatement:
		return requireRefList(ctx, id, "Assignments", v.Assignments, true, lenient)
	}

	return nil
}
