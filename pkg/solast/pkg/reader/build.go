package reader

import (
	"fmt"

	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

// BuilderFunc materializes one node from its view, recursing into bs.build
// for any structural children it owns. It must not resolve referential
// attributes beyond storing the raw ids found in the JSON; Pass 2 (link.go)
// is the only place a reference is ever dereferenced during a read.
type BuilderFunc func(bs *builderState, v view) (node.Node, error)

// Registry maps a schema tag (the node catalog's Kind string, which both
// solc schemas happen to spell identically: "ContractDefinition",
// "IfStatement", and so on) to the builder that constructs it.
type Registry map[string]BuilderFunc

// Clone returns a shallow copy so a caller can register additional tags
// without mutating a shared default registry.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for k, v := range r {
		out[k] = v
	}

	return out
}

// builderState carries everything a BuilderFunc needs for one read: the
// context and factory nodes are allocated into, the active registry, and
// the dispatcher every builder recurses through for its children.
type builderState struct {
	ctx *node.Context
	f   *node.Factory
	reg Registry
}

// build dispatches v to the registered builder for its kind. Unknown tags
// fail UnknownNodeKind carrying the offending tag and location, per §4.3.
func (bs *builderState) build(v view) (node.Node, error) {
	if v == nil {
		return nil, nil
	}

	tag := v.kind()

	builder, ok := bs.reg[tag]
	if !ok {
		src, _ := v.src()

		return nil, &node.UnknownNodeKindError{Tag: tag, Src: src}
	}

	return builder(bs, v)
}

func (bs *builderState) buildTypeName(v view) (node.TypeName, error) {
	n, err := bs.build(v)
	if err != nil {
		return nil, err
	}

	if n == nil {
		return nil, nil
	}

	tn, ok := n.(node.TypeName)
	if !ok {
		src, _ := v.src()

		return nil, &node.SchemaMismatchError{Src: src, Reason: fmt.Sprintf("expected a type name, got %s", n.Kind())}
	}

	return tn, nil
}

func (bs *builderState) buildStatement(v view) (node.Statement, error) {
	n, err := bs.build(v)
	if err != nil {
		return nil, err
	}

	if n == nil {
		return nil, nil
	}

	s, ok := n.(node.Statement)
	if !ok {
		src, _ := v.src()

		return nil, &node.SchemaMismatchError{Src: src, Reason: fmt.Sprintf("expected a statement, got %s", n.Kind())}
	}

	return s, nil
}

func (bs *builderState) buildStatements(views []view) ([]node.Statement, error) {
	out := make([]node.Statement, 0, len(views))
	for _, cv := range views {
		s, err := bs.buildStatement(cv)
		if err != nil {
			return nil, err
		}

		if s != nil {
			out = append(out, s)
		}
	}

	return out, nil
}

func (bs *builderState) buildNodes(views []view) ([]node.Node, error) {
	out := make([]node.Node, 0, len(views))
	for _, cv := range views {
		n, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		if n != nil {
			out = append(out, n)
		}
	}

	return out, nil
}

func (bs *builderState) buildIdentifierPaths(views []view) ([]*node.IdentifierPath, error) {
	out := make([]*node.IdentifierPath, 0, len(views))
	for _, cv := range views {
		n, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		ip, ok := n.(*node.IdentifierPath)
		if !ok {
			src, _ := cv.src()

			return nil, &node.SchemaMismatchError{Src: src, Reason: "expected an IdentifierPath"}
		}

		out = append(out, ip)
	}

	return out, nil
}

func (bs *builderState) buildVariableDeclarations(views []view) ([]*node.VariableDeclaration, error) {
	out := make([]*node.VariableDeclaration, 0, len(views))
	for _, cv := range views {
		n, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		vd, ok := n.(*node.VariableDeclaration)
		if !ok {
			src, _ := cv.src()

			return nil, &node.SchemaMismatchError{Src: src, Reason: "expected a VariableDeclaration"}
		}

		out = append(out, vd)
	}

	return out, nil
}

func (bs *builderState) buildInheritanceSpecifiers(views []view) ([]*node.InheritanceSpecifier, error) {
	out := make([]*node.InheritanceSpecifier, 0, len(views))
	for _, cv := range views {
		n, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		is, ok := n.(*node.InheritanceSpecifier)
		if !ok {
			src, _ := cv.src()

			return nil, &node.SchemaMismatchError{Src: src, Reason: "expected an InheritanceSpecifier"}
		}

		out = append(out, is)
	}

	return out, nil
}

func (bs *builderState) buildEnumValues(views []view) ([]*node.EnumValue, error) {
	out := make([]*node.EnumValue, 0, len(views))
	for _, cv := range views {
		n, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		ev, ok := n.(*node.EnumValue)
		if !ok {
			src, _ := cv.src()

			return nil, &node.SchemaMismatchError{Src: src, Reason: "expected an EnumValue"}
		}

		out = append(out, ev)
	}

	return out, nil
}

func (bs *builderState) buildModifierInvocations(views []view) ([]*node.ModifierInvocation, error) {
	out := make([]*node.ModifierInvocation, 0, len(views))
	for _, cv := range views {
		n, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		mi, ok := n.(*node.ModifierInvocation)
		if !ok {
			src, _ := cv.src()

			return nil, &node.SchemaMismatchError{Src: src, Reason: "expected a ModifierInvocation"}
		}

		out = append(out, mi)
	}

	return out, nil
}

func (bs *builderState) buildParameterList(v view) (*node.ParameterList, error) {
	if v == nil {
		return nil, nil
	}

	n, err := bs.build(v)
	if err != nil {
		return nil, err
	}

	pl, ok := n.(*node.ParameterList)
	if !ok {
		src, _ := v.src()

		return nil, &node.SchemaMismatchError{Src: src, Reason: "expected a ParameterList"}
	}

	return pl, nil
}

func (bs *builderState) buildBlock(v view) (*node.Block, error) {
	if v == nil {
		return nil, nil
	}

	n, err := bs.build(v)
	if err != nil {
		return nil, err
	}

	blk, ok := n.(*node.Block)
	if !ok {
		src, _ := v.src()

		return nil, &node.SchemaMismatchError{Src: src, Reason: "expected a Block"}
	}

	return blk, nil
}

func (bs *builderState) buildOverrideSpecifier(v view) (*node.OverrideSpecifier, error) {
	if v == nil {
		return nil, nil
	}

	n, err := bs.build(v)
	if err != nil {
		return nil, err
	}

	os, ok := n.(*node.OverrideSpecifier)
	if !ok {
		src, _ := v.src()

		return nil, &node.SchemaMismatchError{Src: src, Reason: "expected an OverrideSpecifier"}
	}

	return os, nil
}

func (bs *builderState) buildDocumentation(v view) (*node.StructuredDocumentation, error) {
	if v == nil {
		return nil, nil
	}

	n, err := bs.build(v)
	if err != nil {
		return nil, err
	}

	doc, ok := n.(*node.StructuredDocumentation)
	if !ok {
		src, _ := v.src()

		return nil, &node.SchemaMismatchError{Src: src, Reason: "expected StructuredDocumentation"}
	}

	return doc, nil
}

func (bs *builderState) buildIdentifierPath(v view) (*node.IdentifierPath, error) {
	if v == nil {
		return nil, nil
	}

	n, err := bs.build(v)
	if err != nil {
		return nil, err
	}

	ip, ok := n.(*node.IdentifierPath)
	if !ok {
		src, _ := v.src()

		return nil, &node.SchemaMismatchError{Src: src, Reason: "expected an IdentifierPath"}
	}

	return ip, nil
}

func (bs *builderState) buildFunctionCall(v view) (*node.FunctionCall, error) {
	if v == nil {
		return nil, nil
	}

	n, err := bs.build(v)
	if err != nil {
		return nil, err
	}

	fc, ok := n.(*node.FunctionCall)
	if !ok {
		src, _ := v.src()

		return nil, &node.SchemaMismatchError{Src: src, Reason: "expected a FunctionCall"}
	}

	return fc, nil
}
