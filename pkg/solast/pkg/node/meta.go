package node

// SourceUnit is the root node of one Solidity source file.
type SourceUnit struct {
	Base

	AbsolutePath string
	License      string
	Nodes        []Node // structural, mixed declaration/directive kinds

	// ExportedSymbols maps a symbol name to the ids of declarations visible
	// under that name at file scope.
	ExportedSymbols map[string][]RefID
}

func (n *SourceUnit) Kind() Kind       { return KindSourceUnit }
func (n *SourceUnit) Children() []Node { return n.Nodes }

// VExportedSymbols dereferences ExportedSymbols, preserving key order via the
// caller iterating the returned map's keys as needed (map order is
// unspecified by Go; round-tripping tests compare key sets, not iteration
// order).
func (n *SourceUnit) VExportedSymbols() map[string][]Node {
	out := make(map[string][]Node, len(n.ExportedSymbols))
	for name, ids := range n.ExportedSymbols {
		out[name] = n.context().LookupRefList(ids)
	}

	return out
}

// PragmaDirective is a leaf: `pragma solidity ^0.8.0;`.
type PragmaDirective struct {
	Base

	Literals []string
}

func (n *PragmaDirective) Kind() Kind       { return KindPragmaDirective }
func (n *PragmaDirective) Children() []Node { return nil }

// ImportDirective brings symbols from another source unit into scope.
type ImportDirective struct {
	Base

	File           string
	AbsolutePath   string
	UnitAlias      string
	SymbolAliases  []SymbolAlias

	SourceUnit RefID // referential: the imported file's SourceUnit id
}

// SymbolAlias pairs an imported (foreign) declaration with an optional local
// alias name. The legacy schema may expose a Foreign whose only trustworthy
// field is Name; Local resolution must not be inferred from other fields.
type SymbolAlias struct {
	Foreign RefID
	Local   string
}

func (n *ImportDirective) Kind() Kind       { return KindImportDirective }
func (n *ImportDirective) Children() []Node { return nil }

func (n *ImportDirective) VSourceUnit() Node { return n.context().LookupRef(n.SourceUnit) }

func (n *ImportDirective) VSymbolAliases() []Node {
	out := make([]Node, len(n.SymbolAliases))
	for i, a := range n.SymbolAliases {
		out[i] = n.context().LookupRef(a.Foreign)
	}

	return out
}

// InheritanceSpecifier names a base contract and its constructor arguments.
type InheritanceSpecifier struct {
	Base

	BaseName  *IdentifierPath // structural
	Arguments []Node          // structural, expressions
}

func (n *InheritanceSpecifier) Kind() Kind { return KindInheritanceSpecifier }

func (n *InheritanceSpecifier) Children() []Node {
	var out []Node
	if n.BaseName != nil {
		out = appendNode(out, n.BaseName)
	}

	out = append(out, n.Arguments...)

	return out
}

// ModifierInvocation applies a modifier to a function definition.
type ModifierInvocation struct {
	Base

	ModifierName *IdentifierPath // structural
	Arguments    []Node          // structural, expressions; nil for no-parens form
}

func (n *ModifierInvocation) Kind() Kind { return KindModifierInvocation }

func (n *ModifierInvocation) Children() []Node {
	var out []Node
	if n.ModifierName != nil {
		out = appendNode(out, n.ModifierName)
	}

	out = append(out, n.Arguments...)

	return out
}

// OverrideSpecifier lists the base contracts an override explicitly targets.
type OverrideSpecifier struct {
	Base

	Overrides []*IdentifierPath // structural; empty for a bare `override`
}

func (n *OverrideSpecifier) Kind() Kind { return KindOverrideSpecifier }

func (n *OverrideSpecifier) Children() []Node {
	out := make([]Node, len(n.Overrides))
	for i, o := range n.Overrides {
		out[i] = o
	}

	return out
}

// ParameterList is an ordered, possibly empty, list of VariableDeclarations
// used for function parameters, return parameters, and catch-clause
// parameters.
type ParameterList struct {
	Base

	Parameters []*VariableDeclaration // structural
}

func (n *ParameterList) Kind() Kind { return KindParameterList }

func (n *ParameterList) Children() []Node {
	out := make([]Node, len(n.Parameters))
	for i, p := range n.Parameters {
		out[i] = p
	}

	return out
}

// UsingForDirective attaches library functions to a type: `using L for T;`.
type UsingForDirective struct {
	Base

	LibraryName *IdentifierPath // structural, mutually exclusive with FunctionList
	FunctionList []*IdentifierPath
	TypeName    TypeName // structural, optional ("using L for *")
	Global      bool
}

func (n *UsingForDirective) Kind() Kind { return KindUsingForDirective }

func (n *UsingForDirective) Children() []Node {
	var out []Node
	if n.LibraryName != nil {
		out = appendNode(out, n.LibraryName)
	}

	for _, f := range n.FunctionList {
		out = appendNode(out, f)
	}

	if n.TypeName != nil {
		out = appendNode(out, n.TypeName)
	}

	return out
}

// StructuredDocumentation is a leaf carrying NatSpec documentation text,
// present in the modern schema. The legacy schema instead attaches a plain
// string to the documenting node directly.
type StructuredDocumentation struct {
	Base

	Text string
}

func (n *StructuredDocumentation) Kind() Kind       { return KindStructuredDocumentation }
func (n *StructuredDocumentation) Children() []Node { return nil }

// IdentifierPath is a dotted name resolved to a declaration, e.g. a base
// contract name or a modifier name.
type IdentifierPath struct {
	Base

	Name                string
	ReferencedDeclaration RefID // optional: absent in some builds
}

func (n *IdentifierPath) Kind() Kind       { return KindIdentifierPath }
func (n *IdentifierPath) Children() []Node { return nil }

func (n *IdentifierPath) VReferencedDeclaration() Node {
	return n.context().LookupRef(n.ReferencedDeclaration)
}
