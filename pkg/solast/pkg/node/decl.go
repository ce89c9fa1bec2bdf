package node

// ContractDefinition is `contract`/`interface`/`library`.
type ContractDefinition struct {
	Base

	Name          string
	ContractKind  string // "contract" | "interface" | "library"
	Abstract      bool
	FullyImplemented bool
	Documentation *StructuredDocumentation // structural, optional (modern); legacy carries plain text below
	DocumentationText string                // legacy schema only

	BaseContracts []*InheritanceSpecifier // structural
	Nodes         []Node                  // structural, mixed declaration kinds

	Scope                   RefID   // referential
	LinearizedBaseContracts []RefID // referential, ordered (C3 linearization)
	ContractDependencies    []RefID // referential
	UsedErrors              []RefID // referential
}

func (n *ContractDefinition) Kind() Kind { return KindContractDefinition }

func (n *ContractDefinition) Children() []Node {
	var out []Node
	if n.Documentation != nil {
		out = appendNode(out, n.Documentation)
	}

	for _, b := range n.BaseContracts {
		out = appendNode(out, b)
	}

	out = append(out, n.Nodes...)

	return out
}

func (n *ContractDefinition) VScope() Node { return n.context().LookupRef(n.Scope) }

func (n *ContractDefinition) VLinearizedBaseContracts() []Node {
	return n.context().LookupRefList(n.LinearizedBaseContracts)
}

func (n *ContractDefinition) VContractDependencies() []Node {
	return n.context().LookupRefList(n.ContractDependencies)
}

func (n *ContractDefinition) VUsedErrors() []Node {
	return n.context().LookupRefList(n.UsedErrors)
}

// FunctionDefinition covers ordinary functions, constructors, fallback, and
// receive, distinguished by Kind.
type FunctionDefinition struct {
	Base

	Name            string
	FunctionKind    string // "function" | "constructor" | "fallback" | "receive"
	Visibility      string
	StateMutability string
	Virtual         bool
	Documentation   *StructuredDocumentation // structural, optional
	DocumentationText string

	Parameters       *ParameterList          // structural
	ReturnParameters *ParameterList          // structural
	Modifiers        []*ModifierInvocation   // structural
	Overrides        *OverrideSpecifier      // structural, optional
	Body             *Block                  // structural, optional (absent for abstract/interface functions)

	Scope RefID // referential
}

func (n *FunctionDefinition) Kind() Kind { return KindFunctionDefinition }

func (n *FunctionDefinition) Children() []Node {
	var out []Node
	if n.Documentation != nil {
		out = appendNode(out, n.Documentation)
	}

	if n.Parameters != nil {
		out = appendNode(out, n.Parameters)
	}

	if n.ReturnParameters != nil {
		out = appendNode(out, n.ReturnParameters)
	}

	for _, m := range n.Modifiers {
		out = appendNode(out, m)
	}

	if n.Overrides != nil {
		out = appendNode(out, n.Overrides)
	}

	if n.Body != nil {
		out = appendNode(out, n.Body)
	}

	return out
}

func (n *FunctionDefinition) VScope() Node { return n.context().LookupRef(n.Scope) }

// ModifierDefinition declares a reusable modifier.
type ModifierDefinition struct {
	Base

	Name       string
	Virtual    bool
	Documentation *StructuredDocumentation
	DocumentationText string

	Parameters *ParameterList        // structural
	Overrides  *OverrideSpecifier    // structural, optional
	Body       *Block                // structural

	Scope RefID
}

func (n *ModifierDefinition) Kind() Kind { return KindModifierDefinition }

func (n *ModifierDefinition) Children() []Node {
	var out []Node
	if n.Documentation != nil {
		out = appendNode(out, n.Documentation)
	}

	if n.Parameters != nil {
		out = appendNode(out, n.Parameters)
	}

	if n.Overrides != nil {
		out = appendNode(out, n.Overrides)
	}

	if n.Body != nil {
		out = appendNode(out, n.Body)
	}

	return out
}

func (n *ModifierDefinition) VScope() Node { return n.context().LookupRef(n.Scope) }

// EventDefinition declares an emittable log event.
type EventDefinition struct {
	Base

	Name       string
	Anonymous  bool
	Documentation *StructuredDocumentation
	DocumentationText string

	Parameters *ParameterList // structural

	Scope RefID
}

func (n *EventDefinition) Kind() Kind { return KindEventDefinition }

func (n *EventDefinition) Children() []Node {
	var out []Node
	if n.Documentation != nil {
		out = appendNode(out, n.Documentation)
	}

	if n.Parameters != nil {
		out = appendNode(out, n.Parameters)
	}

	return out
}

func (n *EventDefinition) VScope() Node { return n.context().LookupRef(n.Scope) }

// ErrorDefinition declares a custom error (0.8.4+).
type ErrorDefinition struct {
	Base

	Name       string
	Documentation *StructuredDocumentation

	Parameters *ParameterList // structural

	Scope RefID
}

func (n *ErrorDefinition) Kind() Kind { return KindErrorDefinition }

func (n *ErrorDefinition) Children() []Node {
	var out []Node
	if n.Documentation != nil {
		out = appendNode(out, n.Documentation)
	}

	if n.Parameters != nil {
		out = appendNode(out, n.Parameters)
	}

	return out
}

func (n *ErrorDefinition) VScope() Node { return n.context().LookupRef(n.Scope) }

// StructDefinition declares a struct type.
type StructDefinition struct {
	Base

	Name    string
	Members []*VariableDeclaration // structural

	Scope     RefID
	Visibility string
}

func (n *StructDefinition) Kind() Kind { return KindStructDefinition }

func (n *StructDefinition) Children() []Node {
	out := make([]Node, len(n.Members))
	for i, m := range n.Members {
		out[i] = m
	}

	return out
}

func (n *StructDefinition) VScope() Node { return n.context().LookupRef(n.Scope) }

// EnumDefinition declares an enum type.
type EnumDefinition struct {
	Base

	Name    string
	Members []*EnumValue // structural

	Scope RefID
}

func (n *EnumDefinition) Kind() Kind { return KindEnumDefinition }

func (n *EnumDefinition) Children() []Node {
	out := make([]Node, len(n.Members))
	for i, m := range n.Members {
		out[i] = m
	}

	return out
}

func (n *EnumDefinition) VScope() Node { return n.context().LookupRef(n.Scope) }

// EnumValue is a leaf naming one member of an EnumDefinition.
type EnumValue struct {
	Base

	Name string
}

func (n *EnumValue) Kind() Kind       { return KindEnumValue }
func (n *EnumValue) Children() []Node { return nil }

// UserDefinedValueTypeDefinition declares a zero-cost wrapper type (0.8.8+),
// e.g. `type Price is uint128;`.
type UserDefinedValueTypeDefinition struct {
	Base

	Name           string
	UnderlyingType TypeName // structural

	Scope RefID
}

func (n *UserDefinedValueTypeDefinition) Kind() Kind { return KindUserDefinedValueTypeDefinition }

func (n *UserDefinedValueTypeDefinition) Children() []Node {
	var out []Node
	if n.UnderlyingType != nil {
		out = appendNode(out, n.UnderlyingType)
	}

	return out
}

func (n *UserDefinedValueTypeDefinition) VScope() Node { return n.context().LookupRef(n.Scope) }

// VariableDeclaration covers state variables, local variables, and
// parameters alike, distinguished by StateVariable/StorageLocation.
type VariableDeclaration struct {
	Base

	Name             string
	TypeName         TypeName // structural
	Visibility       string
	Constant         bool
	Mutability       string // "mutable" | "immutable" | "constant"
	StateVariable    bool
	StorageLocation  string // "" | "memory" | "storage" | "calldata"
	Value            Node   // structural, optional expression (initializer for state/constant vars)
	Overrides        *OverrideSpecifier // structural, optional
	Documentation    *StructuredDocumentation
	DocumentationText string
	Indexed          bool // event parameters only
	TypeDescriptions TypeDescriptions

	Scope RefID
}

func (n *VariableDeclaration) Kind() Kind { return KindVariableDeclaration }

func (n *VariableDeclaration) Children() []Node {
	var out []Node
	if n.TypeName != nil {
		out = appendNode(out, n.TypeName)
	}

	if n.Overrides != nil {
		out = appendNode(out, n.Overrides)
	}

	if n.Value != nil {
		out = appendNode(out, n.Value)
	}

	return out
}

func (n *VariableDeclaration) VScope() Node { return n.context().LookupRef(n.Scope) }
