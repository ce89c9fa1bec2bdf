package node

// TypeName is implemented by the five type-name variants. It is a closed
// marker interface: downstream code type-switches on Kind() rather than
// adding new implementations outside this package.
type TypeName interface {
	Node
	isTypeName()
}

// ElementaryTypeName is a leaf: `uint256`, `address`, `bool`, ...
type ElementaryTypeName struct {
	Base

	Name             string
	StateMutability  string // only meaningful for "address payable"
	TypeDescriptions TypeDescriptions
}

func (n *ElementaryTypeName) Kind() Kind       { return KindElementaryTypeName }
func (n *ElementaryTypeName) Children() []Node { return nil }
func (n *ElementaryTypeName) isTypeName()      {}

// UserDefinedTypeName names a contract, struct, enum, or user-defined value
// type by path, e.g. `MyStruct` or `Lib.MyStruct`.
type UserDefinedTypeName struct {
	Base

	Path                  *IdentifierPath // structural; legacy schema has no nested path, only Name/ReferencedDeclaration
	Name                  string
	ReferencedDeclaration RefID
	TypeDescriptions      TypeDescriptions
}

func (n *UserDefinedTypeName) Kind() Kind { return KindUserDefinedTypeName }

func (n *UserDefinedTypeName) Children() []Node {
	var out []Node
	if n.Path != nil {
		out = appendNode(out, n.Path)
	}

	return out
}

func (n *UserDefinedTypeName) isTypeName() {}

func (n *UserDefinedTypeName) VReferencedDeclaration() Node {
	return n.context().LookupRef(n.ReferencedDeclaration)
}

// ArrayTypeName is `T[]` or `T[N]`.
type ArrayTypeName struct {
	Base

	BaseType TypeName // structural
	Length   Node     // structural, optional expression; nil for dynamic arrays
	TypeDescriptions TypeDescriptions
}

func (n *ArrayTypeName) Kind() Kind { return KindArrayTypeName }

func (n *ArrayTypeName) Children() []Node {
	var out []Node
	if n.BaseType != nil {
		out = appendNode(out, n.BaseType)
	}

	if n.Length != nil {
		out = appendNode(out, n.Length)
	}

	return out
}

func (n *ArrayTypeName) isTypeName() {}

// Mapping is `mapping(K [=> | =>] V)`.
type Mapping struct {
	Base

	KeyType   TypeName // structural
	ValueType TypeName // structural
	KeyName   string   // 0.8.18+ named mapping key, may be empty
	ValueName string
	TypeDescriptions TypeDescriptions
}

func (n *Mapping) Kind() Kind { return KindMapping }

func (n *Mapping) Children() []Node {
	var out []Node
	if n.KeyType != nil {
		out = appendNode(out, n.KeyType)
	}

	if n.ValueType != nil {
		out = appendNode(out, n.ValueType)
	}

	return out
}

func (n *Mapping) isTypeName() {}

// FunctionTypeName is `function(A) returns (B)` used as a type, e.g. for a
// function-typed variable.
type FunctionTypeName struct {
	Base

	Visibility       string
	StateMutability  string
	Parameters       *ParameterList // structural
	ReturnParameters *ParameterList // structural
	TypeDescriptions TypeDescriptions
}

func (n *FunctionTypeName) Kind() Kind { return KindFunctionTypeName }

func (n *FunctionTypeName) Children() []Node {
	var out []Node
	if n.Parameters != nil {
		out = appendNode(out, n.Parameters)
	}

	if n.ReturnParameters != nil {
		out = appendNode(out, n.ReturnParameters)
	}

	return out
}

func (n *FunctionTypeName) isTypeName() {}
