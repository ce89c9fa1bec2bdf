package node

// Expression is implemented by every expression-family variant.
type Expression interface {
	Node
	isExpression()
}

// Literal is a leaf: a number, string, bool, or hex literal.
type Literal struct {
	Base

	LiteralKind      string // "number" | "string" | "bool" | "hexString" | "unicodeString"
	Value            string
	HexValue         string
	Subdenomination  string // "wei" | "gwei" | "ether" | "seconds" | ... | ""
	TypeDescriptions TypeDescriptions
}

func (n *Literal) Kind() Kind       { return KindLiteral }
func (n *Literal) Children() []Node { return nil }
func (n *Literal) isExpression()    {}

// Identifier is a leaf: a bare name reference.
type Identifier struct {
	Base

	Name                  string
	ReferencedDeclaration RefID // optional: absent is tolerated (§9 open question)
	TypeDescriptions      TypeDescriptions
}

func (n *Identifier) Kind() Kind       { return KindIdentifier }
func (n *Identifier) Children() []Node { return nil }
func (n *Identifier) isExpression()    {}

func (n *Identifier) VReferencedDeclaration() Node {
	return n.context().LookupRef(n.ReferencedDeclaration)
}

// MemberAccess is `expr.member`.
type MemberAccess struct {
	Base

	Expression            Node // structural
	MemberName            string
	ReferencedDeclaration RefID // optional
	TypeDescriptions      TypeDescriptions
}

func (n *MemberAccess) Kind() Kind { return KindMemberAccess }

func (n *MemberAccess) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = appendNode(out, n.Expression)
	}

	return out
}

func (n *MemberAccess) isExpression() {}

func (n *MemberAccess) VReferencedDeclaration() Node {
	return n.context().LookupRef(n.ReferencedDeclaration)
}

// IndexAccess is `base[index]`.
type IndexAccess struct {
	Base

	BaseExpression  Node // structural
	IndexExpression Node // structural, optional (bare `T[]` type expressions omit it)
	TypeDescriptions TypeDescriptions
}

func (n *IndexAccess) Kind() Kind { return KindIndexAccess }

func (n *IndexAccess) Children() []Node {
	var out []Node
	if n.BaseExpression != nil {
		out = appendNode(out, n.BaseExpression)
	}

	if n.IndexExpression != nil {
		out = appendNode(out, n.IndexExpression)
	}

	return out
}

func (n *IndexAccess) isExpression() {}

// IndexRangeAccess is `base[start:end]` slice syntax (calldata arrays).
type IndexRangeAccess struct {
	Base

	BaseExpression  Node // structural
	StartExpression Node // structural, optional
	EndExpression   Node // structural, optional
	TypeDescriptions TypeDescriptions
}

func (n *IndexRangeAccess) Kind() Kind { return KindIndexRangeAccess }

func (n *IndexRangeAccess) Children() []Node {
	var out []Node
	if n.BaseExpression != nil {
		out = appendNode(out, n.BaseExpression)
	}

	if n.StartExpression != nil {
		out = appendNode(out, n.StartExpression)
	}

	if n.EndExpression != nil {
		out = appendNode(out, n.EndExpression)
	}

	return out
}

func (n *IndexRangeAccess) isExpression() {}

// UnaryOperation is `!x`, `-x`, `++x`, `x++`, ...
type UnaryOperation struct {
	Base

	Operator     string
	Prefix       bool
	SubExpression Node // structural
	TypeDescriptions TypeDescriptions
}

func (n *UnaryOperation) Kind() Kind { return KindUnaryOperation }

func (n *UnaryOperation) Children() []Node {
	var out []Node
	if n.SubExpression != nil {
		out = appendNode(out, n.SubExpression)
	}

	return out
}

func (n *UnaryOperation) isExpression() {}

// BinaryOperation is `lhs op rhs`.
type BinaryOperation struct {
	Base

	Operator         string
	LeftExpression   Node // structural
	RightExpression  Node // structural
	TypeDescriptions TypeDescriptions
}

func (n *BinaryOperation) Kind() Kind { return KindBinaryOperation }

func (n *BinaryOperation) Children() []Node {
	var out []Node
	if n.LeftExpression != nil {
		out = appendNode(out, n.LeftExpression)
	}

	if n.RightExpression != nil {
		out = appendNode(out, n.RightExpression)
	}

	return out
}

func (n *BinaryOperation) isExpression() {}

// Assignment is `lhs = rhs` or a compound form `lhs += rhs`.
type Assignment struct {
	Base

	Operator        string
	LeftHandSide    Node // structural
	RightHandSide   Node // structural
	TypeDescriptions TypeDescriptions
}

func (n *Assignment) Kind() Kind { return KindAssignment }

func (n *Assignment) Children() []Node {
	var out []Node
	if n.LeftHandSide != nil {
		out = appendNode(out, n.LeftHandSide)
	}

	if n.RightHandSide != nil {
		out = appendNode(out, n.RightHandSide)
	}

	return out
}

func (n *Assignment) isExpression() {}

// Conditional is the ternary `cond ? a : b`.
type Conditional struct {
	Base

	Condition  Node // structural
	TrueExpression Node // structural
	FalseExpression Node // structural
	TypeDescriptions TypeDescriptions
}

func (n *Conditional) Kind() Kind { return KindConditional }

func (n *Conditional) Children() []Node {
	var out []Node
	if n.Condition != nil {
		out = appendNode(out, n.Condition)
	}

	if n.TrueExpression != nil {
		out = appendNode(out, n.TrueExpression)
	}

	if n.FalseExpression != nil {
		out = appendNode(out, n.FalseExpression)
	}

	return out
}

func (n *Conditional) isExpression() {}

// FunctionCall is `callee(args)`, also used for type conversions and emits.
type FunctionCall struct {
	Base

	Expression      Node   // structural: the callee
	Arguments       []Node // structural
	NamedArguments  []string // names parallel to Arguments when a call uses `{name: value}` form; empty otherwise
	CallKind        string // "functionCall" | "typeConversion" | "structConstructorCall"
	TypeDescriptions TypeDescriptions
}

func (n *FunctionCall) Kind() Kind { return KindFunctionCall }

func (n *FunctionCall) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = appendNode(out, n.Expression)
	}

	out = append(out, n.Arguments...)

	return out
}

func (n *FunctionCall) isExpression() {}

// FunctionCallOptions is `callee{gas: g, value: v}`.
type FunctionCallOptions struct {
	Base

	Expression Node     // structural: the callee
	Options    []Node   // structural, ordered values
	Names      []string // option names parallel to Options
	TypeDescriptions TypeDescriptions
}

func (n *FunctionCallOptions) Kind() Kind { return KindFunctionCallOptions }

func (n *FunctionCallOptions) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = appendNode(out, n.Expression)
	}

	out = append(out, n.Options...)

	return out
}

func (n *FunctionCallOptions) isExpression() {}

// NewExpression is `new T`.
type NewExpression struct {
	Base

	TypeName         TypeName // structural
	TypeDescriptions TypeDescriptions
}

func (n *NewExpression) Kind() Kind { return KindNewExpression }

func (n *NewExpression) Children() []Node {
	var out []Node
	if n.TypeName != nil {
		out = appendNode(out, n.TypeName)
	}

	return out
}

func (n *NewExpression) isExpression() {}

// TupleExpression is `(a, b, c)` or an inline array `[a, b, c]`; Components
// may contain nil entries for omitted tuple slots (`(a, , c)`).
type TupleExpression struct {
	Base

	Components []Node // structural, may contain nil entries
	IsInlineArray bool
	TypeDescriptions TypeDescriptions
}

func (n *TupleExpression) Kind() Kind { return KindTupleExpression }

func (n *TupleExpression) Children() []Node {
	var out []Node
	for _, c := range n.Components {
		if c != nil {
			out = appendNode(out, c)
		}
	}

	return out
}

func (n *TupleExpression) isExpression() {}

// ElementaryTypeNameExpression is an elementary type used as an expression,
// e.g. the `uint256` in `uint256(x)`.
type ElementaryTypeNameExpression struct {
	Base

	TypeName *ElementaryTypeName // structural
	TypeDescriptions TypeDescriptions
}

func (n *ElementaryTypeNameExpression) Kind() Kind { return KindElementaryTypeNameExpression }

func (n *ElementaryTypeNameExpression) Children() []Node {
	var out []Node
	if n.TypeName != nil {
		out = appendNode(out, n.TypeName)
	}

	return out
}

func (n *ElementaryTypeNameExpression) isExpression() {}
