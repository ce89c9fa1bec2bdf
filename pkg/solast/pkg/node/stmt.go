package node

// Statement is implemented by every statement-family variant.
type Statement interface {
	Node
	isStatement()
}

// Block is `{ ... }`, an ordered sequence of statements.
type Block struct {
	Base

	Statements []Statement // structural
}

func (n *Block) Kind() Kind { return KindBlock }

func (n *Block) Children() []Node {
	out := make([]Node, len(n.Statements))
	for i, s := range n.Statements {
		out[i] = s
	}

	return out
}

func (n *Block) isStatement() {}

// UncheckedBlock is `unchecked { ... }` (0.8.0+).
type UncheckedBlock struct {
	Base

	Statements []Statement // structural
}

func (n *UncheckedBlock) Kind() Kind { return KindUncheckedBlock }

func (n *UncheckedBlock) Children() []Node {
	out := make([]Node, len(n.Statements))
	for i, s := range n.Statements {
		out[i] = s
	}

	return out
}

func (n *UncheckedBlock) isStatement() {}

// IfStatement is `if (cond) trueBody [else falseBody]`.
type IfStatement struct {
	Base

	Condition  Node      // structural, expression
	TrueBody   Statement // structural
	FalseBody  Statement // structural, optional
}

func (n *IfStatement) Kind() Kind { return KindIfStatement }

func (n *IfStatement) Children() []Node {
	var out []Node
	if n.Condition != nil {
		out = appendNode(out, n.Condition)
	}

	if n.TrueBody != nil {
		out = appendNode(out, n.TrueBody)
	}

	if n.FalseBody != nil {
		out = appendNode(out, n.FalseBody)
	}

	return out
}

func (n *IfStatement) isStatement() {}

// ForStatement is `for (init; cond; loop) body`; any clause may be absent.
type ForStatement struct {
	Base

	InitializationExpression Statement // structural, optional
	Condition                Node      // structural, optional expression
	LoopExpression           Statement // structural, optional (an ExpressionStatement)
	Body                     Statement // structural
}

func (n *ForStatement) Kind() Kind { return KindForStatement }

func (n *ForStatement) Children() []Node {
	var out []Node
	if n.InitializationExpression != nil {
		out = appendNode(out, n.InitializationExpression)
	}

	if n.Condition != nil {
		out = appendNode(out, n.Condition)
	}

	if n.LoopExpression != nil {
		out = appendNode(out, n.LoopExpression)
	}

	if n.Body != nil {
		out = appendNode(out, n.Body)
	}

	return out
}

func (n *ForStatement) isStatement() {}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Base

	Condition Node      // structural expression
	Body      Statement // structural
}

func (n *WhileStatement) Kind() Kind { return KindWhileStatement }

func (n *WhileStatement) Children() []Node {
	var out []Node
	if n.Condition != nil {
		out = appendNode(out, n.Condition)
	}

	if n.Body != nil {
		out = appendNode(out, n.Body)
	}

	return out
}

func (n *WhileStatement) isStatement() {}

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	Base

	Body      Statement // structural
	Condition Node      // structural expression
}

func (n *DoWhileStatement) Kind() Kind { return KindDoWhileStatement }

func (n *DoWhileStatement) Children() []Node {
	var out []Node
	if n.Body != nil {
		out = appendNode(out, n.Body)
	}

	if n.Condition != nil {
		out = appendNode(out, n.Condition)
	}

	return out
}

func (n *DoWhileStatement) isStatement() {}

// Return is `return [expr];`.
type Return struct {
	Base

	Expression          Node  // structural, optional
	FunctionReturnParameters RefID // referential: the enclosing function's ParameterList
}

func (n *Return) Kind() Kind { return KindReturn }

func (n *Return) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = appendNode(out, n.Expression)
	}

	return out
}

func (n *Return) isStatement() {}

func (n *Return) VFunctionReturnParameters() Node {
	return n.context().LookupRef(n.FunctionReturnParameters)
}

// Break is a leaf: `break;`.
type Break struct{ Base }

func (n *Break) Kind() Kind       { return KindBreak }
func (n *Break) Children() []Node { return nil }
func (n *Break) isStatement()     {}

// Continue is a leaf: `continue;`.
type Continue struct{ Base }

func (n *Continue) Kind() Kind       { return KindContinue }
func (n *Continue) Children() []Node { return nil }
func (n *Continue) isStatement()     {}

// Throw is a leaf: `throw;` (removed in 0.5.0, legacy-only).
type Throw struct{ Base }

func (n *Throw) Kind() Kind       { return KindThrow }
func (n *Throw) Children() []Node { return nil }
func (n *Throw) isStatement()     {}

// EmitStatement is `emit Event(args);`.
type EmitStatement struct {
	Base

	EventCall *FunctionCall // structural
}

func (n *EmitStatement) Kind() Kind { return KindEmitStatement }

func (n *EmitStatement) Children() []Node {
	var out []Node
	if n.EventCall != nil {
		out = appendNode(out, n.EventCall)
	}

	return out
}

func (n *EmitStatement) isStatement() {}

// RevertStatement is `revert Error(args);` (0.8.4+).
type RevertStatement struct {
	Base

	ErrorCall *FunctionCall // structural
}

func (n *RevertStatement) Kind() Kind { return KindRevertStatement }

func (n *RevertStatement) Children() []Node {
	var out []Node
	if n.ErrorCall != nil {
		out = appendNode(out, n.ErrorCall)
	}

	return out
}

func (n *RevertStatement) isStatement() {}

// ExpressionStatement wraps a bare expression used as a statement.
type ExpressionStatement struct {
	Base

	Expression Node // structural
}

func (n *ExpressionStatement) Kind() Kind { return KindExpressionStatement }

func (n *ExpressionStatement) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = appendNode(out, n.Expression)
	}

	return out
}

func (n *ExpressionStatement) isStatement() {}

// VariableDeclarationStatement is `T a [= v];` or a tuple destructuring
// `(T a, , T b) = expr;`. Assignments parallels Declarations positionally;
// a zero RefID in Assignments marks an omitted tuple position, preserved
// verbatim through copy.
type VariableDeclarationStatement struct {
	Base

	Assignments  []RefID                // referential, ordered, nullable elements
	Declarations []*VariableDeclaration // structural, ordered; nil slots for omitted tuple positions
	InitialValue Node                   // structural, optional expression
}

func (n *VariableDeclarationStatement) Kind() Kind { return KindVariableDeclarationStatement }

func (n *VariableDeclarationStatement) Children() []Node {
	var out []Node
	for _, d := range n.Declarations {
		if d != nil {
			out = appendNode(out, d)
		}
	}

	if n.InitialValue != nil {
		out = appendNode(out, n.InitialValue)
	}

	return out
}

func (n *VariableDeclarationStatement) isStatement() {}

// VAssignments dereferences Assignments, preserving nulls as nil entries.
func (n *VariableDeclarationStatement) VAssignments() []Node {
	return n.context().LookupRefList(n.Assignments)
}

// TryStatement is `try expr returns (...) { ... } catch ... {}`.
type TryStatement struct {
	Base

	ExternalCall Node             // structural expression
	Clauses      []*TryCatchClause // structural, first clause is the success branch
}

func (n *TryStatement) Kind() Kind { return KindTryStatement }

func (n *TryStatement) Children() []Node {
	var out []Node
	if n.ExternalCall != nil {
		out = appendNode(out, n.ExternalCall)
	}

	for _, c := range n.Clauses {
		out = appendNode(out, c)
	}

	return out
}

func (n *TryStatement) isStatement() {}

// TryCatchClause is one `returns (...) {...}` or `catch [Error](...) {...}`
// arm of a TryStatement.
type TryCatchClause struct {
	Base

	ErrorName  string // "" for the success branch or a bare `catch {}`
	Parameters *ParameterList // structural, optional
	Block      *Block         // structural
}

func (n *TryCatchClause) Kind() Kind { return KindTryCatchClause }

func (n *TryCatchClause) Children() []Node {
	var out []Node
	if n.Parameters != nil {
		out = appendNode(out, n.Parameters)
	}

	if n.Block != nil {
		out = appendNode(out, n.Block)
	}

	return out
}

func (n *TryCatchClause) isStatement() {}

// InlineAssembly is a leaf: `assembly { ... }`. The embedded Yul block is
// treated as opaque text (grammar-driven Yul parsing is out of scope).
type InlineAssembly struct {
	Base

	AST string // raw Yul source or its own JSON fragment, kept verbatim
}

func (n *InlineAssembly) Kind() Kind       { return KindInlineAssembly }
func (n *InlineAssembly) Children() []Node { return nil }
func (n *InlineAssembly) isStatement()     {}

// PlaceholderStatement is a leaf: the `_;` inside a modifier body.
type PlaceholderStatement struct{ Base }

func (n *PlaceholderStatement) Kind() Kind       { return KindPlaceholderStatement }
func (n *PlaceholderStatement) Children() []Node { return nil }
func (n *PlaceholderStatement) isStatement()     {}
