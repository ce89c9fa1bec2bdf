package node

// Factory builds nodes bound to one Context: every constructor allocates a
// fresh id, registers the node, and rebinds the parent pointer of every
// structural child passed to it. Constructors are idempotent with respect to
// re-parenting: calling a constructor again with the same children simply
// rebinds them again.
type Factory struct {
	ctx *Context
}

// NewFactory returns a Factory that allocates into ctx.
func NewFactory(ctx *Context) *Factory { return &Factory{ctx: ctx} }

// Context returns the context this factory allocates into.
func (f *Factory) Context() *Context { return f.ctx }

// bind assigns n a fresh id, registers it, and re-parents every structural
// child n currently reports. It is called by every concrete constructor
// after the node's fields are populated.
func (f *Factory) bind(n Node) Node {
	id := f.ctx.FreshId()
	setID(n, id)

	// Registration cannot fail here: FreshId guarantees a new id.
	_ = f.ctx.Register(n)

	f.acceptChildren(n)

	return n
}

// acceptChildren rebinds every structural child's parent pointer to n. It is
// idempotent: re-running it after further mutation simply re-confirms
// parentage, matching the accept_children hook of §4.2.
func (f *Factory) acceptChildren(n Node) {
	for _, c := range n.Children() {
		if c != nil {
			c.setParent(n)
		}
	}
}

// setID is the only place outside construction allowed to assign a node's
// id; it exists because Base.id has no exported setter (ids never change
// after Register).
func setID(n Node, id int) {
	switch v := n.(type) {
	case *SourceUnit:
		v.id = id
	case *PragmaDirective:
		v.id = id
	case *ImportDirective:
		v.id = id
	case *InheritanceSpecifier:
		v.id = id
	case *ModifierInvocation:
		v.id = id
	case *OverrideSpecifier:
		v.id = id
	case *ParameterList:
		v.id = id
	case *UsingForDirective:
		v.id = id
	case *StructuredDocumentation:
		v.id = id
	case *IdentifierPath:
		v.id = id
	case *ContractDefinition:
		v.id = id
	case *FunctionDefinition:
		v.id = id
	case *ModifierDefinition:
		v.id = id
	case *EventDefinition:
		v.id = id
	case *ErrorDefinition:
		v.id = id
	case *StructDefinition:
		v.id = id
	case *EnumDefinition:
		v.id = id
	case *EnumValue:
		v.id = id
	case *UserDefinedValueTypeDefinition:
		v.id = id
	case *VariableDeclaration:
		v.id = id
	case *ElementaryTypeName:
		v.id = id
	case *UserDefinedTypeName:
		v.id = id
	case *ArrayTypeName:
		v.id = id
	case *Mapping:
		v.id = id
	case *FunctionTypeName:
		v.id = id
	case *Block:
		v.id = id
	case *UncheckedBlock:
		v.id = id
	case *IfStatement:
		v.id = id
	case *ForStatement:
		v.id = id
	case *WhileStatement:
		v.id = id
	case *DoWhileStatement:
		v.id = id
	case *Return:
		v.id = id
	case *Break:
		v.id = id
	case *Continue:
		v.id = id
	case *Throw:
		v.id = id
	case *EmitStatement:
		v.id = id
	case *RevertStatement:
		v.id = id
	case *ExpressionStatement:
		v.id = id
	case *VariableDeclarationStatement:
		v.id = id
	case *TryStatement:
		v.id = id
	case *TryCatchClause:
		v.id = id
	case *InlineAssembly:
		v.id = id
	case *PlaceholderStatement:
		v.id = id
	case *Literal:
		v.id = id
	case *Identifier:
		v.id = id
	case *MemberAccess:
		v.id = id
	case *IndexAccess:
		v.id = id
	case *IndexRangeAccess:
		v.id = id
	case *UnaryOperation:
		v.id = id
	case *BinaryOperation:
		v.id = id
	case *Assignment:
		v.id = id
	case *Conditional:
		v.id = id
	case *FunctionCall:
		v.id = id
	case *FunctionCallOptions:
		v.id = id
	case *NewExpression:
		v.id = id
	case *TupleExpression:
		v.id = id
	case *ElementaryTypeNameExpression:
		v.id = id
	}
}

// --- Meta constructors ---

func (f *Factory) NewSourceUnit(src Src, absolutePath, license string, nodes []Node, exported map[string][]RefID) *SourceUnit {
	n := &SourceUnit{Base: Base{src: src}, AbsolutePath: absolutePath, License: license, Nodes: nodes, ExportedSymbols: exported}
	f.bind(n)

	return n
}

func (f *Factory) NewPragmaDirective(src Src, literals []string) *PragmaDirective {
	n := &PragmaDirective{Base: Base{src: src}, Literals: literals}
	f.bind(n)

	return n
}

func (f *Factory) NewImportDirective(src Src, file, absolutePath, unitAlias string, aliases []SymbolAlias, srcUnit RefID) *ImportDirective {
	n := &ImportDirective{Base: Base{src: src}, File: file, AbsolutePath: absolutePath, UnitAlias: unitAlias, SymbolAliases: aliases, SourceUnit: srcUnit}
	f.bind(n)

	return n
}

func (f *Factory) NewInheritanceSpecifier(src Src, baseName *IdentifierPath, args []Node) *InheritanceSpecifier {
	n := &InheritanceSpecifier{Base: Base{src: src}, BaseName: baseName, Arguments: args}
	f.bind(n)

	return n
}

func (f *Factory) NewModifierInvocation(src Src, modifierName *IdentifierPath, args []Node) *ModifierInvocation {
	n := &ModifierInvocation{Base: Base{src: src}, ModifierName: modifierName, Arguments: args}
	f.bind(n)

	return n
}

func (f *Factory) NewOverrideSpecifier(src Src, overrides []*IdentifierPath) *OverrideSpecifier {
	n := &OverrideSpecifier{Base: Base{src: src}, Overrides: overrides}
	f.bind(n)

	return n
}

func (f *Factory) NewParameterList(src Src, params []*VariableDeclaration) *ParameterList {
	n := &ParameterList{Base: Base{src: src}, Parameters: params}
	f.bind(n)

	return n
}

func (f *Factory) NewUsingForDirective(src Src, library *IdentifierPath, funcs []*IdentifierPath, typ TypeName, global bool) *UsingForDirective {
	n := &UsingForDirective{Base: Base{src: src}, LibraryName: library, FunctionList: funcs, TypeName: typ, Global: global}
	f.bind(n)

	return n
}

func (f *Factory) NewStructuredDocumentation(src Src, text string) *StructuredDocumentation {
	n := &StructuredDocumentation{Base: Base{src: src}, Text: text}
	f.bind(n)

	return n
}

func (f *Factory) NewIdentifierPath(src Src, name string, ref RefID) *IdentifierPath {
	n := &IdentifierPath{Base: Base{src: src}, Name: name, ReferencedDeclaration: ref}
	f.bind(n)

	return n
}

// --- Declaration constructors ---

func (f *Factory) NewContractDefinition(src Src, name, kind string, abstract, fullyImplemented bool,
	doc *StructuredDocumentation, bases []*InheritanceSpecifier, members []Node,
	scope RefID, linearized, deps, usedErrors []RefID,
) *ContractDefinition {
	n := &ContractDefinition{
		Base: Base{src: src}, Name: name, ContractKind: kind, Abstract: abstract,
		FullyImplemented: fullyImplemented, Documentation: doc, BaseContracts: bases, Nodes: members,
		Scope: scope, LinearizedBaseContracts: linearized, ContractDependencies: deps, UsedErrors: usedErrors,
	}
	f.bind(n)

	return n
}

func (f *Factory) NewFunctionDefinition(src Src, name, kind, visibility, mutability string, virtual bool,
	doc *StructuredDocumentation, params, rets *ParameterList, mods []*ModifierInvocation,
	overrides *OverrideSpecifier, body *Block, scope RefID,
) *FunctionDefinition {
	n := &FunctionDefinition{
		Base: Base{src: src}, Name: name, FunctionKind: kind, Visibility: visibility, StateMutability: mutability,
		Virtual: virtual, Documentation: doc, Parameters: params, ReturnParameters: rets, Modifiers: mods,
		Overrides: overrides, Body: body, Scope: scope,
	}
	f.bind(n)

	return n
}

func (f *Factory) NewModifierDefinition(src Src, name string, virtual bool, doc *StructuredDocumentation,
	params *ParameterList, overrides *OverrideSpecifier, body *Block, scope RefID,
) *ModifierDefinition {
	n := &ModifierDefinition{
		Base: Base{src: src}, Name: name, Virtual: virtual, Documentation: doc,
		Parameters: params, Overrides: overrides, Body: body, Scope: scope,
	}
	f.bind(n)

	return n
}

func (f *Factory) NewEventDefinition(src Src, name string, anonymous bool, doc *StructuredDocumentation,
	params *ParameterList, scope RefID,
) *EventDefinition {
	n := &EventDefinition{Base: Base{src: src}, Name: name, Anonymous: anonymous, Documentation: doc, Parameters: params, Scope: scope}
	f.bind(n)

	return n
}

func (f *Factory) NewErrorDefinition(src Src, name string, doc *StructuredDocumentation, params *ParameterList, scope RefID) *ErrorDefinition {
	n := &ErrorDefinition{Base: Base{src: src}, Name: name, Documentation: doc, Parameters: params, Scope: scope}
	f.bind(n)

	return n
}

func (f *Factory) NewStructDefinition(src Src, name string, members []*VariableDeclaration, scope RefID, visibility string) *StructDefinition {
	n := &StructDefinition{Base: Base{src: src}, Name: name, Members: members, Scope: scope, Visibility: visibility}
	f.bind(n)

	return n
}

func (f *Factory) NewEnumDefinition(src Src, name string, members []*EnumValue, scope RefID) *EnumDefinition {
	n := &EnumDefinition{Base: Base{src: src}, Name: name, Members: members, Scope: scope}
	f.bind(n)

	return n
}

func (f *Factory) NewEnumValue(src Src, name string) *EnumValue {
	n := &EnumValue{Base: Base{src: src}, Name: name}
	f.bind(n)

	return n
}

func (f *Factory) NewUserDefinedValueTypeDefinition(src Src, name string, underlying TypeName, scope RefID) *UserDefinedValueTypeDefinition {
	n := &UserDefinedValueTypeDefinition{Base: Base{src: src}, Name: name, UnderlyingType: underlying, Scope: scope}
	f.bind(n)

	return n
}

func (f *Factory) NewVariableDeclaration(src Src, name string, typ TypeName, visibility string, constant bool,
	mutability string, stateVariable bool, storage string, value Node, overrides *OverrideSpecifier,
	doc *StructuredDocumentation, indexed bool, td TypeDescriptions, scope RefID,
) *VariableDeclaration {
	n := &VariableDeclaration{
		Base: Base{src: src}, Name: name, TypeName: typ, Visibility: visibility, Constant: constant,
		Mutability: mutability, StateVariable: stateVariable, StorageLocation: storage, Value: value,
		Overrides: overrides, Documentation: doc, Indexed: indexed, TypeDescriptions: td, Scope: scope,
	}
	f.bind(n)

	return n
}

// --- Type name constructors ---

func (f *Factory) NewElementaryTypeName(src Src, name, mutability string, td TypeDescriptions) *ElementaryTypeName {
	n := &ElementaryTypeName{Base: Base{src: src}, Name: name, StateMutability: mutability, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewUserDefinedTypeName(src Src, path *IdentifierPath, name string, ref RefID, td TypeDescriptions) *UserDefinedTypeName {
	n := &UserDefinedTypeName{Base: Base{src: src}, Path: path, Name: name, ReferencedDeclaration: ref, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewArrayTypeName(src Src, base TypeName, length Node, td TypeDescriptions) *ArrayTypeName {
	n := &ArrayTypeName{Base: Base{src: src}, BaseType: base, Length: length, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewMapping(src Src, key, value TypeName, keyName, valueName string, td TypeDescriptions) *Mapping {
	n := &Mapping{Base: Base{src: src}, KeyType: key, ValueType: value, KeyName: keyName, ValueName: valueName, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewFunctionTypeName(src Src, visibility, mutability string, params, rets *ParameterList, td TypeDescriptions) *FunctionTypeName {
	n := &FunctionTypeName{Base: Base{src: src}, Visibility: visibility, StateMutability: mutability, Parameters: params, ReturnParameters: rets, TypeDescriptions: td}
	f.bind(n)

	return n
}

// --- Statement constructors ---

func (f *Factory) NewBlock(src Src, stmts []Statement) *Block {
	n := &Block{Base: Base{src: src}, Statements: stmts}
	f.bind(n)

	return n
}

func (f *Factory) NewUncheckedBlock(src Src, stmts []Statement) *UncheckedBlock {
	n := &UncheckedBlock{Base: Base{src: src}, Statements: stmts}
	f.bind(n)

	return n
}

func (f *Factory) NewIfStatement(src Src, cond Node, trueBody, falseBody Statement) *IfStatement {
	n := &IfStatement{Base: Base{src: src}, Condition: cond, TrueBody: trueBody, FalseBody: falseBody}
	f.bind(n)

	return n
}

func (f *Factory) NewForStatement(src Src, init Statement, cond Node, loop Statement, body Statement) *ForStatement {
	n := &ForStatement{Base: Base{src: src}, InitializationExpression: init, Condition: cond, LoopExpression: loop, Body: body}
	f.bind(n)

	return n
}

func (f *Factory) NewWhileStatement(src Src, cond Node, body Statement) *WhileStatement {
	n := &WhileStatement{Base: Base{src: src}, Condition: cond, Body: body}
	f.bind(n)

	return n
}

func (f *Factory) NewDoWhileStatement(src Src, body Statement, cond Node) *DoWhileStatement {
	n := &DoWhileStatement{Base: Base{src: src}, Body: body, Condition: cond}
	f.bind(n)

	return n
}

func (f *Factory) NewReturn(src Src, expr Node, retParams RefID) *Return {
	n := &Return{Base: Base{src: src}, Expression: expr, FunctionReturnParameters: retParams}
	f.bind(n)

	return n
}

func (f *Factory) NewBreak(src Src) *Break {
	n := &Break{Base: Base{src: src}}
	f.bind(n)

	return n
}

func (f *Factory) NewContinue(src Src) *Continue {
	n := &Continue{Base: Base{src: src}}
	f.bind(n)

	return n
}

func (f *Factory) NewThrow(src Src) *Throw {
	n := &Throw{Base: Base{src: src}}
	f.bind(n)

	return n
}

func (f *Factory) NewEmitStatement(src Src, call *FunctionCall) *EmitStatement {
	n := &EmitStatement{Base: Base{src: src}, EventCall: call}
	f.bind(n)

	return n
}

func (f *Factory) NewRevertStatement(src Src, call *FunctionCall) *RevertStatement {
	n := &RevertStatement{Base: Base{src: src}, ErrorCall: call}
	f.bind(n)

	return n
}

func (f *Factory) NewExpressionStatement(src Src, expr Node) *ExpressionStatement {
	n := &ExpressionStatement{Base: Base{src: src}, Expression: expr}
	f.bind(n)

	return n
}

func (f *Factory) NewVariableDeclarationStatement(src Src, assignments []RefID, decls []*VariableDeclaration, initial Node) *VariableDeclarationStatement {
	n := &VariableDeclarationStatement{Base: Base{src: src}, Assignments: assignments, Declarations: decls, InitialValue: initial}
	f.bind(n)

	return n
}

func (f *Factory) NewTryStatement(src Src, call Node, clauses []*TryCatchClause) *TryStatement {
	n := &TryStatement{Base: Base{src: src}, ExternalCall: call, Clauses: clauses}
	f.bind(n)

	return n
}

func (f *Factory) NewTryCatchClause(src Src, errorName string, params *ParameterList, block *Block) *TryCatchClause {
	n := &TryCatchClause{Base: Base{src: src}, ErrorName: errorName, Parameters: params, Block: block}
	f.bind(n)

	return n
}

func (f *Factory) NewInlineAssembly(src Src, ast string) *InlineAssembly {
	n := &InlineAssembly{Base: Base{src: src}, AST: ast}
	f.bind(n)

	return n
}

func (f *Factory) NewPlaceholderStatement(src Src) *PlaceholderStatement {
	n := &PlaceholderStatement{Base: Base{src: src}}
	f.bind(n)

	return n
}

// --- Expression constructors ---

func (f *Factory) NewLiteral(src Src, kind, value, hexValue, subdenomination string, td TypeDescriptions) *Literal {
	n := &Literal{Base: Base{src: src}, LiteralKind: kind, Value: value, HexValue: hexValue, Subdenomination: subdenomination, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewIdentifier(src Src, name string, ref RefID, td TypeDescriptions) *Identifier {
	n := &Identifier{Base: Base{src: src}, Name: name, ReferencedDeclaration: ref, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewMemberAccess(src Src, expr Node, member string, ref RefID, td TypeDescriptions) *MemberAccess {
	n := &MemberAccess{Base: Base{src: src}, Expression: expr, MemberName: member, ReferencedDeclaration: ref, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewIndexAccess(src Src, base, index Node, td TypeDescriptions) *IndexAccess {
	n := &IndexAccess{Base: Base{src: src}, BaseExpression: base, IndexExpression: index, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewIndexRangeAccess(src Src, base, start, end Node, td TypeDescriptions) *IndexRangeAccess {
	n := &IndexRangeAccess{Base: Base{src: src}, BaseExpression: base, StartExpression: start, EndExpression: end, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewUnaryOperation(src Src, op string, prefix bool, sub Node, td TypeDescriptions) *UnaryOperation {
	n := &UnaryOperation{Base: Base{src: src}, Operator: op, Prefix: prefix, SubExpression: sub, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewBinaryOperation(src Src, op string, lhs, rhs Node, td TypeDescriptions) *BinaryOperation {
	n := &BinaryOperation{Base: Base{src: src}, Operator: op, LeftExpression: lhs, RightExpression: rhs, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewAssignment(src Src, op string, lhs, rhs Node, td TypeDescriptions) *Assignment {
	n := &Assignment{Base: Base{src: src}, Operator: op, LeftHandSide: lhs, RightHandSide: rhs, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewConditional(src Src, cond, trueExpr, falseExpr Node, td TypeDescriptions) *Conditional {
	n := &Conditional{Base: Base{src: src}, Condition: cond, TrueExpression: trueExpr, FalseExpression: falseExpr, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewFunctionCall(src Src, callee Node, args []Node, names []string, kind string, td TypeDescriptions) *FunctionCall {
	n := &FunctionCall{Base: Base{src: src}, Expression: callee, Arguments: args, NamedArguments: names, CallKind: kind, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewFunctionCallOptions(src Src, callee Node, opts []Node, names []string, td TypeDescriptions) *FunctionCallOptions {
	n := &FunctionCallOptions{Base: Base{src: src}, Expression: callee, Options: opts, Names: names, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewNewExpression(src Src, typ TypeName, td TypeDescriptions) *NewExpression {
	n := &NewExpression{Base: Base{src: src}, TypeName: typ, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewTupleExpression(src Src, components []Node, inlineArray bool, td TypeDescriptions) *TupleExpression {
	n := &TupleExpression{Base: Base{src: src}, Components: components, IsInlineArray: inlineArray, TypeDescriptions: td}
	f.bind(n)

	return n
}

func (f *Factory) NewElementaryTypeNameExpression(src Src, typ *ElementaryTypeName, td TypeDescriptions) *ElementaryTypeNameExpression {
	n := &ElementaryTypeNameExpression{Base: Base{src: src}, TypeName: typ, TypeDescriptions: td}
	f.bind(n)

	return n
}
