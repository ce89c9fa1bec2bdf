package node

// Copy deep-copies the subtree rooted at root into f's context, per §4.2:
//
//  1. walk root's structural subtree in pre-order, producing old_id -> new_id;
//  2. recreate each node with a fresh id, copying value attributes verbatim;
//  3. for each referential attribute, substitute new_id when the referent
//     lies in the subtree, else keep the original id;
//  4. rewire structural children bottom-up so parent pointers are correct.
//
// The result has a fresh, disjoint id range, identical structural shape, and
// semantically equivalent external references.
func (f *Factory) Copy(root Node) Node {
	remap := make(map[int]int)
	reserveIDs(f, root, remap)

	return copyNode(f, root, remap)
}

// reserveIDs walks n's structural subtree in pre-order and reserves a fresh
// id for every node found, recording old->new in remap.
func reserveIDs(f *Factory, n Node, remap map[int]int) {
	if n == nil {
		return
	}

	remap[n.ID()] = f.ctx.FreshId()

	for _, c := range n.Children() {
		reserveIDs(f, c, remap)
	}
}

// remapRef substitutes id with its reserved replacement when id names a node
// inside the copied subtree; external references are kept verbatim.
func remapRef(remap map[int]int, id RefID) RefID {
	if id == 0 {
		return 0
	}

	if nid, ok := remap[int(id)]; ok {
		return RefID(nid)
	}

	return id
}

func remapRefList(remap map[int]int, ids []RefID) []RefID {
	out := make([]RefID, len(ids))
	for i, id := range ids {
		out[i] = remapRef(remap, id)
	}

	return out
}

func remapSymbolMap(remap map[int]int, m map[string][]RefID) map[string][]RefID {
	out := make(map[string][]RefID, len(m))
	for k, ids := range m {
		out[k] = remapRefList(remap, ids)
	}

	return out
}

// register finalizes a cloned node: assigns its reserved id, registers it in
// the context, and re-parents its (already-copied) structural children.
func (f *Factory) register(n Node, newID int) Node {
	setID(n, newID)
	_ = f.ctx.Register(n)
	f.acceptChildren(n)

	return n
}

func copyTypeName(f *Factory, t TypeName, remap map[int]int) TypeName {
	if t == nil {
		return nil
	}

	out, _ := copyNode(f, t, remap).(TypeName)

	return out
}

func copyStatement(f *Factory, s Statement, remap map[int]int) Statement {
	if s == nil {
		return nil
	}

	out, _ := copyNode(f, s, remap).(Statement)

	return out
}

func copyNodeSlice(f *Factory, nodes []Node, remap map[int]int) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = copyNode(f, n, remap) // nil n copies to nil via copyNode's guard
	}

	return out
}

// copyNode dispatches on concrete kind and reconstructs n with a shallow
// struct copy (duplicating every value attribute at once), then replaces
// structural-child fields and referential-attribute fields with their
// recursively copied / remapped counterparts.
func copyNode(f *Factory, n Node, remap map[int]int) Node {
	if n == nil {
		return nil
	}

	newID := remap[n.ID()]

	switch v := n.(type) {
	case *SourceUnit:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Nodes = copyNodeSlice(f, v.Nodes, remap)
		cp.ExportedSymbols = remapSymbolMap(remap, v.ExportedSymbols)

		return f.register(&cp, newID)
	case *PragmaDirective:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)
	case *ImportDirective:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.SourceUnit = remapRef(remap, v.SourceUnit)
		cp.SymbolAliases = make([]SymbolAlias, len(v.SymbolAliases))
		for i, a := range v.SymbolAliases {
			cp.SymbolAliases[i] = SymbolAlias{Foreign: remapRef(remap, a.Foreign), Local: a.Local}
		}

		return f.register(&cp, newID)
	case *InheritanceSpecifier:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.BaseName != nil {
			cp.BaseName, _ = copyNode(f, v.BaseName, remap).(*IdentifierPath)
		}
		cp.Arguments = copyNodeSlice(f, v.Arguments, remap)

		return f.register(&cp, newID)
	case *ModifierInvocation:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.ModifierName != nil {
			cp.ModifierName, _ = copyNode(f, v.ModifierName, remap).(*IdentifierPath)
		}
		cp.Arguments = copyNodeSlice(f, v.Arguments, remap)

		return f.register(&cp, newID)
	case *OverrideSpecifier:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Overrides = make([]*IdentifierPath, len(v.Overrides))
		for i, o := range v.Overrides {
			cp.Overrides[i], _ = copyNode(f, o, remap).(*IdentifierPath)
		}

		return f.register(&cp, newID)
	case *ParameterList:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Parameters = make([]*VariableDeclaration, len(v.Parameters))
		for i, p := range v.Parameters {
			cp.Parameters[i], _ = copyNode(f, p, remap).(*VariableDeclaration)
		}

		return f.register(&cp, newID)
	case *UsingForDirective:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.LibraryName != nil {
			cp.LibraryName, _ = copyNode(f, v.LibraryName, remap).(*IdentifierPath)
		}
		cp.FunctionList = make([]*IdentifierPath, len(v.FunctionList))
		for i, fn := range v.FunctionList {
			cp.FunctionList[i], _ = copyNode(f, fn, remap).(*IdentifierPath)
		}
		cp.TypeName = copyTypeName(f, v.TypeName, remap)

		return f.register(&cp, newID)
	case *StructuredDocumentation:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)
	case *IdentifierPath:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.ReferencedDeclaration = remapRef(remap, v.ReferencedDeclaration)

		return f.register(&cp, newID)

	case *ContractDefinition:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.Documentation != nil {
			cp.Documentation, _ = copyNode(f, v.Documentation, remap).(*StructuredDocumentation)
		}
		cp.BaseContracts = make([]*InheritanceSpecifier, len(v.BaseContracts))
		for i, b := range v.BaseContracts {
			cp.BaseContracts[i], _ = copyNode(f, b, remap).(*InheritanceSpecifier)
		}
		cp.Nodes = copyNodeSlice(f, v.Nodes, remap)
		cp.Scope = remapRef(remap, v.Scope)
		cp.LinearizedBaseContracts = remapRefList(remap, v.LinearizedBaseContracts)
		cp.ContractDependencies = remapRefList(remap, v.ContractDependencies)
		cp.UsedErrors = remapRefList(remap, v.UsedErrors)

		return f.register(&cp, newID)
	case *FunctionDefinition:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.Documentation != nil {
			cp.Documentation, _ = copyNode(f, v.Documentation, remap).(*StructuredDocumentation)
		}
		if v.Parameters != nil {
			cp.Parameters, _ = copyNode(f, v.Parameters, remap).(*ParameterList)
		}
		if v.ReturnParameters != nil {
			cp.ReturnParameters, _ = copyNode(f, v.ReturnParameters, remap).(*ParameterList)
		}
		cp.Modifiers = make([]*ModifierInvocation, len(v.Modifiers))
		for i, m := range v.Modifiers {
			cp.Modifiers[i], _ = copyNode(f, m, remap).(*ModifierInvocation)
		}
		if v.Overrides != nil {
			cp.Overrides, _ = copyNode(f, v.Overrides, remap).(*OverrideSpecifier)
		}
		if v.Body != nil {
			cp.Body, _ = copyNode(f, v.Body, remap).(*Block)
		}
		cp.Scope = remapRef(remap, v.Scope)

		return f.register(&cp, newID)
	case *ModifierDefinition:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.Documentation != nil {
			cp.Documentation, _ = copyNode(f, v.Documentation, remap).(*StructuredDocumentation)
		}
		if v.Parameters != nil {
			cp.Parameters, _ = copyNode(f, v.Parameters, remap).(*ParameterList)
		}
		if v.Overrides != nil {
			cp.Overrides, _ = copyNode(f, v.Overrides, remap).(*OverrideSpecifier)
		}
		if v.Body != nil {
			cp.Body, _ = copyNode(f, v.Body, remap).(*Block)
		}
		cp.Scope = remapRef(remap, v.Scope)

		return f.register(&cp, newID)
	case *EventDefinition:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.Documentation != nil {
			cp.Documentation, _ = copyNode(f, v.Documentation, remap).(*StructuredDocumentation)
		}
		if v.Parameters != nil {
			cp.Parameters, _ = copyNode(f, v.Parameters, remap).(*ParameterList)
		}
		cp.Scope = remapRef(remap, v.Scope)

		return f.register(&cp, newID)
	case *ErrorDefinition:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.Documentation != nil {
			cp.Documentation, _ = copyNode(f, v.Documentation, remap).(*StructuredDocumentation)
		}
		if v.Parameters != nil {
			cp.Parameters, _ = copyNode(f, v.Parameters, remap).(*ParameterList)
		}
		cp.Scope = remapRef(remap, v.Scope)

		return f.register(&cp, newID)
	case *StructDefinition:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Members = make([]*VariableDeclaration, len(v.Members))
		for i, m := range v.Members {
			cp.Members[i], _ = copyNode(f, m, remap).(*VariableDeclaration)
		}
		cp.Scope = remapRef(remap, v.Scope)

		return f.register(&cp, newID)
	case *EnumDefinition:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Members = make([]*EnumValue, len(v.Members))
		for i, m := range v.Members {
			cp.Members[i], _ = copyNode(f, m, remap).(*EnumValue)
		}
		cp.Scope = remapRef(remap, v.Scope)

		return f.register(&cp, newID)
	case *EnumValue:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)
	case *UserDefinedValueTypeDefinition:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.UnderlyingType = copyTypeName(f, v.UnderlyingType, remap)
		cp.Scope = remapRef(remap, v.Scope)

		return f.register(&cp, newID)
	case *VariableDeclaration:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.TypeName = copyTypeName(f, v.TypeName, remap)
		if v.Overrides != nil {
			cp.Overrides, _ = copyNode(f, v.Overrides, remap).(*OverrideSpecifier)
		}
		cp.Value = copyNode(f, v.Value, remap)
		cp.Scope = remapRef(remap, v.Scope)

		return f.register(&cp, newID)

	case *ElementaryTypeName:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)
	case *UserDefinedTypeName:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.Path != nil {
			cp.Path, _ = copyNode(f, v.Path, remap).(*IdentifierPath)
		}
		cp.ReferencedDeclaration = remapRef(remap, v.ReferencedDeclaration)

		return f.register(&cp, newID)
	case *ArrayTypeName:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.BaseType = copyTypeName(f, v.BaseType, remap)
		cp.Length = copyNode(f, v.Length, remap)

		return f.register(&cp, newID)
	case *Mapping:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.KeyType = copyTypeName(f, v.KeyType, remap)
		cp.ValueType = copyTypeName(f, v.ValueType, remap)

		return f.register(&cp, newID)
	case *FunctionTypeName:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.Parameters != nil {
			cp.Parameters, _ = copyNode(f, v.Parameters, remap).(*ParameterList)
		}
		if v.ReturnParameters != nil {
			cp.ReturnParameters, _ = copyNode(f, v.ReturnParameters, remap).(*ParameterList)
		}

		return f.register(&cp, newID)

	case *Block:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Statements = make([]Statement, len(v.Statements))
		for i, s := range v.Statements {
			cp.Statements[i] = copyStatement(f, s, remap)
		}

		return f.register(&cp, newID)
	case *UncheckedBlock:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Statements = make([]Statement, len(v.Statements))
		for i, s := range v.Statements {
			cp.Statements[i] = copyStatement(f, s, remap)
		}

		return f.register(&cp, newID)
	case *IfStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Condition = copyNode(f, v.Condition, remap)
		cp.TrueBody = copyStatement(f, v.TrueBody, remap)
		cp.FalseBody = copyStatement(f, v.FalseBody, remap)

		return f.register(&cp, newID)
	case *ForStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.InitializationExpression = copyStatement(f, v.InitializationExpression, remap)
		cp.Condition = copyNode(f, v.Condition, remap)
		cp.LoopExpression = copyStatement(f, v.LoopExpression, remap)
		cp.Body = copyStatement(f, v.Body, remap)

		return f.register(&cp, newID)
	case *WhileStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Condition = copyNode(f, v.Condition, remap)
		cp.Body = copyStatement(f, v.Body, remap)

		return f.register(&cp, newID)
	case *DoWhileStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Body = copyStatement(f, v.Body, remap)
		cp.Condition = copyNode(f, v.Condition, remap)

		return f.register(&cp, newID)
	case *Return:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Expression = copyNode(f, v.Expression, remap)
		cp.FunctionReturnParameters = remapRef(remap, v.FunctionReturnParameters)

		return f.register(&cp, newID)
	case *Break:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)
	case *Continue:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)
	case *Throw:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)
	case *EmitStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.EventCall != nil {
			cp.EventCall, _ = copyNode(f, v.EventCall, remap).(*FunctionCall)
		}

		return f.register(&cp, newID)
	case *RevertStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.ErrorCall != nil {
			cp.ErrorCall, _ = copyNode(f, v.ErrorCall, remap).(*FunctionCall)
		}

		return f.register(&cp, newID)
	case *ExpressionStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Expression = copyNode(f, v.Expression, remap)

		return f.register(&cp, newID)
	case *VariableDeclarationStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Assignments = remapRefList(remap, v.Assignments)
		cp.Declarations = make([]*VariableDeclaration, len(v.Declarations))
		for i, d := range v.Declarations {
			if d == nil {
				continue
			}

			cp.Declarations[i], _ = copyNode(f, d, remap).(*VariableDeclaration)
		}
		cp.InitialValue = copyNode(f, v.InitialValue, remap)

		return f.register(&cp, newID)
	case *TryStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.ExternalCall = copyNode(f, v.ExternalCall, remap)
		cp.Clauses = make([]*TryCatchClause, len(v.Clauses))
		for i, c := range v.Clauses {
			cp.Clauses[i], _ = copyNode(f, c, remap).(*TryCatchClause)
		}

		return f.register(&cp, newID)
	case *TryCatchClause:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.Parameters != nil {
			cp.Parameters, _ = copyNode(f, v.Parameters, remap).(*ParameterList)
		}
		if v.Block != nil {
			cp.Block, _ = copyNode(f, v.Block, remap).(*Block)
		}

		return f.register(&cp, newID)
	case *InlineAssembly:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)
	case *PlaceholderStatement:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)

	case *Literal:
		cp := *v
		cp.parent, cp.ctx = nil, nil

		return f.register(&cp, newID)
	case *Identifier:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.ReferencedDeclaration = remapRef(remap, v.ReferencedDeclaration)

		return f.register(&cp, newID)
	case *MemberAccess:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Expression = copyNode(f, v.Expression, remap)
		cp.ReferencedDeclaration = remapRef(remap, v.ReferencedDeclaration)

		return f.register(&cp, newID)
	case *IndexAccess:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.BaseExpression = copyNode(f, v.BaseExpression, remap)
		cp.IndexExpression = copyNode(f, v.IndexExpression, remap)

		return f.register(&cp, newID)
	case *IndexRangeAccess:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.BaseExpression = copyNode(f, v.BaseExpression, remap)
		cp.StartExpression = copyNode(f, v.StartExpression, remap)
		cp.EndExpression = copyNode(f, v.EndExpression, remap)

		return f.register(&cp, newID)
	case *UnaryOperation:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.SubExpression = copyNode(f, v.SubExpression, remap)

		return f.register(&cp, newID)
	case *BinaryOperation:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.LeftExpression = copyNode(f, v.LeftExpression, remap)
		cp.RightExpression = copyNode(f, v.RightExpression, remap)

		return f.register(&cp, newID)
	case *Assignment:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.LeftHandSide = copyNode(f, v.LeftHandSide, remap)
		cp.RightHandSide = copyNode(f, v.RightHandSide, remap)

		return f.register(&cp, newID)
	case *Conditional:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Condition = copyNode(f, v.Condition, remap)
		cp.TrueExpression = copyNode(f, v.TrueExpression, remap)
		cp.FalseExpression = copyNode(f, v.FalseExpression, remap)

		return f.register(&cp, newID)
	case *FunctionCall:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Expression = copyNode(f, v.Expression, remap)
		cp.Arguments = copyNodeSlice(f, v.Arguments, remap)

		return f.register(&cp, newID)
	case *FunctionCallOptions:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Expression = copyNode(f, v.Expression, remap)
		cp.Options = copyNodeSlice(f, v.Options, remap)

		return f.register(&cp, newID)
	case *NewExpression:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.TypeName = copyTypeName(f, v.TypeName, remap)

		return f.register(&cp, newID)
	case *TupleExpression:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		cp.Components = make([]Node, len(v.Components))
		for i, c := range v.Components {
			cp.Components[i] = copyNode(f, c, remap)
		}

		return f.register(&cp, newID)
	case *ElementaryTypeNameExpression:
		cp := *v
		cp.parent, cp.ctx = nil, nil
		if v.TypeName != nil {
			cp.TypeName, _ = copyNode(f, v.TypeName, remap).(*ElementaryTypeName)
		}

		return f.register(&cp, newID)
	}

	return nil
}
