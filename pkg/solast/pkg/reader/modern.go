package reader

import (
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

// DefaultModernRegistry returns the builder table for the ≥0.4.12 schema:
// nodeType-tagged objects with named child fields, one-to-one with the JSON
// shape solc actually emits, per §4.3.
func DefaultModernRegistry() Registry {
	return Registry{
		"SourceUnit":                  buildModernSourceUnit,
		"PragmaDirective":             buildModernPragmaDirective,
		"ImportDirective":             buildModernImportDirective,
		"InheritanceSpecifier":        buildModernInheritanceSpecifier,
		"ModifierInvocation":          buildModernModifierInvocation,
		"OverrideSpecifier":           buildModernOverrideSpecifier,
		"ParameterList":               buildModernParameterList,
		"UsingForDirective":           buildModernUsingForDirective,
		"StructuredDocumentation":     buildModernStructuredDocumentation,
		"IdentifierPath":              buildModernIdentifierPath,

		"ContractDefinition":             buildModernContractDefinition,
		"FunctionDefinition":             buildModernFunctionDefinition,
		"ModifierDefinition":             buildModernModifierDefinition,
		"EventDefinition":                buildModernEventDefinition,
		"ErrorDefinition":                buildModernErrorDefinition,
		"StructDefinition":               buildModernStructDefinition,
		"EnumDefinition":                 buildModernEnumDefinition,
		"EnumValue":                      buildModernEnumValue,
		"UserDefinedValueTypeDefinition": buildModernUserDefinedValueTypeDefinition,
		"VariableDeclaration":            buildModernVariableDeclaration,

		"ElementaryTypeName":  buildModernElementaryTypeName,
		"UserDefinedTypeName": buildModernUserDefinedTypeName,
		"ArrayTypeName":       buildModernArrayTypeName,
		"Mapping":             buildModernMapping,
		"FunctionTypeName":    buildModernFunctionTypeName,

		"Block":                        buildModernBlock,
		"UncheckedBlock":               buildModernUncheckedBlock,
		"IfStatement":                  buildModernIfStatement,
		"ForStatement":                 buildModernForStatement,
		"WhileStatement":               buildModernWhileStatement,
		"DoWhileStatement":             buildModernDoWhileStatement,
		"Return":                       buildModernReturn,
		"Break":                        buildModernBreak,
		"Continue":                     buildModernContinue,
		"Throw":                        buildModernThrow,
		"EmitStatement":                buildModernEmitStatement,
		"RevertStatement":              buildModernRevertStatement,
		"ExpressionStatement":          buildModernExpressionStatement,
		"VariableDeclarationStatement": buildModernVariableDeclarationStatement,
		"TryStatement":                 buildModernTryStatement,
		"TryCatchClause":               buildModernTryCatchClause,
		"InlineAssembly":               buildModernInlineAssembly,
		"PlaceholderStatement":         buildModernPlaceholderStatement,

		"Literal":                      buildModernLiteral,
		"Identifier":                   buildModernIdentifier,
		"MemberAccess":                 buildModernMemberAccess,
		"IndexAccess":                  buildModernIndexAccess,
		"IndexRangeAccess":             buildModernIndexRangeAccess,
		"UnaryOperation":               buildModernUnaryOperation,
		"BinaryOperation":              buildModernBinaryOperation,
		"Assignment":                   buildModernAssignment,
		"Conditional":                  buildModernConditional,
		"FunctionCall":                 buildModernFunctionCall,
		"FunctionCallOptions":          buildModernFunctionCallOptions,
		"NewExpression":                buildModernNewExpression,
		"TupleExpression":              buildModernTupleExpression,
		"ElementaryTypeNameExpression": buildModernElementaryTypeNameExpression,
	}
}

func buildModernSourceUnit(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	nodes, err := bs.buildNodes(v.childList("nodes"))
	if err != nil {
		return nil, err
	}

	exported := map[string][]node.RefID{}
	// exportedSymbols is an object, not a named-field list; modern compiler
	// output nests it as {"name": [ids...]}. Readers decode it lazily
	// through the raw fragment rather than the view abstraction, since its
	// shape (a map, not a list of nodes or a single field) doesn't fit the
	// view interface's child/childList/refList accessors.
	if raws, ok := v.(*modernView); ok {
		exported = decodeExportedSymbols(raws.m["exportedSymbols"])
	}

	n := bs.f.NewSourceUnit(src, v.str("absolutePath"), v.str("license"), nodes, exported)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernPragmaDirective(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewPragmaDirective(src, v.strList("literals"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernImportDirective(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	aliases := decodeSymbolAliases(v)

	n := bs.f.NewImportDirective(src, v.str("file"), v.str("absolutePath"), v.str("unitAlias"), aliases, v.intRef("sourceUnit"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernInheritanceSpecifier(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var baseName *node.IdentifierPath
	if cv, ok := v.child("baseName"); ok {
		if baseName, err = bs.buildIdentifierPath(cv); err != nil {
			return nil, err
		}
	}

	args, err := bs.buildNodes(v.childList("arguments"))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewInheritanceSpecifier(src, baseName, args)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernModifierInvocation(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var modName *node.IdentifierPath
	if cv, ok := v.child("modifierName"); ok {
		if modName, err = bs.buildIdentifierPath(cv); err != nil {
			return nil, err
		}
	}

	var args []node.Node
	if _, ok := v.(*modernView).m["arguments"]; ok {
		args, err = bs.buildNodes(v.childList("arguments"))
		if err != nil {
			return nil, err
		}
	}

	n := bs.f.NewModifierInvocation(src, modName, args)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernOverrideSpecifier(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	overrides, err := bs.buildIdentifierPaths(v.childList("overrides"))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewOverrideSpecifier(src, overrides)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernParameterList(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	params, err := bs.buildVariableDeclarations(v.childList("parameters"))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewParameterList(src, params)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernUsingForDirective(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var library *node.IdentifierPath
	if cv, ok := v.child("libraryName"); ok {
		if library, err = bs.buildIdentifierPath(cv); err != nil {
			return nil, err
		}
	}

	funcs, err := bs.buildIdentifierPaths(v.childList("functionList"))
	if err != nil {
		return nil, err
	}

	var typ node.TypeName
	if cv, ok := v.child("typeName"); ok {
		if typ, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewUsingForDirective(src, library, funcs, typ, v.boolField("global"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernStructuredDocumentation(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewStructuredDocumentation(src, v.str("text"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernIdentifierPath(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewIdentifierPath(src, v.str("name"), v.intRef("referencedDeclaration"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernContractDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	bases, err := bs.buildInheritanceSpecifiers(v.childList("baseContracts"))
	if err != nil {
		return nil, err
	}

	members, err := bs.buildNodes(v.childList("nodes"))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewContractDefinition(src, v.str("name"), v.str("contractKind"), v.boolField("abstract"), v.boolField("fullyImplemented"),
		doc, bases, members, v.intRef("scope"), v.refList("linearizedBaseContracts"), v.refList("contractDependencies"), v.refList("usedErrors"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernFunctionDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	params, err := paramListChild(bs, v, "parameters")
	if err != nil {
		return nil, err
	}

	rets, err := paramListChild(bs, v, "returnParameters")
	if err != nil {
		return nil, err
	}

	mods, err := bs.buildModifierInvocations(v.childList("modifiers"))
	if err != nil {
		return nil, err
	}

	var overrides *node.OverrideSpecifier
	if cv, ok := v.child("overrides"); ok {
		if overrides, err = bs.buildOverrideSpecifier(cv); err != nil {
			return nil, err
		}
	}

	var body *node.Block
	if cv, ok := v.child("body"); ok {
		if body, err = bs.buildBlock(cv); err != nil {
			return nil, err
		}
	}

	kind, ok := v.optStr("kind")
	if !ok {
		kind = "function"
	}

	n := bs.f.NewFunctionDefinition(src, v.str("name"), kind, v.str("visibility"), v.str("stateMutability"), v.boolField("virtual"),
		doc, params, rets, mods, overrides, body, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernModifierDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	params, err := paramListChild(bs, v, "parameters")
	if err != nil {
		return nil, err
	}

	var overrides *node.OverrideSpecifier
	if cv, ok := v.child("overrides"); ok {
		if overrides, err = bs.buildOverrideSpecifier(cv); err != nil {
			return nil, err
		}
	}

	var body *node.Block
	if cv, ok := v.child("body"); ok {
		if body, err = bs.buildBlock(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewModifierDefinition(src, v.str("name"), v.boolField("virtual"), doc, params, overrides, body, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernEventDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	params, err := paramListChild(bs, v, "parameters")
	if err != nil {
		return nil, err
	}

	n := bs.f.NewEventDefinition(src, v.str("name"), v.boolField("anonymous"), doc, params, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernErrorDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	params, err := paramListChild(bs, v, "parameters")
	if err != nil {
		return nil, err
	}

	n := bs.f.NewErrorDefinition(src, v.str("name"), doc, params, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernStructDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	members, err := bs.buildVariableDeclarations(v.childList("members"))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewStructDefinition(src, v.str("name"), members, v.intRef("scope"), v.str("visibility"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernEnumDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	members, err := bs.buildEnumValues(v.childList("members"))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewEnumDefinition(src, v.str("name"), members, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernEnumValue(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewEnumValue(src, v.str("name"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernUserDefinedValueTypeDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var underlying node.TypeName
	if cv, ok := v.child("underlyingType"); ok {
		if underlying, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewUserDefinedValueTypeDefinition(src, v.str("name"), underlying, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernVariableDeclaration(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var typ node.TypeName
	if cv, ok := v.child("typeName"); ok {
		if typ, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	var value node.Node
	if cv, ok := v.child("value"); ok {
		if value, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	var overrides *node.OverrideSpecifier
	if cv, ok := v.child("overrides"); ok {
		if overrides, err = bs.buildOverrideSpecifier(cv); err != nil {
			return nil, err
		}
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	n := bs.f.NewVariableDeclaration(src, v.str("name"), typ, v.str("visibility"), v.boolField("constant"),
		v.str("mutability"), v.boolField("stateVariable"), v.str("storageLocation"), value, overrides, doc,
		v.boolField("indexed"), v.typeDescriptions(), v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernElementaryTypeName(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewElementaryTypeName(src, v.str("name"), v.str("stateMutability"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernUserDefinedTypeName(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var path *node.IdentifierPath
	if cv, ok := v.child("pathNode"); ok {
		if path, err = bs.buildIdentifierPath(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewUserDefinedTypeName(src, path, v.str("name"), v.intRef("referencedDeclaration"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernArrayTypeName(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var base node.TypeName
	if cv, ok := v.child("baseType"); ok {
		if base, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	var length node.Node
	if cv, ok := v.child("length"); ok {
		if length, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewArrayTypeName(src, base, length, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernMapping(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var key, value node.TypeName
	if cv, ok := v.child("keyType"); ok {
		if key, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	if cv, ok := v.child("valueType"); ok {
		if value, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewMapping(src, key, value, v.str("keyName"), v.str("valueName"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernFunctionTypeName(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	params, err := paramListChild(bs, v, "parameterTypes")
	if err != nil {
		return nil, err
	}

	rets, err := paramListChild(bs, v, "returnParameterTypes")
	if err != nil {
		return nil, err
	}

	n := bs.f.NewFunctionTypeName(src, v.str("visibility"), v.str("stateMutability"), params, rets, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernBlock(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	stmts, err := bs.buildStatements(v.childList("statements"))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewBlock(src, stmts)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernUncheckedBlock(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	stmts, err := bs.buildStatements(v.childList("statements"))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewUncheckedBlock(src, stmts)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernIfStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var cond node.Node
	if cv, ok := v.child("condition"); ok {
		if cond, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	var trueBody, falseBody node.Statement
	if cv, ok := v.child("trueBody"); ok {
		if trueBody, err = bs.buildStatement(cv); err != nil {
			return nil, err
		}
	}

	if cv, ok := v.child("falseBody"); ok {
		if falseBody, err = bs.buildStatement(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewIfStatement(src, cond, trueBody, falseBody)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernForStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var init node.Statement
	if cv, ok := v.child("initializationExpression"); ok {
		if init, err = bs.buildStatement(cv); err != nil {
			return nil, err
		}
	}

	var cond node.Node
	if cv, ok := v.child("condition"); ok {
		if cond, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	var loop node.Statement
	if cv, ok := v.child("loopExpression"); ok {
		if loop, err = bs.buildStatement(cv); err != nil {
			return nil, err
		}
	}

	var body node.Statement
	if cv, ok := v.child("body"); ok {
		if body, err = bs.buildStatement(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewForStatement(src, init, cond, loop, body)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernWhileStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var cond node.Node
	if cv, ok := v.child("condition"); ok {
		if cond, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	var body node.Statement
	if cv, ok := v.child("body"); ok {
		if body, err = bs.buildStatement(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewWhileStatement(src, cond, body)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernDoWhileStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var body node.Statement
	if cv, ok := v.child("body"); ok {
		if body, err = bs.buildStatement(cv); err != nil {
			return nil, err
		}
	}

	var cond node.Node
	if cv, ok := v.child("condition"); ok {
		if cond, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewDoWhileStatement(src, body, cond)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernReturn(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var expr node.Node
	if cv, ok := v.child("expression"); ok {
		if expr, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewReturn(src, expr, v.intRef("functionReturnParameters"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernBreak(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewBreak(src)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernContinue(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewContinue(src)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernThrow(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewThrow(src)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernEmitStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var call *node.FunctionCall
	if cv, ok := v.child("eventCall"); ok {
		if call, err = bs.buildFunctionCall(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewEmitStatement(src, call)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernRevertStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var call *node.FunctionCall
	if cv, ok := v.child("errorCall"); ok {
		if call, err = bs.buildFunctionCall(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewRevertStatement(src, call)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernExpressionStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var expr node.Node
	if cv, ok := v.child("expression"); ok {
		if expr, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewExpressionStatement(src, expr)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernVariableDeclarationStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	assignments := v.refList("assignments")

	declViews := v.childList("declarations")
	decls := make([]*node.VariableDeclaration, len(declViews))

	for i, dv := range declViews {
		if dv == nil {
			continue
		}

		n, err := bs.build(dv)
		if err != nil {
			return nil, err
		}

		vd, ok := n.(*node.VariableDeclaration)
		if !ok {
			src, _ := dv.src()

			return nil, &node.SchemaMismatchError{Src: src, Reason: "expected a VariableDeclaration"}
		}

		decls[i] = vd
	}

	var initial node.Node
	if cv, ok := v.child("initialValue"); ok {
		if initial, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewVariableDeclarationStatement(src, assignments, decls, initial)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernTryStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var call node.Node
	if cv, ok := v.child("externalCall"); ok {
		if call, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	clauseViews := v.childList("clauses")
	clauses := make([]*node.TryCatchClause, 0, len(clauseViews))

	for _, cv := range clauseViews {
		n, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		tc, ok := n.(*node.TryCatchClause)
		if !ok {
			src, _ := cv.src()

			return nil, &node.SchemaMismatchError{Src: src, Reason: "expected a TryCatchClause"}
		}

		clauses = append(clauses, tc)
	}

	n := bs.f.NewTryStatement(src, call, clauses)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernTryCatchClause(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	params, err := paramListChild(bs, v, "parameters")
	if err != nil {
		return nil, err
	}

	var block *node.Block
	if cv, ok := v.child("block"); ok {
		if block, err = bs.buildBlock(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewTryCatchClause(src, v.str("errorName"), params, block)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernInlineAssembly(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewInlineAssembly(src, v.str("AST"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernPlaceholderStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewPlaceholderStatement(src)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernLiteral(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewLiteral(src, v.str("kind"), v.str("value"), v.str("hexValue"), v.str("subdenomination"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernIdentifier(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewIdentifier(src, v.str("name"), v.intRef("referencedDeclaration"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernMemberAccess(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var expr node.Node
	if cv, ok := v.child("expression"); ok {
		if expr, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewMemberAccess(src, expr, v.str("memberName"), v.intRef("referencedDeclaration"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernIndexAccess(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var base, index node.Node
	if cv, ok := v.child("baseExpression"); ok {
		if base, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	if cv, ok := v.child("indexExpression"); ok {
		if index, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewIndexAccess(src, base, index, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernIndexRangeAccess(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var base, start, end node.Node
	if cv, ok := v.child("baseExpression"); ok {
		if base, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	if cv, ok := v.child("startExpression"); ok {
		if start, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	if cv, ok := v.child("endExpression"); ok {
		if end, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewIndexRangeAccess(src, base, start, end, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernUnaryOperation(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var sub node.Node
	if cv, ok := v.child("subExpression"); ok {
		if sub, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewUnaryOperation(src, v.str("operator"), v.boolField("prefix"), sub, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernBinaryOperation(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var lhs, rhs node.Node
	if cv, ok := v.child("leftExpression"); ok {
		if lhs, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	if cv, ok := v.child("rightExpression"); ok {
		if rhs, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewBinaryOperation(src, v.str("operator"), lhs, rhs, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernAssignment(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var lhs, rhs node.Node
	if cv, ok := v.child("leftHandSide"); ok {
		if lhs, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	if cv, ok := v.child("rightHandSide"); ok {
		if rhs, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewAssignment(src, v.str("operator"), lhs, rhs, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernConditional(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var cond, trueExpr, falseExpr node.Node
	if cv, ok := v.child("condition"); ok {
		if cond, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	if cv, ok := v.child("trueExpression"); ok {
		if trueExpr, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	if cv, ok := v.child("falseExpression"); ok {
		if falseExpr, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewConditional(src, cond, trueExpr, falseExpr, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernFunctionCall(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var callee node.Node
	if cv, ok := v.child("expression"); ok {
		if callee, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	args, err := bs.buildNodes(v.childList("arguments"))
	if err != nil {
		return nil, err
	}

	kind, ok := v.optStr("kind")
	if !ok {
		kind = "functionCall"
	}

	n := bs.f.NewFunctionCall(src, callee, args, v.strList("names"), kind, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernFunctionCallOptions(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var callee node.Node
	if cv, ok := v.child("expression"); ok {
		if callee, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	opts, err := bs.buildNodes(v.childList("options"))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewFunctionCallOptions(src, callee, opts, v.strList("names"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernNewExpression(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var typ node.TypeName
	if cv, ok := v.child("typeName"); ok {
		if typ, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewNewExpression(src, typ, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernTupleExpression(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	componentViews := v.childList("components")
	components := make([]node.Node, len(componentViews))

	for i, cv := range componentViews {
		if cv == nil {
			continue
		}

		n, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		components[i] = n
	}

	n := bs.f.NewTupleExpression(src, components, v.boolField("isInlineArray"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildModernElementaryTypeNameExpression(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var typ *node.ElementaryTypeName
	if cv, ok := v.child("typeName"); ok {
		n, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		etn, ok := n.(*node.ElementaryTypeName)
		if !ok {
			src, _ := cv.src()

			return nil, &node.SchemaMismatchError{Src: src, Reason: "expected an ElementaryTypeName"}
		}

		typ = etn
	}

	n := bs.f.NewElementaryTypeNameExpression(src, typ, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

// --- shared helpers used by both schema builders ---

func docChild(bs *builderState, v view) (*node.StructuredDocumentation, error) {
	if cv, ok := v.child("documentation"); ok {
		return bs.buildDocumentation(cv)
	}

	// Legacy carries documentation as a plain string attribute rather than
	// a structured child; wrap it so callers on both schemas see the same
	// shape, per §4.3's legacy-quirk note.
	if text, ok := v.optStr("documentation"); ok && text != "" {
		src, _ := v.src()

		return bs.f.NewStructuredDocumentation(src, text), nil
	}

	return nil, nil
}

func paramListChild(bs *builderState, v view, field string) (*node.ParameterList, error) {
	if cv, ok := v.child(field); ok {
		return bs.buildParameterList(cv)
	}

	return nil, nil
}

func decodeSymbolAliases(v view) []node.SymbolAlias {
	mv, ok := v.(*modernView)
	if !ok {
		return nil
	}

	raw, ok := mv.m["symbolAliases"]
	if !ok {
		return nil
	}

	var raws []map[string]interface{}
	if err := jsonUnmarshalAny(raw, &raws); err != nil {
		return nil
	}

	out := make([]node.SymbolAlias, 0, len(raws))

	for _, r := range raws {
		alias := node.SymbolAlias{}
		if local, ok := r["local"].(string); ok {
			alias.Local = local
		}

		switch foreign := r["foreign"].(type) {
		case float64:
			alias.Foreign = node.RefID(int(foreign))
		case map[string]interface{}:
			if id, ok := foreign["referencedDeclaration"].(float64); ok {
				alias.Foreign = node.RefID(int(id))
			} else if id, ok := foreign["name"]; ok {
				_ = id // legacy leniency: only the name is trustworthy, no id to carry
			}
		}

		out = append(out, alias)
	}

	return out
}

func decodeExportedSymbols(raw []byte) map[string][]node.RefID {
	if len(raw) == 0 {
		return map[string][]node.RefID{}
	}

	var m map[string][]float64
	if err := jsonUnmarshalAny(raw, &m); err != nil {
		return map[string][]node.RefID{}
	}

	out := make(map[string][]node.RefID, len(m))
	for k, ids := range m {
		refs := make([]node.RefID, len(ids))
		for i, id := range ids {
			refs[i] = node.RefID(int(id))
		}

		out[k] = refs
	}

	return out
}
