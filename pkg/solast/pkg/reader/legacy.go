package reader

import (
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

// DefaultLegacyRegistry returns the builder table for the <0.4.12 schema:
// { name, attributes, children } objects whose structural children are
// positional rather than named, per §4.3's legacy quirks. Children are
// picked out of the "children" array by the fixed order solc emitted for
// each variant; value attributes and reference ids live in "attributes".
//
// Try/catch, custom errors, unchecked blocks and calldata range slices
// postdate the legacy schema entirely (Solidity added them well after
// 0.4.12); their builders here are defensive fallbacks that assume the
// same attribute/positional shape as their closest legacy-era relative, in
// case a caller's custom registry ever feeds one through this front end.
func DefaultLegacyRegistry() Registry {
	return Registry{
		"SourceUnit":              buildLegacySourceUnit,
		"PragmaDirective":         buildLegacyPragmaDirective,
		"ImportDirective":         buildLegacyImportDirective,
		"InheritanceSpecifier":    buildLegacyInheritanceSpecifier,
		"ModifierInvocation":      buildLegacyModifierInvocation,
		"OverrideSpecifier":       buildLegacyOverrideSpecifier,
		"ParameterList":           buildLegacyParameterList,
		"UsingForDirective":       buildLegacyUsingForDirective,
		"StructuredDocumentation": buildLegacyStructuredDocumentation,
		"IdentifierPath":          buildLegacyIdentifierPath,

		"ContractDefinition":             buildLegacyContractDefinition,
		"FunctionDefinition":             buildLegacyFunctionDefinition,
		"ModifierDefinition":             buildLegacyModifierDefinition,
		"EventDefinition":                buildLegacyEventDefinition,
		"ErrorDefinition":                buildLegacyErrorDefinition,
		"StructDefinition":               buildLegacyStructDefinition,
		"EnumDefinition":                 buildLegacyEnumDefinition,
		"EnumValue":                      buildLegacyEnumValue,
		"UserDefinedValueTypeDefinition": buildLegacyUserDefinedValueTypeDefinition,
		"VariableDeclaration":            buildLegacyVariableDeclaration,

		"ElementaryTypeName":  buildLegacyElementaryTypeName,
		"UserDefinedTypeName": buildLegacyUserDefinedTypeName,
		"ArrayTypeName":       buildLegacyArrayTypeName,
		"Mapping":             buildLegacyMapping,
		"FunctionTypeName":    buildLegacyFunctionTypeName,

		"Block":                        buildLegacyBlock,
		"UncheckedBlock":               buildLegacyUncheckedBlock,
		"IfStatement":                  buildLegacyIfStatement,
		"ForStatement":                 buildLegacyForStatement,
		"WhileStatement":               buildLegacyWhileStatement,
		"DoWhileStatement":             buildLegacyDoWhileStatement,
		"Return":                       buildLegacyReturn,
		"Break":                        buildLegacyBreak,
		"Continue":                     buildLegacyContinue,
		"Throw":                        buildLegacyThrow,
		"EmitStatement":                buildLegacyEmitStatement,
		"RevertStatement":              buildLegacyRevertStatement,
		"ExpressionStatement":          buildLegacyExpressionStatement,
		"VariableDeclarationStatement": buildLegacyVariableDeclarationStatement,
		"TryStatement":                 buildLegacyTryStatement,
		"TryCatchClause":               buildLegacyTryCatchClause,
		"InlineAssembly":               buildLegacyInlineAssembly,
		"PlaceholderStatement":         buildLegacyPlaceholderStatement,

		"Literal":                      buildLegacyLiteral,
		"Identifier":                   buildLegacyIdentifier,
		"MemberAccess":                 buildLegacyMemberAccess,
		"IndexAccess":                  buildLegacyIndexAccess,
		"IndexRangeAccess":             buildLegacyIndexRangeAccess,
		"UnaryOperation":               buildLegacyUnaryOperation,
		"BinaryOperation":              buildLegacyBinaryOperation,
		"Assignment":                   buildLegacyAssignment,
		"Conditional":                  buildLegacyConditional,
		"FunctionCall":                 buildLegacyFunctionCall,
		"FunctionCallOptions":          buildLegacyFunctionCallOptions,
		"NewExpression":                buildLegacyNewExpression,
		"TupleExpression":              buildLegacyTupleExpression,
		"ElementaryTypeNameExpression": buildLegacyElementaryTypeNameExpression,
	}
}

func buildLegacySourceUnit(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	nodes, err := bs.buildNodes(positionalAll(v))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewSourceUnit(src, v.str("absolutePath"), "", nodes, map[string][]node.RefID{})
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyPragmaDirective(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewPragmaDirective(src, v.strList("literals"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyImportDirective(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	aliases := decodeLegacySymbolAliases(v)

	n := bs.f.NewImportDirective(src, v.str("file"), v.str("absolutePath"), v.str("unitAlias"), aliases, v.intRef("SourceUnit"))
	node.SetRaw(n, v.raw())

	return n, nil
}

// buildLegacyInheritanceSpecifier's first positional child names the base
// contract. Pre-0.4.12 that child is itself an Identifier or
// UserDefinedTypeName rather than the later IdentifierPath node; only its
// name and referencedDeclaration attributes are trustworthy, so they are
// lifted directly into a synthesized IdentifierPath rather than recursed
// into through the registry.
func buildLegacyInheritanceSpecifier(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var baseName *node.IdentifierPath
	if cv, ok := v.positional(0); ok {
		baseName = synthesizeIdentifierPath(bs, cv)
	}

	var args []node.Node
	if v.positionalCount() > 1 {
		args, err = bs.buildNodes(positionalAll(v)[1:])
		if err != nil {
			return nil, err
		}
	}

	n := bs.f.NewInheritanceSpecifier(src, baseName, args)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyModifierInvocation(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var modName *node.IdentifierPath
	if cv, ok := v.positional(0); ok {
		modName = synthesizeIdentifierPath(bs, cv)
	}

	var args []node.Node
	if v.positionalCount() > 1 {
		args, err = bs.buildNodes(positionalAll(v)[1:])
		if err != nil {
			return nil, err
		}
	}

	n := bs.f.NewModifierInvocation(src, modName, args)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyOverrideSpecifier(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)
	overrides := make([]*node.IdentifierPath, len(views))

	for i, cv := range views {
		overrides[i] = synthesizeIdentifierPath(bs, cv)
	}

	n := bs.f.NewOverrideSpecifier(src, overrides)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyParameterList(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	params, err := bs.buildVariableDeclarations(positionalAll(v))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewParameterList(src, params)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyUsingForDirective(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var library *node.IdentifierPath
	var typ node.TypeName

	if cv, ok := v.positional(0); ok {
		library = synthesizeIdentifierPath(bs, cv)
	}

	if cv, ok := v.positional(1); ok {
		if typ, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewUsingForDirective(src, library, nil, typ, v.boolField("global"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyStructuredDocumentation(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewStructuredDocumentation(src, v.str("text"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyIdentifierPath(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewIdentifierPath(src, v.str("name"), v.intRef("referencedDeclaration"))
	node.SetRaw(n, v.raw())

	return n, nil
}

// buildLegacyContractDefinition's children are base-contract specifiers
// followed by the contract body in declaration order; there is no separate
// named field distinguishing the two, so every InheritanceSpecifier-tagged
// child is taken as a base and everything else as a body member.
func buildLegacyContractDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var bases []*node.InheritanceSpecifier
	var memberViews []view

	for _, cv := range positionalAll(v) {
		if cv.kind() == "InheritanceSpecifier" {
			n, err := bs.build(cv)
			if err != nil {
				return nil, err
			}

			is, _ := n.(*node.InheritanceSpecifier)
			bases = append(bases, is)

			continue
		}

		memberViews = append(memberViews, cv)
	}

	members, err := bs.buildNodes(memberViews)
	if err != nil {
		return nil, err
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	n := bs.f.NewContractDefinition(src, v.str("name"), v.str("contractKind"), v.boolField("isAbstract"), v.boolField("fullyImplemented"),
		doc, bases, members, v.intRef("scope"), v.refList("linearizedBaseContracts"), nil, nil)
	node.SetRaw(n, v.raw())

	return n, nil
}

// buildLegacyFunctionDefinition's children are, in order: the parameter
// ParameterList, the return ParameterList, zero or more ModifierInvocation,
// and an optional Block body.
func buildLegacyFunctionDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var params, rets *node.ParameterList
	var mods []*node.ModifierInvocation
	var body *node.Block

	idx := 0
	if idx < len(views) {
		if params, err = bs.buildParameterList(views[idx]); err != nil {
			return nil, err
		}

		idx++
	}

	if idx < len(views) {
		if rets, err = bs.buildParameterList(views[idx]); err != nil {
			return nil, err
		}

		idx++
	}

	for idx < len(views) && views[idx].kind() == "ModifierInvocation" {
		n, err := bs.build(views[idx])
		if err != nil {
			return nil, err
		}

		mi, _ := n.(*node.ModifierInvocation)
		mods = append(mods, mi)
		idx++
	}

	if idx < len(views) && views[idx].kind() == "Block" {
		if body, err = bs.buildBlock(views[idx]); err != nil {
			return nil, err
		}
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	kind := "function"
	if v.boolField("isConstructor") {
		kind = "constructor"
	}

	visibility, ok := v.optStr("visibility")
	if !ok {
		visibility = "public"
	}

	n := bs.f.NewFunctionDefinition(src, v.str("name"), kind, visibility, v.str("stateMutability"), false,
		doc, params, rets, mods, nil, body, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyModifierDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var params *node.ParameterList
	var body *node.Block

	if len(views) > 0 {
		if params, err = bs.buildParameterList(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if body, err = bs.buildBlock(views[1]); err != nil {
			return nil, err
		}
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	n := bs.f.NewModifierDefinition(src, v.str("name"), false, doc, params, nil, body, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyEventDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var params *node.ParameterList

	if cv, ok := v.positional(0); ok {
		if params, err = bs.buildParameterList(cv); err != nil {
			return nil, err
		}
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	n := bs.f.NewEventDefinition(src, v.str("name"), v.boolField("anonymous"), doc, params, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

// ErrorDefinition postdates the legacy schema; this builder only exists so
// a custom registry extension has a reasonable default to fall back on.
func buildLegacyErrorDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var params *node.ParameterList
	if cv, ok := v.positional(0); ok {
		if params, err = bs.buildParameterList(cv); err != nil {
			return nil, err
		}
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	n := bs.f.NewErrorDefinition(src, v.str("name"), doc, params, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyStructDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	members, err := bs.buildVariableDeclarations(positionalAll(v))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewStructDefinition(src, v.str("name"), members, v.intRef("scope"), v.str("visibility"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyEnumDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	members, err := bs.buildEnumValues(positionalAll(v))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewEnumDefinition(src, v.str("name"), members, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyEnumValue(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewEnumValue(src, v.str("name"))
	node.SetRaw(n, v.raw())

	return n, nil
}

// UserDefinedValueTypeDefinition postdates the legacy schema (Solidity
// 0.8.8); defensive fallback only.
func buildLegacyUserDefinedValueTypeDefinition(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var underlying node.TypeName
	if cv, ok := v.positional(0); ok {
		if underlying, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewUserDefinedValueTypeDefinition(src, v.str("name"), underlying, v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyVariableDeclaration(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var typ node.TypeName
	var value node.Node

	idx := 0
	if idx < len(views) {
		if typ, err = bs.buildTypeName(views[idx]); err != nil {
			return nil, err
		}

		idx++
	}

	if idx < len(views) {
		if value, err = bs.build(views[idx]); err != nil {
			return nil, err
		}
	}

	doc, err := docChild(bs, v)
	if err != nil {
		return nil, err
	}

	n := bs.f.NewVariableDeclaration(src, v.str("name"), typ, v.str("visibility"), v.boolField("constant"),
		"", v.boolField("stateVariable"), v.str("storageLocation"), value, nil, doc,
		v.boolField("indexed"), v.typeDescriptions(), v.intRef("scope"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyElementaryTypeName(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	name := v.str("name")
	if name == "" {
		name = v.str("type")
	}

	n := bs.f.NewElementaryTypeName(src, name, v.str("stateMutability"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyUserDefinedTypeName(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewUserDefinedTypeName(src, nil, v.str("name"), v.intRef("referencedDeclaration"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyArrayTypeName(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var base node.TypeName
	var length node.Node

	if len(views) > 0 {
		if base, err = bs.buildTypeName(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if length, err = bs.build(views[1]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewArrayTypeName(src, base, length, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyMapping(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var key, value node.TypeName

	if len(views) > 0 {
		if key, err = bs.buildTypeName(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if value, err = bs.buildTypeName(views[1]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewMapping(src, key, value, "", "", v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyFunctionTypeName(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var params, rets *node.ParameterList

	if len(views) > 0 {
		if params, err = bs.buildParameterList(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if rets, err = bs.buildParameterList(views[1]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewFunctionTypeName(src, v.str("visibility"), v.str("stateMutability"), params, rets, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyBlock(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	stmts, err := bs.buildStatements(positionalAll(v))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewBlock(src, stmts)
	node.SetRaw(n, v.raw())

	return n, nil
}

// UncheckedBlock postdates the legacy schema (Solidity 0.8.0); same shape
// as Block.
func buildLegacyUncheckedBlock(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	stmts, err := bs.buildStatements(positionalAll(v))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewUncheckedBlock(src, stmts)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyIfStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)
	if len(views) < 2 {
		return nil, &node.SchemaMismatchError{Src: src, Reason: "IfStatement requires at least condition and true body"}
	}

	cond, err := bs.build(views[0])
	if err != nil {
		return nil, err
	}

	trueBody, err := bs.buildStatement(views[1])
	if err != nil {
		return nil, err
	}

	var falseBody node.Statement
	if len(views) > 2 {
		if falseBody, err = bs.buildStatement(views[2]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewIfStatement(src, cond, trueBody, falseBody)
	node.SetRaw(n, v.raw())

	return n, nil
}

// buildLegacyForStatement's positional children are whichever of
// init/condition/loop are present, always ending in the body; attributes
// record booleans for which clauses are actually omitted so the builder
// doesn't have to guess by position alone.
func buildLegacyForStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)
	if len(views) == 0 {
		return nil, &node.SchemaMismatchError{Src: src, Reason: "ForStatement requires at least a body"}
	}

	hasInit := !v.boolField("initializationExpression_absent")
	hasCond := !v.boolField("condition_absent")
	hasLoop := !v.boolField("loopExpression_absent")

	idx := 0

	var init node.Statement
	var cond node.Node
	var loop node.Statement

	if hasInit && idx < len(views)-1 {
		if init, err = bs.buildStatement(views[idx]); err != nil {
			return nil, err
		}

		idx++
	}

	if hasCond && idx < len(views)-1 {
		if cond, err = bs.build(views[idx]); err != nil {
			return nil, err
		}

		idx++
	}

	if hasLoop && idx < len(views)-1 {
		if loop, err = bs.buildStatement(views[idx]); err != nil {
			return nil, err
		}

		idx++
	}

	body, err := bs.buildStatement(views[len(views)-1])
	if err != nil {
		return nil, err
	}

	n := bs.f.NewForStatement(src, init, cond, loop, body)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyWhileStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)
	if len(views) < 2 {
		return nil, &node.SchemaMismatchError{Src: src, Reason: "WhileStatement requires condition and body"}
	}

	cond, err := bs.build(views[0])
	if err != nil {
		return nil, err
	}

	body, err := bs.buildStatement(views[1])
	if err != nil {
		return nil, err
	}

	n := bs.f.NewWhileStatement(src, cond, body)
	node.SetRaw(n, v.raw())

	return n, nil
}

// do-while's legacy children are ordered [body, condition].
func buildLegacyDoWhileStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)
	if len(views) < 2 {
		return nil, &node.SchemaMismatchError{Src: src, Reason: "DoWhileStatement requires body and condition"}
	}

	body, err := bs.buildStatement(views[0])
	if err != nil {
		return nil, err
	}

	cond, err := bs.build(views[1])
	if err != nil {
		return nil, err
	}

	n := bs.f.NewDoWhileStatement(src, body, cond)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyReturn(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var expr node.Node
	if cv, ok := v.positional(0); ok {
		if expr, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewReturn(src, expr, v.intRef("functionReturnParameters"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyBreak(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewBreak(src)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyContinue(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewContinue(src)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyThrow(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewThrow(src)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyEmitStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var call *node.FunctionCall
	if cv, ok := v.positional(0); ok {
		if call, err = bs.buildFunctionCall(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewEmitStatement(src, call)
	node.SetRaw(n, v.raw())

	return n, nil
}

// RevertStatement postdates the legacy schema (Solidity 0.8.0); defensive
// fallback only.
func buildLegacyRevertStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var call *node.FunctionCall
	if cv, ok := v.positional(0); ok {
		if call, err = bs.buildFunctionCall(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewRevertStatement(src, call)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyExpressionStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var expr node.Node
	if cv, ok := v.positional(0); ok {
		if expr, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewExpressionStatement(src, expr)
	node.SetRaw(n, v.raw())

	return n, nil
}

// buildLegacyVariableDeclarationStatement's children are the declared
// VariableDeclarations (with nulls preserved for omitted tuple slots)
// followed by an optional initializer expression as the last entry when
// attributes report one is present.
func buildLegacyVariableDeclarationStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	assignments := v.refList("assignments")

	// Declared variables are the leading run of VariableDeclaration
	// children; anything left over is the trailing initializer expression.
	views := positionalAll(v)

	declCount := 0
	for declCount < len(views) && views[declCount].kind() == "VariableDeclaration" {
		declCount++
	}

	decls, err := bs.buildVariableDeclarations(views[:declCount])
	if err != nil {
		return nil, err
	}

	var initial node.Node
	if declCount < len(views) {
		if initial, err = bs.build(views[declCount]); err != nil {
			return nil, err
		}
	}

	out := bs.f.NewVariableDeclarationStatement(src, assignments, decls, initial)
	node.SetRaw(out, v.raw())

	return out, nil
}

func buildLegacyTryStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)
	if len(views) == 0 {
		return nil, &node.SchemaMismatchError{Src: src, Reason: "TryStatement requires an external call"}
	}

	call, err := bs.build(views[0])
	if err != nil {
		return nil, err
	}

	clauses := make([]*node.TryCatchClause, 0, len(views)-1)
	for _, cv := range views[1:] {
		built, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		if tc, ok := built.(*node.TryCatchClause); ok {
			clauses = append(clauses, tc)
		}
	}

	n := bs.f.NewTryStatement(src, call, clauses)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyTryCatchClause(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var params *node.ParameterList
	var block *node.Block

	if len(views) > 0 {
		if params, err = bs.buildParameterList(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if block, err = bs.buildBlock(views[1]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewTryCatchClause(src, v.str("errorName"), params, block)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyInlineAssembly(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewInlineAssembly(src, v.str("operations"))
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyPlaceholderStatement(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	n := bs.f.NewPlaceholderStatement(src)
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyLiteral(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	kind := v.str("token")
	if kind == "" {
		kind = v.str("kind")
	}

	n := bs.f.NewLiteral(src, kind, v.str("value"), v.str("hexvalue"), v.str("subdenomination"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyIdentifier(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	name := v.str("value")
	if name == "" {
		name = v.str("name")
	}

	n := bs.f.NewIdentifier(src, name, v.intRef("referencedDeclaration"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyMemberAccess(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var expr node.Node
	if cv, ok := v.positional(0); ok {
		if expr, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	member := v.str("member")
	if member == "" {
		member = v.str("memberName")
	}

	n := bs.f.NewMemberAccess(src, expr, member, v.intRef("referencedDeclaration"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyIndexAccess(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var base, index node.Node

	if len(views) > 0 {
		if base, err = bs.build(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if index, err = bs.build(views[1]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewIndexAccess(src, base, index, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

// IndexRangeAccess postdates the legacy schema (Solidity 0.6.0, calldata
// slices); defensive fallback only.
func buildLegacyIndexRangeAccess(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var base, start, end node.Node

	if len(views) > 0 {
		if base, err = bs.build(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if start, err = bs.build(views[1]); err != nil {
			return nil, err
		}
	}

	if len(views) > 2 {
		if end, err = bs.build(views[2]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewIndexRangeAccess(src, base, start, end, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyUnaryOperation(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var sub node.Node
	if cv, ok := v.positional(0); ok {
		if sub, err = bs.build(cv); err != nil {
			return nil, err
		}
	}

	op := v.str("operator")
	prefix := v.boolField("prefix") || v.boolField("isPrefix")

	n := bs.f.NewUnaryOperation(src, op, prefix, sub, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyBinaryOperation(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var lhs, rhs node.Node

	if len(views) > 0 {
		if lhs, err = bs.build(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if rhs, err = bs.build(views[1]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewBinaryOperation(src, v.str("operator"), lhs, rhs, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyAssignment(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var lhs, rhs node.Node

	if len(views) > 0 {
		if lhs, err = bs.build(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if rhs, err = bs.build(views[1]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewAssignment(src, v.str("operator"), lhs, rhs, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyConditional(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)

	var cond, trueExpr, falseExpr node.Node

	if len(views) > 0 {
		if cond, err = bs.build(views[0]); err != nil {
			return nil, err
		}
	}

	if len(views) > 1 {
		if trueExpr, err = bs.build(views[1]); err != nil {
			return nil, err
		}
	}

	if len(views) > 2 {
		if falseExpr, err = bs.build(views[2]); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewConditional(src, cond, trueExpr, falseExpr, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyFunctionCall(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)
	if len(views) == 0 {
		return nil, &node.SchemaMismatchError{Src: src, Reason: "FunctionCall requires a callee"}
	}

	callee, err := bs.build(views[0])
	if err != nil {
		return nil, err
	}

	args, err := bs.buildNodes(views[1:])
	if err != nil {
		return nil, err
	}

	kind := v.str("type_conversion")
	if kind == "" {
		kind = "functionCall"
	}

	n := bs.f.NewFunctionCall(src, callee, args, v.strList("names"), kind, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

// FunctionCallOptions postdates the legacy schema (Solidity 0.6.2, {value:
// ..., gas: ...} call syntax); defensive fallback only.
func buildLegacyFunctionCallOptions(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	views := positionalAll(v)
	if len(views) == 0 {
		return nil, &node.SchemaMismatchError{Src: src, Reason: "FunctionCallOptions requires a callee"}
	}

	callee, err := bs.build(views[0])
	if err != nil {
		return nil, err
	}

	opts, err := bs.buildNodes(views[1:])
	if err != nil {
		return nil, err
	}

	n := bs.f.NewFunctionCallOptions(src, callee, opts, v.strList("names"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyNewExpression(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var typ node.TypeName
	if cv, ok := v.positional(0); ok {
		if typ, err = bs.buildTypeName(cv); err != nil {
			return nil, err
		}
	}

	n := bs.f.NewNewExpression(src, typ, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyTupleExpression(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	components, err := bs.buildNodes(positionalAll(v))
	if err != nil {
		return nil, err
	}

	n := bs.f.NewTupleExpression(src, components, v.boolField("isInlineArray"), v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

func buildLegacyElementaryTypeNameExpression(bs *builderState, v view) (node.Node, error) {
	src, err := v.src()
	if err != nil {
		return nil, err
	}

	var typ *node.ElementaryTypeName
	if cv, ok := v.positional(0); ok {
		built, err := bs.build(cv)
		if err != nil {
			return nil, err
		}

		typ, _ = built.(*node.ElementaryTypeName)
	} else {
		etn := bs.f.NewElementaryTypeName(src, v.str("value"), "", node.TypeDescriptions{})
		typ = etn
	}

	n := bs.f.NewElementaryTypeNameExpression(src, typ, v.typeDescriptions())
	node.SetRaw(n, v.raw())

	return n, nil
}

// synthesizeIdentifierPath lifts a legacy name-resolution child (an
// Identifier or UserDefinedTypeName in pre-0.4.12 output) into an
// IdentifierPath carrying just its name and referencedDeclaration, the
// only two attributes the legacy schema makes trustworthy here.
func synthesizeIdentifierPath(bs *builderState, v view) *node.IdentifierPath {
	src, _ := v.src()

	name := v.str("name")
	if name == "" {
		name = v.str("value")
	}

	n := bs.f.NewIdentifierPath(src, name, v.intRef("referencedDeclaration"))
	node.SetRaw(n, v.raw())

	return n
}

func decodeLegacySymbolAliases(v view) []node.SymbolAlias {
	lv, ok := v.(*legacyView)
	if !ok {
		return nil
	}

	raw, ok := lv.attrs["symbolAliases"]
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
		// The legacy schema's "foreign" entry is only reliable for its
		// name; no id is synthesized from it per §9's open question.

		out = append(out, alias)
	}

	return out
}
