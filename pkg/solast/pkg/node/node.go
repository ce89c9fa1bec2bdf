// Package node implements the version-agnostic Solidity AST: the closed
// catalog of node kinds, the Context arena that owns them, and the Factory
// that builds and copies them.
package node

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags every concrete node variant. The catalog is closed: dispatch on
// Kind with a type switch rather than open polymorphism, per the node
// catalog's sum-type design.
type Kind string

const (
	KindSourceUnit                  Kind = "SourceUnit"
	KindPragmaDirective              Kind = "PragmaDirective"
	KindImportDirective              Kind = "ImportDirective"
	KindInheritanceSpecifier         Kind = "InheritanceSpecifier"
	KindModifierInvocation           Kind = "ModifierInvocation"
	KindOverrideSpecifier            Kind = "OverrideSpecifier"
	KindParameterList                Kind = "ParameterList"
	KindUsingForDirective            Kind = "UsingForDirective"
	KindStructuredDocumentation      Kind = "StructuredDocumentation"
	KindIdentifierPath               Kind = "IdentifierPath"

	KindContractDefinition          Kind = "ContractDefinition"
	KindFunctionDefinition           Kind = "FunctionDefinition"
	KindModifierDefinition           Kind = "ModifierDefinition"
	KindEventDefinition              Kind = "EventDefinition"
	KindErrorDefinition              Kind = "ErrorDefinition"
	KindStructDefinition             Kind = "StructDefinition"
	KindEnumDefinition               Kind = "EnumDefinition"
	KindEnumValue                    Kind = "EnumValue"
	KindUserDefinedValueTypeDefinition Kind = "UserDefinedValueTypeDefinition"
	KindVariableDeclaration         Kind = "VariableDeclaration"

	KindElementaryTypeName          Kind = "ElementaryTypeName"
	KindUserDefinedTypeName         Kind = "UserDefinedTypeName"
	KindArrayTypeName               Kind = "ArrayTypeName"
	KindMapping                     Kind = "Mapping"
	KindFunctionTypeName            Kind = "FunctionTypeName"

	KindBlock                       Kind = "Block"
	KindUncheckedBlock              Kind = "UncheckedBlock"
	KindIfStatement                 Kind = "IfStatement"
	KindForStatement                Kind = "ForStatement"
	KindWhileStatement              Kind = "WhileStatement"
	KindDoWhileStatement            Kind = "DoWhileStatement"
	KindReturn                      Kind = "Return"
	KindBreak                       Kind = "Break"
	KindContinue                    Kind = "Continue"
	KindThrow                       Kind = "Throw"
	KindEmitStatement               Kind = "EmitStatement"
	KindRevertStatement             Kind = "RevertStatement"
	KindExpressionStatement         Kind = "ExpressionStatement"
	KindVariableDeclarationStatement Kind = "VariableDeclarationStatement"
	KindTryStatement                Kind = "TryStatement"
	KindTryCatchClause              Kind = "TryCatchClause"
	KindInlineAssembly              Kind = "InlineAssembly"
	KindPlaceholderStatement        Kind = "PlaceholderStatement"

	KindLiteral                     Kind = "Literal"
	KindIdentifier                  Kind = "Identifier"
	KindMemberAccess                Kind = "MemberAccess"
	KindIndexAccess                 Kind = "IndexAccess"
	KindIndexRangeAccess            Kind = "IndexRangeAccess"
	KindUnaryOperation              Kind = "UnaryOperation"
	KindBinaryOperation             Kind = "BinaryOperation"
	KindAssignment                  Kind = "Assignment"
	KindConditional                 Kind = "Conditional"
	KindFunctionCall                Kind = "FunctionCall"
	KindFunctionCallOptions         Kind = "FunctionCallOptions"
	KindNewExpression               Kind = "NewExpression"
	KindTupleExpression              Kind = "TupleExpression"
	KindElementaryTypeNameExpression Kind = "ElementaryTypeNameExpression"
)

// Src is the source-location triple every node carries: a byte offset and
// length into a file, and the index of that file in the compiler's source map.
type Src struct {
	Offset    int
	Length    int
	FileIndex int
}

// ParseSrc parses the compiler's "offset:length:file" wire format.
func ParseSrc(s string) (Src, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Src{}, fmt.Errorf("node: malformed src %q", s)
	}

	offset, err := strconv.Atoi(parts[0])
	if err != nil {
		return Src{}, fmt.Errorf("node: malformed src offset %q: %w", s, err)
	}

	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return Src{}, fmt.Errorf("node: malformed src length %q: %w", s, err)
	}

	fileIndex, err := strconv.Atoi(parts[2])
	if err != nil {
		return Src{}, fmt.Errorf("node: malformed src fileIndex %q: %w", s, err)
	}

	return Src{Offset: offset, Length: length, FileIndex: fileIndex}, nil
}

func (s Src) String() string {
	return fmt.Sprintf("%d:%d:%d", s.Offset, s.Length, s.FileIndex)
}

// RefID is a numeric reference to another node's Id within the same context.
// Zero means "no reference" (ids are assigned starting at 1), which doubles
// as the representation of an omitted tuple element in assignments lists.
type RefID int

// Node is the shared interface every concrete AST node variant implements.
// The catalog is closed (see the Kind constants); callers type-switch on
// Kind() rather than relying on further dynamic dispatch.
type Node interface {
	ID() int
	Kind() Kind
	Src() Src
	Parent() Node
	Raw() json.RawMessage
	Children() []Node
	StableHash() [32]byte

	setParent(Node)
	setCtx(*Context)
	context() *Context
	setRaw(json.RawMessage)
}

// Base factors out the four universal attributes every node variant carries:
// id, src, a weak parent back-reference, and the optional raw JSON fragment
// it was built from. Every concrete variant embeds Base.
type Base struct {
	id     int
	src    Src
	parent Node
	raw    json.RawMessage
	ctx    *Context
}

func (b *Base) ID() int                  { return b.id }
func (b *Base) Src() Src                 { return b.src }
func (b *Base) Parent() Node             { return b.parent }
func (b *Base) Raw() json.RawMessage     { return b.raw }
func (b *Base) setParent(p Node)         { b.parent = p }
func (b *Base) setCtx(c *Context)        { b.ctx = c }
func (b *Base) context() *Context        { return b.ctx }
func (b *Base) setRaw(r json.RawMessage) { b.raw = r }

// TypeDescriptions is carried as a value attribute (never a child) on every
// typed expression/declaration node. It is copied verbatim from the compiler
// output and never synthesized or type-checked by the core.
type TypeDescriptions struct {
	TypeString     string
	TypeIdentifier string
}

// SetRaw attaches the original JSON fragment a node was built from, for
// round-tripping and for StableHash's attribute fidelity. Readers call this
// once per node right after construction; nothing else should.
func SetRaw(n Node, raw json.RawMessage) { n.setRaw(raw) }

// appendNode appends n to out unless it is the typed nil pointer standing
// for an omitted optional structural child (e.g. a FunctionDefinition with
// no Body). Concrete-typed nil checks must happen before the pointer is
// boxed into the Node interface, so callers pass already-checked values;
// this only guards against a literal nil interface slipping through.
func appendNode(out []Node, n Node) []Node {
	if n == nil {
		return out
	}

	return append(out, n)
}
