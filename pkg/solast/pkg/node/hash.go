package node

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
)

// stableHashOf computes the content-addressed secondary id described in the
// node catalog's NEW stable-hashing mode: Keccak256 over a node's kind, its
// source span, its raw JSON fragment when one was retained, and the stable
// hashes of its structural children in order. Two structurally identical
// subtrees hash identically regardless of the arena ids Pass 1 happened to
// assign them, which is the point: ids are allocation order, StableHash is
// content. Grounded on the teacher's AssignStableIDs, which folds type, token
// and position into a SHA1 digest; this generalizes that to Keccak256 per the
// node catalog's own vocabulary (crypto.Keccak256 from go-ethereum).
func stableHashOf(n Node) [32]byte {
	var buf []byte

	buf = append(buf, []byte(n.Kind())...)
	buf = append(buf, 0)
	buf = appendSrc(buf, n.Src())

	if raw := n.Raw(); raw != nil {
		buf = append(buf, raw...)
	}

	for _, c := range n.Children() {
		if c == nil {
			continue
		}

		h := c.StableHash()
		buf = append(buf, h[:]...)
	}

	var out [32]byte
	copy(out[:], crypto.Keccak256(buf))

	return out
}

func appendSrc(buf []byte, s Src) []byte {
	var tmp [12]byte
	binary.BigEndian.PutUint32(tmp[0:4], uint32(s.Offset))
	binary.BigEndian.PutUint32(tmp[4:8], uint32(s.Length))
	binary.BigEndian.PutUint32(tmp[8:12], uint32(s.FileIndex))

	return append(buf, tmp[:]...)
}

func (n *SourceUnit) StableHash() [32]byte                  { return stableHashOf(n) }
func (n *PragmaDirective) StableHash() [32]byte              { return stableHashOf(n) }
func (n *ImportDirective) StableHash() [32]byte              { return stableHashOf(n) }
func (n *InheritanceSpecifier) StableHash() [32]byte         { return stableHashOf(n) }
func (n *ModifierInvocation) StableHash() [32]byte           { return stableHashOf(n) }
func (n *OverrideSpecifier) StableHash() [32]byte            { return stableHashOf(n) }
func (n *ParameterList) StableHash() [32]byte                { return stableHashOf(n) }
func (n *UsingForDirective) StableHash() [32]byte            { return stableHashOf(n) }
func (n *StructuredDocumentation) StableHash() [32]byte      { return stableHashOf(n) }
func (n *IdentifierPath) StableHash() [32]byte               { return stableHashOf(n) }

func (n *ContractDefinition) StableHash() [32]byte              { return stableHashOf(n) }
func (n *FunctionDefinition) StableHash() [32]byte              { return stableHashOf(n) }
func (n *ModifierDefinition) StableHash() [32]byte              { return stableHashOf(n) }
func (n *EventDefinition) StableHash() [32]byte                 { return stableHashOf(n) }
func (n *ErrorDefinition) StableHash() [32]byte                 { return stableHashOf(n) }
func (n *StructDefinition) StableHash() [32]byte                { return stableHashOf(n) }
func (n *EnumDefinition) StableHash() [32]byte                  { return stableHashOf(n) }
func (n *EnumValue) StableHash() [32]byte                       { return stableHashOf(n) }
func (n *UserDefinedValueTypeDefinition) StableHash() [32]byte  { return stableHashOf(n) }
func (n *VariableDeclaration) StableHash() [32]byte             { return stableHashOf(n) }

func (n *ElementaryTypeName) StableHash() [32]byte  { return stableHashOf(n) }
func (n *UserDefinedTypeName) StableHash() [32]byte { return stableHashOf(n) }
func (n *ArrayTypeName) StableHash() [32]byte       { return stableHashOf(n) }
func (n *Mapping) StableHash() [32]byte             { return stableHashOf(n) }
func (n *FunctionTypeName) StableHash() [32]byte    { return stableHashOf(n) }

func (n *Block) StableHash() [32]byte                        { return stableHashOf(n) }
func (n *UncheckedBlock) StableHash() [32]byte               { return stableHashOf(n) }
func (n *IfStatement) StableHash() [32]byte                  { return stableHashOf(n) }
func (n *ForStatement) StableHash() [32]byte                 { return stableHashOf(n) }
func (n *WhileStatement) StableHash() [32]byte               { return stableHashOf(n) }
func (n *DoWhileStatement) StableHash() [32]byte             { return stableHashOf(n) }
func (n *Return) StableHash() [32]byte                       { return stableHashOf(n) }
func (n *Break) StableHash() [32]byte                        { return stableHashOf(n) }
func (n *Continue) StableHash() [32]byte                     { return stableHashOf(n) }
func (n *Throw) StableHash() [32]byte                        { return stableHashOf(n) }
func (n *EmitStatement) StableHash() [32]byte                { return stableHashOf(n) }
func (n *RevertStatement) StableHash() [32]byte              { return stableHashOf(n) }
func (n *ExpressionStatement) StableHash() [32]byte          { return stableHashOf(n) }
func (n *VariableDeclarationStatement) StableHash() [32]byte { return stableHashOf(n) }
func (n *TryStatement) StableHash() [32]byte                 { return stableHashOf(n) }
func (n *TryCatchClause) StableHash() [32]byte               { return stableHashOf(n) }
func (n *InlineAssembly) StableHash() [32]byte               { return stableHashOf(n) }
func (n *PlaceholderStatement) StableHash() [32]byte         { return stableHashOf(n) }

func (n *Literal) StableHash() [32]byte                      { return stableHashOf(n) }
func (n *Identifier) StableHash() [32]byte                   { return stableHashOf(n) }
func (n *MemberAccess) StableHash() [32]byte                 { return stableHashOf(n) }
func (n *IndexAccess) StableHash() [32]byte                  { return stableHashOf(n) }
func (n *IndexRangeAccess) StableHash() [32]byte             { return stableHashOf(n) }
func (n *UnaryOperation) StableHash() [32]byte               { return stableHashOf(n) }
func (n *BinaryOperation) StableHash() [32]byte              { return stableHashOf(n) }
func (n *Assignment) StableHash() [32]byte                   { return stableHashOf(n) }
func (n *Conditional) StableHash() [32]byte                  { return stableHashOf(n) }
func (n *FunctionCall) StableHash() [32]byte                 { return stableHashOf(n) }
func (n *FunctionCallOptions) StableHash() [32]byte          { return stableHashOf(n) }
func (n *NewExpression) StableHash() [32]byte                { return stableHashOf(n) }
func (n *TupleExpression) StableHash() [32]byte              { return stableHashOf(n) }
func (n *ElementaryTypeNameExpression) StableHash() [32]byte { return stableHashOf(n) }
