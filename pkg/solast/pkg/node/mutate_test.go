package node //nolint:testpackage // tests construct nodes via unexported factory internals

import (
	"errors"
	"testing"
)

func newTestVarDecl(f *Factory, name string) *VariableDeclaration {
	return f.NewVariableDeclaration(Src{}, name, nil, "internal", false, "mutable", false, "default", nil, nil, nil, false, TypeDescriptions{}, 0)
}

func TestBlock_AppendAndRemoveChild(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	block := f.NewBlock(Src{}, nil)
	br := f.NewBreak(Src{})

	if err := block.AppendChild(br); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}

	if len(block.Statements) != 1 || Node(block.Statements[0]) != Node(br) {
		t.Fatalf("expected br to be the sole statement, got %v", block.Statements)
	}

	if br.Parent() != Node(block) {
		t.Fatalf("expected br's parent to be block after AppendChild")
	}

	if err := block.RemoveChild(br); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}

	if len(block.Statements) != 0 {
		t.Fatalf("expected block to be empty after RemoveChild, has %d", len(block.Statements))
	}

	if br.Parent() != nil {
		t.Fatalf("expected br's parent to be cleared after RemoveChild")
	}

	if ctx.Contains(br) {
		t.Fatalf("expected br to be unregistered from its context after removal")
	}
}

func TestBlock_InsertBeforeAndAfter(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	anchor := f.NewBreak(Src{})
	block := f.NewBlock(Src{}, []Statement{anchor})

	before := f.NewContinue(Src{})
	if err := block.InsertBefore(before, anchor); err != nil {
		t.Fatalf("InsertBefore failed: %v", err)
	}

	after := f.NewThrow(Src{})
	if err := block.InsertAfter(after, anchor); err != nil {
		t.Fatalf("InsertAfter failed: %v", err)
	}

	want := []Node{Node(before), Node(anchor), Node(after)}
	for i, w := range want {
		if Node(block.Statements[i]) != w {
			t.Fatalf("statement %d: got %v, want %v", i, block.Statements[i], w)
		}
	}
}

func TestBlock_InsertBeforeUnknownAnchorFails(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	block := f.NewBlock(Src{}, nil)
	stranger := f.NewBreak(Src{})
	notAChild := f.NewContinue(Src{})

	err := block.InsertBefore(stranger, notAChild)
	if err == nil {
		t.Fatalf("expected SchemaMismatchError for an anchor that is not a child")
	}

	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *SchemaMismatchError, got %T", err)
	}
}

func TestBlock_AppendChildRejectsNonStatement(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	block := f.NewBlock(Src{}, nil)
	lit := f.NewLiteral(Src{}, "number", "1", "", "", TypeDescriptions{})

	err := block.AppendChild(lit)
	if err == nil {
		t.Fatalf("expected a non-Statement child to be rejected")
	}
}

func TestBlock_AppendChildRejectsForeignContext(t *testing.T) {
	ctxA := NewContext("a", 0)
	ctxB := NewContext("b", 0)

	block := NewFactory(ctxA).NewBlock(Src{}, nil)
	foreign := NewFactory(ctxB).NewBreak(Src{})

	err := block.AppendChild(foreign)
	if err == nil {
		t.Fatalf("expected WrongContextError for a child from a different context")
	}

	var wrongCtx *WrongContextError
	if !errors.As(err, &wrongCtx) {
		t.Fatalf("expected *WrongContextError, got %T", err)
	}
}

func TestUncheckedBlock_ContainerOperations(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	block := f.NewUncheckedBlock(Src{}, nil)
	first := f.NewBreak(Src{})
	second := f.NewContinue(Src{})

	if err := block.AppendChild(first); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}

	if err := block.InsertAtBeginning(second); err != nil {
		t.Fatalf("InsertAtBeginning failed: %v", err)
	}

	if Node(block.Statements[0]) != Node(second) || Node(block.Statements[1]) != Node(first) {
		t.Fatalf("expected InsertAtBeginning to place second ahead of first, got %v", block.Statements)
	}

	replacement := f.NewThrow(Src{})
	if err := block.ReplaceChild(replacement, first); err != nil {
		t.Fatalf("ReplaceChild failed: %v", err)
	}

	if Node(block.Statements[1]) != Node(replacement) {
		t.Fatalf("expected replacement in slot 1, got %v", block.Statements[1])
	}

	if first.Parent() != nil {
		t.Fatalf("expected the replaced child's parent to be cleared")
	}

	if err := block.RemoveChild(second); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}

	if len(block.Statements) != 1 {
		t.Fatalf("expected one statement left, got %d", len(block.Statements))
	}
}

func TestParameterList_ContainerOperations(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	pl := f.NewParameterList(Src{}, nil)
	a := newTestVarDecl(f, "a")
	b := newTestVarDecl(f, "b")
	c := newTestVarDecl(f, "c")

	if err := pl.AppendChild(a); err != nil {
		t.Fatalf("AppendChild a failed: %v", err)
	}

	if err := pl.AppendChild(c); err != nil {
		t.Fatalf("AppendChild c failed: %v", err)
	}

	if err := pl.InsertBefore(b, c); err != nil {
		t.Fatalf("InsertBefore b failed: %v", err)
	}

	names := []string{pl.Parameters[0].Name, pl.Parameters[1].Name, pl.Parameters[2].Name}
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("expected order [a b c], got %v", names)
	}

	if b.Parent() != Node(pl) {
		t.Fatalf("expected b's parent to be the ParameterList")
	}

	if err := pl.RemoveChild(b); err != nil {
		t.Fatalf("RemoveChild b failed: %v", err)
	}

	if len(pl.Parameters) != 2 {
		t.Fatalf("expected 2 parameters left, got %d", len(pl.Parameters))
	}
}

func TestStructDefinition_ContainerOperations(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	sd := f.NewStructDefinition(Src{}, "Point", nil, 0, "internal")
	x := newTestVarDecl(f, "x")
	y := newTestVarDecl(f, "y")

	if err := sd.AppendChild(x); err != nil {
		t.Fatalf("AppendChild x failed: %v", err)
	}

	if err := sd.InsertAfter(y, x); err != nil {
		t.Fatalf("InsertAfter y failed: %v", err)
	}

	if len(sd.Members) != 2 || sd.Members[0].Name != "x" || sd.Members[1].Name != "y" {
		t.Fatalf("expected members [x y], got %v", sd.Members)
	}

	z := newTestVarDecl(f, "z")
	if err := sd.ReplaceChild(z, x); err != nil {
		t.Fatalf("ReplaceChild failed: %v", err)
	}

	if sd.Members[0].Name != "z" {
		t.Fatalf("expected z to replace x, got %s", sd.Members[0].Name)
	}
}

func TestEnumDefinition_ContainerOperations(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	ed := f.NewEnumDefinition(Src{}, "Color", nil, 0)
	red := f.NewEnumValue(Src{}, "Red")
	blue := f.NewEnumValue(Src{}, "Blue")

	if err := ed.AppendChild(red); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}

	if err := ed.InsertAtBeginning(blue); err != nil {
		t.Fatalf("InsertAtBeginning failed: %v", err)
	}

	if ed.Members[0].Name != "Blue" || ed.Members[1].Name != "Red" {
		t.Fatalf("expected [Blue Red], got %v", ed.Members)
	}

	if err := ed.RemoveChild(blue); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}

	if len(ed.Members) != 1 || ed.Members[0].Name != "Red" {
		t.Fatalf("expected [Red] left, got %v", ed.Members)
	}
}

func TestContractDefinition_ContainerOperationsStillWork(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	contract := f.NewContractDefinition(Src{}, "C", "contract", false, true, nil, nil, nil, 0, nil, nil, nil)
	decl := newTestVarDecl(f, "value")

	if err := contract.AppendChild(decl); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}

	if len(contract.Nodes) != 1 || contract.Nodes[0] != Node(decl) {
		t.Fatalf("expected decl appended to contract, got %v", contract.Nodes)
	}
}

func TestReplaceNode_DelegatesToParentContainer(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	old := f.NewBreak(Src{})
	block := f.NewBlock(Src{}, []Statement{old})

	replacement := f.NewContinue(Src{})

	if err := ReplaceNode(old, replacement); err != nil {
		t.Fatalf("ReplaceNode failed: %v", err)
	}

	if Node(block.Statements[0]) != Node(replacement) {
		t.Fatalf("expected replacement spliced into block, got %v", block.Statements[0])
	}
}

func TestReplaceNode_FailsForFixedArityParent(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	cond := f.NewLiteral(Src{}, "bool", "true", "", "", TypeDescriptions{})
	f.NewIfStatement(Src{}, cond, nil, nil)

	err := ReplaceNode(cond, f.NewLiteral(Src{}, "bool", "false", "", "", TypeDescriptions{}))
	if err == nil {
		t.Fatalf("expected ReplaceNode to fail for a fixed-arity parent")
	}
}
