package node //nolint:testpackage // tests walk unexported child/id bookkeeping directly

import (
	"regexp"
	"testing"
)

// assertSameShape confirms a and b are structurally identical modulo ids
// (same Kind at every position, same children count), as required of a
// faithful deep copy.
func assertSameShape(t *testing.T, a, b Node) {
	t.Helper()

	if a == nil || b == nil {
		if a != nil || b != nil {
			t.Fatalf("shape mismatch: one side is nil, other is %v/%v", a, b)
		}

		return
	}

	if a.Kind() != b.Kind() {
		t.Fatalf("shape mismatch: kinds %s vs %s", a.Kind(), b.Kind())
	}

	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		t.Fatalf("shape mismatch at %s#%d: %d children vs %d", a.Kind(), a.ID(), len(ac), len(bc))
	}

	for i := range ac {
		assertSameShape(t, ac[i], bc[i])
	}
}

// collectIds gathers every id in root's subtree into the given set.
func collectIds(n Node, into map[int]bool) {
	if n == nil {
		return
	}

	into[n.ID()] = true
	for _, c := range n.Children() {
		collectIds(c, into)
	}
}

func TestCopy_ProducesFreshDisjointIds(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	ret := f.NewReturn(Src{}, nil, 0)
	block := f.NewBlock(Src{}, []Statement{ret})

	cp := f.Copy(block)

	original := make(map[int]bool)
	collectIds(block, original)

	copied := make(map[int]bool)
	collectIds(cp, copied)

	if len(copied) != len(original) {
		t.Fatalf("expected %d ids in the copy, got %d", len(original), len(copied))
	}

	for id := range copied {
		if original[id] {
			t.Fatalf("copy reused original id %d, expected a disjoint range", id)
		}
	}
}

func TestCopy_PreservesStructuralShape(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	cond := f.NewLiteral(Src{}, "bool", "true", "", "", TypeDescriptions{})
	thenRet := f.NewReturn(Src{}, nil, 0)
	thenBlock := f.NewBlock(Src{}, []Statement{thenRet})
	ifStmt := f.NewIfStatement(Src{}, cond, thenBlock, nil)
	outer := f.NewBlock(Src{}, []Statement{ifStmt})

	cp := f.Copy(outer)

	assertSameShape(t, outer, cp)
}

func TestCopy_RegistersEveryClonedNode(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	block := f.NewBlock(Src{}, []Statement{f.NewBreak(Src{}), f.NewContinue(Src{})})

	before := ctx.Len()
	cp := f.Copy(block)
	after := ctx.Len()

	ids := make(map[int]bool)
	collectIds(cp, ids)

	if after-before != len(ids) {
		t.Fatalf("expected context to grow by %d entries, grew by %d", len(ids), after-before)
	}

	for id := range ids {
		if ctx.Lookup(id) == nil {
			t.Fatalf("copied node id %d not registered in context", id)
		}
	}
}

func TestCopy_RemapsInternalReferencesButKeepsExternalOnes(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	unit := f.NewSourceUnit(Src{}, "", "", nil, map[string][]RefID{})
	externalID := RefID(12345)

	aliases := []SymbolAlias{
		{Foreign: RefID(unit.ID()), Local: ""},
		{Foreign: externalID, Local: ""},
	}
	imp := f.NewImportDirective(Src{}, "lib.sol", "", "", aliases, RefID(unit.ID()))
	unit.Nodes = append(unit.Nodes, imp)
	f.acceptChildren(unit)

	cp := f.Copy(unit).(*SourceUnit) //nolint:forcetypeassert // test constructs the concrete kind directly

	copiedImp, ok := cp.Nodes[0].(*ImportDirective)
	if !ok {
		t.Fatalf("expected copied node to be *ImportDirective, got %T", cp.Nodes[0])
	}

	if int(copiedImp.SourceUnit) == unit.ID() {
		t.Fatalf("expected SourceUnit ref to be remapped off the original id %d", unit.ID())
	}

	if int(copiedImp.SourceUnit) != cp.ID() {
		t.Fatalf("expected SourceUnit ref to point at the copy's own id %d, got %d", cp.ID(), copiedImp.SourceUnit)
	}

	if copiedImp.SymbolAliases[0].Foreign == RefID(unit.ID()) {
		t.Fatalf("expected internal alias ref to be remapped")
	}

	if copiedImp.SymbolAliases[1].Foreign != externalID {
		t.Fatalf("expected external alias ref %d to survive unchanged, got %d", externalID, copiedImp.SymbolAliases[1].Foreign)
	}
}

func TestCopy_PrintShapeMatchesModuloIds(t *testing.T) {
	ctx := NewContext("test", 0)
	f := NewFactory(ctx)

	block := f.NewBlock(Src{}, []Statement{f.NewBreak(Src{}), f.NewThrow(Src{})})

	cp := f.Copy(block)

	originalPrint := Print(block, 0)
	copiedPrint := Print(cp, 0)

	if originalPrint == "" || copiedPrint == "" {
		t.Fatalf("expected non-empty Print output for both trees")
	}

	idPattern := regexp.MustCompile(`#\d+`)
	if got, want := idPattern.ReplaceAllString(copiedPrint, "#"), idPattern.ReplaceAllString(originalPrint, "#"); got != want {
		t.Fatalf("Print output differs modulo ids:\noriginal:\n%s\ncopy:\n%s", want, got)
	}

	assertSameShape(t, block, cp)
}
