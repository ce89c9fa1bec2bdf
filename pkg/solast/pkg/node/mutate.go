package node

// Container is implemented by node kinds whose children are a private
// ordered list that structural mutations operate on directly (append,
// insert, replace, remove). Kinds whose child set is instead computed from
// fixed-arity typed attributes (a BinaryOperation's two operands, an
// IfStatement's condition/bodies) are mutated by assigning those fields
// directly; there is no Container-style method for those.
type Container interface {
	Node
	AppendChild(c Node) error
	InsertBefore(c, anchor Node) error
	InsertAfter(c, anchor Node) error
	InsertAtBeginning(c Node) error
	ReplaceChild(newC, oldC Node) error
	RemoveChild(c Node) error
}

// requireSameContext fails WrongContextError when c was allocated by a
// different context than owner.
func requireSameContext(owner, c Node) error {
	oc := owner.context()
	cc := c.context()

	if oc == nil || cc == nil || oc == cc {
		return nil
	}

	return &WrongContextError{NodeId: c.ID(), ExpectedContext: oc.Name(), ActualContext: cc.Name()}
}

// Block mutations. Statements is the private ordered list Block controls.

func (n *Block) AppendChild(c Node) error {
	s, err := asStatement(n, c)
	if err != nil {
		return err
	}

	n.Statements = append(n.Statements, s)
	c.setParent(n)

	return nil
}

func (n *Block) InsertAtBeginning(c Node) error {
	s, err := asStatement(n, c)
	if err != nil {
		return err
	}

	n.Statements = append([]Statement{s}, n.Statements...)
	c.setParent(n)

	return nil
}

func (n *Block) InsertBefore(c, anchor Node) error {
	return blockInsert(n, c, anchor, 0)
}

func (n *Block) InsertAfter(c, anchor Node) error {
	return blockInsert(n, c, anchor, 1)
}

func blockInsert(n *Block, c, anchor Node, offset int) error {
	s, err := asStatement(n, c)
	if err != nil {
		return err
	}

	idx := -1
	for i, st := range n.Statements {
		if st.ID() == anchor.ID() {
			idx = i
			break
		}
	}

	if idx < 0 {
		return &SchemaMismatchError{Reason: "anchor is not a direct child of this block"}
	}

	at := idx + offset
	n.Statements = append(n.Statements[:at], append([]Statement{s}, n.Statements[at:]...)...)
	c.setParent(n)

	return nil
}

func (n *Block) ReplaceChild(newC, oldC Node) error {
	s, err := asStatement(n, newC)
	if err != nil {
		return err
	}

	for i, st := range n.Statements {
		if st.ID() == oldC.ID() {
			n.Statements[i] = s
			newC.setParent(n)
			oldC.setParent(nil)

			return nil
		}
	}

	return &SchemaMismatchError{Reason: "old child is not a direct child of this block"}
}

func (n *Block) RemoveChild(c Node) error {
	for i, st := range n.Statements {
		if st.ID() == c.ID() {
			n.Statements = append(n.Statements[:i], n.Statements[i+1:]...)
			c.setParent(nil)

			if ctx := c.context(); ctx != nil {
				removeSubtree(ctx, c)
			}

			return nil
		}
	}

	return &SchemaMismatchError{Reason: "child is not a direct child of this block"}
}

func asStatement(owner Node, c Node) (Statement, error) {
	if err := requireSameContext(owner, c); err != nil {
		return nil, err
	}

	s, ok := c.(Statement)
	if !ok {
		return nil, &SchemaMismatchError{Reason: "node does not implement Statement"}
	}

	return s, nil
}

// removeSubtree recursively unregisters n and its structural descendants
// from ctx, per the lifecycle rule that removal cascades.
func removeSubtree(ctx *Context, n Node) {
	for _, c := range n.Children() {
		if c != nil {
			removeSubtree(ctx, c)
		}
	}

	ctx.Unregister(n.ID())
}

// ContractDefinition.Nodes mutations (a container of mixed declaration kinds).

func (n *ContractDefinition) AppendChild(c Node) error {
	if err := requireSameContext(n, c); err != nil {
		return err
	}

	n.Nodes = append(n.Nodes, c)
	c.setParent(n)

	return nil
}

func (n *ContractDefinition) InsertAtBeginning(c Node) error {
	if err := requireSameContext(n, c); err != nil {
		return err
	}

	n.Nodes = append([]Node{c}, n.Nodes...)
	c.setParent(n)

	return nil
}

func (n *ContractDefinition) InsertBefore(c, anchor Node) error {
	return genericNodesInsert(&n.Nodes, n, c, anchor, 0)
}

func (n *ContractDefinition) InsertAfter(c, anchor Node) error {
	return genericNodesInsert(&n.Nodes, n, c, anchor, 1)
}

func (n *ContractDefinition) ReplaceChild(newC, oldC Node) error {
	return genericNodesReplace(&n.Nodes, n, newC, oldC)
}

func (n *ContractDefinition) RemoveChild(c Node) error {
	return genericNodesRemove(&n.Nodes, c)
}

// SourceUnit.Nodes mutations.

func (n *SourceUnit) AppendChild(c Node) error {
	if err := requireSameContext(n, c); err != nil {
		return err
	}

	n.Nodes = append(n.Nodes, c)
	c.setParent(n)

	return nil
}

func (n *SourceUnit) InsertAtBeginning(c Node) error {
	if err := requireSameContext(n, c); err != nil {
		return err
	}

	n.Nodes = append([]Node{c}, n.Nodes...)
	c.setParent(n)

	return nil
}

func (n *SourceUnit) InsertBefore(c, anchor Node) error {
	return genericNodesInsert(&n.Nodes, n, c, anchor, 0)
}

func (n *SourceUnit) InsertAfter(c, anchor Node) error {
	return genericNodesInsert(&n.Nodes, n, c, anchor, 1)
}

func (n *SourceUnit) ReplaceChild(newC, oldC Node) error {
	return genericNodesReplace(&n.Nodes, n, newC, oldC)
}

func (n *SourceUnit) RemoveChild(c Node) error {
	return genericNodesRemove(&n.Nodes, c)
}

func genericNodesInsert(list *[]Node, owner Node, c, anchor Node, offset int) error {
	if err := requireSameContext(owner, c); err != nil {
		return err
	}

	idx := -1
	for i, existing := range *list {
		if existing.ID() == anchor.ID() {
			idx = i
			break
		}
	}

	if idx < 0 {
		return &SchemaMismatchError{Reason: "anchor is not a direct child"}
	}

	at := idx + offset
	out := append([]Node{}, (*list)[:at]...)
	out = append(out, c)
	out = append(out, (*list)[at:]...)
	*list = out
	c.setParent(owner)

	return nil
}

func genericNodesReplace(list *[]Node, owner Node, newC, oldC Node) error {
	if err := requireSameContext(owner, newC); err != nil {
		return err
	}

	for i, existing := range *list {
		if existing.ID() == oldC.ID() {
			(*list)[i] = newC
			newC.setParent(owner)
			oldC.setParent(nil)

			return nil
		}
	}

	return &SchemaMismatchError{Reason: "old child is not a direct child"}
}

func genericNodesRemove(list *[]Node, c Node) error {
	for i, existing := range *list {
		if existing.ID() == c.ID() {
			*list = append((*list)[:i], (*list)[i+1:]...)
			c.setParent(nil)

			if ctx := c.context(); ctx != nil {
				removeSubtree(ctx, c)
			}

			return nil
		}
	}

	return &SchemaMismatchError{Reason: "child is not a direct child"}
}

// UncheckedBlock mutations. Statements is the private ordered list
// UncheckedBlock controls, same shape as Block.

func (n *UncheckedBlock) AppendChild(c Node) error {
	s, err := asStatement(n, c)
	if err != nil {
		return err
	}

	n.Statements = append(n.Statements, s)
	c.setParent(n)

	return nil
}

func (n *UncheckedBlock) InsertAtBeginning(c Node) error {
	s, err := asStatement(n, c)
	if err != nil {
		return err
	}

	n.Statements = append([]Statement{s}, n.Statements...)
	c.setParent(n)

	return nil
}

func (n *UncheckedBlock) InsertBefore(c, anchor Node) error {
	return uncheckedBlockInsert(n, c, anchor, 0)
}

func (n *UncheckedBlock) InsertAfter(c, anchor Node) error {
	return uncheckedBlockInsert(n, c, anchor, 1)
}

func uncheckedBlockInsert(n *UncheckedBlock, c, anchor Node, offset int) error {
	s, err := asStatement(n, c)
	if err != nil {
		return err
	}

	idx := -1
	for i, st := range n.Statements {
		if st.ID() == anchor.ID() {
			idx = i
			break
		}
	}

	if idx < 0 {
		return &SchemaMismatchError{Reason: "anchor is not a direct child of this unchecked block"}
	}

	at := idx + offset
	n.Statements = append(n.Statements[:at], append([]Statement{s}, n.Statements[at:]...)...)
	c.setParent(n)

	return nil
}

func (n *UncheckedBlock) ReplaceChild(newC, oldC Node) error {
	s, err := asStatement(n, newC)
	if err != nil {
		return err
	}

	for i, st := range n.Statements {
		if st.ID() == oldC.ID() {
			n.Statements[i] = s
			newC.setParent(n)
			oldC.setParent(nil)

			return nil
		}
	}

	return &SchemaMismatchError{Reason: "old child is not a direct child of this unchecked block"}
}

func (n *UncheckedBlock) RemoveChild(c Node) error {
	for i, st := range n.Statements {
		if st.ID() == c.ID() {
			n.Statements = append(n.Statements[:i], n.Statements[i+1:]...)
			c.setParent(nil)

			if ctx := c.context(); ctx != nil {
				removeSubtree(ctx, c)
			}

			return nil
		}
	}

	return &SchemaMismatchError{Reason: "child is not a direct child of this unchecked block"}
}

// typedListContainer implements the ordered-list splice operations shared by
// ParameterList, StructDefinition, and EnumDefinition, whose private lists
// hold a concrete node type rather than the Node or Statement interfaces
// Block/ContractDefinition/SourceUnit use.
type typedListContainer[T Node] struct {
	owner Node
	list  *[]T
}

func (tc typedListContainer[T]) asElem(c Node) (T, error) {
	var zero T

	if err := requireSameContext(tc.owner, c); err != nil {
		return zero, err
	}

	e, ok := c.(T)
	if !ok {
		return zero, &SchemaMismatchError{Reason: "node does not implement the expected child type"}
	}

	return e, nil
}

func (tc typedListContainer[T]) append(c Node) error {
	e, err := tc.asElem(c)
	if err != nil {
		return err
	}

	*tc.list = append(*tc.list, e)
	c.setParent(tc.owner)

	return nil
}

func (tc typedListContainer[T]) insertAtBeginning(c Node) error {
	e, err := tc.asElem(c)
	if err != nil {
		return err
	}

	*tc.list = append([]T{e}, (*tc.list)...)
	c.setParent(tc.owner)

	return nil
}

func (tc typedListContainer[T]) insert(c, anchor Node, offset int) error {
	e, err := tc.asElem(c)
	if err != nil {
		return err
	}

	idx := -1
	for i, existing := range *tc.list {
		if existing.ID() == anchor.ID() {
			idx = i
			break
		}
	}

	if idx < 0 {
		return &SchemaMismatchError{Reason: "anchor is not a direct child"}
	}

	at := idx + offset
	*tc.list = append((*tc.list)[:at], append([]T{e}, (*tc.list)[at:]...)...)
	c.setParent(tc.owner)

	return nil
}

func (tc typedListContainer[T]) replace(newC, oldC Node) error {
	e, err := tc.asElem(newC)
	if err != nil {
		return err
	}

	for i, existing := range *tc.list {
		if existing.ID() == oldC.ID() {
			(*tc.list)[i] = e
			newC.setParent(tc.owner)
			oldC.setParent(nil)

			return nil
		}
	}

	return &SchemaMismatchError{Reason: "old child is not a direct child"}
}

func (tc typedListContainer[T]) remove(c Node) error {
	for i, existing := range *tc.list {
		if existing.ID() == c.ID() {
			*tc.list = append((*tc.list)[:i], (*tc.list)[i+1:]...)
			c.setParent(nil)

			if ctx := c.context(); ctx != nil {
				removeSubtree(ctx, c)
			}

			return nil
		}
	}

	return &SchemaMismatchError{Reason: "child is not a direct child"}
}

// ParameterList mutations. Parameters is the private ordered list
// ParameterList controls.

func (n *ParameterList) container() typedListContainer[*VariableDeclaration] {
	return typedListContainer[*VariableDeclaration]{owner: n, list: &n.Parameters}
}

func (n *ParameterList) AppendChild(c Node) error { return n.container().append(c) }
func (n *ParameterList) InsertAtBeginning(c Node) error { return n.container().insertAtBeginning(c) }
func (n *ParameterList) InsertBefore(c, anchor Node) error { return n.container().insert(c, anchor, 0) }
func (n *ParameterList) InsertAfter(c, anchor Node) error { return n.container().insert(c, anchor, 1) }
func (n *ParameterList) ReplaceChild(newC, oldC Node) error { return n.container().replace(newC, oldC) }
func (n *ParameterList) RemoveChild(c Node) error { return n.container().remove(c) }

// StructDefinition mutations. Members is the private ordered list
// StructDefinition controls.

func (n *StructDefinition) container() typedListContainer[*VariableDeclaration] {
	return typedListContainer[*VariableDeclaration]{owner: n, list: &n.Members}
}

func (n *StructDefinition) AppendChild(c Node) error { return n.container().append(c) }
func (n *StructDefinition) InsertAtBeginning(c Node) error { return n.container().insertAtBeginning(c) }
func (n *StructDefinition) InsertBefore(c, anchor Node) error { return n.container().insert(c, anchor, 0) }
func (n *StructDefinition) InsertAfter(c, anchor Node) error { return n.container().insert(c, anchor, 1) }
func (n *StructDefinition) ReplaceChild(newC, oldC Node) error { return n.container().replace(newC, oldC) }
func (n *StructDefinition) RemoveChild(c Node) error { return n.container().remove(c) }

// EnumDefinition mutations. Members is the private ordered list
// EnumDefinition controls.

func (n *EnumDefinition) container() typedListContainer[*EnumValue] {
	return typedListContainer[*EnumValue]{owner: n, list: &n.Members}
}

func (n *EnumDefinition) AppendChild(c Node) error { return n.container().append(c) }
func (n *EnumDefinition) InsertAtBeginning(c Node) error { return n.container().insertAtBeginning(c) }
func (n *EnumDefinition) InsertBefore(c, anchor Node) error { return n.container().insert(c, anchor, 0) }
func (n *EnumDefinition) InsertAfter(c, anchor Node) error { return n.container().insert(c, anchor, 1) }
func (n *EnumDefinition) ReplaceChild(newC, oldC Node) error { return n.container().replace(newC, oldC) }
func (n *EnumDefinition) RemoveChild(c Node) error { return n.container().remove(c) }

// ReplaceNode performs the composite replace operation of §4.4: it looks up
// o's parent, asks it (if it is a Container) to splice in n, and otherwise
// falls back to being a no-op error for fixed-arity parents, which must be
// mutated through direct attribute assignment instead.
func ReplaceNode(o, n Node) error {
	parent := o.Parent()
	if parent == nil {
		return &SchemaMismatchError{Reason: "node has no parent to replace it within"}
	}

	container, ok := parent.(Container)
	if !ok {
		return &SchemaMismatchError{Reason: "parent's children are fixed-arity attributes; assign the field directly instead of calling ReplaceNode"}
	}

	return container.ReplaceChild(n, o)
}
