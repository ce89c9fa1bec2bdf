package node

import "sync"

// Context is the arena that owns every node of one compilation: it assigns
// monotonically increasing ids, maps id to node, and answers membership in
// O(1). A Context is a single-threaded ownership island (§5); the Mutex here
// only guards the bookkeeping maps against accidental concurrent misuse from
// ambient layers (CLI, MCP) that share one Context across goroutines — the
// core itself never spawns goroutines or blocks.
type Context struct {
	mu      sync.Mutex
	nextID  int
	nodes   map[int]Node
	name    string
}

// NewContext creates an empty context. offset, when non-zero, seeds the id
// counter so ids start above it instead of at 1.
func NewContext(name string, offset int) *Context {
	if offset < 0 {
		offset = 0
	}

	return &Context{
		nextID: offset + 1,
		nodes:  make(map[int]Node),
		name:   name,
	}
}

// Name identifies the context for diagnostics (WrongContextError messages).
func (c *Context) Name() string { return c.name }

// FreshId returns the next unused id and advances the counter. It does not
// register anything; callers still must Register the node they build with it.
func (c *Context) FreshId() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	return id
}

// Register records n under its own Id and binds n to this context. It fails
// with DuplicateIdError if another node already occupies that id.
func (c *Context) Register(n Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := n.ID()
	if _, exists := c.nodes[id]; exists {
		return &DuplicateIdError{Id: id}
	}

	c.nodes[id] = n
	n.setCtx(c)

	if id >= c.nextID {
		c.nextID = id + 1
	}

	return nil
}

// Unregister removes id from the context. It is a no-op if id is absent.
func (c *Context) Unregister(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.nodes, id)
}

// Lookup returns the node registered under id, or nil if absent.
func (c *Context) Lookup(id int) Node {
	if id == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.nodes[id]
}

// LookupRef is a convenience over Lookup for RefID attributes; RefID(0)
// (no reference / omitted tuple element) always resolves to nil.
func (c *Context) LookupRef(id RefID) Node {
	return c.Lookup(int(id))
}

// LookupRefList resolves an ordered list of RefIDs, preserving length and
// order; an element of 0 yields a nil slot (used for omitted tuple positions
// in assignments lists).
func (c *Context) LookupRefList(ids []RefID) []Node {
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = c.LookupRef(id)
	}

	return out
}

// Require returns the node registered under id, failing with
// MissingNodeError if absent.
func (c *Context) Require(id int) (Node, error) {
	n := c.Lookup(id)
	if n == nil {
		return nil, &MissingNodeError{Id: id}
	}

	return n, nil
}

// Contains reports whether n is registered in this context under its own id.
func (c *Context) Contains(n Node) bool {
	if n == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	found, ok := c.nodes[n.ID()]

	return ok && found == n
}

// Len returns the number of nodes currently registered.
func (c *Context) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.nodes)
}

// Merge absorbs other's nodes into c, failing with DuplicateIdError at the
// first colliding id and leaving both contexts unmutated in that case.
// Merging requires exclusive access to both contexts; callers serialize this
// externally (§5).
func (c *Context) Merge(other *Context) error {
	c.mu.Lock()
	other.mu.Lock()
	defer other.mu.Unlock()
	defer c.mu.Unlock()

	for id := range other.nodes {
		if _, exists := c.nodes[id]; exists {
			return &DuplicateIdError{Id: id}
		}
	}

	for id, n := range other.nodes {
		c.nodes[id] = n
		n.setCtx(c)

		if id >= c.nextID {
			c.nextID = id + 1
		}
	}

	other.nodes = make(map[int]Node)

	return nil
}
