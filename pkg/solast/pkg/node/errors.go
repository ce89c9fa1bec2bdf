package node

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the context, factory, and sanity checker.
// Wrap with fmt.Errorf("...: %w", Err...) so callers can errors.Is/As.
var (
	ErrMissingNode           = errors.New("node: no node registered under id")
	ErrUnknownNodeKind       = errors.New("node: unknown node kind")
	ErrSchemaMismatch        = errors.New("node: schema mismatch")
	ErrDanglingReference     = errors.New("node: dangling reference")
	ErrWrongContext          = errors.New("node: node belongs to a foreign context")
	ErrDuplicateId           = errors.New("node: duplicate id")
	ErrParentageInconsistent = errors.New("node: parentage inconsistent")
	ErrCoverageViolation     = errors.New("node: direct child missing from named relations")
	ErrCompileErrorsPresent  = errors.New("node: compiler output carries errors")
)

// MissingNodeError reports a lookup of an id not registered in a context.
type MissingNodeError struct {
	Id int
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("node: no node registered under id %d", e.Id)
}

func (e *MissingNodeError) Unwrap() error { return ErrMissingNode }

// UnknownNodeKindError names the offending schema tag and its source location.
type UnknownNodeKindError struct {
	Tag string
	Src Src
}

func (e *UnknownNodeKindError) Error() string {
	return fmt.Sprintf("node: unknown node kind %q at %s", e.Tag, e.Src)
}

func (e *UnknownNodeKindError) Unwrap() error { return ErrUnknownNodeKind }

// SchemaMismatchError reports a required field missing or ill-typed while reading.
type SchemaMismatchError struct {
	Src    Src
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("node: schema mismatch at %s: %s", e.Src, e.Reason)
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

// DanglingReferenceError reports a required reference attribute that Pass 2
// could not resolve through the context.
type DanglingReferenceError struct {
	OwnerId   int
	Attribute string
	TargetId  int
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("node: dangling reference: node %d attribute %s points to missing id %d",
		e.OwnerId, e.Attribute, e.TargetId)
}

func (e *DanglingReferenceError) Unwrap() error { return ErrDanglingReference }

// WrongContextError reports an operation that received a node allocated by a
// different context than the one performing the operation.
type WrongContextError struct {
	NodeId          int
	ExpectedContext string
	ActualContext   string
}

func (e *WrongContextError) Error() string {
	return fmt.Sprintf("node: node %d belongs to context %s, expected %s",
		e.NodeId, e.ActualContext, e.ExpectedContext)
}

func (e *WrongContextError) Unwrap() error { return ErrWrongContext }

// DuplicateIdError reports a context-merge or manual registration that found
// a colliding id.
type DuplicateIdError struct {
	Id int
}

func (e *DuplicateIdError) Error() string {
	return fmt.Sprintf("node: duplicate id %d", e.Id)
}

func (e *DuplicateIdError) Unwrap() error { return ErrDuplicateId }

// ParentageInconsistentError reports a sanity-check violation where a child's
// parent back-pointer disagrees with its structural owner.
type ParentageInconsistentError struct {
	ChildId          int
	ExpectedParentId int
	ActualParentId   int
}

func (e *ParentageInconsistentError) Error() string {
	return fmt.Sprintf("node: child %d parentage inconsistent: expected parent %d, has %d",
		e.ChildId, e.ExpectedParentId, e.ActualParentId)
}

func (e *ParentageInconsistentError) Unwrap() error { return ErrParentageInconsistent }

// CoverageViolationError reports a structural child unreachable through any
// named relation of its parent.
type CoverageViolationError struct {
	NodeId        int
	MissingChildId int
}

func (e *CoverageViolationError) Error() string {
	return fmt.Sprintf("node: node %d has a direct child %d not reachable through any named relation",
		e.NodeId, e.MissingChildId)
}

func (e *CoverageViolationError) Unwrap() error { return ErrCoverageViolation }

// CompileErrorsPresentError carries the compiler diagnostics found in the
// input JSON's top-level "errors" array.
type CompileErrorsPresentError struct {
	Messages []string
}

func (e *CompileErrorsPresentError) Error() string {
	return fmt.Sprintf("node: compiler output carries %d error(s): %v", len(e.Messages), e.Messages)
}

func (e *CompileErrorsPresentError) Unwrap() error { return ErrCompileErrorsPresent }
