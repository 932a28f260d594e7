package delta

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInsert is the panic value of NewInsertText when given an empty
	// string with attributes attached — there is no operation to carry
	// them on (I1: an op's attribute map must be either absent or
	// attached to a real op).
	ErrEmptyInsert = errors.New("delta: zero-length insert text cannot carry attributes")

	// ErrTakeOverflow is the panic value of Take when n exceeds the op's size;
	// the stepper is responsible for never calling Take this way, so
	// seeing this error means a caller bypassed the stepper.
	ErrTakeOverflow = errors.New("delta: take(op, n) called with n > size(op)")

	// ErrNegativeLength is the panic value of NewRetain/NewDelete when given a
	// negative n; spec.md §6 requires all lengths to be non-negative.
	ErrNegativeLength = errors.New("delta: retain/delete length must be non-negative")
)

// EmbedMismatchError is raised when two retain-embed operations name
// different embed types, or when a value expected to be an embed is
// not a well-formed single-key map.
type EmbedMismatchError struct {
	Left, Right any
}

func (e *EmbedMismatchError) Error() string {
	return fmt.Sprintf("delta: embed mismatch: %#v vs %#v", e.Left, e.Right)
}

// UnknownEmbedTypeError is raised when no handler is registered for an
// embed's type key.
type UnknownEmbedTypeError struct {
	Type string
}

func (e *UnknownEmbedTypeError) Error() string {
	return fmt.Sprintf("delta: no embed handler registered for type %q", e.Type)
}

// ProgrammerError wraps conditions that should never occur given a
// correctly-used API: it signals a bug in the caller, not bad input
// data.
type ProgrammerError struct {
	Msg   string
	Value any
}

func (e *ProgrammerError) Error() string {
	if e.Value == nil {
		return "delta: programmer error: " + e.Msg
	}
	return fmt.Sprintf("delta: programmer error: %s (value=%#v)", e.Msg, e.Value)
}
