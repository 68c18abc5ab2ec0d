package ast

import (
	"errors"
	"fmt"
)

// Common construction errors
var (
	// ErrInvalidNode indicates a node handle that is out of range for the
	// arena it was used with.
	ErrInvalidNode = errors.New("invalid node handle")

	// ErrDanglingBackreference indicates a back-reference whose target is
	// not a capturing group occurring before the reference in tree order.
	ErrDanglingBackreference = errors.New("dangling back-reference")

	// ErrDuplicateGroupName indicates two named groups sharing a name
	// within one tree.
	ErrDuplicateGroupName = errors.New("duplicate group name")

	// ErrInvalidBounds indicates repeat bounds with min < 0 or max < min.
	ErrInvalidBounds = errors.New("invalid repeat bounds")
)

// BuildError reports a malformed tree detected during Builder.Build.
// Construction errors are programming bugs in the calling code, distinct
// from the feature-support failures raised by flavor rewriting.
type BuildError struct {
	Message string
	Node    NodeID
	Err     error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Node != InvalidNode {
		return fmt.Sprintf("ast: build error at node %d: %s", e.Node, e.Message)
	}
	return fmt.Sprintf("ast: build error: %s", e.Message)
}

// Unwrap returns the underlying sentinel error, if any.
func (e *BuildError) Unwrap() error {
	return e.Err
}
