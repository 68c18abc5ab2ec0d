package render

import (
	"fmt"

	"github.com/coregx/rexpr/ast"
)

// RenderError reports a tree that cannot be turned into a pattern. This
// is always a construction bug in the tree, never a dialect limitation;
// dialect limitations surface during rewriting instead.
// It unwraps to the underlying ast sentinel.
type RenderError struct {
	Message string
	Node    ast.NodeID
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: %s at node %d", e.Message, e.Node)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
