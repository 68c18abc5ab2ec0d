package rewrite

import (
	"errors"
	"fmt"

	"github.com/coregx/rexpr/ast"
)

// ErrUnsupported is returned when a rule meets a construct the target
// dialect cannot express and no sound downgrade exists.
var ErrUnsupported = errors.New("construct not supported")

// UnsupportedError reports which rule rejected which construct.
// It unwraps to ErrUnsupported.
type UnsupportedError struct {
	Rule   string   // name of the rejecting rule
	Kind   ast.Kind // kind of the offending node
	Detail string   // what about the node was unsupported
}

func (e *UnsupportedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("rewrite: rule %s: unsupported %s: %s", e.Rule, e.Kind, e.Detail)
	}
	return fmt.Sprintf("rewrite: rule %s: unsupported %s", e.Rule, e.Kind)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}
