package ast

import (
	"fmt"
)

// Tree is an immutable expression tree: an arena of nodes plus the handle
// of the root. Trees are produced by Builder.Build and never modified;
// rewrite passes build new trees rather than changing existing ones, so a
// single tree may be rendered under many flavors concurrently.
type Tree struct {
	// nodes contains all tree nodes indexed by NodeID.
	nodes []Node

	// root is the handle of the root node.
	root NodeID
}

// Root returns the handle of the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node with the given handle.
// Returns nil if the handle is invalid for this tree.
func (t *Tree) Node(id NodeID) *Node {
	if id == InvalidNode || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Len returns the number of nodes in the arena, including any nodes left
// unreachable by rewriting.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Validate checks that the tree is well-formed:
//   - the root and every reachable reference point at arena nodes that
//     precede their referrer (the Builder's append order guarantees this
//     for handles it issued; foreign handles are caught here);
//   - no node is used in more than one position (trees, not DAGs);
//   - repeat bounds satisfy min >= 0 and max == Unbounded or max >= min;
//   - every back-reference targets a capturing group whose opening
//     position precedes the reference in left-to-right tree order;
//   - group names are unique among reachable groups.
//
// Builder.Build validates automatically; Validate is exposed for callers
// that hold trees of uncertain provenance.
func (t *Tree) Validate() error {
	if t.root == InvalidNode || int(t.root) >= len(t.nodes) {
		return &BuildError{
			Message: "root node out of bounds",
			Node:    t.root,
			Err:     ErrInvalidNode,
		}
	}

	visited := make([]bool, len(t.nodes))
	groupSeen := make(map[NodeID]bool)
	names := make(map[string]NodeID)

	// Explicit stack keeps deep trees from exhausting goroutine stacks.
	// Children are pushed in reverse so the walk visits them left to
	// right, matching the order of opening tokens in the rendered string.
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[id]
		if visited[id] {
			return &BuildError{
				Message: fmt.Sprintf("node %s used in more than one position", n),
				Node:    id,
				Err:     ErrInvalidNode,
			}
		}
		visited[id] = true

		switch n.kind {
		case KindLiteral:
			// Leaf; opaque text contributes nothing to validation.

		case KindConcat, KindAlternation:
			for i := len(n.children) - 1; i >= 0; i-- {
				child := n.children[i]
				if child >= id {
					return &BuildError{
						Message: fmt.Sprintf("child handle %d does not precede node %d", child, id),
						Node:    id,
						Err:     ErrInvalidNode,
					}
				}
				stack = append(stack, child)
			}

		case KindRepeat:
			if n.min < 0 || (n.max != Unbounded && n.max < n.min) {
				return &BuildError{
					Message: fmt.Sprintf("repeat bounds {%d,%d}", n.min, n.max),
					Node:    id,
					Err:     ErrInvalidBounds,
				}
			}
			if n.child >= id {
				return &BuildError{
					Message: fmt.Sprintf("child handle %d does not precede node %d", n.child, id),
					Node:    id,
					Err:     ErrInvalidNode,
				}
			}
			stack = append(stack, n.child)

		case KindGroup:
			if n.name != "" {
				if prev, ok := names[n.name]; ok {
					return &BuildError{
						Message: fmt.Sprintf("group name %q already used by node %d", n.name, prev),
						Node:    id,
						Err:     ErrDuplicateGroupName,
					}
				}
				names[n.name] = id
			}
			// The group's opening position precedes everything inside it,
			// so it becomes a valid back-reference target from here on.
			groupSeen[id] = true
			if n.child >= id {
				return &BuildError{
					Message: fmt.Sprintf("child handle %d does not precede node %d", n.child, id),
					Node:    id,
					Err:     ErrInvalidNode,
				}
			}
			stack = append(stack, n.child)

		case KindNonCapturing, KindAtomic, KindLookaround:
			if n.child >= id {
				return &BuildError{
					Message: fmt.Sprintf("child handle %d does not precede node %d", n.child, id),
					Node:    id,
					Err:     ErrInvalidNode,
				}
			}
			stack = append(stack, n.child)

		case KindBackreference:
			if int(n.target) >= len(t.nodes) || t.nodes[n.target].kind != KindGroup {
				return &BuildError{
					Message: fmt.Sprintf("back-reference target %d is not a group", n.target),
					Node:    id,
					Err:     ErrDanglingBackreference,
				}
			}
			if !groupSeen[n.target] {
				return &BuildError{
					Message: fmt.Sprintf("back-reference target %d does not precede the reference", n.target),
					Node:    id,
					Err:     ErrDanglingBackreference,
				}
			}

		case KindUnicodeClass:
			if !n.class.Valid() {
				return &BuildError{
					Message: fmt.Sprintf("unknown unicode class %d", uint8(n.class)),
					Node:    id,
					Err:     ErrInvalidNode,
				}
			}

		default:
			return &BuildError{
				Message: fmt.Sprintf("unknown node kind %d", uint8(n.kind)),
				Node:    id,
				Err:     ErrInvalidNode,
			}
		}
	}

	return nil
}
