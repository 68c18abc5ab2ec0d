// Package ast defines the expression tree that rexpr flavors rewrite and
// the renderer linearizes.
//
// A tree is a closed set of node variants stored in an arena: nodes are
// addressed by NodeID handles, and composite nodes reference their children
// by handle rather than by nesting. This gives every node an identity
// distinct from its structure, which is what back-references track; two
// textually identical groups remain distinguishable.
//
// Trees are immutable values. They are assembled once through a Builder,
// validated by Build, and never modified afterwards; every rewrite pass
// produces a fresh tree in a fresh arena.
package ast

import (
	"fmt"
)

// NodeID uniquely identifies a node within one tree's arena.
// Handles are only meaningful for the tree (or Builder) that issued them.
type NodeID uint32

// InvalidNode represents an invalid/uninitialized node handle.
const InvalidNode NodeID = 0xFFFFFFFF

// Unbounded marks a Repeat with no upper bound, as in `a{2,}`.
const Unbounded = -1

// Kind identifies the variant of a node and determines which payload
// accessors are valid.
type Kind uint8

const (
	// KindLiteral is a pre-formed pattern fragment. The text is opaque:
	// it is emitted verbatim and never re-parsed.
	KindLiteral Kind = iota

	// KindConcat is an ordered sequence of sub-expressions.
	KindConcat

	// KindAlternation is an ordered sequence of alternatives.
	KindAlternation

	// KindRepeat is a quantified sub-expression with min/max bounds and a
	// matching mode (greedy, reluctant, possessive).
	KindRepeat

	// KindGroup is a capturing group, optionally named.
	KindGroup

	// KindNonCapturing is a group used purely for precedence.
	KindNonCapturing

	// KindAtomic is a group whose matched content cannot be backtracked
	// into.
	KindAtomic

	// KindLookaround is a zero-width assertion (ahead or behind, possibly
	// negated).
	KindLookaround

	// KindBackreference matches the text captured by an earlier group,
	// identified by node handle.
	KindBackreference

	// KindUnicodeClass is a named Unicode category constant such as "any
	// letter".
	KindUnicodeClass
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindConcat:
		return "Concat"
	case KindAlternation:
		return "Alternation"
	case KindRepeat:
		return "Repeat"
	case KindGroup:
		return "Group"
	case KindNonCapturing:
		return "NonCapturing"
	case KindAtomic:
		return "Atomic"
	case KindLookaround:
		return "Lookaround"
	case KindBackreference:
		return "Backreference"
	case KindUnicodeClass:
		return "UnicodeClass"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Mode selects the backtracking behavior of a Repeat.
type Mode uint8

const (
	// ModeGreedy matches as much as possible, giving back on demand.
	ModeGreedy Mode = iota

	// ModeReluctant matches as little as possible, growing on demand.
	ModeReluctant

	// ModePossessive matches as much as possible and never gives back.
	ModePossessive
)

// String returns a human-readable representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeGreedy:
		return "greedy"
	case ModeReluctant:
		return "reluctant"
	case ModePossessive:
		return "possessive"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Direction selects which side of the current position a Lookaround
// inspects.
type Direction uint8

const (
	// LookAhead asserts on the input following the current position.
	LookAhead Direction = iota

	// LookBehind asserts on the input preceding the current position.
	LookBehind
)

// String returns a human-readable representation of the Direction.
func (d Direction) String() string {
	switch d {
	case LookAhead:
		return "ahead"
	case LookBehind:
		return "behind"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// Node is a single expression-tree node. The node's kind determines which
// payload fields are valid; accessors return zero values for foreign kinds.
type Node struct {
	kind Kind

	// For Literal: the opaque pattern fragment.
	text string

	// For Concat/Alternation: ordered child handles.
	// For Concat: protected wraps each child in a non-capturing group.
	children  []NodeID
	protected bool

	// For Repeat/Group/NonCapturing/Atomic/Lookaround: the single child.
	child NodeID

	// For Repeat: bounds and mode. max == Unbounded means no upper bound.
	min, max int
	mode     Mode

	// For Group: the capture name, "" for unnamed captures.
	name string

	// For Lookaround: direction and negation.
	dir     Direction
	negated bool

	// For Backreference: handle of the targeted Group node.
	target NodeID

	// For UnicodeClass: the category constant.
	class UnicodeClass
}

// Kind returns the node's variant.
func (n *Node) Kind() Kind {
	return n.kind
}

// Text returns the opaque fragment of a Literal node.
// Returns "" for other kinds.
func (n *Node) Text() string {
	if n.kind == KindLiteral {
		return n.text
	}
	return ""
}

// Children returns the ordered child handles of a Concat or Alternation
// node. The slice is shared and must not be modified.
// Returns nil for other kinds.
func (n *Node) Children() []NodeID {
	if n.kind == KindConcat || n.kind == KindAlternation {
		return n.children
	}
	return nil
}

// Protected reports whether a Concat wraps each child in a non-capturing
// group. Returns false for other kinds.
func (n *Node) Protected() bool {
	return n.kind == KindConcat && n.protected
}

// Child returns the single child handle of a Repeat, Group, NonCapturing,
// Atomic or Lookaround node. Returns InvalidNode for other kinds.
func (n *Node) Child() NodeID {
	switch n.kind {
	case KindRepeat, KindGroup, KindNonCapturing, KindAtomic, KindLookaround:
		return n.child
	}
	return InvalidNode
}

// Bounds returns the (min, max) repetition bounds of a Repeat node.
// max == Unbounded means no upper bound. Returns (0, 0) for other kinds.
func (n *Node) Bounds() (min, max int) {
	if n.kind == KindRepeat {
		return n.min, n.max
	}
	return 0, 0
}

// Mode returns the matching mode of a Repeat node.
// Returns ModeGreedy for other kinds.
func (n *Node) Mode() Mode {
	if n.kind == KindRepeat {
		return n.mode
	}
	return ModeGreedy
}

// GroupName returns the capture name of a Group node, "" if the group is
// unnamed or the node is not a group.
func (n *Node) GroupName() string {
	if n.kind == KindGroup {
		return n.name
	}
	return ""
}

// Direction returns which side a Lookaround node asserts on.
// Returns LookAhead for other kinds.
func (n *Node) Direction() Direction {
	if n.kind == KindLookaround {
		return n.dir
	}
	return LookAhead
}

// Negated reports whether a Lookaround node is a negative assertion.
// Returns false for other kinds.
func (n *Node) Negated() bool {
	return n.kind == KindLookaround && n.negated
}

// Target returns the handle of the Group a Backreference node addresses.
// Returns InvalidNode for other kinds.
func (n *Node) Target() NodeID {
	if n.kind == KindBackreference {
		return n.target
	}
	return InvalidNode
}

// Class returns the category constant of a UnicodeClass node.
// Returns ClassAnyLetter for other kinds.
func (n *Node) Class() UnicodeClass {
	if n.kind == KindUnicodeClass {
		return n.class
	}
	return ClassAnyLetter
}

// String returns a human-readable representation of the node.
func (n *Node) String() string {
	switch n.kind {
	case KindLiteral:
		return fmt.Sprintf("Literal(%q)", n.text)
	case KindConcat:
		if n.protected {
			return fmt.Sprintf("Concat(protected, %d children)", len(n.children))
		}
		return fmt.Sprintf("Concat(%d children)", len(n.children))
	case KindAlternation:
		return fmt.Sprintf("Alternation(%d children)", len(n.children))
	case KindRepeat:
		if n.max == Unbounded {
			return fmt.Sprintf("Repeat(%d -> {%d,} %s)", n.child, n.min, n.mode)
		}
		return fmt.Sprintf("Repeat(%d -> {%d,%d} %s)", n.child, n.min, n.max, n.mode)
	case KindGroup:
		if n.name != "" {
			return fmt.Sprintf("Group(%d, %q)", n.child, n.name)
		}
		return fmt.Sprintf("Group(%d)", n.child)
	case KindNonCapturing:
		return fmt.Sprintf("NonCapturing(%d)", n.child)
	case KindAtomic:
		return fmt.Sprintf("Atomic(%d)", n.child)
	case KindLookaround:
		neg := ""
		if n.negated {
			neg = ", negated"
		}
		return fmt.Sprintf("Lookaround(%d, %s%s)", n.child, n.dir, neg)
	case KindBackreference:
		return fmt.Sprintf("Backreference(%d)", n.target)
	case KindUnicodeClass:
		return fmt.Sprintf("UnicodeClass(%s)", n.class)
	default:
		return fmt.Sprintf("Unknown(%d)", n.kind)
	}
}
