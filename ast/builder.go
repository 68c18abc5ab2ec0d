package ast

import (
	"fmt"
)

// Builder constructs expression trees incrementally. Each Add method
// appends one node to the arena and returns its handle; handles from
// earlier calls are wired in as children, so trees grow bottom-up.
//
// Example:
//
//	b := ast.NewBuilder()
//	year := b.AddAlternation(b.AddLiteral("19"), b.AddLiteral("20"))
//	tree, err := b.Build(b.AddConcat(year, b.AddLiteral(`\d\d`)))
//
// A Builder is not safe for concurrent use.
type Builder struct {
	nodes []Node
}

// NewBuilder creates a new tree builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new tree builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		nodes: make([]Node, 0, capacity),
	}
}

func (b *Builder) push(n Node) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, n)
	return id
}

// AddLiteral adds a literal node carrying an opaque regex fragment.
// The text is emitted verbatim at render time and is never re-parsed,
// so it may contain metacharacters, escapes, or whole sub-patterns.
// Capturing groups hidden inside the text are invisible to group
// numbering, which throws the rendered index map off against the host
// engine. Use QuoteMeta in the root package to turn raw text into a
// literal that matches itself.
func (b *Builder) AddLiteral(text string) NodeID {
	return b.push(Node{
		kind: KindLiteral,
		text: text,
	})
}

// AddConcat adds a sequence node whose children render back to back.
// The children slice is copied to avoid aliasing issues.
func (b *Builder) AddConcat(children ...NodeID) NodeID {
	return b.addConcat(false, children)
}

// AddProtectedConcat adds a sequence node that renders each child inside
// its own delimited unit, so the sequence survives embedding in any
// surrounding context (for example under a quantifier).
// The children slice is copied to avoid aliasing issues.
func (b *Builder) AddProtectedConcat(children ...NodeID) NodeID {
	return b.addConcat(true, children)
}

func (b *Builder) addConcat(protected bool, children []NodeID) NodeID {
	kids := make([]NodeID, len(children))
	copy(kids, children)
	return b.push(Node{
		kind:      KindConcat,
		children:  kids,
		protected: protected,
	})
}

// AddAlternation adds an ordered-choice node (a|b|c). Children keep
// their order; engines with leftmost-first semantics prefer earlier
// branches. The children slice is copied to avoid aliasing issues.
func (b *Builder) AddAlternation(children ...NodeID) NodeID {
	kids := make([]NodeID, len(children))
	copy(kids, children)
	return b.push(Node{
		kind:     KindAlternation,
		children: kids,
	})
}

// AddRepeat adds a quantifier node repeating child between min and max
// times. Pass Unbounded as max for open-ended repetition. The mode
// selects greedy, reluctant or possessive matching.
func (b *Builder) AddRepeat(child NodeID, min, max int, mode Mode) NodeID {
	return b.push(Node{
		kind:  KindRepeat,
		child: child,
		min:   min,
		max:   max,
		mode:  mode,
	})
}

// AddGroup adds an unnamed capturing group around child
func (b *Builder) AddGroup(child NodeID) NodeID {
	return b.push(Node{
		kind:  KindGroup,
		child: child,
	})
}

// AddNamedGroup adds a capturing group whose index can later be looked
// up by name in the rendered group map. The name is metadata only; it
// is never written into the pattern text. An empty name makes the group
// unnamed, same as AddGroup.
func (b *Builder) AddNamedGroup(child NodeID, name string) NodeID {
	return b.push(Node{
		kind:  KindGroup,
		child: child,
		name:  name,
	})
}

// AddNonCapturing adds a grouping node (?:...) that delimits without capturing
func (b *Builder) AddNonCapturing(child NodeID) NodeID {
	return b.push(Node{
		kind:  KindNonCapturing,
		child: child,
	})
}

// AddAtomic adds an atomic group (?>...) that forbids backtracking into child
func (b *Builder) AddAtomic(child NodeID) NodeID {
	return b.push(Node{
		kind:  KindAtomic,
		child: child,
	})
}

// AddLookaround adds a zero-width assertion around child.
// dir selects lookahead or lookbehind; negated inverts the assertion.
func (b *Builder) AddLookaround(child NodeID, dir Direction, negated bool) NodeID {
	return b.push(Node{
		kind:    KindLookaround,
		child:   child,
		dir:     dir,
		negated: negated,
	})
}

// AddBackreference adds a reference to the text captured by an earlier
// group. The target is the group's handle, not its number; numbering
// happens at render time, after rewriting may have added or removed
// groups around it.
func (b *Builder) AddBackreference(target NodeID) NodeID {
	return b.push(Node{
		kind:   KindBackreference,
		target: target,
	})
}

// AddUnicode adds a Unicode general-category construct such as \p{L}
func (b *Builder) AddUnicode(class UnicodeClass) NodeID {
	return b.push(Node{
		kind:  KindUnicodeClass,
		class: class,
	})
}

// PatchBackreference updates the target of a backreference node. This is
// used by rewrite passes to handle forward references: a reference to an
// enclosing group can only be resolved after the group's own node exists.
func (b *Builder) PatchBackreference(id, target NodeID) error {
	if int(id) >= len(b.nodes) {
		return &BuildError{
			Message: "node ID out of bounds",
			Node:    id,
			Err:     ErrInvalidNode,
		}
	}

	n := &b.nodes[id]
	if n.kind != KindBackreference {
		return &BuildError{
			Message: fmt.Sprintf("cannot patch node of kind %s", n.kind),
			Node:    id,
			Err:     ErrInvalidNode,
		}
	}
	n.target = target
	return nil
}

// Len returns the current number of nodes
func (b *Builder) Len() int {
	return len(b.nodes)
}

// Build finalizes the tree rooted at root. Nodes are copied out of the
// builder, so the builder may keep growing afterwards without affecting
// the returned tree. The tree is validated before it is returned; see
// Tree.Validate for the checks performed.
func (b *Builder) Build(root NodeID) (*Tree, error) {
	if root == InvalidNode || int(root) >= len(b.nodes) {
		return nil, &BuildError{
			Message: "root node out of bounds",
			Node:    root,
			Err:     ErrInvalidNode,
		}
	}

	nodes := make([]Node, len(b.nodes))
	copy(nodes, b.nodes)
	t := &Tree{
		nodes: nodes,
		root:  root,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}
