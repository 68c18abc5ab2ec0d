// Package rewrite transforms expression trees node by node.
//
// A Rule is a partial mapping over nodes: it replaces the constructs it
// knows how to adjust and declines everything else. The Rewriter supplies
// the structural recursion, so rules stay small and composable: applying
// rewriter A and then rewriter B always means "A over the whole tree,
// then B over the result", never an interleaving.
package rewrite

import (
	"fmt"

	"github.com/coregx/rexpr/ast"
)

// Rule adjusts individual nodes during a rewrite pass.
//
// Apply is called once per node, children first, with the node's children
// already rebuilt into dst (nil for leaf kinds, one handle for
// single-child kinds, the ordered child handles for sequence kinds). It
// returns the handle of the replacement subtree and true, or false to
// leave the node untouched, or an error to abort the whole pass.
//
// Backreference nodes are never offered to rules: their targets point at
// other nodes and only the Rewriter can keep those handles coherent
// across the pass.
type Rule interface {
	Name() string
	Apply(dst *ast.Builder, old *ast.Node, children []ast.NodeID) (ast.NodeID, bool, error)
}

// Rewriter applies one Rule across a whole tree.
type Rewriter struct {
	rule Rule
}

// New creates a rewriter for the given rule
func New(rule Rule) *Rewriter {
	return &Rewriter{rule: rule}
}

// Rule returns the rule this rewriter applies
func (r *Rewriter) Rule() Rule {
	return r.rule
}

// Rewrite builds a new tree with the rule applied to every node of t.
// The input tree is never modified. Nodes the rule declines are rebuilt
// unchanged; nodes left unreachable by a replacement are dropped.
//
// Backreference targets are remapped to the replacement of the node they
// addressed. If a replacement removed the capturing group itself, the
// resulting tree no longer satisfies the backreference invariant and
// Rewrite fails with the *ast.BuildError that Build reports.
func (r *Rewriter) Rewrite(t *ast.Tree) (*ast.Tree, error) {
	w := &walker{
		src:   t,
		rule:  r.rule,
		dst:   ast.NewBuilderWithCapacity(t.Len()),
		idMap: make([]ast.NodeID, t.Len()),
	}
	for i := range w.idMap {
		w.idMap[i] = ast.InvalidNode
	}

	root, err := w.rewrite(t.Root())
	if err != nil {
		return nil, err
	}

	// References to enclosing groups could not be resolved while the
	// group's replacement did not exist yet; resolve them now.
	for _, p := range w.pending {
		if err := w.dst.PatchBackreference(p.id, w.idMap[p.oldTarget]); err != nil {
			return nil, err
		}
	}

	return w.dst.Build(root)
}

// walker carries the per-pass state of one Rewrite call.
type walker struct {
	src     *ast.Tree
	rule    Rule
	dst     *ast.Builder
	idMap   []ast.NodeID // old handle -> replacement handle
	pending []patch      // backreferences awaiting target resolution
}

type patch struct {
	id        ast.NodeID // backreference node in dst
	oldTarget ast.NodeID // group handle in src
}

func (w *walker) rewrite(id ast.NodeID) (ast.NodeID, error) {
	old := w.src.Node(id)

	var children []ast.NodeID
	switch old.Kind() {
	case ast.KindConcat, ast.KindAlternation:
		kids := old.Children()
		if len(kids) > 0 {
			children = make([]ast.NodeID, len(kids))
			for i, kid := range kids {
				nk, err := w.rewrite(kid)
				if err != nil {
					return ast.InvalidNode, err
				}
				children[i] = nk
			}
		}
	case ast.KindRepeat, ast.KindGroup, ast.KindNonCapturing, ast.KindAtomic, ast.KindLookaround:
		nk, err := w.rewrite(old.Child())
		if err != nil {
			return ast.InvalidNode, err
		}
		children = []ast.NodeID{nk}
	}

	newID, err := w.apply(old, children)
	if err != nil {
		return ast.InvalidNode, err
	}
	w.idMap[id] = newID
	return newID, nil
}

// apply offers the node to the rule and reconstructs it on decline.
func (w *walker) apply(old *ast.Node, children []ast.NodeID) (ast.NodeID, error) {
	if old.Kind() != ast.KindBackreference {
		if id, ok, err := w.rule.Apply(w.dst, old, children); err != nil {
			return ast.InvalidNode, err
		} else if ok {
			return id, nil
		}
	}

	switch old.Kind() {
	case ast.KindLiteral:
		return w.dst.AddLiteral(old.Text()), nil
	case ast.KindConcat:
		if old.Protected() {
			return w.dst.AddProtectedConcat(children...), nil
		}
		return w.dst.AddConcat(children...), nil
	case ast.KindAlternation:
		return w.dst.AddAlternation(children...), nil
	case ast.KindRepeat:
		min, max := old.Bounds()
		return w.dst.AddRepeat(children[0], min, max, old.Mode()), nil
	case ast.KindGroup:
		return w.dst.AddNamedGroup(children[0], old.GroupName()), nil
	case ast.KindNonCapturing:
		return w.dst.AddNonCapturing(children[0]), nil
	case ast.KindAtomic:
		return w.dst.AddAtomic(children[0]), nil
	case ast.KindLookaround:
		return w.dst.AddLookaround(children[0], old.Direction(), old.Negated()), nil
	case ast.KindBackreference:
		target := old.Target()
		if mapped := w.idMap[target]; mapped != ast.InvalidNode {
			return w.dst.AddBackreference(mapped), nil
		}
		// Target is an enclosing group still being rebuilt.
		id := w.dst.AddBackreference(ast.InvalidNode)
		w.pending = append(w.pending, patch{id: id, oldTarget: target})
		return id, nil
	case ast.KindUnicodeClass:
		return w.dst.AddUnicode(old.Class()), nil
	default:
		return ast.InvalidNode, fmt.Errorf("rewrite: unknown node kind %d", old.Kind())
	}
}
