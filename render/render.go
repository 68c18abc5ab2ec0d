// Package render turns expression trees into pattern strings.
//
// Rendering is dialect-blind: it emits one Perl-family token per
// construct and assumes the tree has already been rewritten for the
// target dialect. The interesting part is group numbering. Host engines
// number capturing groups by the left-to-right position of their opening
// parenthesis in the final text, so the renderer assigns indices in a
// first pass over the exact emission order and only then produces text.
// The returned index map is therefore valid for the pattern as the host
// engine sees it, including groups that rewriting added or removed.
package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/rexpr/ast"
)

// Render produces the pattern text and group index map for t.
//
// Named groups do not render any differently from unnamed ones: the name
// lives only in the returned map. Trees whose backreferences no longer
// resolve to a numbered group fail with an error unwrapping to
// ast.ErrDanglingBackreference.
func Render(t *ast.Tree) (*Rendered, error) {
	e := &emitter{
		tree:    t,
		indexOf: make(map[ast.NodeID]int),
		names:   map[string]int{},
		byIndex: []string{""},
	}

	e.number(t.Root())
	if err := e.emit(t.Root()); err != nil {
		return nil, err
	}

	return &Rendered{
		pattern: e.sb.String(),
		names:   e.names,
		byIndex: e.byIndex,
	}, nil
}

type emitter struct {
	tree    *ast.Tree
	sb      strings.Builder
	indexOf map[ast.NodeID]int // group handle -> 1-based index
	names   map[string]int
	byIndex []string
}

// number assigns capture indices in the order the emission pass will
// write opening parentheses, which for a tree is preorder.
func (e *emitter) number(id ast.NodeID) {
	n := e.tree.Node(id)
	switch n.Kind() {
	case ast.KindConcat, ast.KindAlternation:
		for _, kid := range n.Children() {
			e.number(kid)
		}
	case ast.KindGroup:
		idx := len(e.byIndex)
		e.indexOf[id] = idx
		name := n.GroupName()
		e.byIndex = append(e.byIndex, name)
		if name != "" {
			e.names[name] = idx
		}
		e.number(n.Child())
	case ast.KindRepeat, ast.KindNonCapturing, ast.KindAtomic, ast.KindLookaround:
		e.number(n.Child())
	}
}

func (e *emitter) emit(id ast.NodeID) error {
	n := e.tree.Node(id)
	switch n.Kind() {
	case ast.KindLiteral:
		e.sb.WriteString(n.Text())

	case ast.KindConcat:
		for _, kid := range n.Children() {
			if n.Protected() {
				if err := e.protect(kid); err != nil {
					return err
				}
			} else if err := e.emit(kid); err != nil {
				return err
			}
		}

	case ast.KindAlternation:
		for i, kid := range n.Children() {
			if i > 0 {
				e.sb.WriteByte('|')
			}
			if err := e.protect(kid); err != nil {
				return err
			}
		}

	case ast.KindRepeat:
		if err := e.protect(n.Child()); err != nil {
			return err
		}
		e.quantifier(n)

	case ast.KindGroup:
		e.sb.WriteByte('(')
		if err := e.emit(n.Child()); err != nil {
			return err
		}
		e.sb.WriteByte(')')

	case ast.KindNonCapturing:
		e.sb.WriteString("(?:")
		if err := e.emit(n.Child()); err != nil {
			return err
		}
		e.sb.WriteByte(')')

	case ast.KindAtomic:
		e.sb.WriteString("(?>")
		if err := e.emit(n.Child()); err != nil {
			return err
		}
		e.sb.WriteByte(')')

	case ast.KindLookaround:
		switch {
		case n.Direction() == ast.LookAhead && !n.Negated():
			e.sb.WriteString("(?=")
		case n.Direction() == ast.LookAhead:
			e.sb.WriteString("(?!")
		case !n.Negated():
			e.sb.WriteString("(?<=")
		default:
			e.sb.WriteString("(?<!")
		}
		if err := e.emit(n.Child()); err != nil {
			return err
		}
		e.sb.WriteByte(')')

	case ast.KindBackreference:
		idx, ok := e.indexOf[n.Target()]
		if !ok {
			return &RenderError{
				Message: "backreference target holds no group index",
				Node:    id,
				Err:     ast.ErrDanglingBackreference,
			}
		}
		e.sb.WriteByte('\\')
		e.sb.WriteString(strconv.Itoa(idx))

	case ast.KindUnicodeClass:
		e.sb.WriteString(`\p{`)
		e.sb.WriteString(n.Class().Property())
		e.sb.WriteByte('}')
	}

	return nil
}

// quantifier writes the repetition operator for a Repeat node, plus the
// mode suffix. Exact-count bounds use {n}; open upper bounds collapse to
// * and + where the shorthand exists.
func (e *emitter) quantifier(n *ast.Node) {
	min, max := n.Bounds()
	switch {
	case max == ast.Unbounded && min == 0:
		e.sb.WriteByte('*')
	case max == ast.Unbounded && min == 1:
		e.sb.WriteByte('+')
	case max == ast.Unbounded:
		e.sb.WriteString("{" + strconv.Itoa(min) + ",}")
	case min == max:
		e.sb.WriteString("{" + strconv.Itoa(min) + "}")
	case min == 0 && max == 1:
		e.sb.WriteByte('?')
	default:
		e.sb.WriteString("{" + strconv.Itoa(min) + "," + strconv.Itoa(max) + "}")
	}

	switch n.Mode() {
	case ast.ModeReluctant:
		e.sb.WriteByte('?')
	case ast.ModePossessive:
		e.sb.WriteByte('+')
	}
}

// protect emits id so the result binds as one unit in any context.
// Nodes that already form a delimited or single-token unit are emitted
// as-is; anything else is wrapped in a non-capturing group. A multi-rune
// literal counts as unprotected: its text could end in something a
// following quantifier would capture.
func (e *emitter) protect(id ast.NodeID) error {
	n := e.tree.Node(id)
	switch n.Kind() {
	case ast.KindGroup, ast.KindNonCapturing, ast.KindAtomic, ast.KindLookaround,
		ast.KindBackreference, ast.KindUnicodeClass:
		return e.emit(id)
	case ast.KindLiteral:
		if utf8.RuneCountInString(n.Text()) == 1 {
			return e.emit(id)
		}
	}

	e.sb.WriteString("(?:")
	if err := e.emit(id); err != nil {
		return err
	}
	e.sb.WriteByte(')')
	return nil
}
