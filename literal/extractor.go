package literal

import (
	"strings"

	"github.com/coregx/rexpr/ast"
)

// metachars are the bytes that make a literal's text a pattern fragment
// rather than plain text. Same set the root package escapes in QuoteMeta.
const metachars = `\.+*?()|[]{}^$`

// maxDepth bounds the recursive walk on degenerate trees.
const maxDepth = 100

// Extractor pulls required literals out of expression trees.
//
// Tree literals are opaque pattern fragments, so only fragments free of
// metacharacters are usable: `19` matches the bytes "19", but `\d\d`
// matches none of its own bytes. Anything containing a metacharacter is
// treated as unanalyzable and contributes nothing.
//
// Three views are available:
//   - Prefixes: literals every match starts with
//   - Suffixes: literals every match ends with
//   - Inner: literals every match contains somewhere
//
// All three are sound for candidate filtering: an input containing none
// of the returned literals cannot match. An empty Seq promises nothing.
//
// Example:
//
//	b := ast.NewBuilder()
//	year := b.AddAlternation(b.AddLiteral("19"), b.AddLiteral("20"))
//	tree, _ := b.Build(b.AddProtectedConcat(year, b.AddLiteral(`\d\d`)))
//
//	seq := literal.New(literal.DefaultConfig()).Prefixes(tree)
//	// seq = ["19", "20"], both incomplete
type Extractor struct {
	config Config
}

// New creates an Extractor with the given limits.
func New(config Config) *Extractor {
	return &Extractor{config: config}
}

// Prefixes returns literals that must appear at the start of any match
// of t. Returns an empty Seq when no reliable prefix exists.
func (e *Extractor) Prefixes(t *ast.Tree) *Seq {
	return e.prefixes(t, t.Root(), 0)
}

func (e *Extractor) prefixes(t *ast.Tree, id ast.NodeID, depth int) *Seq {
	if depth > maxDepth {
		return NewSeq()
	}

	n := t.Node(id)
	switch n.Kind() {
	case ast.KindLiteral:
		return e.literalSeq(n.Text(), false)

	case ast.KindConcat:
		kids := n.Children()
		// Zero-width and empty leading children never contribute
		// prefix bytes; scan past them.
		start := 0
		for start < len(kids) && skippable(t, kids[start]) {
			start++
		}
		if start >= len(kids) {
			return NewSeq()
		}

		first := e.prefixes(t, kids[start], depth+1)
		if first.IsEmpty() {
			return NewSeq()
		}
		if start+1 < len(kids) {
			return markIncomplete(first)
		}
		return first

	case ast.KindAlternation:
		return e.union(t, n.Children(), depth, e.prefixes)

	case ast.KindGroup, ast.KindNonCapturing, ast.KindAtomic:
		// Delimiters do not change matched text.
		return e.prefixes(t, n.Child(), depth+1)

	case ast.KindRepeat:
		// Even {1,n} bounds are skipped: the repeated text varies, so
		// no single byte sequence is reliable.
		return NewSeq()

	default:
		// Lookaround, Backreference, UnicodeClass: no fixed bytes.
		return NewSeq()
	}
}

// Suffixes returns literals that must appear at the end of any match
// of t. Returns an empty Seq when no reliable suffix exists.
func (e *Extractor) Suffixes(t *ast.Tree) *Seq {
	return e.suffixes(t, t.Root(), 0)
}

func (e *Extractor) suffixes(t *ast.Tree, id ast.NodeID, depth int) *Seq {
	if depth > maxDepth {
		return NewSeq()
	}

	n := t.Node(id)
	switch n.Kind() {
	case ast.KindLiteral:
		return e.literalSeq(n.Text(), true)

	case ast.KindConcat:
		kids := n.Children()
		end := len(kids) - 1
		for end >= 0 && skippable(t, kids[end]) {
			end--
		}
		if end < 0 {
			return NewSeq()
		}

		last := e.suffixes(t, kids[end], depth+1)
		if last.IsEmpty() {
			return NewSeq()
		}
		if end > 0 {
			return markIncomplete(last)
		}
		return last

	case ast.KindAlternation:
		return e.union(t, n.Children(), depth, e.suffixes)

	case ast.KindGroup, ast.KindNonCapturing, ast.KindAtomic:
		return e.suffixes(t, n.Child(), depth+1)

	case ast.KindRepeat:
		return NewSeq()

	default:
		return NewSeq()
	}
}

// Inner returns literals that must appear somewhere in any match of t.
// The first concatenation element that yields literals wins; unlike
// Prefixes, elements before it may match anything.
func (e *Extractor) Inner(t *ast.Tree) *Seq {
	return e.inner(t, t.Root(), 0)
}

func (e *Extractor) inner(t *ast.Tree, id ast.NodeID, depth int) *Seq {
	if depth > maxDepth {
		return NewSeq()
	}

	n := t.Node(id)
	switch n.Kind() {
	case ast.KindLiteral:
		seq := e.literalSeq(n.Text(), false)
		// Position is unknown, so an inner literal never proves a
		// whole match by itself.
		return markIncomplete(seq)

	case ast.KindConcat:
		for _, kid := range n.Children() {
			if seq := e.inner(t, kid, depth+1); !seq.IsEmpty() {
				return seq
			}
		}
		return NewSeq()

	case ast.KindAlternation:
		return e.union(t, n.Children(), depth, e.inner)

	case ast.KindGroup, ast.KindNonCapturing, ast.KindAtomic:
		return e.inner(t, n.Child(), depth+1)

	case ast.KindRepeat:
		return NewSeq()

	default:
		return NewSeq()
	}
}

// literalSeq turns one literal's text into a Seq, or an empty Seq when
// the text is empty or contains metacharacters. Overlong text is cut to
// MaxLiteralLen (tail bytes when fromEnd) and stops counting as complete.
func (e *Extractor) literalSeq(text string, fromEnd bool) *Seq {
	if text == "" || strings.ContainsAny(text, metachars) {
		return NewSeq()
	}

	b := []byte(text)
	complete := true
	if len(b) > e.config.MaxLiteralLen {
		if fromEnd {
			b = b[len(b)-e.config.MaxLiteralLen:]
		} else {
			b = b[:e.config.MaxLiteralLen]
		}
		complete = false
	}
	return NewSeq(NewLiteral(b, complete))
}

// union collects one extraction per alternation branch. Every branch
// must contribute: a branch with no reliable literal means a match may
// avoid all collected literals, so the whole union is discarded. The
// same applies when the union overflows MaxLiterals.
func (e *Extractor) union(t *ast.Tree, kids []ast.NodeID, depth int, extract func(*ast.Tree, ast.NodeID, int) *Seq) *Seq {
	var all []Literal
	for _, kid := range kids {
		seq := extract(t, kid, depth+1)
		if seq.IsEmpty() {
			return NewSeq()
		}
		if len(all)+seq.Len() > e.config.MaxLiterals {
			return NewSeq()
		}
		for i := 0; i < seq.Len(); i++ {
			all = append(all, seq.Get(i))
		}
	}
	return NewSeq(all...)
}

// markIncomplete returns seq with every literal demoted to a fragment
// of a larger match.
func markIncomplete(seq *Seq) *Seq {
	if seq.IsEmpty() {
		return seq
	}
	lits := make([]Literal, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		lits[i] = NewLiteral(seq.Get(i).Bytes, false)
	}
	return NewSeq(lits...)
}

// skippable reports whether a concat child contributes no bytes to the
// match: lookarounds are zero-width and empty literals are empty.
func skippable(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	switch n.Kind() {
	case ast.KindLookaround:
		return true
	case ast.KindLiteral:
		return n.Text() == ""
	}
	return false
}
