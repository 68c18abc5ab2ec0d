// Package rexpr builds regular expressions from composable parts.
//
// Instead of hand-writing pattern strings, callers assemble a tree of
// typed sub-expressions and render it for a target dialect:
//   - Tree construction (ast.Builder): literals, groups, repeats,
//     alternations, lookarounds, backreferences, Unicode categories
//   - Flavor rewriting (flavor, rewrite): downgrade or reject constructs
//     the target dialect cannot express
//   - Rendering (render): the final pattern string plus a group-name to
//     group-index map that agrees with the host engine's numbering
//
// The same tree can be rendered for many dialects; differences between
// dialects live in rewrite rules, never in the renderer.
//
// Basic usage:
//
//	b := ast.NewBuilder()
//	sep := b.AddNamedGroup(b.AddLiteral("[- /.]"), "sep")
//	tree, err := b.Build(sep)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := rexpr.Render(tree, flavor.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.Pattern())          // "([- /.])"
//	fmt.Println(out.Groups()["sep"])    // 1
//
// Picking a dialect:
//
//	// Ruby 1.8 has no named groups, possessive quantifiers, \p{...}
//	// or lookbehind; rendering downgrades what it can and reports
//	// what it cannot express.
//	out, err := rexpr.Render(tree, flavor.LegacyRuby())
//	if errors.Is(err, rewrite.ErrUnsupported) {
//	    // tree uses a construct this dialect lacks
//	}
//
// Limitations:
//   - Literal text is opaque: fragments pasted in via AddLiteral are
//     never parsed, so capturing groups hidden inside them are invisible
//     to group numbering
//   - Rendered patterns use Perl-family tokens; dialects that need
//     different spellings of the same construct are out of scope
package rexpr

import (
	"github.com/coregx/rexpr/ast"
	"github.com/coregx/rexpr/flavor"
	"github.com/coregx/rexpr/literal"
	"github.com/coregx/rexpr/prefilter"
	"github.com/coregx/rexpr/render"
)

// Render rewrites tree for the given flavor and renders the result.
//
// The returned Rendered holds the dialect-ready pattern and the group
// index map; the input tree is never modified.
//
// Example:
//
//	out, err := rexpr.Render(tree, flavor.LegacyRuby())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re := regexp.MustCompile(out.Pattern())
func Render(tree *ast.Tree, f flavor.Flavor) (*render.Rendered, error) {
	adjusted, err := f.Apply(tree)
	if err != nil {
		return nil, err
	}
	return render.Render(adjusted)
}

// MustRender is like Render but panics if rendering fails.
//
// This is useful for trees known to fit the flavor at compile time.
//
// Example:
//
//	var datePattern = rexpr.MustRender(dateTree, flavor.Default()).Pattern()
func MustRender(tree *ast.Tree, f flavor.Flavor) *render.Rendered {
	out, err := Render(tree, f)
	if err != nil {
		panic("rexpr: Render(`" + f.Name() + "`): " + err.Error())
	}
	return out
}

// QuoteMeta returns a string that escapes all regular expression
// metacharacters inside the argument text; the returned string is a
// pattern fragment matching the literal text, suitable for AddLiteral.
//
// Example:
//
//	escaped := rexpr.QuoteMeta("hello.world")
//	// escaped = "hello\\.world"
//	lit := b.AddLiteral(escaped)
func QuoteMeta(s string) string {
	// Special characters that need escaping in regex
	const special = `\.+*?()|[]{}^$`

	// Count how many characters need escaping
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}

	// If no escaping needed, return original
	if n == 0 {
		return s
	}

	// Build escaped string
	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// Prefilter extracts the literal sequences any match of tree must
// contain and builds an Aho-Corasick candidate filter over them.
//
// Returns (nil, nil) when the tree yields no usable literals; a nil
// filter means every input is a candidate. The filter takes no flavor:
// extraction reads the tree as built, before any rewriting.
//
// Example:
//
//	f, err := rexpr.Prefilter(tree)
//	if f != nil && !f.IsMatch(input) {
//	    return // cannot match, skip the host engine entirely
//	}
func Prefilter(tree *ast.Tree) (*prefilter.Filter, error) {
	seq := literal.New(literal.DefaultConfig()).Prefixes(tree)
	return prefilter.Build(seq)
}
