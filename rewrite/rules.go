package rewrite

import (
	"fmt"

	"github.com/coregx/rexpr/ast"
)

// The fixed rule catalog. Each value handles exactly one dialect concern;
// flavors compose them in order.
var (
	// StripGroupNames drops the name from every named capturing group.
	// Capturing itself is kept, so group numbering and backreferences
	// are unaffected; callers address groups through the rendered index
	// map instead of inline names.
	StripGroupNames Rule = stripGroupNames{}

	// PossessiveToAtomic replaces possessive quantifiers with a greedy
	// quantifier inside an atomic group. The two forms match identically
	// for every bound: once the repeat has consumed its text, neither
	// allows backtracking into it.
	PossessiveToAtomic Rule = possessiveToAtomic{}

	// ASCIIFallback replaces Unicode category constructs with their
	// nearest-ASCII character class for dialects without \p{...}
	// support. Categories with no ASCII equivalent fail the pass.
	ASCIIFallback Rule = asciiFallback{}

	// RejectLookbehind fails the pass on any lookbehind assertion.
	// It rewrites nothing: there is no sound downgrade, so it only
	// guards dialects that lack the feature.
	RejectLookbehind Rule = rejectLookbehind{}
)

type stripGroupNames struct{}

func (stripGroupNames) Name() string { return "strip-group-names" }

func (stripGroupNames) Apply(dst *ast.Builder, old *ast.Node, children []ast.NodeID) (ast.NodeID, bool, error) {
	if old.Kind() != ast.KindGroup || old.GroupName() == "" {
		return ast.InvalidNode, false, nil
	}
	return dst.AddGroup(children[0]), true, nil
}

type possessiveToAtomic struct{}

func (possessiveToAtomic) Name() string { return "possessive-to-atomic" }

func (possessiveToAtomic) Apply(dst *ast.Builder, old *ast.Node, children []ast.NodeID) (ast.NodeID, bool, error) {
	if old.Kind() != ast.KindRepeat || old.Mode() != ast.ModePossessive {
		return ast.InvalidNode, false, nil
	}
	min, max := old.Bounds()
	rep := dst.AddRepeat(children[0], min, max, ast.ModeGreedy)
	return dst.AddAtomic(rep), true, nil
}

type asciiFallback struct{}

func (asciiFallback) Name() string { return "ascii-fallback" }

func (r asciiFallback) Apply(dst *ast.Builder, old *ast.Node, children []ast.NodeID) (ast.NodeID, bool, error) {
	if old.Kind() != ast.KindUnicodeClass {
		return ast.InvalidNode, false, nil
	}
	class := old.Class()
	ascii, ok := class.ASCII()
	if !ok {
		return ast.InvalidNode, false, &UnsupportedError{
			Rule:   r.Name(),
			Kind:   ast.KindUnicodeClass,
			Detail: fmt.Sprintf("%s has no ASCII equivalent", class),
		}
	}
	return dst.AddLiteral(ascii), true, nil
}

type rejectLookbehind struct{}

func (rejectLookbehind) Name() string { return "reject-lookbehind" }

func (r rejectLookbehind) Apply(dst *ast.Builder, old *ast.Node, children []ast.NodeID) (ast.NodeID, bool, error) {
	if old.Kind() != ast.KindLookaround || old.Direction() != ast.LookBehind {
		return ast.InvalidNode, false, nil
	}
	detail := "lookbehind"
	if old.Negated() {
		detail = "negative lookbehind"
	}
	return ast.InvalidNode, false, &UnsupportedError{
		Rule:   r.Name(),
		Kind:   ast.KindLookaround,
		Detail: detail,
	}
}
