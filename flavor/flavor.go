// Package flavor describes regex dialects as rewrite pipelines.
//
// A Flavor is a named, ordered list of rewrite rules. Applying a flavor
// folds the tree through each rule in turn, so a dialect is defined
// entirely by which downgrades and guards it needs; the renderer itself
// never branches on the dialect. New dialects are built by selecting
// from the rule catalog rather than by writing emitters.
package flavor

import (
	"fmt"

	"github.com/coregx/rexpr/ast"
	"github.com/coregx/rexpr/rewrite"
)

// Flavor is a regex dialect profile. The zero value is usable and
// equivalent to Default(): no rewrites.
type Flavor struct {
	name  string
	rules []rewrite.Rule
}

// New creates a flavor from an ordered rule selection.
// Rules run in the given order; order matters when one rule produces
// constructs another inspects.
func New(name string, rules ...rewrite.Rule) Flavor {
	rs := make([]rewrite.Rule, len(rules))
	copy(rs, rules)
	return Flavor{name: name, rules: rs}
}

// Default is the modern Perl-family dialect: named groups, possessive
// quantifiers, Unicode categories and lookbehind all render natively,
// so no rewriting is needed.
func Default() Flavor {
	return New("default")
}

// LegacyRuby is the Ruby 1.8 era dialect: no group names, no possessive
// quantifiers, no Unicode categories, no lookbehind. Possessive repeats
// downgrade to atomic groups and Unicode categories to their
// nearest-ASCII classes; lookbehind has no downgrade and is rejected.
func LegacyRuby() Flavor {
	return New("legacy-ruby",
		rewrite.StripGroupNames,
		rewrite.PossessiveToAtomic,
		rewrite.ASCIIFallback,
		rewrite.RejectLookbehind,
	)
}

// Name returns the flavor's display name.
func (f Flavor) Name() string {
	return f.name
}

// Rules returns a copy of the flavor's rule pipeline in application order.
func (f Flavor) Rules() []rewrite.Rule {
	rs := make([]rewrite.Rule, len(f.rules))
	copy(rs, f.rules)
	return rs
}

// Apply rewrites t for this dialect. Each rule makes one full pass over
// the tree before the next rule starts. The first failing rule aborts
// with a *FeatureError and no tree: the caller never sees a partially
// rewritten result. A flavor with no rules returns t unchanged.
func (f Flavor) Apply(t *ast.Tree) (*ast.Tree, error) {
	cur := t
	for _, rule := range f.rules {
		next, err := rewrite.New(rule).Rewrite(cur)
		if err != nil {
			return nil, &FeatureError{
				Flavor: f.name,
				Rule:   rule.Name(),
				Err:    err,
			}
		}
		cur = next
	}
	return cur, nil
}

// FeatureError reports that a tree uses a construct the flavor cannot
// express. It unwraps to the underlying rewrite error, so
// errors.Is(err, rewrite.ErrUnsupported) identifies capability failures
// across all flavors.
type FeatureError struct {
	Flavor string // flavor display name
	Rule   string // name of the failing rule
	Err    error
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("flavor %s: %v", e.Flavor, e.Err)
}

func (e *FeatureError) Unwrap() error {
	return e.Err
}
