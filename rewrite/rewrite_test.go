package rewrite

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/coregx/rexpr/ast"
)

// sprintTree renders a tree as a compact s-expression for comparisons.
// Backreferences print the preorder position of their target so that
// handle values, which shift across rewrites, never leak into tests.
func sprintTree(t *ast.Tree) string {
	pos := make(map[ast.NodeID]int)
	next := 0
	var number func(id ast.NodeID)
	number = func(id ast.NodeID) {
		pos[id] = next
		next++
		n := t.Node(id)
		for _, kid := range n.Children() {
			number(kid)
		}
		if c := n.Child(); c != ast.InvalidNode {
			number(c)
		}
	}
	number(t.Root())

	var sb strings.Builder
	var walk func(id ast.NodeID)
	walk = func(id ast.NodeID) {
		n := t.Node(id)
		switch n.Kind() {
		case ast.KindLiteral:
			fmt.Fprintf(&sb, "lit(%q)", n.Text())
		case ast.KindConcat:
			if n.Protected() {
				sb.WriteString("pcat(")
			} else {
				sb.WriteString("cat(")
			}
			for i, kid := range n.Children() {
				if i > 0 {
					sb.WriteString(" ")
				}
				walk(kid)
			}
			sb.WriteString(")")
		case ast.KindAlternation:
			sb.WriteString("alt(")
			for i, kid := range n.Children() {
				if i > 0 {
					sb.WriteString(" ")
				}
				walk(kid)
			}
			sb.WriteString(")")
		case ast.KindRepeat:
			min, max := n.Bounds()
			fmt.Fprintf(&sb, "rep(%d,%d,%s ", min, max, n.Mode())
			walk(n.Child())
			sb.WriteString(")")
		case ast.KindGroup:
			if name := n.GroupName(); name != "" {
				fmt.Fprintf(&sb, "grp[%s](", name)
			} else {
				sb.WriteString("grp(")
			}
			walk(n.Child())
			sb.WriteString(")")
		case ast.KindNonCapturing:
			sb.WriteString("ncg(")
			walk(n.Child())
			sb.WriteString(")")
		case ast.KindAtomic:
			sb.WriteString("atom(")
			walk(n.Child())
			sb.WriteString(")")
		case ast.KindLookaround:
			tag := "la"
			if n.Direction() == ast.LookBehind {
				tag = "lb"
			}
			if n.Negated() {
				tag = "n" + tag
			}
			sb.WriteString(tag + "(")
			walk(n.Child())
			sb.WriteString(")")
		case ast.KindBackreference:
			fmt.Fprintf(&sb, "ref(#%d)", pos[n.Target()])
		case ast.KindUnicodeClass:
			fmt.Fprintf(&sb, "uni(%s)", n.Class())
		}
	}
	walk(t.Root())
	return sb.String()
}

// declineAll is a rule that never applies; rewriting with it must
// reproduce the tree.
type declineAll struct{}

func (declineAll) Name() string { return "decline-all" }

func (declineAll) Apply(dst *ast.Builder, old *ast.Node, children []ast.NodeID) (ast.NodeID, bool, error) {
	return ast.InvalidNode, false, nil
}

// upperLiterals uppercases every literal, exercising the replace path.
type upperLiterals struct{}

func (upperLiterals) Name() string { return "upper-literals" }

func (upperLiterals) Apply(dst *ast.Builder, old *ast.Node, children []ast.NodeID) (ast.NodeID, bool, error) {
	if old.Kind() != ast.KindLiteral {
		return ast.InvalidNode, false, nil
	}
	return dst.AddLiteral(strings.ToUpper(old.Text())), true, nil
}

// dropCaptures replaces every capturing group with its bare child,
// breaking any backreference that pointed at it.
type dropCaptures struct{}

func (dropCaptures) Name() string { return "drop-captures" }

func (dropCaptures) Apply(dst *ast.Builder, old *ast.Node, children []ast.NodeID) (ast.NodeID, bool, error) {
	if old.Kind() != ast.KindGroup {
		return ast.InvalidNode, false, nil
	}
	return children[0], true, nil
}

func mustBuild(t *testing.T, b *ast.Builder, root ast.NodeID) *ast.Tree {
	t.Helper()
	tree, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return tree
}

func TestRewriteIdentity(t *testing.T) {
	b := ast.NewBuilder()
	year := b.AddAlternation(b.AddLiteral("19"), b.AddLiteral("20"))
	grp := b.AddNamedGroup(b.AddLiteral("-"), "sep")
	rep := b.AddRepeat(b.AddUnicode(ast.ClassDigit), 1, ast.Unbounded, ast.ModePossessive)
	look := b.AddLookaround(b.AddLiteral("x"), ast.LookBehind, true)
	back := b.AddBackreference(grp)
	root := b.AddProtectedConcat(year, grp, rep, look, back)
	src := mustBuild(t, b, root)

	got, err := New(declineAll{}).Rewrite(src)
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	if gs, ws := sprintTree(got), sprintTree(src); gs != ws {
		t.Errorf("rewritten tree = %s, want %s", gs, ws)
	}
}

func TestRewriteReplacesNestedNodes(t *testing.T) {
	b := ast.NewBuilder()
	inner := b.AddConcat(b.AddLiteral("ab"), b.AddGroup(b.AddLiteral("cd")))
	root := b.AddAlternation(inner, b.AddLiteral("ef"))
	src := mustBuild(t, b, root)

	got, err := New(upperLiterals{}).Rewrite(src)
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	want := `alt(cat(lit("AB") grp(lit("CD"))) lit("EF"))`
	if gs := sprintTree(got); gs != want {
		t.Errorf("rewritten tree = %s, want %s", gs, want)
	}

	// The source tree is untouched.
	if ss := sprintTree(src); !strings.Contains(ss, `lit("ab")`) {
		t.Errorf("source tree mutated: %s", ss)
	}
}

func TestRewriteRemapsBackreference(t *testing.T) {
	b := ast.NewBuilder()
	grp := b.AddNamedGroup(b.AddLiteral("a"), "part")
	root := b.AddConcat(grp, b.AddLiteral("-"), b.AddBackreference(grp))
	src := mustBuild(t, b, root)

	got, err := New(StripGroupNames).Rewrite(src)
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	want := `cat(grp(lit("a")) lit("-") ref(#1))`
	if gs := sprintTree(got); gs != want {
		t.Errorf("rewritten tree = %s, want %s", gs, want)
	}

	// The reference now addresses the stripped group node.
	target := got.Node(got.Root()).Children()[2]
	n := got.Node(target)
	if n.Kind() != ast.KindBackreference {
		t.Fatalf("third child kind = %s, want Backreference", n.Kind())
	}
	if g := got.Node(n.Target()); g.Kind() != ast.KindGroup || g.GroupName() != "" {
		t.Errorf("target = %s, want unnamed group", g)
	}
}

func TestRewriteReferenceToEnclosingGroup(t *testing.T) {
	// (a\1): the reference resolves only after the enclosing group's
	// replacement exists.
	b := ast.NewBuilder()
	lit := b.AddLiteral("a")
	back := b.AddBackreference(ast.NodeID(3))
	grp := b.AddNamedGroup(b.AddConcat(lit, back), "self")
	src := mustBuild(t, b, grp)

	got, err := New(StripGroupNames).Rewrite(src)
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	want := `grp(cat(lit("a") ref(#0)))`
	if gs := sprintTree(got); gs != want {
		t.Errorf("rewritten tree = %s, want %s", gs, want)
	}
}

func TestRewriteRuleErrorAborts(t *testing.T) {
	b := ast.NewBuilder()
	look := b.AddLookaround(b.AddLiteral("a"), ast.LookBehind, false)
	root := b.AddConcat(b.AddLiteral("x"), look)
	src := mustBuild(t, b, root)

	got, err := New(RejectLookbehind).Rewrite(src)
	if err == nil {
		t.Fatal("Rewrite succeeded, want error")
	}
	if got != nil {
		t.Error("Rewrite returned non-nil tree alongside error")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", err)
	}
	var ue *UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("error type = %T, want *UnsupportedError", err)
	}
	if ue.Rule != "reject-lookbehind" {
		t.Errorf("Rule = %q, want reject-lookbehind", ue.Rule)
	}
}

func TestRewriteBrokenReferenceFailsValidation(t *testing.T) {
	b := ast.NewBuilder()
	grp := b.AddGroup(b.AddLiteral("a"))
	root := b.AddConcat(grp, b.AddBackreference(grp))
	src := mustBuild(t, b, root)

	_, err := New(dropCaptures{}).Rewrite(src)
	if err == nil {
		t.Fatal("Rewrite succeeded, want error")
	}
	var be *ast.BuildError
	if !errors.As(err, &be) {
		t.Errorf("error type = %T, want *ast.BuildError", err)
	}
	if !errors.Is(err, ast.ErrDanglingBackreference) {
		t.Errorf("error = %v, want ErrDanglingBackreference", err)
	}
}

func TestRewriteDropsUnreachableNodes(t *testing.T) {
	b := ast.NewBuilder()
	b.AddLiteral("abandoned")
	b.AddLiteral("also abandoned")
	root := b.AddLiteral("kept")
	src := mustBuild(t, b, root)
	if src.Len() != 3 {
		t.Fatalf("source Len() = %d, want 3", src.Len())
	}

	got, err := New(declineAll{}).Rewrite(src)
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("rewritten Len() = %d, want 1", got.Len())
	}
}

func TestRewriterRule(t *testing.T) {
	r := New(StripGroupNames)
	if got := r.Rule().Name(); got != "strip-group-names" {
		t.Errorf("Rule().Name() = %q, want strip-group-names", got)
	}
}
