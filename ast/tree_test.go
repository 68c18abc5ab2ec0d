package ast

import (
	"strings"
	"testing"
)

func TestTreeNodeLookup(t *testing.T) {
	b := NewBuilder()
	root := b.AddLiteral("a")
	tree, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if tree.Node(root) == nil {
		t.Error("Node(root) = nil, want node")
	}
	if got := tree.Node(InvalidNode); got != nil {
		t.Errorf("Node(InvalidNode) = %v, want nil", got)
	}
	if got := tree.Node(NodeID(5)); got != nil {
		t.Errorf("Node(5) = %v, want nil", got)
	}
}

func TestTreeValidate(t *testing.T) {
	b := NewBuilder()
	grp := b.AddNamedGroup(b.AddLiteral("a"), "part")
	root := b.AddConcat(grp, b.AddBackreference(grp))
	tree, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestBuildErrorMessage(t *testing.T) {
	b := NewBuilder()
	rep := b.AddRepeat(b.AddLiteral("a"), 3, 1, ModeGreedy)
	_, err := b.Build(rep)
	if err == nil {
		t.Fatal("Build succeeded, want error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "ast:") {
		t.Errorf("error %q missing package prefix", msg)
	}
	if !strings.Contains(msg, "{3,1}") {
		t.Errorf("error %q missing offending bounds", msg)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindLiteral, "Literal"},
		{KindConcat, "Concat"},
		{KindAlternation, "Alternation"},
		{KindRepeat, "Repeat"},
		{KindGroup, "Group"},
		{KindNonCapturing, "NonCapturing"},
		{KindAtomic, "Atomic"},
		{KindLookaround, "Lookaround"},
		{KindBackreference, "Backreference"},
		{KindUnicodeClass, "UnicodeClass"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNodeString(t *testing.T) {
	b := NewBuilder()
	lit := b.AddLiteral(`\d`)
	rep := b.AddRepeat(lit, 1, Unbounded, ModePossessive)
	grp := b.AddNamedGroup(rep, "digits")
	tree, err := b.Build(grp)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := tree.Node(lit).String(); got != `Literal("\\d")` {
		t.Errorf("literal String() = %q", got)
	}
	if got := tree.Node(rep).String(); !strings.Contains(got, "{1,}") || !strings.Contains(got, "possessive") {
		t.Errorf("repeat String() = %q, want bounds and mode", got)
	}
	if got := tree.Node(grp).String(); !strings.Contains(got, `"digits"`) {
		t.Errorf("group String() = %q, want name", got)
	}
}

func TestUnicodeClassCatalog(t *testing.T) {
	tests := []struct {
		class    UnicodeClass
		property string
		ascii    string
		hasASCII bool
	}{
		{ClassAnyLetter, "L", "[a-zA-Z]", true},
		{ClassLowercase, "Ll", "[a-z]", true},
		{ClassUppercase, "Lu", "[A-Z]", true},
		{ClassTitlecase, "Lt", "", false},
		{ClassDigit, "Nd", "[0-9]", true},
		{ClassMark, "M", "", false},
		{ClassPunctuation, "P", "[!-/:-@\\[-`{-~]", true},
		{ClassSymbol, "S", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			if !tt.class.Valid() {
				t.Fatalf("Valid() = false")
			}
			if got := tt.class.Property(); got != tt.property {
				t.Errorf("Property() = %q, want %q", got, tt.property)
			}
			ascii, ok := tt.class.ASCII()
			if ok != tt.hasASCII {
				t.Fatalf("ASCII() ok = %v, want %v", ok, tt.hasASCII)
			}
			if ascii != tt.ascii {
				t.Errorf("ASCII() = %q, want %q", ascii, tt.ascii)
			}
		})
	}

	if UnicodeClass(200).Valid() {
		t.Error("Valid() = true for out-of-range class")
	}
}
