// Package prefilter builds candidate filters from extracted literal
// sequences.
//
// A filter scans a haystack for literals that every match of an
// expression must contain. A position where none of them occurs cannot
// be part of a match, so a host engine only needs to verify where the
// filter fires. The scan is delegated to an Aho-Corasick automaton,
// which handles one literal or many in a single pass.
//
// Example:
//
//	seq := literal.New(literal.DefaultConfig()).Prefixes(tree)
//	f, err := prefilter.Build(seq)
//	if err != nil {
//	    return err
//	}
//	if f == nil {
//	    // No usable literals. Search everywhere.
//	}
//	pos := f.Find(haystack, 0)
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/rexpr/literal"
)

// Filter finds haystack positions where one of the required literals
// occurs. A filter hit is a candidate, not a match, unless IsComplete
// reports true. A Filter is safe for concurrent use by multiple
// goroutines.
type Filter struct {
	auto     *ahocorasick.Automaton
	complete bool
}

// Build constructs a Filter over every literal in seq. Returns
// (nil, nil) when seq is empty: no literals means no filtering is
// possible, and callers fall back to scanning everything.
func Build(seq *literal.Seq) (*Filter, error) {
	if seq.IsEmpty() {
		return nil, nil
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}

	return &Filter{
		auto:     auto,
		complete: seq.IsComplete(),
	}, nil
}

// Find returns the position of the first literal occurrence at or
// after start, or -1 when none remains.
func (f *Filter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := f.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsMatch reports whether any literal occurs in haystack.
func (f *Filter) IsMatch(haystack []byte) bool {
	return f.auto.IsMatch(haystack)
}

// IsComplete reports whether a filter hit is already a full match.
// True only when every literal covers a whole match on its own, so
// no verification step is needed.
func (f *Filter) IsComplete() bool {
	return f.complete
}
