package render

// Rendered is the outcome of rendering a tree: the final pattern text
// plus the capture-group index map. Group names are metadata; they are
// never written into the pattern itself, so the map is the only way to
// find a named group's number.
type Rendered struct {
	pattern string
	names   map[string]int
	byIndex []string
}

// Pattern returns the dialect-ready pattern text.
func (r *Rendered) Pattern() string {
	return r.pattern
}

// Groups returns the name to group-index map. Indices are 1-based and
// follow the left-to-right order of opening parentheses, matching how
// host engines number their captures. Unnamed groups consume an index
// but do not appear in the map.
// The map is shared and must not be modified.
func (r *Rendered) Groups() map[string]int {
	return r.names
}

// GroupIndex returns the index of the named group and whether the name
// exists.
func (r *Rendered) GroupIndex(name string) (int, bool) {
	idx, ok := r.names[name]
	return idx, ok
}

// NumGroups returns the number of capturing groups in the pattern,
// named and unnamed alike.
func (r *Rendered) NumGroups() int {
	return len(r.byIndex) - 1
}

// SubexpNames returns the names of the capturing groups indexed by group
// number, in the same convention as regexp.Regexp.SubexpNames: entry 0
// is the empty string for the whole match, and unnamed groups are "".
// The slice is shared and must not be modified.
func (r *Rendered) SubexpNames() []string {
	return r.byIndex
}
