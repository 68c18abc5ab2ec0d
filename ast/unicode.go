package ast

import (
	"fmt"
)

// UnicodeClass identifies a named Unicode category constant usable as a
// tree node. Each class renders as a `\p{...}` property; some carry a
// nearest-ASCII character class that no-Unicode flavors substitute.
type UnicodeClass uint8

const (
	// ClassAnyLetter matches any letter in any script (\p{L}).
	ClassAnyLetter UnicodeClass = iota

	// ClassLowercase matches any lowercase letter (\p{Ll}).
	ClassLowercase

	// ClassUppercase matches any uppercase letter (\p{Lu}).
	ClassUppercase

	// ClassTitlecase matches any titlecase letter (\p{Lt}).
	// There is no ASCII equivalent.
	ClassTitlecase

	// ClassDigit matches any decimal digit (\p{Nd}).
	ClassDigit

	// ClassMark matches any combining mark (\p{M}).
	// There is no ASCII equivalent.
	ClassMark

	// ClassPunctuation matches any punctuation character (\p{P}).
	ClassPunctuation

	// ClassSymbol matches any symbol character (\p{S}).
	// There is no ASCII equivalent.
	ClassSymbol

	// classMax bounds the valid class values; keep last.
	classMax
)

// unicodeClassInfo describes one catalog entry: the Unicode property name
// emitted by the renderer and the nearest-ASCII substitute, if any.
type unicodeClassInfo struct {
	name     string // constant name for diagnostics
	property string // rendered as \p{property}
	ascii    string // nearest-ASCII character class, "" if none
}

// unicodeClasses is the fixed catalog, indexed by UnicodeClass.
//
// ASCII fallbacks are "nearest" equivalents, not exact: ClassPunctuation
// falls back to the POSIX punct set, which also covers ASCII symbols.
var unicodeClasses = [classMax]unicodeClassInfo{
	ClassAnyLetter:   {name: "AnyLetter", property: "L", ascii: "[a-zA-Z]"},
	ClassLowercase:   {name: "Lowercase", property: "Ll", ascii: "[a-z]"},
	ClassUppercase:   {name: "Uppercase", property: "Lu", ascii: "[A-Z]"},
	ClassTitlecase:   {name: "Titlecase", property: "Lt"},
	ClassDigit:       {name: "Digit", property: "Nd", ascii: "[0-9]"},
	ClassMark:        {name: "Mark", property: "M"},
	ClassPunctuation: {name: "Punctuation", property: "P", ascii: "[!-/:-@\\[-`{-~]"},
	ClassSymbol:      {name: "Symbol", property: "S"},
}

// Valid reports whether c is one of the catalog constants.
func (c UnicodeClass) Valid() bool {
	return c < classMax
}

// Property returns the Unicode property name the renderer emits inside
// `\p{...}`, e.g. "Lu" for ClassUppercase.
func (c UnicodeClass) Property() string {
	if !c.Valid() {
		return ""
	}
	return unicodeClasses[c].property
}

// ASCII returns the nearest-ASCII character class for c and whether one
// exists. Classes without an ASCII variant (Titlecase, Mark, Symbol)
// return ("", false) and cannot be expressed by no-Unicode flavors.
func (c UnicodeClass) ASCII() (string, bool) {
	if !c.Valid() {
		return "", false
	}
	info := unicodeClasses[c]
	return info.ascii, info.ascii != ""
}

// String returns a human-readable representation of the class.
func (c UnicodeClass) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
	return unicodeClasses[c].name
}
