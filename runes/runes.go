// Package runes contains some generally useful operations on runes.
package runes

import (
	"unicode"
	"unicode/utf8"
)

// First returns the first rune of s. If the string is empty or not proper UTF-8, returns false.
func First(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size < 2 {
		return 0, false
	}
	return r, true
}

// IsUpperInitial returns whether s starts with an uppercase letter. Letters without
// case, digits and symbols are not uppercase.
func IsUpperInitial(s string) bool {
	r, ok := First(s)
	if !ok {
		return false
	}
	return unicode.IsUpper(r) && unicode.ToLower(r) != r
}

// IsDelimiter returns whether r ends a bare symbol: whitespace, parens or a double quote.
func IsDelimiter(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == '"'
}
