package logic

import (
	"strings"
	"unicode"

	"github.com/logice/logice/runes"
)

// IsVariable returns whether a bare symbol denotes a variable.
func IsVariable(text string) bool {
	return runes.IsUpperInitial(text)
}

var escapeChars = map[rune]string{
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\v': `\v`,
	'"':  `\"`,
	'\\': `\\`,
}

// Unescape maps the letter following a backslash within a literal to the
// character it denotes.
var Unescape = map[rune]rune{
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
}

// Quote returns text as a double-quoted literal.
func Quote(text string) string {
	var b strings.Builder
	b.WriteRune('"')
	for _, ch := range text {
		if exp, ok := escapeChars[ch]; ok {
			b.WriteString(exp)
		} else {
			b.WriteRune(ch)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// FormatSymbol returns a symbol as it must be written to be read back as
// the same symbol: bare if possible, otherwise quoted.
func FormatSymbol(name string) string {
	if name == "" || IsVariable(name) {
		return Quote(name)
	}
	for _, ch := range name {
		if unicode.IsSpace(ch) || runes.IsDelimiter(ch) || ch == '\\' {
			return Quote(name)
		}
	}
	return name
}
