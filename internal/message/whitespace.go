package message

import (
	"strings"
	"unicode"
)

// WhitespaceClass is a regular expression character class matching exactly the
// runes accepted by IsWhitespace: Unicode white space plus the ASCII file,
// group, record and unit separators.
const WhitespaceClass = `[\s\v\x1c-\x1f\x85\p{Z}]`

const (
	fileSeparatorRune = '\x1c'
	unitSeparatorRune = '\x1f'
)

// IsWhitespace reports whether the rune separates words in a commit message.
func IsWhitespace(character rune) bool {
	if character >= fileSeparatorRune && character <= unitSeparatorRune {
		return true
	}
	return unicode.IsSpace(character)
}

// IsBlank reports whether the line holds only whitespace.
func IsBlank(line string) bool {
	return len(strings.TrimFunc(line, IsWhitespace)) == 0
}
