package format

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatKey converts an identifier-style key into a human readable label.
// A space is inserted before every internal uppercase rune and the first
// rune is capitalized, so "bFactor" becomes "B Factor" and "name" becomes
// "Name".
func FormatKey(key string) string {
	if key == "" {
		return ""
	}

	var out strings.Builder
	out.Grow(len(key) + 4)
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}

	spaced := out.String()
	first, size := utf8.DecodeRuneInString(spaced)
	return string(unicode.ToUpper(first)) + spaced[size:]
}
