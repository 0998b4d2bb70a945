package util

import (
	"strings"
	"unicode"
)

// KeepRunes returns s with every rune for which keep returns false removed.
func KeepRunes(s string, keep func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, s)
}

// StripSpace removes all whitespace from s.
func StripSpace(s string) string {
	return KeepRunes(s, func(r rune) bool { return !unicode.IsSpace(r) })
}
