// Package textutil holds character-based string helpers. Lengths are counted in
// Unicode code points, not bytes.
package textutil

import "unicode/utf8"

// Len returns the number of characters in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns the first max characters of s. It never splits a multi-byte character.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
