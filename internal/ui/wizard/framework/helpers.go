package framework

import (
	"strings"
	"unicode"
)

// FilterText returns the printable characters of s.
func FilterText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

// DeleteLastWord removes the trailing word (and the spaces before it).
func DeleteLastWord(s string) string {
	trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
	idx := strings.LastIndexFunc(trimmed, unicode.IsSpace)
	if idx < 0 {
		return ""
	}
	return trimmed[:idx+1]
}

// TrimLastRune removes the last rune of s.
func TrimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
