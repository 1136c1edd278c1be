package textutil

import (
	"regexp"
	"strings"
)

var (
	reNameJunk  = regexp.MustCompile(`[^ \p{Han}\p{Hangul}A-Za-z·・\-]`)
	reSpaces    = regexp.MustCompile(`\s+`)
	reHanName   = regexp.MustCompile(`^[\p{Han}\p{Hangul}·・\-]{2,8}$`)
	reLatinName = regexp.MustCompile(`^[A-Za-z][A-Za-z ·・\-]{1,29}$`)
)

// SanitizeName strips every character that cannot appear in a personal
// name (anything other than ideographs, Hangul, Latin letters, space,
// middle dots and hyphen) and collapses runs of spaces.
func SanitizeName(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	s = reNameJunk.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// LooksLikeName reports whether s has the shape of a personal name: no
// digits, and either 2-8 CJK characters or a letter-initial Latin string of
// at most 30 characters.
func LooksLikeName(s string) bool {
	if strings.TrimSpace(s) == "" || HasDigit(s) {
		return false
	}
	return reHanName.MatchString(s) || reLatinName.MatchString(s)
}
