// Package textutil holds the small text helpers shared by the extraction
// packages: width folding of OCR output, line splitting, an ordered regex
// cascade, and personal-name cleanup.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Fold maps full-width ASCII variants onto their narrow forms, so that
// "姓名：王小明" and "姓名:王小明" look the same to every pattern. CJK
// ideographs are left untouched.
func Fold(s string) string {
	return width.Fold.String(s)
}

// SplitLines splits text on newlines and returns the trimmed, non-empty lines.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Cascade is an ordered list of patterns tried in turn; the first pattern
// that matches wins. Each pattern must have one capturing group.
type Cascade []*regexp.Regexp

// NewCascade compiles patterns in order. It panics on an invalid pattern
// and is meant for package-level vars.
func NewCascade(patterns ...string) Cascade {
	c := make(Cascade, 0, len(patterns))
	for _, p := range patterns {
		c = append(c, regexp.MustCompile(p))
	}
	return c
}

// First returns the trimmed first capture group of the first matching
// pattern.
func (c Cascade) First(text string) (string, bool) {
	for _, re := range c {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			return strings.TrimSpace(m[1]), true
		}
		return strings.TrimSpace(m[0]), true
	}
	return "", false
}

// FirstValid is First with a filter: a match whose value valid rejects
// does not count, and the cascade moves on to the next pattern. valid may
// also rewrite the value.
func (c Cascade) FirstValid(text string, valid func(string) (string, bool)) (string, bool) {
	for _, re := range c {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := m[0]
		if len(m) > 1 {
			v = m[1]
		}
		if v, ok := valid(strings.TrimSpace(v)); ok {
			return v, true
		}
	}
	return "", false
}

// CutAtAny returns s up to the first occurrence of any keyword.
func CutAtAny(s string, keywords ...string) string {
	cut := len(s)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if i := strings.Index(s, k); i >= 0 && i < cut {
			cut = i
		}
	}
	return s[:cut]
}

// IndexHan returns the byte offset of the first Han ideograph in s, or -1.
func IndexHan(s string) int {
	return strings.IndexFunc(s, func(r rune) bool { return unicode.Is(unicode.Han, r) })
}

// HasDigit reports whether s contains any decimal digit.
func HasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
