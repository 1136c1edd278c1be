// Package locale defines the closed set of languages the pipeline renders
// output for, and the "unrecognized" sentinel strings shown for each.
//
// Sentinels exist only at the presentation boundary. Inside the pipeline a
// missing value is models.Unknown(); IsKnown is for strings that come back
// from a host (for example an edited confirmation screen) and must treat
// the sentinel of every locale as unknown, not only the active one.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the supported output languages.
type Locale int

const (
	// Chinese is the source locale of the order forms (Traditional Chinese, Taiwan).
	Chinese Locale = iota
	English
	Korean
)

// All lists every supported locale in declaration order.
var All = []Locale{Chinese, English, Korean}

var tags = []language.Tag{
	language.MustParse("zh-TW"),
	language.English,
	language.Korean,
}

var matcher = language.NewMatcher(tags)

// Parse maps a BCP 47 tag or short code ("zh", "zh-Hant-TW", "en-US", "ko")
// onto a supported locale. Unknown or empty input falls back to Chinese.
func Parse(s string) Locale {
	s = strings.TrimSpace(s)
	if s == "" {
		return Chinese
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Chinese
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Chinese
	}
	return Locale(idx)
}

// Tag returns the language tag of the locale.
func (l Locale) Tag() language.Tag {
	switch l {
	case English:
		return tags[1]
	case Korean:
		return tags[2]
	default:
		return tags[0]
	}
}

// String returns the short code of the locale.
func (l Locale) String() string {
	switch l {
	case Chinese:
		return "zh"
	case English:
		return "en"
	case Korean:
		return "ko"
	}
	return "zh"
}

// Unrecognized returns the sentinel shown for a field that could not be read.
func (l Locale) Unrecognized() string {
	switch l {
	case Chinese:
		return "未辨識"
	case English:
		return "Unknown"
	case Korean:
		return "인식되지 않음"
	}
	return "未辨識"
}

// IsSentinel reports whether s equals the sentinel of any locale.
func IsSentinel(s string) bool {
	s = strings.TrimSpace(s)
	for _, l := range All {
		if s == l.Unrecognized() {
			return true
		}
	}
	return false
}

// IsSentinelFragment reports whether s is a sentinel, or the leading
// words of one, as a single-token capture cuts "인식되지 않음" to "인식되지".
func IsSentinelFragment(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, l := range All {
		u := l.Unrecognized()
		if s == u || strings.HasPrefix(u, s+" ") {
			return true
		}
	}
	return false
}

// IsKnown reports whether s carries a real value: non-blank and not a
// sentinel of any supported locale.
func IsKnown(s string) bool {
	return strings.TrimSpace(s) != "" && !IsSentinel(s)
}
