package extract

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"patientid/internal/locale"
	"patientid/internal/textutil"
	"patientid/pkg/models"
)

// stopKeywords end a name value: they start the next field on the form.
var stopKeywords = []string{"性別", "出生", "生日", "病歷號", "DOB", "ID"}

// latinStops end an English name value, compared without case.
var latinStops = []string{"DOB", "Birth", "ID", "Exam", "Test", "Procedure"}

var (
	reBareLabel  = regexp.MustCompile(`(?i)^(?:姓名|名|이름|성명|Name|Patient Name)\s*[:=]?\s*$`)
	reSameLine   = regexp.MustCompile(`(?:姓名|名|이름|성명)\s*[:=]\s*([^\s:：=]+)`)
	reCJKLabel   = regexp.MustCompile(`(?:姓名|名|이름|성명)\s*[:=]?\s*`)
	reLatinLabel = regexp.MustCompile(`(?i)(?:Patient Name|Name)\s*[:=]?\s*`)
)

const (
	maxCJKValueRunes   = 20
	maxLatinValueRunes = 30
)

// SmartName reads the patient name using element positions when doc has
// them, then falls back to same-line and whole-text patterns over
// fullText. It returns false when no candidate looks like a name.
//
// Elements without a bounding box are treated as lying to the right of
// everything; a label without one accepts every element after it.
func SmartName(doc *models.Document, fullText string) (string, bool) {
	if doc != nil {
		for _, b := range doc.Blocks {
			for i, l := range b.Lines {
				raw := strings.TrimSpace(textutil.Fold(l.FullText()))
				if !hasNameLabel(raw) {
					continue
				}

				if name, ok := accept(rightOfLabel(l.Elements)); ok {
					return name, true
				}

				if reBareLabel.MatchString(raw) && i+1 < len(b.Lines) {
					next := textutil.Fold(b.Lines[i+1].FullText())
					if name, ok := accept(next); ok {
						return name, true
					}
				}

				if m := reSameLine.FindStringSubmatch(raw); m != nil {
					if name, ok := accept(textutil.CutAtAny(m[1], stopKeywords...)); ok {
						return name, true
					}
				}
			}
		}
	}

	text := textutil.Fold(fullText)
	if c, ok := cjkCandidate(text); ok {
		if name, ok := accept(c); ok {
			return name, true
		}
	}
	if c, ok := latinCandidate(text); ok {
		if name, ok := accept(c); ok {
			return name, true
		}
	}
	return "", false
}

func accept(candidate string) (string, bool) {
	name := textutil.SanitizeName(candidate)
	if !textutil.LooksLikeName(name) || locale.IsSentinelFragment(name) {
		return "", false
	}
	return name, true
}

func hasNameLabel(line string) bool {
	if strings.Contains(line, "名") || strings.Contains(line, "이름") || strings.Contains(line, "성명") {
		return true
	}
	return strings.Contains(strings.ToLower(line), "name")
}

func isLabelToken(t string) bool {
	switch {
	case strings.Contains(t, "姓名"), t == "名", t == "이름", t == "성명":
		return true
	case strings.EqualFold(t, "Name"), strings.EqualFold(t, "Patient"), strings.EqualFold(t, "Patient Name"):
		return true
	}
	return len(t) >= len("PatientName") && strings.EqualFold(t[:len("PatientName")], "PatientName")
}

func labelText(t string) string {
	return strings.TrimRight(strings.TrimSpace(textutil.Fold(t)), ":=")
}

func isStopToken(t string) bool {
	for _, k := range []string{"性別", "出生", "生日", "病歷號"} {
		if strings.Contains(t, k) {
			return true
		}
	}
	return strings.EqualFold(t, "DOB") || strings.EqualFold(t, "ID")
}

// rightOfLabel concatenates the elements to the right of the first label
// element on a line, skipping punctuation and stopping at the next field
// label.
func rightOfLabel(elements []models.Element) string {
	labelIdx := -1
	for i, e := range elements {
		if isLabelToken(labelText(e.Text)) {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return ""
	}
	// "Patient" "Name:" split over two elements.
	for labelIdx+1 < len(elements) && isLabelToken(labelText(elements[labelIdx+1].Text)) {
		labelIdx++
	}

	labelRight := math.MinInt
	if box := elements[labelIdx].Box; box != nil {
		labelRight = box.Right
	}

	var sb strings.Builder
	for _, e := range elements[labelIdx+1:] {
		t := strings.TrimSpace(textutil.Fold(e.Text))
		if t == "" || t == ":" || t == "=" {
			continue
		}
		left := math.MaxInt
		if e.Box != nil {
			left = e.Box.Left
		}
		if left <= labelRight {
			continue
		}
		if isStopToken(t) {
			break
		}
		if sb.Len() > 0 && endsLatin(sb.String()) && startsLatin(t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t)
	}
	return sb.String()
}

func endsLatin(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r < unicode.MaxASCII && unicode.IsLetter(r)
}

func startsLatin(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r < unicode.MaxASCII && unicode.IsLetter(r)
}

// cjkCandidate returns the shortest value after a CJK name label that is
// followed, after optional whitespace, by a stop keyword or the end of the
// text.
func cjkCandidate(text string) (string, bool) {
	for _, loc := range reCJKLabel.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		run := leadingRun(rest, maxCJKValueRunes, func(r rune) bool {
			return !unicode.IsSpace(r) && r != ':' && r != '：' && r != '='
		})
		for n := 1; n <= len(run); n++ {
			value := string(run[:n])
			if stopsAt(rest[len(value):], stopKeywords, false) {
				return value, true
			}
		}
	}
	return "", false
}

// latinCandidate returns the longest value of at least two characters
// after an English name label that is followed, after optional
// whitespace, by a stop keyword or the end of the text.
func latinCandidate(text string) (string, bool) {
	for _, loc := range reLatinLabel.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		run := leadingRun(rest, maxLatinValueRunes, func(r rune) bool {
			return (r < unicode.MaxASCII && unicode.IsLetter(r)) || r == ' ' || r == '·' || r == '・' || r == '-'
		})
		for n := len(run); n >= 2; n-- {
			value := string(run[:n])
			if stopsAt(rest[len(value):], latinStops, true) {
				return value, true
			}
		}
	}
	return "", false
}

func leadingRun(s string, limit int, keep func(rune) bool) []rune {
	var run []rune
	for _, r := range s {
		if len(run) == limit || !keep(r) {
			break
		}
		run = append(run, r)
	}
	return run
}

func stopsAt(s string, keywords []string, fold bool) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return true
	}
	for _, k := range keywords {
		if len(s) < len(k) {
			continue
		}
		if (fold && strings.EqualFold(s[:len(k)], k)) || s[:len(k)] == k {
			return true
		}
	}
	return false
}
