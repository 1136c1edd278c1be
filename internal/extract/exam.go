package extract

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"patientid/internal/segment"
	"patientid/internal/textutil"
	"patientid/internal/translate"
	"patientid/pkg/models"
)

var (
	reOnlyRight   = regexp.MustCompile(`^右+$`)
	reFirstNumber = regexp.MustCompile(`\d+`)
)

// minItemRunes is the shortest fragment the unified strategy keeps.
const minItemRunes = 6

// ExamItems returns the merged examination fragments of the section
// selected by cfg. Lines that are neither a code nor its description are
// dropped.
func ExamItems(text string, cfg segment.Config) []string {
	section := cfg.Segment(textutil.SplitLines(textutil.Fold(text)))
	return segment.MergeFragments(section, false)
}

// Custom returns the fragments of ExamItems under the 檢查部位 key,
// newline-joined. The map is empty when the section has no fragments.
func Custom(text string, cfg segment.Config) *models.FieldMap {
	fields := models.NewFieldMap()
	if items := ExamItems(text, cfg); len(items) > 0 {
		fields.Set(models.FieldExamRegion, strings.Join(items, "\n"))
	}
	return fields
}

// Unified combines the line fields with translated examination items
// under the 檢查項目 key. Loose section lines are kept, short fragments and
// bare side markers are dropped, and starred codes sort first, then by
// their leading number. Only the translated reading of each item is kept.
func Unified(text string, cfg segment.Config, tr *translate.Translator) *models.FieldMap {
	folded := textutil.Fold(text)
	lines := textutil.SplitLines(folded)

	fields := models.NewFieldMap()
	for _, line := range lines {
		scanLine(fields, strings.ReplaceAll(line, "<<健保>>", ""))
	}

	items := UnifiedItems(lines, cfg)
	if len(items) == 0 {
		return fields
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, translate.Target(tr.Translate(item)))
	}
	fields.Set(models.FieldExamItems, strings.Join(out, "\n"))
	return fields
}

// UnifiedItems returns the filtered and ordered fragments used by Unified,
// before translation.
func UnifiedItems(lines []string, cfg segment.Config) []string {
	merged := segment.MergeFragments(cfg.Segment(lines), true)

	items := make([]string, 0, len(merged))
	for _, part := range merged {
		part = strings.Join(strings.Fields(part), " ")
		if utf8.RuneCountInString(part) < minItemRunes || reOnlyRight.MatchString(part) {
			continue
		}
		items = append(items, part)
	}

	sort.SliceStable(items, func(i, j int) bool {
		si, sj := strings.HasPrefix(items[i], "*"), strings.HasPrefix(items[j], "*")
		if si != sj {
			return si
		}
		return leadingNumber(items[i]) < leadingNumber(items[j])
	})
	return items
}

func leadingNumber(s string) int {
	m := reFirstNumber.FindString(s)
	if m == "" {
		return math.MaxInt
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return math.MaxInt
	}
	return n
}
