// Package extract implements the independent field-extraction strategies
// run over one OCR result. Each strategy fills its own models.FieldMap and
// never overwrites a key it already set; comparing their outputs is left
// to the caller.
package extract

import (
	"regexp"
	"strings"

	"patientid/internal/textutil"
	"patientid/pkg/models"
)

var (
	reMedicalID = regexp.MustCompile(`病歷號[:：]?\s*([A-Za-z0-9]+)`)
	reName      = regexp.MustCompile(`姓名[:：]?\s*([\p{Han}A-Za-z]{2,10})`)
	reGender    = regexp.MustCompile(`性別[:：]?\s*(男性|女性|男|女)`)
)

var birthTriggers = []string{"生日", "出生"}

// fieldPatterns pairs a field label with the pattern that captures it.
var fieldPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{models.FieldMedicalID, reMedicalID},
	{models.FieldName, reName},
	{models.FieldGender, reGender},
}

// Lines scans every line of text for the medical ID, name, gender and
// birth fields. A line mentioning 生日 or 出生 is taken verbatim (spaces
// removed) as the birth field.
func Lines(text string) *models.FieldMap {
	fields := models.NewFieldMap()
	for _, line := range strings.Split(textutil.Fold(text), "\n") {
		scanLine(fields, strings.TrimSpace(line))
	}
	return fields
}

func scanLine(fields *models.FieldMap, line string) {
	if line == "" {
		return
	}
	for _, p := range fieldPatterns {
		if fields.Has(p.key) {
			continue
		}
		if m := p.re.FindStringSubmatch(line); m != nil {
			fields.Set(p.key, m[1])
		}
	}
	if !fields.Has(models.FieldBirth) && containsAny(line, birthTriggers) {
		fields.Set(models.FieldBirth, strings.ReplaceAll(line, " ", ""))
	}
}

// Blocks applies the same fields to whole text blocks, so a value the OCR
// engine placed on the line after its label is still found.
func Blocks(doc *models.Document) *models.FieldMap {
	fields := models.NewFieldMap()
	if doc == nil {
		return fields
	}
	for _, b := range doc.Blocks {
		text := strings.TrimSpace(textutil.Fold(b.FullText()))
		if text == "" {
			continue
		}
		for _, p := range fieldPatterns {
			if fields.Has(p.key) {
				continue
			}
			if m := p.re.FindStringSubmatch(text); m != nil {
				fields.Set(p.key, m[1])
			}
		}
		if !fields.Has(models.FieldBirth) {
			if birth, ok := blockBirth(text); ok {
				fields.Set(models.FieldBirth, birth)
			}
		}
	}
	return fields
}

// blockBirth returns the birth line of a block. A label line without any
// digit is joined with the line that follows it.
func blockBirth(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if !containsAny(l, birthTriggers) {
			continue
		}
		out := strings.ReplaceAll(strings.TrimSpace(l), " ", "")
		if !textutil.HasDigit(out) && i+1 < len(lines) {
			out += strings.ReplaceAll(strings.TrimSpace(lines[i+1]), " ", "")
		}
		return out, true
	}
	return "", false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
