// Package report assembles the on-screen review text of one scan: the
// translated examination items, the raw OCR transcription and the output
// of every extraction strategy, each under a localized header.
package report

import (
	"strings"

	"patientid/internal/locale"
	"patientid/pkg/models"
)

// Sections is the content of one report.
type Sections struct {
	FullText  string
	Unified   *models.FieldMap
	Lines     *models.FieldMap
	Blocks    *models.FieldMap
	Custom    *models.FieldMap
	ExamItems []string
}

type labels struct {
	unified, fullText, lines, blocks, custom, merged string
	none, noText                                     string
}

var byLocale = map[locale.Locale]labels{
	locale.Chinese: {
		unified:  "檢查部位（整合版）",
		fullText: "OCR 全文",
		lines:    "抽取欄位（逐行）",
		blocks:   "抽取欄位（區塊）",
		custom:   "檢查部位（自訂規則）",
		merged:   "檢查部位（代碼合併版）",
		none:     "（無）",
		noText:   "(無文字辨識結果)",
	},
	locale.English: {
		unified:  "Examination Items（Combine Version）",
		fullText: "OCR Full Text",
		lines:    "Extracted Fields (Line by Line)",
		blocks:   "Extracted Fields (Block)",
		custom:   "Examination Items (Custom Rules)",
		merged:   "Examination Items (Code Merged Version)",
		none:     "(None)",
		noText:   "(No text recognition result)",
	},
	locale.Korean: {
		unified:  "검사 항목(통합)",
		fullText: "OCR 전체 텍스트",
		lines:    "추출 필드(줄 단위)",
		blocks:   "추출 필드(블록)",
		custom:   "검사 항목(사용자 규칙)",
		merged:   "검사 항목(코드 병합)",
		none:     "(없음)",
		noText:   "(인식된 텍스트 없음)",
	},
}

// Build renders the report for loc. Sections appear in a fixed order:
// unified items, full text, line fields, block fields, custom-rule items,
// code-merged items. Empty sections show the locale's "none" marker.
func Build(loc locale.Locale, s Sections) string {
	l, ok := byLocale[loc]
	if !ok {
		l = byLocale[locale.Chinese]
	}

	var b strings.Builder
	section := func(header, body string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(header)
		b.WriteString(":\n")
		b.WriteString(strings.TrimRight(body, "\n"))
		b.WriteString("\n")
	}

	section(l.unified, fieldBody(s.Unified, l.none))

	text := strings.TrimSpace(s.FullText)
	if text == "" {
		text = l.noText
	}
	section(l.fullText, text)

	section(l.lines, fieldBody(s.Lines, l.none))
	section(l.blocks, fieldBody(s.Blocks, l.none))

	custom, _ := s.Custom.Get(models.FieldExamRegion)
	if custom == "" {
		custom = l.none
	}
	section(l.custom, custom)

	merged := strings.Join(s.ExamItems, "\n")
	if merged == "" {
		merged = l.none
	}
	section(l.merged, merged)

	return b.String()
}

func fieldBody(m *models.FieldMap, none string) string {
	if m.Len() == 0 {
		return none
	}
	var b strings.Builder
	m.Each(func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	})
	return b.String()
}
