// Package patient reads a patient record (name, birth date, medical ID,
// ordered examination) out of the full OCR text of an order form.
//
// Each field has an ordered pattern list and the first pattern that
// matches wins. Forms are printed in Traditional Chinese whatever the
// display language, so the English and Korean lists end with the Chinese
// labels.
package patient

import (
	"strings"

	"patientid/internal/locale"
	"patientid/internal/textutil"
	"patientid/pkg/models"
)

const (
	gregorian = `(\d{4}\s*[年/.\-]\s*\d{1,2}\s*[月/.\-]\s*\d{1,2}\s*日?)`
	minguo    = `(民國\s*\d{1,3}\s*[年/.\-]\s*\d{1,2}\s*[月/.\-]\s*\d{1,2}\s*日?)`
	shortYear = `(\d{2,3}\s*[年/.\-]\s*\d{1,2}\s*[月/.\-]\s*\d{1,2}\s*日?)`
	birthTag  = `(?:出生(?:日期)?|生日|Birth(?:\s*Date)?|DOB|생년월일|생일)[:：]?\s*`
	idValue   = `[:：]?\s*([A-Za-z0-9]{4,15})`
)

var (
	zhNames = []string{
		`姓名[:：]?\s*([^\s]{2,10})`,
		`病患[:：]?\s*([^\s]{2,10})`,
		`患者[:：]?\s*([^\s]{2,10})`,
	}
	enNames = []string{
		`Name[:：]?[ \t]*([A-Za-z \t]{2,30})`,
		`Patient[:：]?[ \t]*([A-Za-z \t]{2,30})`,
	}
	koNames = []string{
		`(?:이름|성명)[:：]?\s*([^\s]{2,10})`,
		`환자[:：]?\s*([^\s]{2,10})`,
	}

	zhExams = []string{
		`檢查[:：]?\s*([^\s]{2,20})`,
		`項目[:：]?\s*([^\s]{2,20})`,
	}
	enExams = []string{
		`Exam[:：]?\s*([^\s]{2,20})`,
		`Test[:：]?\s*([^\s]{2,20})`,
		`Procedure[:：]?\s*([^\s]{2,20})`,
	}
	koExams = []string{
		`검사[:：]?\s*([^\s]{2,20})`,
	}
)

// Shared by every locale.
var (
	births = textutil.NewCascade(
		birthTag+gregorian,
		birthTag+minguo,
		birthTag+shortYear,
		`(\d{4}年\d{1,2}月\d{1,2}日)`,
		`(\d{4}/\d{1,2}/\d{1,2})`,
		`(\d{4}-\d{1,2}-\d{1,2})`,
		minguo,
	)
	ids = textutil.NewCascade(
		`病歷號`+idValue,
		`病號`+idValue,
		`編號`+idValue,
		`ID`+idValue,
		`Medical ID`+idValue,
		`Patient ID`+idValue,
		`(?:등록번호|병록번호)`+idValue,
	)
)

type patterns struct {
	names textutil.Cascade
	exams textutil.Cascade
}

var byLocale = map[locale.Locale]patterns{
	locale.Chinese: {
		names: textutil.NewCascade(zhNames...),
		exams: textutil.NewCascade(zhExams...),
	},
	locale.English: {
		names: textutil.NewCascade(append(enNames, zhNames...)...),
		exams: textutil.NewCascade(append(enExams, zhExams...)...),
	},
	locale.Korean: {
		names: textutil.NewCascade(append(koNames, zhNames...)...),
		exams: textutil.NewCascade(append(koExams, zhExams...)...),
	},
}

// nameStops start the next field when an OCR line runs two fields together.
var nameStops = []string{"性別", "出生", "生日", "病歷號", "DOB", "Birth", "ID"}

// Parse extracts a record from text. Fields that did not match are
// Unknown; ExamType is empty when no examination label matched. The
// boolean is false when no field was recognized and no examination matched.
func Parse(text string, loc locale.Locale) (*models.PatientRecord, bool) {
	text = textutil.Fold(text)
	p, ok := byLocale[loc]
	if !ok {
		p = byLocale[locale.Chinese]
	}

	rec := &models.PatientRecord{}

	if name, ok := p.names.FirstValid(text, cleanName); ok {
		rec.Name = models.Known(name)
	}
	if birth, ok := births.First(text); ok {
		rec.BirthDate = models.Known(strings.Join(strings.Fields(birth), ""))
	}
	if id, ok := ids.First(text); ok {
		rec.MedicalID = models.Known(id)
	}
	if exam, ok := p.exams.First(text); ok && !locale.IsSentinelFragment(exam) {
		rec.ExamType = exam
	}

	if !rec.HasKnown() && rec.ExamType == "" {
		return nil, false
	}
	return rec, true
}

func cleanName(raw string) (string, bool) {
	name := textutil.SanitizeName(textutil.CutAtAny(raw, nameStops...))
	return name, name != "" && !locale.IsSentinelFragment(name)
}
