// Package speech renders a patient record as the confirmation sentence a
// text-to-speech engine reads aloud before the procedure.
package speech

import (
	"strings"

	"patientid/internal/dates"
	"patientid/internal/locale"
	"patientid/pkg/models"
)

var honorifics = []string{"先生", "小姐", "女士"}

var quotes = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "″", `"`,
	"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'",
)

// Compose builds the confirmation text for rec in loc. Only known fields
// are read out; the medical ID is spelled one character at a time.
// Chinese clauses are concatenated, English and Korean ones are joined
// with single spaces.
func Compose(rec *models.PatientRecord, loc locale.Locale) string {
	if rec == nil {
		rec = &models.PatientRecord{}
	}

	var (
		parts []string
		sep   string
	)
	switch loc {
	case locale.English:
		parts, sep = english(rec), " "
	case locale.Korean:
		parts, sep = korean(rec), " "
	default:
		parts, sep = chinese(rec), ""
	}
	return normalize(strings.Join(parts, sep))
}

func chinese(rec *models.PatientRecord) []string {
	greet := "您好"
	if rec.Name.Known() {
		greet = rec.Name.Value()
		if !containsAny(greet, honorifics) {
			greet += "先生"
		}
	}
	exam := "檢查"
	if rec.ExamType != "" {
		exam = rec.ExamType + "檢查"
	}

	parts := []string{greet + "，等一下將進行" + exam + "。現在呈現您的病歷資訊。"}
	if rec.MedicalID.Known() {
		parts = append(parts, "病歷號為："+Spell(rec.MedicalID.Value())+"。")
	}
	if rec.Name.Known() {
		parts = append(parts, "姓名為："+rec.Name.Value()+"。")
	}
	if rec.BirthDate.Known() {
		parts = append(parts, "出生年月日為："+dates.SpeechForm(rec.BirthDate.Value(), locale.Chinese)+"。")
	}
	return append(parts, "請在畫面上核對並按「確認」，若有錯誤請點「修改」後更正。")
}

func english(rec *models.PatientRecord) []string {
	greet := "Hello."
	if rec.Name.Known() {
		greet = "Hello " + rec.Name.Value() + "."
	}
	exam := "examination"
	if rec.ExamType != "" {
		exam = rec.ExamType + " examination"
	}

	parts := []string{greet + " You will have an " + exam + " shortly. Now let me present your medical information."}
	if rec.MedicalID.Known() {
		parts = append(parts, "Medical ID: "+Spell(rec.MedicalID.Value())+".")
	}
	if rec.Name.Known() {
		parts = append(parts, "Name: "+rec.Name.Value()+".")
	}
	if rec.BirthDate.Known() {
		parts = append(parts, "Date of birth: "+dates.SpeechForm(rec.BirthDate.Value(), locale.English)+".")
	}
	return append(parts, "Please review on screen and press Confirm or Edit if something is incorrect.")
}

func korean(rec *models.PatientRecord) []string {
	greet := "안녕하세요."
	if rec.Name.Known() {
		greet = "안녕하세요, " + rec.Name.Value() + "님."
	}
	exam := "잠시 후 검사를 진행합니다."
	if rec.ExamType != "" {
		exam = "잠시 후 " + rec.ExamType + " 검사를 진행합니다."
	}

	parts := []string{greet, exam, "지금 의료 정보를 안내해 드리겠습니다."}
	if rec.MedicalID.Known() {
		parts = append(parts, "등록번호: "+Spell(rec.MedicalID.Value())+".")
	}
	if rec.Name.Known() {
		parts = append(parts, "이름: "+rec.Name.Value()+".")
	}
	if rec.BirthDate.Known() {
		parts = append(parts, "생년월일: "+dates.SpeechForm(rec.BirthDate.Value(), locale.Korean)+".")
	}
	return append(parts, "화면에서 확인 후 '확인'을 누르시고, 틀린 정보가 있으면 '수정'을 눌러 주세요.")
}

// Spell separates every character of s with a single space, so
// "A123" is read as "A 1 2 3". Whitespace in s is dropped.
func Spell(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Fallback is the prompt played when no identity field was recognized.
func Fallback(loc locale.Locale) string {
	switch loc {
	case locale.English:
		return "We couldn't clearly recognize your name, date of birth, or medical ID from the image. " +
			"After the beep, please state your name or medical ID for verification."
	case locale.Korean:
		return "이미지에서 이름, 생년월일 또는 등록번호를 정확히 인식하지 못했습니다. " +
			"신호음이 울린 후 이름 또는 등록번호를 말씀해 주세요."
	default:
		return "目前無法從影像中明確辨識姓名、生日或病歷號。請在聽到提示音後，口頭說出您的姓名或病歷號以進行確認。"
	}
}

func normalize(s string) string {
	return strings.TrimSpace(quotes.Replace(s))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
