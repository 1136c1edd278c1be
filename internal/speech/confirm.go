package speech

import (
	"strings"
	"unicode"

	"patientid/internal/locale"
	"patientid/internal/textutil"
	"patientid/pkg/models"
)

// replyWords match a spoken reply: words against whole Latin words in
// lower case, phrases anywhere in the reply.
type replyWords struct {
	words      []string
	negations  []string
	phrases    []string
	negPhrases []string
}

// English confirmations are accepted in every locale.
var replies = map[locale.Locale]replyWords{
	locale.English: {
		words:     []string{"yes", "correct", "right", "ok", "okay", "confirm", "confirmed"},
		negations: []string{"no", "not", "wrong", "incorrect"},
	},
	locale.Chinese: {
		words:      []string{"yes", "correct", "ok", "confirm"},
		negations:  []string{"no", "not", "wrong", "incorrect"},
		phrases:    []string{"是", "正確", "對", "沒錯", "確認"},
		negPhrases: []string{"不是", "不對", "不正確", "錯了", "有錯", "不確認"},
	},
	locale.Korean: {
		words:      []string{"yes", "correct", "ok", "confirm"},
		negations:  []string{"no", "not", "wrong", "incorrect"},
		phrases:    []string{"네", "예", "맞아", "맞습니다", "맞아요", "확인"},
		negPhrases: []string{"아니", "틀려", "틀렸", "틀립니다"},
	},
}

// IsConfirmation reports whether the transcribed spoken reply confirms the
// record that was read out. A reply carrying a negation never confirms.
func IsConfirmation(response string, loc locale.Locale) bool {
	r, ok := replies[loc]
	if !ok {
		r = replies[locale.Chinese]
	}
	response = strings.ToLower(strings.TrimSpace(textutil.Fold(response)))
	if response == "" {
		return false
	}

	words := strings.FieldsFunc(response, func(c rune) bool {
		return !unicode.IsLetter(c) || c > unicode.MaxASCII
	})
	if containsWord(words, r.negations) || containsAny(response, r.negPhrases) {
		return false
	}
	return containsWord(words, r.words) || containsAny(response, r.phrases)
}

// Outcome is the short notice shown after the patient answered.
func Outcome(confirmed bool, loc locale.Locale) string {
	switch loc {
	case locale.English:
		if confirmed {
			return "Patient information verified successfully!"
		}
		return "Please reconfirm information or rescan"
	case locale.Korean:
		if confirmed {
			return "환자 정보가 확인되었습니다!"
		}
		return "정보를 다시 확인하거나 다시 스캔해 주세요"
	default:
		if confirmed {
			return "病患資料核對成功！"
		}
		return "請重新確認資料或重新掃描"
	}
}

// Summary renders the verification record appended to the review text
// once the patient confirmed. Unknown fields show the sentinel of loc.
func Summary(rec *models.PatientRecord, loc locale.Locale) string {
	if rec == nil {
		rec = &models.PatientRecord{}
	}
	v := rec.View(loc)

	var lines []string
	switch loc {
	case locale.English:
		lines = []string{
			"=== Verification Successful ===",
			"Patient verification completed",
			"Name: " + v.Name,
			"Date of birth: " + v.BirthDate,
			"Medical ID: " + v.MedicalID,
		}
	case locale.Korean:
		lines = []string{
			"=== 확인 완료 ===",
			"환자 신원 확인 완료",
			"이름: " + v.Name,
			"생년월일: " + v.BirthDate,
			"등록번호: " + v.MedicalID,
		}
	default:
		lines = []string{
			"=== 驗證成功 ===",
			"病患身份驗證完成",
			"姓名：" + v.Name,
			"出生日期：" + v.BirthDate,
			"病歷號：" + v.MedicalID,
		}
	}
	return strings.Join(lines, "\n")
}

func containsWord(words, want []string) bool {
	for _, w := range words {
		for _, x := range want {
			if w == x {
				return true
			}
		}
	}
	return false
}
