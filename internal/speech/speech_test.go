package speech

import (
	"strings"
	"testing"

	"patientid/internal/locale"
	"patientid/pkg/models"
)

func fullRecord() *models.PatientRecord {
	return &models.PatientRecord{
		Name:      models.Known("王小明"),
		BirthDate: models.Known("民國079/05/20"),
		MedicalID: models.Known("A123"),
		ExamType:  "X光",
	}
}

func TestComposeChinese(t *testing.T) {
	got := Compose(fullRecord(), locale.Chinese)
	want := "王小明先生，等一下將進行X光檢查。現在呈現您的病歷資訊。" +
		"病歷號為：A 1 2 3。" +
		"姓名為：王小明。" +
		"出生年月日為：79年5月20日。" +
		"請在畫面上核對並按「確認」，若有錯誤請點「修改」後更正。"
	if got != want {
		t.Errorf("Compose() =\n%s\nwant\n%s", got, want)
	}
}

func TestComposeEnglish(t *testing.T) {
	rec := &models.PatientRecord{
		Name:      models.Known("John Smith"),
		BirthDate: models.Known("1985-07-04"),
		MedicalID: models.Known("MRN01"),
	}
	got := Compose(rec, locale.English)
	want := "Hello John Smith. You will have an examination shortly. Now let me present your medical information. " +
		"Medical ID: M R N 0 1. Name: John Smith. Date of birth: 1985-07-04. " +
		"Please review on screen and press Confirm or Edit if something is incorrect."
	if got != want {
		t.Errorf("Compose() =\n%s\nwant\n%s", got, want)
	}
}

func TestComposeKorean(t *testing.T) {
	got := Compose(fullRecord(), locale.Korean)
	want := "안녕하세요, 王小明님. 잠시 후 X光 검사를 진행합니다. 지금 의료 정보를 안내해 드리겠습니다. " +
		"등록번호: A 1 2 3. 이름: 王小明. 생년월일: 79년 5월 20일. " +
		"화면에서 확인 후 '확인'을 누르시고, 틀린 정보가 있으면 '수정'을 눌러 주세요."
	if got != want {
		t.Errorf("Compose() =\n%s\nwant\n%s", got, want)
	}
}

func TestComposeUnknownFields(t *testing.T) {
	rec := &models.PatientRecord{MedicalID: models.Known("A1")}

	tests := []struct {
		loc  locale.Locale
		want string
	}{
		{locale.Chinese, "您好，等一下將進行檢查。現在呈現您的病歷資訊。病歷號為：A 1。請在畫面上核對並按「確認」，若有錯誤請點「修改」後更正。"},
		{locale.English, "Hello. You will have an examination shortly. Now let me present your medical information. Medical ID: A 1. Please review on screen and press Confirm or Edit if something is incorrect."},
	}
	for _, tt := range tests {
		if got := Compose(rec, tt.loc); got != tt.want {
			t.Errorf("Compose(%s) = %q, want %q", tt.loc, got, tt.want)
		}
	}
}

func TestComposeNeverReadsSentinels(t *testing.T) {
	for _, active := range locale.All {
		for _, other := range locale.All {
			s := other.Unrecognized()
			rec := &models.PatientRecord{
				Name:      models.ParseField(s),
				BirthDate: models.ParseField(s),
				MedicalID: models.ParseField(s),
			}
			if got := Compose(rec, active); strings.Contains(got, s) {
				t.Errorf("Compose(%s) reads sentinel %q: %s", active, s, got)
			}
		}
	}
}

func TestHonorific(t *testing.T) {
	rec := &models.PatientRecord{Name: models.Known("林小姐")}
	got := Compose(rec, locale.Chinese)
	if !strings.HasPrefix(got, "林小姐，") {
		t.Errorf("Compose() = %q", got)
	}
}

func TestNormalizeQuotes(t *testing.T) {
	rec := &models.PatientRecord{Name: models.Known("O’Neil"), ExamType: "“Chest”"}
	got := Compose(rec, locale.English)
	if !strings.Contains(got, "Hello O'Neil.") || !strings.Contains(got, `"Chest" examination`) {
		t.Errorf("Compose() = %q", got)
	}
}

func TestSpell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"A123456", "A 1 2 3 4 5 6"},
		{"12 34", "1 2 3 4"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Spell(tt.in); got != tt.want {
			t.Errorf("Spell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFallback(t *testing.T) {
	for _, loc := range locale.All {
		if Fallback(loc) == "" {
			t.Errorf("Fallback(%s) is empty", loc)
		}
	}
	if !strings.Contains(Fallback(locale.English), "After the beep") {
		t.Errorf("Fallback(en) = %q", Fallback(locale.English))
	}
}
