package speech

import (
	"testing"

	"patientid/internal/locale"
	"patientid/pkg/models"
)

func TestIsConfirmation(t *testing.T) {
	tests := []struct {
		response string
		loc      locale.Locale
		want     bool
	}{
		{"Yes", locale.English, true},
		{"that's correct", locale.English, true},
		{"OK", locale.English, true},
		{"all right", locale.English, true},
		{"no", locale.English, false},
		{"not correct", locale.English, false},
		{"I know", locale.English, false},
		{"", locale.English, false},
		{"是", locale.Chinese, true},
		{"對，沒錯", locale.Chinese, true},
		{"資料正確", locale.Chinese, true},
		{"yes", locale.Chinese, true},
		{"ＯＫ", locale.Chinese, true},
		{"不是", locale.Chinese, false},
		{"生日不對", locale.Chinese, false},
		{"再說一次", locale.Chinese, false},
		{"네, 맞습니다", locale.Korean, true},
		{"확인", locale.Korean, true},
		{"아니요", locale.Korean, false},
		{"yes", locale.Korean, true},
	}

	for _, tt := range tests {
		t.Run(tt.loc.String()+"/"+tt.response, func(t *testing.T) {
			if got := IsConfirmation(tt.response, tt.loc); got != tt.want {
				t.Errorf("IsConfirmation(%q, %s) = %v, want %v", tt.response, tt.loc, got, tt.want)
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	for _, loc := range locale.All {
		if Outcome(true, loc) == Outcome(false, loc) {
			t.Errorf("Outcome(%s) does not distinguish replies", loc)
		}
	}
	if got := Outcome(true, locale.Chinese); got != "病患資料核對成功！" {
		t.Errorf("Outcome(true, zh) = %q", got)
	}
}

func TestSummary(t *testing.T) {
	rec := &models.PatientRecord{
		Name:      models.Known("王小明"),
		BirthDate: models.Known("民國079/05/20"),
	}

	tests := []struct {
		loc  locale.Locale
		want string
	}{
		{locale.Chinese, "=== 驗證成功 ===\n病患身份驗證完成\n姓名：王小明\n出生日期：民國079/05/20\n病歷號：未辨識"},
		{locale.English, "=== Verification Successful ===\nPatient verification completed\nName: 王小明\nDate of birth: 民國079/05/20\nMedical ID: Unknown"},
		{locale.Korean, "=== 확인 완료 ===\n환자 신원 확인 완료\n이름: 王小明\n생년월일: 民國079/05/20\n등록번호: 인식되지 않음"},
	}
	for _, tt := range tests {
		t.Run(tt.loc.String(), func(t *testing.T) {
			if got := Summary(rec, tt.loc); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
