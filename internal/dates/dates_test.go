package dates

import (
	"testing"

	"patientid/internal/locale"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in         string
		withMarker bool
		want       string
	}{
		{"民國69/1/29", true, "民國069/01/29"},
		{"2024/3/5", true, "民國113/03/05"},
		{"69/01/29", true, "民國069/01/29"},
		{"1990/05/20", true, "民國079/05/20"},
		{"1990/05/20", false, "079/05/20"},
		{"民國 069 年 01 月 29 日", false, "069/01/29"},
		{"1980年1月29日", true, "民國069/01/29"},
		{"1980-01-29", true, "民國069/01/29"},
		{"069.01.29", true, "民國069/01/29"},
		{"生日:69/1/29 男", true, "民國069/01/29"},
		{"１９９０／０５／２０", true, "民國079/05/20"},
		{"0690129", true, "民國069/01/29"},
		{"19800129", true, "民國069/01/29"},
		{"99/1/1", true, "民國099/01/01"},

		// pass-through
		{"1911/01/01", true, "1911/01/01"},
		{"1850/01/01", true, "1850/01/01"},
		{"2024/13/05", true, "2024/13/05"},
		{"2024/02/32", true, "2024/02/32"},
		{"hello", true, "hello"},
		{"A123456", true, "A123456"},
		{"", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in, tt.withMarker); got != tt.want {
				t.Errorf("Normalize(%q, %v) = %q, want %q", tt.in, tt.withMarker, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsStable(t *testing.T) {
	for _, in := range []string{"民國69/1/29", "2024/3/5", "69/01/29"} {
		once := Normalize(in, true)
		if twice := Normalize(once, true); twice != once {
			t.Errorf("Normalize(%q) = %q, again = %q", in, once, twice)
		}
	}
}

func TestSpeechForm(t *testing.T) {
	tests := []struct {
		in   string
		loc  locale.Locale
		want string
	}{
		{"民國069/01/29", locale.Chinese, "69年1月29日"},
		{"069/01/29", locale.Korean, "69년 1월 29일"},
		{"1990/05/20", locale.Chinese, "79年5月20日"},
		{"民國069/01/29", locale.English, "民國069/01/29"},
		{"unknown", locale.Chinese, "unknown"},
	}
	for _, tt := range tests {
		if got := SpeechForm(tt.in, tt.loc); got != tt.want {
			t.Errorf("SpeechForm(%q, %s) = %q, want %q", tt.in, tt.loc, got, tt.want)
		}
	}
}

func TestToGregorian(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"民國069/01/29", "1980-01-29"},
		{"113/3/5", "2024-03-05"},
		{"2024/3/5", "2024-03-05"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := ToGregorian(tt.in); got != tt.want {
			t.Errorf("ToGregorian(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
