// Package dates converts birth dates between the Gregorian and Minguo (ROC)
// calendars. Minguo year = Gregorian year - 1911.
//
// Accepted inputs:
//
//	民國69/1/29   民國 069 年 01 月 29 日   Minguo-prefixed
//	1980/1/29    1980-01-29  1980.1.29   Gregorian, four-digit year
//	69/1/29      069.01.29               bare two or three digit year, read as Minguo
//	0690129      19800129                HIS compact forms (YYYMMDD, YYYYMMDD)
//
// Anything else is returned unchanged.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"patientid/internal/locale"
	"patientid/internal/textutil"
)

// Marker is the era prefix of a Minguo date.
const Marker = "民國"

// Offset is the difference between Gregorian and Minguo years.
const Offset = 1911

const sep = `\s*[./\-年]\s*`
const sepMonth = `\s*[./\-月]\s*`

var (
	reMinguo    = regexp.MustCompile(`民國\s*(\d{1,3})` + sep + `(\d{1,2})` + sepMonth + `(\d{1,2})(?:\D|$)`)
	reGregorian = regexp.MustCompile(`(?:^|\D)(\d{4})` + sep + `(\d{1,2})` + sepMonth + `(\d{1,2})(?:\D|$)`)
	reBare      = regexp.MustCompile(`(?:^|\D)(\d{2,3})` + sep + `(\d{1,2})` + sepMonth + `(\d{1,2})(?:\D|$)`)
	reCompact   = regexp.MustCompile(`^(\d{3}|\d{4})(\d{2})(\d{2})$`)
)

// Date is a calendar date held as a Minguo year.
type Date struct {
	Year  int // Minguo year, >= 1
	Month int
	Day   int
}

// String renders the zero-padded "YYY/MM/DD" form.
func (d Date) String() string {
	return fmt.Sprintf("%03d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Gregorian renders "YYYY-MM-DD".
func (d Date) Gregorian() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year+Offset, d.Month, d.Day)
}

// Parse finds the first date in s. Minguo-prefixed forms win over
// Gregorian ones, which win over bare short years.
func Parse(s string) (Date, bool) {
	s = strings.TrimSpace(textutil.Fold(s))
	if s == "" {
		return Date{}, false
	}

	if m := reMinguo.FindStringSubmatch(s); m != nil {
		return build(atoi(m[1]), m[2], m[3])
	}
	if m := reGregorian.FindStringSubmatch(s); m != nil {
		return build(atoi(m[1])-Offset, m[2], m[3])
	}
	if m := reBare.FindStringSubmatch(s); m != nil {
		return build(atoi(m[1]), m[2], m[3])
	}
	if m := reCompact.FindStringSubmatch(s); m != nil {
		year := atoi(m[1])
		if len(m[1]) == 4 {
			year -= Offset
		}
		return build(year, m[2], m[3])
	}
	return Date{}, false
}

func build(year int, month, day string) (Date, bool) {
	d := Date{Year: year, Month: atoi(month), Day: atoi(day)}
	if d.Year <= 0 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return Date{}, false
	}
	return d, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// Normalize rewrites a date as "YYY/MM/DD", prefixed with 民國 when
// withMarker is set. Unparseable input, and Gregorian years at or before
// 1911, come back unchanged.
func Normalize(s string, withMarker bool) string {
	d, ok := Parse(s)
	if !ok {
		return s
	}
	if withMarker {
		return Marker + d.String()
	}
	return d.String()
}

// ToGregorian rewrites a date as "YYYY-MM-DD", or returns s unchanged.
func ToGregorian(s string) string {
	d, ok := Parse(s)
	if !ok {
		return s
	}
	return d.Gregorian()
}

// SpeechForm renders a date for text-to-speech without leading zeros:
// "69年1月29日" for Chinese, "69년 1월 29일" for Korean. English and
// unparseable input are returned unchanged.
func SpeechForm(s string, loc locale.Locale) string {
	d, ok := Parse(s)
	if !ok {
		return s
	}
	switch loc {
	case locale.Chinese:
		return fmt.Sprintf("%d年%d月%d日", d.Year, d.Month, d.Day)
	case locale.Korean:
		return fmt.Sprintf("%d년 %d월 %d일", d.Year, d.Month, d.Day)
	case locale.English:
		return s
	}
	return s
}
