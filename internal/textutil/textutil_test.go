package textutil

import (
	"reflect"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"姓名：王小明", "姓名:王小明"},
		{"名＝陳大文", "名=陳大文"},
		{"病歷號：Ａ１２３", "病歷號:A123"},
		{"一般檢查", "一般檢查"},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("  a \r\n\n b\n   \nc")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines = %q, want %q", got, want)
	}
}

func TestCascadeFirstWins(t *testing.T) {
	c := NewCascade(`first:(\w+)`, `second:(\w+)`)

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"only second", "second:b", "b", true},
		{"declared order beats position", "second:b first:a", "a", true},
		{"no match", "third:c", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.First(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("First(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCutAtAny(t *testing.T) {
	if got := CutAtAny("王小明性別男", "出生", "性別"); got != "王小明" {
		t.Errorf("CutAtAny = %q", got)
	}
	if got := CutAtAny("王小明", "性別"); got != "王小明" {
		t.Errorf("CutAtAny without keyword = %q", got)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"王小明=", "王小明"},
		{"  John   Smith# ", "John Smith"},
		{"*陳·大文", "陳·大文"},
		{"김민수!", "김민수"},
		{"123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLooksLikeName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"王小明", true},
		{"歐陽·娜娜", true},
		{"김민수", true},
		{"John Smith", true},
		{"王", false},
		{"王小明123", false},
		{"", false},
		{"-John", false},
		{"這是一個很長很長的句子", false},
	}
	for _, tt := range tests {
		if got := LooksLikeName(tt.in); got != tt.want {
			t.Errorf("LooksLikeName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
