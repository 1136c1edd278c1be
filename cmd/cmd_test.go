package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// run executes the root command with args after resetting every flag.
func run(t *testing.T, args ...string) string {
	t.Helper()

	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute(%q) error = %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestDateCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"date", "1990/05/20"}, "079/05/20\n"},
		{[]string{"date", "--marker", "1980-01-29", "not a date"}, "民國069/01/29\nnot a date\n"},
		{[]string{"date", "--gregorian", "079/05/20"}, "1990-05-20\n"},
		{[]string{"date", "--speech", "--lang", "ko", "民國69年1月29日"}, "69년 1월 29일\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			if got := run(t, tt.args...); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslateCommand(t *testing.T) {
	got := run(t, "translate", "*340-0020", "Rt Knee AP+Lat")
	want := "*340-0020 -> 右膝 前後位+側位\nRt Knee AP+Lat -> 右膝 前後位+側位\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if got := run(t, "translate", "--target", "*340-0020"); got != "右膝 前後位+側位\n" {
		t.Errorf("--target output = %q", got)
	}
}

func TestTranslateCommandSupplement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	if err := os.WriteFile(path, []byte("Hand PA: 手 後前位\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := run(t, "translate", "--dict", path, "Hand PA"); got != "Hand PA -> 手 後前位\n" {
		t.Errorf("output = %q", got)
	}
}

func TestSpeakCommand(t *testing.T) {
	got := run(t, "speak", "--name", "王小明", "--id", "A12", "--birth", "民國079/05/20")
	if !strings.HasPrefix(got, "王小明先生，") || !strings.Contains(got, "病歷號為：A 1 2。") {
		t.Errorf("output = %q", got)
	}

	got = run(t, "speak", "--lang", "en", "--name", "Unknown", "--id", "未辨識")
	if !strings.Contains(got, "After the beep") {
		t.Errorf("fallback output = %q", got)
	}
}

func TestSpeakCommandResponse(t *testing.T) {
	got := run(t, "speak", "--name", "王小明", "--id", "A123456", "--response", "對，沒錯")
	want := "病患資料核對成功！\n\n=== 驗證成功 ===\n病患身份驗證完成\n姓名：王小明\n出生日期：未辨識\n病歷號：A123456\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	got = run(t, "speak", "--lang", "en", "--name", "John Smith", "--response", "no, that's wrong")
	if got != "Please reconfirm information or rescan\n" {
		t.Errorf("output = %q", got)
	}
}

func TestScanCommandText(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "order.txt")
	form := "姓名:王小明\n病歷號:A123456\n生日:1990/05/20\n一般檢查\n*340-0020\nRt Knee AP+Lat\n檢查說明\n"
	if err := os.WriteFile(in, []byte(form), 0o600); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "result.txt")

	run(t, "scan", "--text", in, "-o", outPath, "--report")

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, s := range []string{
		"姓名: 王小明\n",
		"出生日期: 民國079/05/20\n",
		"病歷號: A123456\n",
		"  *340-0020 Rt Knee AP+Lat -> 右膝 前後位+側位\n",
		"檢查部位（代碼合併版）:\n*340-0020 Rt Knee AP+Lat\n",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("output missing %q:\n%s", s, got)
		}
	}
}

func TestSelectInput(t *testing.T) {
	if _, err := selectInput(nil, "", ""); err == nil {
		t.Error("no input accepted")
	}
	if _, err := selectInput([]string{"a.jpg"}, "b.txt", ""); err == nil {
		t.Error("two inputs accepted")
	}
	if got, err := selectInput(nil, "", "l.json"); err != nil || got != "l.json" {
		t.Errorf("selectInput() = %q, %v", got, err)
	}
}
