package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

func TestDecodeText(t *testing.T) {
	const want = "病歷號:A123 姓名:王小明"

	big5, _, err := transform.String(traditionalchinese.Big5.NewEncoder(), want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	tests := []struct {
		name string
		in   []byte
	}{
		{"utf8", []byte(want)},
		{"utf8 with bom", append([]byte{0xEF, 0xBB, 0xBF}, want...)},
		{"big5", []byte(big5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.in)
			if err != nil {
				t.Fatalf("DecodeText() error = %v", err)
			}
			if got != want {
				t.Errorf("DecodeText() = %q, want %q", got, want)
			}
		})
	}
}

func TestLoadLayout(t *testing.T) {
	const src = `{"blocks":[{"text":"","lines":[{"text":"","elements":[
		{"text":"姓名","box":{"left":0,"top":0,"right":40,"bottom":20}},
		{"text":"王小明"}]}]}]}`

	doc, err := LoadLayout(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadLayout() error = %v", err)
	}
	if got := doc.FullText(); got != "姓名 王小明" {
		t.Errorf("FullText() = %q", got)
	}
	els := doc.Blocks[0].Lines[0].Elements
	if els[0].Box == nil || els[0].Box.Right != 40 || els[1].Box != nil {
		t.Errorf("elements = %+v", els)
	}
}

func TestLoadLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"not json", "姓名:王小明", ErrInvalidLayout},
		{"unknown field", `{"text":"x","pages":[]}`, ErrInvalidLayout},
		{"no text", `{"text":"  "}`, ErrEmptyDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLayout(strings.NewReader(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadLayout() error = %v, want %v", err, tt.want)
			}
			var ocrErr *OCRError
			if !errors.As(err, &ocrErr) || ocrErr.Op != "LoadLayout" {
				t.Errorf("error %v is not an OCRError from LoadLayout", err)
			}
		})
	}
}

func TestTextRecognizer(t *testing.T) {
	doc, err := TextRecognizer{}.Recognize(context.Background(), strings.NewReader("姓名:王小明\r\n\r\n病歷號:A123\r\n"))
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if len(doc.Blocks) != 2 || doc.Blocks[1].Text != "病歷號:A123" {
		t.Errorf("blocks = %+v", doc.Blocks)
	}

	if _, err := (TextRecognizer{}).Recognize(context.Background(), strings.NewReader(" \n")); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("blank input error = %v, want ErrEmptyDocument", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (LayoutRecognizer{}).Recognize(ctx, strings.NewReader("{}")); !errors.Is(err, ErrContextCanceled) {
		t.Errorf("canceled error = %v, want ErrContextCanceled", err)
	}
}

func TestReadImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if _, mime, err := readImage("test", strings.NewReader(string(png))); err != nil || mime != "image/png" {
		t.Errorf("readImage(png) = %q, %v", mime, err)
	}
	if _, _, err := readImage("test", strings.NewReader("%PDF-1.4")); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("readImage(pdf) error = %v, want ErrInvalidImage", err)
	}
	if _, _, err := readImage("test", strings.NewReader("")); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("readImage(empty) error = %v, want ErrInvalidImage", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"rpc error: code = PermissionDenied desc = denied", ErrInvalidCredentials},
		{"rpc error: code = ResourceExhausted desc = quota", ErrQuotaExceeded},
		{"rpc error: code = NotFound desc = processor", ErrProcessorNotFound},
		{"rpc error: code = Canceled desc = context canceled", ErrContextCanceled},
		{"boom", ErrOCRFailed},
	}
	for _, tt := range tests {
		if err := classify("Recognize", errors.New(tt.msg), "p"); !errors.Is(err, tt.want) {
			t.Errorf("classify(%q) = %v, want %v", tt.msg, err, tt.want)
		}
	}
}
