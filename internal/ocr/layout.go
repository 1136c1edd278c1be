package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"patientid/pkg/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadLayout decodes a saved models.Document JSON file.
func LoadLayout(r io.Reader) (*models.Document, error) {
	const op = "LoadLayout"

	var doc models.Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, WrapOCRError(op, ErrInvalidLayout, err.Error())
	}
	if strings.TrimSpace(doc.FullText()) == "" {
		return nil, WrapOCRError(op, ErrEmptyDocument, "layout has no text")
	}
	return &doc, nil
}

// DecodeText returns data as UTF-8. Input that is not valid UTF-8 is
// taken to be Big5, the encoding most Taiwanese hospital systems export.
func DecodeText(data []byte) (string, error) {
	const op = "DecodeText"

	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, _, err := transform.Bytes(traditionalchinese.Big5.NewDecoder(), data)
	if err != nil {
		return "", WrapOCRError(op, err, "failed to decode Big5 text")
	}
	return string(out), nil
}

// LayoutRecognizer replays a saved layout instead of calling an engine.
type LayoutRecognizer struct{}

// Recognize decodes r as a layout JSON document.
func (LayoutRecognizer) Recognize(ctx context.Context, r io.Reader) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, WrapOCRError("Recognize", ErrContextCanceled, err.Error())
	}
	return LoadLayout(r)
}

// TextRecognizer treats its input as an OCR text dump with no layout.
type TextRecognizer struct{}

// Recognize decodes r and splits it into one block per line.
func (TextRecognizer) Recognize(ctx context.Context, r io.Reader) (*models.Document, error) {
	const op = "Recognize"

	if err := ctx.Err(); err != nil {
		return nil, WrapOCRError(op, ErrContextCanceled, err.Error())
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read text")
	}
	text, err := DecodeText(data)
	if err != nil {
		return nil, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, WrapOCRError(op, ErrEmptyDocument, "")
	}
	return models.TextDocument(text), nil
}
