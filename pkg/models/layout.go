package models

import "strings"

// Document is recognized text with its spatial layout, as produced by an
// OCR engine. Blocks, lines and elements are in engine reading order.
type Document struct {
	// Text is the whole-document transcription, lines separated by "\n".
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks,omitempty"`
}

// Block is a visually grouped region of text.
type Block struct {
	Text  string `json:"text"`
	Lines []Line `json:"lines,omitempty"`
}

// Line is one row of text inside a block.
type Line struct {
	Text     string    `json:"text"`
	Elements []Element `json:"elements,omitempty"`
}

// Element is a single recognized token (word or CJK run).
type Element struct {
	Text string `json:"text"`
	// Box is nil when the engine reported no position.
	Box *Rect `json:"box,omitempty"`
}

// Rect is an axis-aligned bounding box in page pixel coordinates.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// FullText returns the document transcription, rebuilding it from the
// blocks when the engine supplied none.
func (d *Document) FullText() string {
	if d == nil {
		return ""
	}
	if d.Text != "" {
		return d.Text
	}
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		parts = append(parts, b.FullText())
	}
	return strings.Join(parts, "\n")
}

// FullText returns the block text, rebuilding it from its lines if needed.
func (b Block) FullText() string {
	if b.Text != "" {
		return b.Text
	}
	parts := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		parts = append(parts, l.FullText())
	}
	return strings.Join(parts, "\n")
}

// FullText returns the line text, rebuilding it from its elements if needed.
func (l Line) FullText() string {
	if l.Text != "" {
		return l.Text
	}
	parts := make([]string, 0, len(l.Elements))
	for _, e := range l.Elements {
		parts = append(parts, e.Text)
	}
	return strings.Join(parts, " ")
}

// TextDocument wraps plain text without layout. Each non-empty line
// becomes its own block so block-based strategies still see the text.
func TextDocument(text string) *Document {
	doc := &Document{Text: text}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		doc.Blocks = append(doc.Blocks, Block{
			Text:  line,
			Lines: []Line{{Text: line}},
		})
	}
	return doc
}
