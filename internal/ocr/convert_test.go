package ocr

import (
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"patientid/pkg/models"
)

func visionWord(text string, brk visionpb.TextAnnotation_DetectedBreak_BreakType, l, t, r, b int32) *visionpb.Word {
	runes := []rune(text)
	syms := make([]*visionpb.Symbol, len(runes))
	for i, c := range runes {
		syms[i] = &visionpb.Symbol{Text: string(c)}
	}
	syms[len(syms)-1].Property = &visionpb.TextAnnotation_TextProperty{
		DetectedBreak: &visionpb.TextAnnotation_DetectedBreak{Type: brk},
	}
	return &visionpb.Word{
		Symbols: syms,
		BoundingBox: &visionpb.BoundingPoly{Vertices: []*visionpb.Vertex{
			{X: l, Y: t}, {X: r, Y: t}, {X: r, Y: b}, {X: l, Y: b},
		}},
	}
}

func TestFromVision(t *testing.T) {
	ann := &visionpb.TextAnnotation{
		Text: "姓名: 王小明\n病歷號:A123\n",
		Pages: []*visionpb.Page{{
			Blocks: []*visionpb.Block{{
				Paragraphs: []*visionpb.Paragraph{{
					Words: []*visionpb.Word{
						visionWord("姓名:", visionpb.TextAnnotation_DetectedBreak_SPACE, 0, 0, 40, 20),
						visionWord("王小明", visionpb.TextAnnotation_DetectedBreak_LINE_BREAK, 50, 0, 110, 20),
						visionWord("病歷號:A123", visionpb.TextAnnotation_DetectedBreak_EOL_SURE_SPACE, 0, 30, 120, 50),
					},
				}},
			}},
		}},
	}

	doc := FromVision(ann)
	if doc.Text != "姓名: 王小明\n病歷號:A123" {
		t.Errorf("Text = %q", doc.Text)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(doc.Blocks))
	}
	b := doc.Blocks[0]
	if b.Text != "姓名: 王小明\n病歷號:A123" {
		t.Errorf("block text = %q", b.Text)
	}
	if len(b.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(b.Lines))
	}
	if b.Lines[0].Text != "姓名: 王小明" || b.Lines[1].Text != "病歷號:A123" {
		t.Errorf("lines = %q, %q", b.Lines[0].Text, b.Lines[1].Text)
	}

	els := b.Lines[0].Elements
	if len(els) != 2 || els[0].Text != "姓名:" || els[1].Text != "王小明" {
		t.Fatalf("elements = %+v", els)
	}
	want := models.Rect{Left: 50, Top: 0, Right: 110, Bottom: 20}
	if els[1].Box == nil || *els[1].Box != want {
		t.Errorf("box = %+v, want %+v", els[1].Box, want)
	}
}

func TestFromVisionNil(t *testing.T) {
	doc := FromVision(nil)
	if doc == nil || doc.FullText() != "" || len(doc.Blocks) != 0 {
		t.Errorf("FromVision(nil) = %+v", doc)
	}
}

func anchor(start, end int64) *documentaipb.Document_TextAnchor {
	return &documentaipb.Document_TextAnchor{
		TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{{StartIndex: start, EndIndex: end}},
	}
}

func TestFromDocumentAI(t *testing.T) {
	// Rune offsets: "姓名:王小明\n" is [0,7), "病歷號:A123\n" is [7,16).
	d := &documentaipb.Document{
		Text: "姓名:王小明\n病歷號:A123\n",
		Pages: []*documentaipb.Document_Page{{
			Dimension: &documentaipb.Document_Page_Dimension{Width: 1000, Height: 2000},
			Blocks: []*documentaipb.Document_Page_Block{{
				Layout: &documentaipb.Document_Page_Layout{TextAnchor: anchor(0, 16)},
			}},
			Lines: []*documentaipb.Document_Page_Line{
				{Layout: &documentaipb.Document_Page_Layout{TextAnchor: anchor(0, 7)}},
				{Layout: &documentaipb.Document_Page_Layout{TextAnchor: anchor(7, 16)}},
			},
			Tokens: []*documentaipb.Document_Page_Token{
				{Layout: &documentaipb.Document_Page_Layout{
					TextAnchor: anchor(0, 3),
					BoundingPoly: &documentaipb.BoundingPoly{Vertices: []*documentaipb.Vertex{
						{X: 10, Y: 5}, {X: 60, Y: 5}, {X: 60, Y: 25}, {X: 10, Y: 25},
					}},
				}},
				{Layout: &documentaipb.Document_Page_Layout{TextAnchor: anchor(3, 7)}},
				{Layout: &documentaipb.Document_Page_Layout{
					TextAnchor: anchor(7, 16),
					BoundingPoly: &documentaipb.BoundingPoly{NormalizedVertices: []*documentaipb.NormalizedVertex{
						{X: 0.125, Y: 0.25}, {X: 0.5, Y: 0.25}, {X: 0.5, Y: 0.75}, {X: 0.125, Y: 0.75},
					}},
				}},
			},
		}},
	}

	doc := FromDocumentAI(d)
	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(doc.Blocks))
	}
	b := doc.Blocks[0]
	if b.Text != "姓名:王小明\n病歷號:A123" {
		t.Errorf("block text = %q", b.Text)
	}
	if len(b.Lines) != 2 || b.Lines[0].Text != "姓名:王小明" || b.Lines[1].Text != "病歷號:A123" {
		t.Fatalf("lines = %+v", b.Lines)
	}

	first := b.Lines[0].Elements
	if len(first) != 2 || first[0].Text != "姓名:" || first[1].Text != "王小明" {
		t.Fatalf("elements = %+v", first)
	}
	if want := (models.Rect{Left: 10, Top: 5, Right: 60, Bottom: 25}); first[0].Box == nil || *first[0].Box != want {
		t.Errorf("pixel box = %+v, want %+v", first[0].Box, want)
	}
	if first[1].Box != nil {
		t.Errorf("missing poly should give nil box, got %+v", first[1].Box)
	}

	second := b.Lines[1].Elements
	if want := (models.Rect{Left: 125, Top: 500, Right: 500, Bottom: 1500}); len(second) != 1 || second[0].Box == nil || *second[0].Box != want {
		t.Errorf("normalized box = %+v, want %+v", second, want)
	}
}

func TestFromDocumentAIBadAnchor(t *testing.T) {
	d := &documentaipb.Document{
		Text: "abc",
		Pages: []*documentaipb.Document_Page{{
			Blocks: []*documentaipb.Document_Page_Block{{
				Layout: &documentaipb.Document_Page_Layout{TextAnchor: anchor(2, 99)},
			}},
		}},
	}
	doc := FromDocumentAI(d)
	if len(doc.Blocks) != 0 || doc.Text != "abc" {
		t.Errorf("FromDocumentAI() = %+v", doc)
	}
}
