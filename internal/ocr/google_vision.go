package ocr

import (
	"context"
	"fmt"
	"io"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/rs/zerolog"

	"patientid/internal/locale"
	"patientid/internal/logger"
	"patientid/pkg/models"
)

// VisionRecognizer implements Recognizer using Google Cloud Vision API.
type VisionRecognizer struct {
	client *vision.ImageAnnotatorClient
	hints  []string
	config Config
	log    zerolog.Logger
}

// NewVisionRecognizer creates a Vision client with credentials from environment.
// It expects either GOOGLE_APPLICATION_CREDENTIALS path or GOOGLE_CREDENTIALS JSON in env.
func NewVisionRecognizer(ctx context.Context, cfg Config) (*VisionRecognizer, error) {
	const op = "NewVisionRecognizer"

	opts := credentialOptions()
	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		if len(opts) == 0 {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(op, err, "failed to create Vision client")
	}
	return NewVisionRecognizerWithClient(client, cfg), nil
}

// NewVisionRecognizerWithClient creates a recognizer with an explicit client (for testing).
func NewVisionRecognizerWithClient(client *vision.ImageAnnotatorClient, cfg Config) *VisionRecognizer {
	return &VisionRecognizer{
		client: client,
		hints:  languageHints(cfg.Locale),
		config: cfg,
		log:    logger.WithComponent("vision"),
	}
}

func languageHints(loc locale.Locale) []string {
	hints := []string{"zh-Hant"}
	if loc != locale.Chinese {
		hints = append(hints, loc.Tag().String())
	}
	return hints
}

// Recognize runs DOCUMENT_TEXT_DETECTION on image.
func (v *VisionRecognizer) Recognize(ctx context.Context, image io.Reader) (*models.Document, error) {
	const op = "Recognize"

	data, mime, err := readImage(op, image)
	if err != nil {
		return nil, err
	}

	if v.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.config.Timeout)
		defer cancel()
	}

	v.log.Debug().Str("mime", mime).Int("bytes", len(data)).Strs("hints", v.hints).Msg("Sending image to Vision")

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: &visionpb.ImageContext{LanguageHints: v.hints},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, classify(op, err, "Vision API")
	}
	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrOCRFailed, "no response from Vision API")
	}

	ann := resp.Responses[0]
	if ann.Error != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API error: %s", ann.Error.GetMessage()))
	}

	doc := FromVision(ann.FullTextAnnotation)
	if strings.TrimSpace(doc.FullText()) == "" {
		return nil, WrapOCRError(op, ErrEmptyDocument, "")
	}

	v.log.Debug().Int("blocks", len(doc.Blocks)).Msg("Vision text detected")
	return doc, nil
}

// Close closes the underlying Vision client.
func (v *VisionRecognizer) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

// FromVision converts a Vision full-text annotation. Every Vision block
// becomes a block; lines end at detected line breaks and each word
// becomes an element boxed by its bounding polygon. Multiple pages are
// flattened in order.
func FromVision(ann *visionpb.TextAnnotation) *models.Document {
	doc := &models.Document{}
	if ann == nil {
		return doc
	}
	doc.Text = strings.TrimRight(ann.GetText(), "\n")

	for _, page := range ann.GetPages() {
		for _, vb := range page.GetBlocks() {
			block := visionBlock(vb)
			if len(block.Lines) > 0 {
				doc.Blocks = append(doc.Blocks, block)
			}
		}
	}
	return doc
}

func visionBlock(vb *visionpb.Block) models.Block {
	var (
		block models.Block
		line  models.Line
		text  strings.Builder
	)
	flush := func() {
		line.Text = strings.TrimSpace(text.String())
		if line.Text != "" {
			block.Lines = append(block.Lines, line)
		}
		line = models.Line{}
		text.Reset()
	}

	for _, para := range vb.GetParagraphs() {
		for _, word := range para.GetWords() {
			var w strings.Builder
			lineEnd := false
			for _, sym := range word.GetSymbols() {
				w.WriteString(sym.GetText())
				switch sym.GetProperty().GetDetectedBreak().GetType() {
				case visionpb.TextAnnotation_DetectedBreak_SPACE,
					visionpb.TextAnnotation_DetectedBreak_SURE_SPACE:
					text.WriteString(sym.GetText())
					text.WriteByte(' ')
					continue
				case visionpb.TextAnnotation_DetectedBreak_HYPHEN:
					text.WriteString(sym.GetText())
					text.WriteByte('-')
					lineEnd = true
					continue
				case visionpb.TextAnnotation_DetectedBreak_EOL_SURE_SPACE,
					visionpb.TextAnnotation_DetectedBreak_LINE_BREAK:
					lineEnd = true
				}
				text.WriteString(sym.GetText())
			}
			line.Elements = append(line.Elements, models.Element{
				Text: w.String(),
				Box:  visionBox(word.GetBoundingBox()),
			})
			if lineEnd {
				flush()
			}
		}
		flush()
	}

	lines := make([]string, 0, len(block.Lines))
	for _, l := range block.Lines {
		lines = append(lines, l.Text)
	}
	block.Text = strings.Join(lines, "\n")
	return block
}

func visionBox(poly *visionpb.BoundingPoly) *models.Rect {
	vs := poly.GetVertices()
	if len(vs) == 0 {
		return nil
	}
	r := &models.Rect{
		Left: int(vs[0].GetX()), Top: int(vs[0].GetY()),
		Right: int(vs[0].GetX()), Bottom: int(vs[0].GetY()),
	}
	for _, p := range vs[1:] {
		r.Left = min(r.Left, int(p.GetX()))
		r.Top = min(r.Top, int(p.GetY()))
		r.Right = max(r.Right, int(p.GetX()))
		r.Bottom = max(r.Bottom, int(p.GetY()))
	}
	return r
}
