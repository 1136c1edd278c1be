package ocr

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"patientid/internal/logger"
	"patientid/pkg/models"
)

// DefaultDocumentAITimeout bounds one ProcessDocument call.
const DefaultDocumentAITimeout = 60 * time.Second

// DocumentAIRecognizer implements Recognizer with a Document AI OCR processor.
type DocumentAIRecognizer struct {
	client *documentai.DocumentProcessorClient
	config Config
	log    zerolog.Logger
}

// NewDocumentAIRecognizer creates a processor client with credentials from environment.
// Requires ProjectID and ProcessorID; Location defaults to "us".
func NewDocumentAIRecognizer(ctx context.Context, cfg Config) (*DocumentAIRecognizer, error) {
	const op = "NewDocumentAIRecognizer"

	if cfg.ProjectID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "Document AI project ID is required")
	}
	if cfg.ProcessorID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "Document AI processor ID is required")
	}
	if cfg.Location == "" {
		cfg.Location = "us"
	}

	var clientOptions []option.ClientOption
	if cfg.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}
	creds := credentialOptions()
	clientOptions = append(clientOptions, creds...)

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if len(creds) == 0 {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", cfg.Location))
	}
	return NewDocumentAIRecognizerWithClient(client, cfg), nil
}

// NewDocumentAIRecognizerWithClient creates a recognizer with an explicit client (for testing).
func NewDocumentAIRecognizerWithClient(client *documentai.DocumentProcessorClient, cfg Config) *DocumentAIRecognizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultDocumentAITimeout
	}
	return &DocumentAIRecognizer{
		client: client,
		config: cfg,
		log:    logger.WithComponent("document-ai"),
	}
}

// Recognize sends image to the configured processor.
func (p *DocumentAIRecognizer) Recognize(ctx context.Context, image io.Reader) (*models.Document, error) {
	const op = "Recognize"

	data, mime, err := readImage(op, image)
	if err != nil {
		return nil, err
	}

	processCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	name := p.processorName()
	p.log.Debug().Str("processor", name).Str("mime", mime).Int("bytes", len(data)).Msg("Sending image to Document AI")

	req := &documentaipb.ProcessRequest{
		Name: name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: mime,
			},
		},
	}

	resp, err := p.client.ProcessDocument(processCtx, req)
	if err != nil {
		return nil, classify(op, err, p.config.ProcessorID)
	}

	doc := FromDocumentAI(resp.GetDocument())
	if strings.TrimSpace(doc.FullText()) == "" {
		return nil, WrapOCRError(op, ErrEmptyDocument, "")
	}
	return doc, nil
}

// Close closes the underlying Document AI client.
func (p *DocumentAIRecognizer) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

func (p *DocumentAIRecognizer) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		p.config.ProjectID, p.config.Location, p.config.ProcessorID)
}

// FromDocumentAI converts a processed document. Lines are assigned to the
// block whose text range contains their start, tokens to the line that
// contains theirs. Text anchors index the document text by code point.
func FromDocumentAI(d *documentaipb.Document) *models.Document {
	doc := &models.Document{}
	if d == nil {
		return doc
	}
	text := []rune(d.GetText())
	doc.Text = strings.TrimRight(string(text), "\n")

	for _, page := range d.GetPages() {
		dim := page.GetDimension()
		for _, b := range page.GetBlocks() {
			bs, be := anchorRange(b.GetLayout())
			block := models.Block{Text: anchorText(text, b.GetLayout())}

			for _, l := range page.GetLines() {
				ls, le := anchorRange(l.GetLayout())
				if ls < bs || ls >= be {
					continue
				}
				line := models.Line{Text: anchorText(text, l.GetLayout())}
				for _, t := range page.GetTokens() {
					ts, _ := anchorRange(t.GetLayout())
					if ts < ls || ts >= le {
						continue
					}
					tok := anchorText(text, t.GetLayout())
					if tok == "" {
						continue
					}
					line.Elements = append(line.Elements, models.Element{
						Text: tok,
						Box:  documentAIBox(t.GetLayout().GetBoundingPoly(), dim),
					})
				}
				if line.Text != "" {
					block.Lines = append(block.Lines, line)
				}
			}
			if block.Text != "" {
				doc.Blocks = append(doc.Blocks, block)
			}
		}
	}
	return doc
}

func anchorRange(layout *documentaipb.Document_Page_Layout) (int64, int64) {
	segs := layout.GetTextAnchor().GetTextSegments()
	if len(segs) == 0 {
		return -1, -1
	}
	return segs[0].GetStartIndex(), segs[len(segs)-1].GetEndIndex()
}

func anchorText(text []rune, layout *documentaipb.Document_Page_Layout) string {
	segs := append([]*documentaipb.Document_TextAnchor_TextSegment(nil), layout.GetTextAnchor().GetTextSegments()...)
	sort.Slice(segs, func(i, j int) bool { return segs[i].GetStartIndex() < segs[j].GetStartIndex() })

	var sb strings.Builder
	n := int64(len(text))
	for _, s := range segs {
		start, end := s.GetStartIndex(), s.GetEndIndex()
		if start < 0 || end > n || start >= end {
			continue
		}
		sb.WriteString(string(text[start:end]))
	}
	return strings.TrimSpace(sb.String())
}

func documentAIBox(poly *documentaipb.BoundingPoly, dim *documentaipb.Document_Page_Dimension) *models.Rect {
	var xs, ys []int
	if vs := poly.GetVertices(); len(vs) > 0 {
		for _, v := range vs {
			xs = append(xs, int(v.GetX()))
			ys = append(ys, int(v.GetY()))
		}
	} else if nvs := poly.GetNormalizedVertices(); len(nvs) > 0 && dim != nil {
		for _, v := range nvs {
			xs = append(xs, int(v.GetX()*dim.GetWidth()))
			ys = append(ys, int(v.GetY()*dim.GetHeight()))
		}
	}
	if len(xs) == 0 {
		return nil
	}
	return &models.Rect{
		Left:   slices.Min(xs),
		Top:    slices.Min(ys),
		Right:  slices.Max(xs),
		Bottom: slices.Max(ys),
	}
}
