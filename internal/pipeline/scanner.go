package pipeline

import (
	"context"
	"io"

	"github.com/google/uuid"

	"patientid/internal/locale"
	"patientid/internal/logger"
	"patientid/internal/ocr"
	"patientid/pkg/models"
	"patientid/pkg/services"
)

var _ services.ScanService = (*Scanner)(nil)

// Scanner recognizes order-form images and runs them through a Pipeline.
type Scanner struct {
	recognizer ocr.Recognizer
	pipeline   *Pipeline
}

// NewScanner combines recognizer and p.
func NewScanner(recognizer ocr.Recognizer, p *Pipeline) *Scanner {
	return &Scanner{
		recognizer: recognizer,
		pipeline:   p,
	}
}

// Scan recognizes image and processes the result. Every scan gets a
// fresh request ID carried in its log lines and result.
func (s *Scanner) Scan(ctx context.Context, image io.Reader, loc locale.Locale) (*models.ScanResult, error) {
	const op = "Scan"

	id := uuid.NewString()
	log := logger.WithRequestID(id).With().Str("component", "scanner").Logger()
	log.Info().Str("locale", loc.String()).Msg("Starting scan")

	doc, err := s.recognizer.Recognize(ctx, image)
	if err != nil {
		log.Error().Err(err).Msg("Recognition failed")
		return nil, ocr.WrapOCRError(op, err, "recognition failed")
	}

	res := s.pipeline.process(Input{Layout: doc, Locale: loc}, log)
	res.ID = id

	log.Info().
		Bool("recognized", res.Recognized).
		Int("exam_items", len(res.ExamItems)).
		Dur("duration", res.Duration).
		Msg("Scan completed")
	return res, nil
}

// ProcessText runs the pipeline over existing OCR output.
func (s *Scanner) ProcessText(text string, layout *models.Document, loc locale.Locale) *models.ScanResult {
	return s.pipeline.Process(Input{Text: text, Layout: layout, Locale: loc})
}
