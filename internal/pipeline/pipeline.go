// Package pipeline runs every extraction strategy over one OCR result and
// assembles the patient record, translated examinations, speech text and
// review report.
package pipeline

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"patientid/internal/dates"
	"patientid/internal/dict"
	"patientid/internal/extract"
	"patientid/internal/locale"
	"patientid/internal/logger"
	"patientid/internal/patient"
	"patientid/internal/report"
	"patientid/internal/segment"
	"patientid/internal/speech"
	"patientid/internal/translate"
	"patientid/pkg/models"
)

// Input is one OCR result. Layout is optional; when Text is empty it is
// rebuilt from Layout.
type Input struct {
	Text   string
	Layout *models.Document
	Locale locale.Locale
}

// Pipeline owns the dictionary store and the section configuration.
// It is safe for concurrent use.
type Pipeline struct {
	store      *dict.Store
	translator *translate.Translator
	section    segment.Config
	log        zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSection selects the section segmenter configuration.
func WithSection(cfg segment.Config) Option {
	return func(p *Pipeline) { p.section = cfg }
}

// WithVocabulary sets the words the translator joins phrases with.
func WithVocabulary(v translate.Vocabulary) Option {
	return func(p *Pipeline) { p.translator = translate.New(p.store, translate.WithVocabulary(v)) }
}

// WithLogger replaces the component logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// New creates a pipeline over store. A nil store uses the built-in tables.
func New(store *dict.Store, opts ...Option) *Pipeline {
	if store == nil {
		store = dict.Default()
	}
	p := &Pipeline{
		store:      store,
		translator: translate.New(store),
		section:    segment.Routine(),
		log:        logger.WithComponent("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Translator returns the translator backed by the pipeline's store.
func (p *Pipeline) Translator() *translate.Translator {
	return p.translator
}

// ReplaceSupplemental swaps the supplemental dictionary. Scans already in
// flight keep the dictionary they started with for each lookup.
func (p *Pipeline) ReplaceSupplemental(sup *dict.Supplement) {
	p.store.ReplaceSupplemental(sup)
	p.log.Info().Int("entries", sup.Len()).Msg("Supplemental dictionary replaced")
}

// Process runs all strategies over in. It never fails: missing fields are
// reported as unknown.
func (p *Pipeline) Process(in Input) *models.ScanResult {
	return p.process(in, p.log)
}

func (p *Pipeline) process(in Input, log zerolog.Logger) *models.ScanResult {
	start := time.Now()

	doc := in.Layout
	text := in.Text
	if text == "" {
		text = doc.FullText()
	}
	if doc == nil {
		doc = models.TextDocument(text)
	}
	loc := in.Locale

	res := &models.ScanResult{
		Locale:        loc.String(),
		FullText:      text,
		LineFields:    extract.Lines(text),
		BlockFields:   extract.Blocks(doc),
		CustomFields:  extract.Custom(text, p.section),
		UnifiedFields: extract.Unified(text, p.section, p.translator),
		ExamItems:     extract.ExamItems(text, p.section),
	}
	for _, item := range res.ExamItems {
		res.Translated = append(res.Translated, p.translator.Translate(item))
	}

	rec, ok := patient.Parse(text, loc)
	if !ok {
		rec = &models.PatientRecord{}
	}
	if !rec.Name.Known() {
		if name, found := extract.SmartName(doc, text); found {
			rec.Name = models.Known(name)
			log.Debug().Str("name", name).Msg("Name filled from layout")
		}
	}
	if rec.BirthDate.Known() {
		rec.BirthDate = models.Known(birthFor(rec.BirthDate.Value(), loc))
	}

	res.Record = rec
	res.Patient = rec.View(loc)
	res.Recognized = rec.HasKnown()
	if res.Recognized {
		res.Speech = speech.Compose(rec, loc)
	} else {
		res.Speech = speech.Fallback(loc)
	}

	res.Report = report.Build(loc, report.Sections{
		FullText:  text,
		Unified:   res.UnifiedFields,
		Lines:     res.LineFields,
		Blocks:    res.BlockFields,
		Custom:    res.CustomFields,
		ExamItems: res.ExamItems,
	})

	res.ProcessedAt = time.Now()
	res.Duration = res.ProcessedAt.Sub(start)

	log.Debug().
		Str("locale", res.Locale).
		Bool("recognized", res.Recognized).
		Int("exam_items", len(res.ExamItems)).
		Dur("duration", res.Duration).
		Msg("Scan processed")

	return res
}

// birthFor renders a birth date for loc: Minguo with the 民國 marker for
// Chinese, bare Minguo for Korean, Gregorian for English. Dates that do
// not parse are kept as read.
func birthFor(raw string, loc locale.Locale) string {
	raw = strings.TrimSpace(raw)
	switch loc {
	case locale.English:
		return dates.ToGregorian(raw)
	case locale.Korean:
		return dates.Normalize(raw, false)
	default:
		return dates.Normalize(raw, true)
	}
}
