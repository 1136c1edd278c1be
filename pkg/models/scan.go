package models

import "time"

// ScanResult is everything the pipeline produced for one order form.
type ScanResult struct {
	// ID identifies the scan in logs; empty for offline runs.
	ID     string `json:"id,omitempty"`
	Locale string `json:"locale"`

	// Record is the canonical identity record. Patient is its rendering
	// for Locale, with sentinels for unknown fields.
	Record  *PatientRecord `json:"-"`
	Patient PatientView    `json:"patient"`

	// Recognized is false when no identity field was found; Speech then
	// holds the fallback prompt.
	Recognized bool `json:"recognized"`

	LineFields    *FieldMap `json:"line_fields"`
	BlockFields   *FieldMap `json:"block_fields"`
	CustomFields  *FieldMap `json:"custom_fields"`
	UnifiedFields *FieldMap `json:"unified_fields"`

	// ExamItems are the merged code/description fragments; Translated
	// holds their dictionary readings in display order.
	ExamItems  []string `json:"exam_items"`
	Translated []string `json:"translated_items"`

	FullText string `json:"full_text"`
	Speech   string `json:"speech"`
	Report   string `json:"-"`

	ProcessedAt time.Time     `json:"processed_at"`
	Duration    time.Duration `json:"processing_duration"`
}
