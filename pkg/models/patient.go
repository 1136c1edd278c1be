package models

import (
	"strings"

	"patientid/internal/locale"
)

// Field is a value that was either recognized on the form or not.
// The zero value is Unknown.
type Field struct {
	value string
	known bool
}

// Known wraps a recognized value. Blank input and the sentinel of any
// locale yield Unknown.
func Known(value string) Field {
	value = strings.TrimSpace(value)
	if !locale.IsKnown(value) {
		return Field{}
	}
	return Field{value: value, known: true}
}

// Unknown returns a field that was not recognized.
func Unknown() Field {
	return Field{}
}

// ParseField converts a host-supplied string back into a Field. Blank
// strings and the sentinel of any locale become Unknown.
func ParseField(s string) Field {
	return Known(s)
}

// Known reports whether the field carries a recognized value.
func (f Field) Known() bool { return f.known }

// Value returns the recognized value, or "" when unknown.
func (f Field) Value() string { return f.value }

// Or returns the value, or fallback when unknown.
func (f Field) Or(fallback string) string {
	if f.known {
		return f.value
	}
	return fallback
}

// Render returns the value, or the sentinel of loc when unknown.
func (f Field) Render(loc locale.Locale) string {
	return f.Or(loc.Unrecognized())
}

// PatientRecord is the canonical identity record read off an order form.
type PatientRecord struct {
	Name      Field
	BirthDate Field
	MedicalID Field

	// ExamType is free text describing the ordered examination; may be empty.
	ExamType string
}

// HasKnown reports whether at least one identity field was recognized.
func (r *PatientRecord) HasKnown() bool {
	return r.Name.Known() || r.BirthDate.Known() || r.MedicalID.Known()
}

// PatientView is the presentation form of a PatientRecord with sentinels
// substituted for unknown fields.
type PatientView struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	MedicalID string `json:"medical_id"`
	ExamType  string `json:"exam_type"`
}

// View renders the record for loc.
func (r *PatientRecord) View(loc locale.Locale) PatientView {
	return PatientView{
		Name:      r.Name.Render(loc),
		BirthDate: r.BirthDate.Render(loc),
		MedicalID: r.MedicalID.Render(loc),
		ExamType:  r.ExamType,
	}
}

// ParsePatientView rebuilds a record from its presentation form.
func ParsePatientView(v PatientView) *PatientRecord {
	return &PatientRecord{
		Name:      ParseField(v.Name),
		BirthDate: ParseField(v.BirthDate),
		MedicalID: ParseField(v.MedicalID),
		ExamType:  strings.TrimSpace(v.ExamType),
	}
}
