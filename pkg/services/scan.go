package services

import (
	"context"
	"io"

	"patientid/internal/locale"
	"patientid/pkg/models"
)

// ScanService reads a patient record off a photographed order form
type ScanService interface {
	// Scan recognizes image and runs the extraction pipeline over it
	Scan(ctx context.Context, image io.Reader, loc locale.Locale) (*models.ScanResult, error)

	// ProcessText runs the pipeline over OCR output that was produced elsewhere
	ProcessText(text string, layout *models.Document, loc locale.Locale) *models.ScanResult
}
