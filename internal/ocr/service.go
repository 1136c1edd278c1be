// Package ocr turns a photographed order form into a models.Document: the
// recognized text with its block, line and word layout.
//
// Engines:
//   - Google Cloud Vision DOCUMENT_TEXT_DETECTION (default)
//   - Google Document AI OCR processor
//   - saved layout JSON files and plain text dumps, for replaying scans
//     without network access
//
// Required Environment Variables for the cloud engines:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//
// Cloud limits:
//   - Maximum image size: 20MB per request
//   - Supported formats: JPEG, PNG, GIF, BMP, WEBP, TIFF
package ocr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"google.golang.org/api/option"

	"patientid/internal/locale"
	"patientid/pkg/models"
)

// MaxImageSizeBytes is the largest image sent in one request (20MB).
const MaxImageSizeBytes = 20 * 1024 * 1024

// Provider names an OCR engine.
type Provider string

const (
	ProviderVision     Provider = "vision"
	ProviderDocumentAI Provider = "documentai"
)

// Recognizer extracts text and layout from an image.
type Recognizer interface {
	Recognize(ctx context.Context, image io.Reader) (*models.Document, error)
}

// Config selects and configures a cloud engine.
type Config struct {
	Provider Provider

	// Locale adds a language hint for Vision; the form itself is always
	// assumed to contain Traditional Chinese.
	Locale locale.Locale

	// Document AI processor coordinates.
	ProjectID   string
	Location    string
	ProcessorID string

	Timeout time.Duration
}

// New creates the recognizer selected by cfg.Provider.
func New(ctx context.Context, cfg Config) (Recognizer, error) {
	const op = "New"

	switch cfg.Provider {
	case ProviderVision, "":
		r, err := NewVisionRecognizer(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	case ProviderDocumentAI:
		r, err := NewDocumentAIRecognizer(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, WrapOCRError(op, ErrInvalidConfiguration, fmt.Sprintf("unknown provider: %q", cfg.Provider))
	}
}

// credentialOptions reads credentials from the environment. It returns
// no options when the default credential chain should be used.
func credentialOptions() []option.ClientOption {
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credJSON))}
	}
	if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		return []option.ClientOption{option.WithCredentialsFile(credFile)}
	}
	return nil
}

// readImage reads and validates an image for a cloud request. It returns
// the bytes and their MIME type.
func readImage(op string, image io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, "", WrapOCRError(op, err, "failed to read image data")
	}
	if len(data) == 0 {
		return nil, "", WrapOCRError(op, ErrInvalidImage, "empty input")
	}
	if len(data) > MaxImageSizeBytes {
		return nil, "", WrapOCRError(op, ErrImageTooLarge, fmt.Sprintf("file size: %d bytes", len(data)))
	}

	mime := http.DetectContentType(data)
	if !isImageType(mime) {
		return nil, "", WrapOCRError(op, ErrInvalidImage, fmt.Sprintf("detected content type: %s", mime))
	}
	return data, mime, nil
}

func isImageType(mime string) bool {
	switch mime {
	case "image/jpeg", "image/png", "image/gif", "image/bmp", "image/webp", "image/tiff":
		return true
	}
	return false
}

// classify maps a cloud API error to one of the package errors.
func classify(op string, err error, target string) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "PermissionDenied") || strings.Contains(errStr, "PERMISSION_DENIED"):
		return WrapOCRError(op, ErrInvalidCredentials, "insufficient permissions")
	case strings.Contains(errStr, "ResourceExhausted") || strings.Contains(errStr, "QUOTA_EXCEEDED"):
		return WrapOCRError(op, ErrQuotaExceeded, "API quota exceeded")
	case strings.Contains(errStr, "NotFound") || strings.Contains(errStr, "NOT_FOUND"):
		return WrapOCRError(op, ErrProcessorNotFound, fmt.Sprintf("not found: %s", target))
	case strings.Contains(errStr, "InvalidArgument") || strings.Contains(errStr, "INVALID_ARGUMENT"):
		return WrapOCRError(op, ErrInvalidImage, "image format not supported or corrupted")
	case strings.Contains(errStr, "DeadlineExceeded") || strings.Contains(errStr, "context deadline exceeded"):
		return WrapOCRError(op, context.DeadlineExceeded, "processing timeout")
	case strings.Contains(errStr, "Canceled") || strings.Contains(errStr, "context canceled"):
		return WrapOCRError(op, ErrContextCanceled, "processing was canceled")
	default:
		return WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("API error: %v", err))
	}
}
