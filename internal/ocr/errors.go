package ocr

import (
	"errors"
	"fmt"
)

// Common OCR errors
var (
	// ErrImageTooLarge is returned when the image exceeds the request size limit.
	ErrImageTooLarge = errors.New("image size exceeds the maximum limit (20MB)")

	// ErrInvalidImage is returned when the data is not a supported image format.
	ErrInvalidImage = errors.New("unsupported or corrupted image")

	// ErrOCRFailed is returned when the OCR engine fails to process the image.
	ErrOCRFailed = errors.New("OCR processing failed")

	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS environment variables are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrInvalidCredentials is returned when the credentials lack permission.
	ErrInvalidCredentials = errors.New("invalid or insufficient Google Cloud credentials")

	// ErrInvalidConfiguration is returned when a provider is missing required settings.
	ErrInvalidConfiguration = errors.New("invalid OCR configuration")

	// ErrProcessorNotFound is returned when the Document AI processor does not exist.
	ErrProcessorNotFound = errors.New("Document AI processor not found")

	// ErrQuotaExceeded is returned when the API quota is exhausted.
	ErrQuotaExceeded = errors.New("OCR API quota exceeded")

	// ErrEmptyDocument is returned when the image contains no readable text.
	ErrEmptyDocument = errors.New("document contains no readable text")

	// ErrInvalidLayout is returned when a saved layout file cannot be decoded.
	ErrInvalidLayout = errors.New("invalid layout document")

	// ErrContextCanceled is returned when the context is canceled during processing.
	ErrContextCanceled = errors.New("OCR processing was canceled")
)

// OCRError wraps errors with additional context about the OCR failure.
type OCRError struct {
	// Op is the operation that failed (e.g., "Recognize", "NewVisionRecognizer").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *OCRError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *OCRError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *OCRError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewOCRError creates a new OCRError with the specified operation and underlying error.
func NewOCRError(op string, err error, details string) *OCRError {
	return &OCRError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapOCRError wraps an error as an OCRError if it isn't already one.
func WrapOCRError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *OCRError
	if errors.As(err, &ocrErr) {
		return err
	}

	return NewOCRError(op, err, details)
}
