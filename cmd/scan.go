package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"patientid/internal/locale"
	"patientid/internal/logger"
	"patientid/internal/ocr"
	"patientid/internal/pipeline"
	"patientid/pkg/models"
	"patientid/pkg/services"
)

var scanCmd = &cobra.Command{
	Use:   "scan [image-file]",
	Short: "Extract patient identity and examinations from an order form",
	Long: `Recognize a photographed medical order form and extract the patient
name, birth date, medical ID and ordered examinations.

The image is sent to Google Cloud Vision (default) or a Document AI OCR
processor. Use --layout to replay a saved layout JSON file or --text to
process an OCR text dump (UTF-8 or Big5) without calling the cloud.

Required environment variables for cloud recognition:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_CLOUD_PROJECT, DOCUMENT_AI_PROCESSOR_ID - Document AI only`,
	Example: `  # Recognize a photo and print the patient record and speech text
  patientid scan order.jpg

  # English output as JSON
  patientid scan order.jpg --lang en --json -o result.json

  # Replay a saved OCR text dump with the full review report
  patientid scan --text order.txt --report

  # Use Document AI instead of Vision
  patientid scan order.jpg --provider documentai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("text", "", "OCR text dump to process instead of an image")
	scanCmd.Flags().String("layout", "", "Saved layout JSON file to process instead of an image")
	scanCmd.Flags().String("provider", "", "OCR engine: vision or documentai (default from config)")
	scanCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().Bool("json", false, "Output as JSON")
	scanCmd.Flags().Bool("report", false, "Include the full extraction report")
	scanCmd.Flags().Duration("timeout", 0, "Recognition timeout (default from config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("scan")

	textPath, _ := cmd.Flags().GetString("text")
	layoutPath, _ := cmd.Flags().GetString("layout")
	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	withReport, _ := cmd.Flags().GetBool("report")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = cfg.OCRTimeout
	}

	inputPath, err := selectInput(args, textPath, layoutPath)
	if err != nil {
		return err
	}
	loc := activeLocale(cmd)

	log.Info().
		Str("file", inputPath).
		Str("locale", loc.String()).
		Bool("json", jsonOutput).
		Dur("timeout", timeout).
		Msg("Starting scan")

	if err := validateInputFile(inputPath, log); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	recognizer, err := createRecognizer(ctx, cmd, textPath, layoutPath, loc, timeout, log)
	if err != nil {
		return err
	}
	if c, ok := recognizer.(interface{ Close() error }); ok {
		defer func() {
			if closeErr := c.Close(); closeErr != nil {
				log.Warn().Err(closeErr).Msg("Failed to close OCR client")
			}
		}()
	}

	p, err := buildPipeline(cmd, log)
	if err != nil {
		return err
	}
	var scanner services.ScanService = pipeline.NewScanner(recognizer, p)

	file, err := os.Open(inputPath)
	if err != nil {
		log.Error().Err(err).Str("file", inputPath).Msg("Failed to open input file")
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	result, err := scanner.Scan(ctx, file, loc)
	if err != nil {
		return handleScanError(err, log)
	}

	if !result.Recognized {
		log.Warn().Str("request_id", result.ID).Msg("No identity field recognized")
	}

	return writeScanResult(result, loc, outputPath, jsonOutput, withReport, log)
}

// selectInput returns the one input file named by the arguments and flags.
func selectInput(args []string, textPath, layoutPath string) (string, error) {
	var inputs []string
	if len(args) == 1 {
		inputs = append(inputs, args[0])
	}
	if textPath != "" {
		inputs = append(inputs, textPath)
	}
	if layoutPath != "" {
		inputs = append(inputs, layoutPath)
	}
	switch len(inputs) {
	case 0:
		return "", fmt.Errorf("nothing to scan: give an image file, --text or --layout")
	case 1:
		return inputs[0], nil
	default:
		return "", fmt.Errorf("give only one of: image file, --text, --layout")
	}
}

// validateInputFile checks that the file exists, is regular and is not empty
func validateInputFile(path string, log zerolog.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("file", path).Msg("Input file not found")
			return fmt.Errorf("input file not found: %s", path)
		}
		if os.IsPermission(err) {
			log.Error().Str("file", path).Msg("Permission denied accessing input file")
			return fmt.Errorf("permission denied accessing input file: %s", path)
		}
		return fmt.Errorf("error accessing input file: %w", err)
	}

	if !info.Mode().IsRegular() {
		log.Error().Str("file", path).Msg("Path is not a regular file")
		return fmt.Errorf("path is not a regular file: %s", path)
	}
	if info.Size() == 0 {
		log.Error().Str("file", path).Msg("Input file is empty")
		return fmt.Errorf("input file is empty: %s", path)
	}
	if info.Size() > ocr.MaxImageSizeBytes {
		log.Error().
			Str("file", path).
			Int64("size", info.Size()).
			Int64("max_size", ocr.MaxImageSizeBytes).
			Msg("Input file exceeds maximum size limit")
		return fmt.Errorf("input file too large (%d bytes). Maximum size is %d bytes (20MB)",
			info.Size(), ocr.MaxImageSizeBytes)
	}
	return nil
}

// createRecognizer picks the offline replayers or the configured cloud engine
func createRecognizer(ctx context.Context, cmd *cobra.Command, textPath, layoutPath string, loc locale.Locale, timeout time.Duration, log zerolog.Logger) (ocr.Recognizer, error) {
	switch {
	case textPath != "":
		return ocr.TextRecognizer{}, nil
	case layoutPath != "":
		return ocr.LayoutRecognizer{}, nil
	}

	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = cfg.OCRProvider
	}

	recognizer, err := ocr.New(ctx, ocr.Config{
		Provider:    ocr.Provider(strings.ToLower(provider)),
		Locale:      loc,
		ProjectID:   cfg.GoogleCloudProject,
		Location:    cfg.GoogleCloudLocation,
		ProcessorID: cfg.DocumentAIProcessorID,
		Timeout:     timeout,
	})
	if err != nil {
		if errors.Is(err, ocr.ErrMissingCredentials) {
			log.Error().Err(err).Msg("Google Cloud credentials not configured")
			return nil, fmt.Errorf("Google Cloud credentials not configured. Please set one of:\n\n" +
				"1. Export GOOGLE_APPLICATION_CREDENTIALS with path to service account JSON:\n" +
				"   export GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account-key.json\n\n" +
				"2. Export GOOGLE_CREDENTIALS with inline JSON\n\n" +
				"3. Use Application Default Credentials (if gcloud is configured):\n" +
				"   gcloud auth application-default login\n\n" +
				"Or replay a saved scan with --text or --layout")
		}
		log.Error().Err(err).Str("provider", provider).Msg("Failed to create recognizer")
		return nil, fmt.Errorf("failed to create OCR recognizer: %w", err)
	}

	log.Debug().Str("provider", provider).Msg("Recognizer created")
	return recognizer, nil
}

// handleScanError provides user-friendly error messages for scan failures
func handleScanError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Scan failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("recognition timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled), errors.Is(err, ocr.ErrContextCanceled):
		return fmt.Errorf("scan was canceled")
	case errors.Is(err, ocr.ErrImageTooLarge):
		return fmt.Errorf("image is too large (maximum 20MB). Try a lower camera resolution")
	case errors.Is(err, ocr.ErrInvalidImage):
		return fmt.Errorf("unsupported or corrupted image. Use JPEG, PNG, GIF, BMP, WEBP or TIFF")
	case errors.Is(err, ocr.ErrEmptyDocument):
		return fmt.Errorf("no readable text found. Retake the photo with the whole form in view")
	case errors.Is(err, ocr.ErrInvalidLayout):
		return fmt.Errorf("layout file is not a valid layout document: %w", err)
	case errors.Is(err, ocr.ErrInvalidCredentials):
		return fmt.Errorf("permission denied. Please ensure your Google Cloud service account can call the OCR API")
	case errors.Is(err, ocr.ErrQuotaExceeded):
		return fmt.Errorf("OCR API quota exceeded. Check your project quotas in the Google Cloud Console")
	case errors.Is(err, ocr.ErrProcessorNotFound):
		return fmt.Errorf("Document AI processor not found. Check DOCUMENT_AI_PROCESSOR_ID and GOOGLE_CLOUD_LOCATION")
	case errors.Is(err, ocr.ErrOCRFailed):
		return fmt.Errorf("OCR processing failed. This may be due to network issues or service unavailability: %w", err)
	default:
		return fmt.Errorf("scan failed: %w", err)
	}
}

// writeScanResult formats the result and writes it to outputPath or stdout
func writeScanResult(result *models.ScanResult, loc locale.Locale, outputPath string, jsonOutput, withReport bool, log zerolog.Logger) error {
	var data []byte

	if jsonOutput {
		out := struct {
			*models.ScanResult
			Report string `json:"report,omitempty"`
		}{ScanResult: result}
		if withReport {
			out.Report = result.Report
		}
		var err error
		data, err = json.MarshalIndent(out, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal JSON output")
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		data = append(data, '\n')
	} else {
		data = []byte(formatScanText(result, loc, withReport))
	}

	if outputPath == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Error().Err(err).Msg("Failed to write to stdout")
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		log.Error().Err(err).Str("output_file", outputPath).Msg("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Info().Str("output_file", outputPath).Int("bytes", len(data)).Msg("Scan result written to file")
	return nil
}

var recordLabels = map[locale.Locale][4]string{
	locale.Chinese: {"姓名", "出生日期", "病歷號", "檢查"},
	locale.English: {"Name", "Date of birth", "Medical ID", "Examination"},
	locale.Korean:  {"이름", "생년월일", "등록번호", "검사"},
}

func formatScanText(result *models.ScanResult, loc locale.Locale, withReport bool) string {
	labels := recordLabels[loc]
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %s\n", labels[0], result.Patient.Name)
	fmt.Fprintf(&sb, "%s: %s\n", labels[1], result.Patient.BirthDate)
	fmt.Fprintf(&sb, "%s: %s\n", labels[2], result.Patient.MedicalID)
	if result.Patient.ExamType != "" {
		fmt.Fprintf(&sb, "%s: %s\n", labels[3], result.Patient.ExamType)
	}
	for _, item := range result.Translated {
		fmt.Fprintf(&sb, "  %s\n", item)
	}
	sb.WriteString("\n")
	sb.WriteString(result.Speech)
	sb.WriteString("\n")

	if withReport {
		sb.WriteString("\n")
		sb.WriteString(result.Report)
	}
	return sb.String()
}
