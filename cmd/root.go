package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"patientid/internal/config"
	"patientid/internal/dict"
	"patientid/internal/locale"
	"patientid/internal/logger"
	"patientid/internal/pipeline"
	"patientid/internal/segment"
)

var version = "1.0.0"

// cfg is loaded in main and reloaded when --config is given.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "patientid",
	Short: "Read patient identity off photographed medical order forms",
	Long: `patientid reads the patient name, birth date and medical ID off a
photographed Taiwanese medical order form, translates the ordered
examination codes and prepares the confirmation text read to the patient.

Images are recognized with Google Cloud Vision or Document AI; saved layout
JSON files and OCR text dumps can be replayed offline.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: .patientid.yaml in . or $HOME)")
	rootCmd.PersistentFlags().StringP("lang", "l", "", "Display language: zh, en or ko (default from config)")
	rootCmd.PersistentFlags().String("dict", "", "Supplemental dictionary file (YAML or JSON mapping)")
	rootCmd.PersistentFlags().String("section", "", "Examination section layout: routine or print-time")
}

// Execute runs the root command.
func Execute(ctx context.Context, loaded *config.Config) error {
	if loaded != nil {
		cfg = loaded
	}
	return fang.Execute(ctx, rootCmd, fang.WithVersion(version))
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return nil
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := logger.Setup(loaded.GetLoggerConfig()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	cfg = loaded
	return nil
}

// activeLocale resolves --lang against the configured language.
func activeLocale(cmd *cobra.Command) locale.Locale {
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		return locale.Parse(lang)
	}
	return cfg.Locale()
}

// buildPipeline creates a pipeline with the section preset and
// supplemental dictionary selected by flags or config.
func buildPipeline(cmd *cobra.Command, log zerolog.Logger) (*pipeline.Pipeline, error) {
	sectionName, _ := cmd.Flags().GetString("section")
	if sectionName == "" {
		sectionName = cfg.Section
	}
	section, ok := segment.Preset(sectionName)
	if !ok {
		return nil, fmt.Errorf("unknown section layout %q (want routine or print-time)", sectionName)
	}

	p := pipeline.New(dict.Default(), pipeline.WithSection(section))

	dictPath, _ := cmd.Flags().GetString("dict")
	if dictPath == "" {
		dictPath = cfg.SupplementalDict
	}
	if dictPath != "" {
		sup, err := dict.LoadSupplement(dictPath)
		if err != nil {
			log.Error().Err(err).Str("file", dictPath).Msg("Failed to load supplemental dictionary")
			return nil, fmt.Errorf("failed to load supplemental dictionary: %w", err)
		}
		p.ReplaceSupplemental(sup)
		log.Debug().Str("file", dictPath).Int("entries", sup.Len()).Msg("Supplemental dictionary loaded")
	}

	return p, nil
}
