// Package config loads the CLI configuration.
// Precedence: environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"patientid/internal/locale"
	"patientid/internal/logger"
	"patientid/internal/segment"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PATIENTID"

type Config struct {
	// Language is the display and speech locale (zh, en, ko).
	Language string

	// OCR Configuration
	OCRProvider string // vision or documentai
	OCRTimeout  time.Duration

	// Google Cloud Configuration (Document AI only)
	GoogleCloudProject    string
	GoogleCloudLocation   string
	DocumentAIProcessorID string

	// SupplementalDict is an optional YAML/JSON file of extra translations.
	SupplementalDict string

	// Section names the segmenter preset (routine, print-time).
	Section string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configFile when given, else an optional .patientid.yaml in
// the working or home directory, then the environment.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".patientid")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Shared Google Cloud variables are honored without the prefix.
	_ = v.BindEnv("project", EnvPrefix+"_PROJECT", "GOOGLE_CLOUD_PROJECT")
	_ = v.BindEnv("location", EnvPrefix+"_LOCATION", "GOOGLE_CLOUD_LOCATION")
	_ = v.BindEnv("processor-id", EnvPrefix+"_PROCESSOR_ID", "DOCUMENT_AI_PROCESSOR_ID")

	config := &Config{
		Language:              v.GetString("language"),
		OCRProvider:           strings.ToLower(v.GetString("ocr-provider")),
		OCRTimeout:            v.GetDuration("ocr-timeout"),
		GoogleCloudProject:    v.GetString("project"),
		GoogleCloudLocation:   v.GetString("location"),
		DocumentAIProcessorID: v.GetString("processor-id"),
		SupplementalDict:      v.GetString("dict"),
		Section:               v.GetString("section"),
		LogLevel:              v.GetString("log-level"),
		LogFormat:             v.GetString("log-format"),
		LogTimeFormat:         v.GetString("log-time-format"),
		LogOutput:             v.GetString("log-output"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "zh")
	v.SetDefault("ocr-provider", "vision")
	v.SetDefault("ocr-timeout", 60*time.Second)
	v.SetDefault("location", "us")
	v.SetDefault("dict", "")
	v.SetDefault("section", "routine")
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")
	v.SetDefault("log-time-format", time.RFC3339)
	v.SetDefault("log-output", "stderr")
}

func (c *Config) validate() error {
	switch c.OCRProvider {
	case "vision":
	case "documentai":
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the documentai provider")
		}
		if c.DocumentAIProcessorID == "" {
			return fmt.Errorf("DOCUMENT_AI_PROCESSOR_ID is required for the documentai provider")
		}
	default:
		return fmt.Errorf("unknown ocr-provider %q (want vision or documentai)", c.OCRProvider)
	}
	if _, ok := segment.Preset(c.Section); !ok {
		return fmt.Errorf("unknown section preset %q", c.Section)
	}
	if c.OCRTimeout <= 0 {
		return fmt.Errorf("ocr-timeout must be positive")
	}
	if strings.HasPrefix(c.SupplementalDict, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to expand home directory in dict: %w", err)
		}
		c.SupplementalDict = filepath.Join(home, c.SupplementalDict[2:])
	}
	return nil
}

// Locale returns the configured locale; unrecognized codes fall back to Chinese.
func (c *Config) Locale() locale.Locale {
	return locale.Parse(c.Language)
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// Default returns the configuration used when Load fails.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{
		Language:            v.GetString("language"),
		OCRProvider:         v.GetString("ocr-provider"),
		OCRTimeout:          v.GetDuration("ocr-timeout"),
		GoogleCloudLocation: v.GetString("location"),
		Section:             v.GetString("section"),
		LogLevel:            v.GetString("log-level"),
		LogFormat:           v.GetString("log-format"),
		LogTimeFormat:       v.GetString("log-time-format"),
		LogOutput:           v.GetString("log-output"),
	}
}
