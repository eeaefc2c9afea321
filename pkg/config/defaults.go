package config

import (
	"github.com/ccollicutt/tsadjust/pkg/naming"
	"github.com/ccollicutt/tsadjust/pkg/processor"
	"github.com/ccollicutt/tsadjust/pkg/timestamp"
)

// Default values for configuration.
const (
	DefaultInputDir  = "inputs"
	DefaultOutputDir = "outputs"
	DefaultEncoding  = "utf-8"
)

// Environment variable names.
const (
	EnvOutputFormat = "TIMESTAMP_FORMAT"
	EnvInputDir     = "TIMESTAMP_INPUT_DIR"
	EnvOutputDir    = "TIMESTAMP_OUTPUT_DIR"
	EnvEncoding     = "TIMESTAMP_ENCODING"
	EnvOnParseError = "TIMESTAMP_ON_PARSE_ERROR"
)

// DefaultFormats returns the built-in input formats.
func DefaultFormats() []FormatConfig {
	hms := []string{"hours", "minutes", "seconds"}
	return []FormatConfig{
		{
			Name:    "bracketed_hms",
			Pattern: `\[(\d{2,}):(\d{2}):(\d{2})\]`,
			Groups:  hms,
			Enabled: boolPtr(true),
		},
		{
			Name:    "simple_hms",
			Pattern: `(\d{2,}):(\d{2}):(\d{2})`,
			Groups:  hms,
			Enabled: boolPtr(true),
		},
		{
			Name:    "bracketed_hms_flex",
			Pattern: `\[(\d{1,2}):(\d{2}):(\d{2})\]`,
			Groups:  hms,
			Enabled: boolPtr(false),
		},
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timestamp: TimestampConfig{
			InputFormats: DefaultFormats(),
			OutputFormat: timestamp.DefaultTemplate,
		},
		Files: FilesConfig{
			InputDir:     DefaultInputDir,
			OutputDir:    DefaultOutputDir,
			Encoding:     DefaultEncoding,
			CreateBackup: boolPtr(false),
		},
		OutputNaming: NamingConfig{
			Template:     naming.DefaultTemplate,
			PositiveSign: naming.DefaultPositiveSign,
			NegativeSign: naming.DefaultNegativeSign,
		},
		Processing: ProcessingConfig{
			OnParseError: string(processor.PolicyFail),
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
