package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// envLayer is the subset of settings that can come from the environment.
type envLayer struct {
	OutputFormat string `env:"TIMESTAMP_FORMAT"`
	InputDir     string `env:"TIMESTAMP_INPUT_DIR"`
	OutputDir    string `env:"TIMESTAMP_OUTPUT_DIR"`
	Encoding     string `env:"TIMESTAMP_ENCODING"`
	OnParseError string `env:"TIMESTAMP_ON_PARSE_ERROR"`
}

// FromEnvironment reads the environment variable layer. Unset variables
// leave the corresponding fields empty.
func FromEnvironment() (*Config, error) {
	var env envLayer
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	return &Config{
		Timestamp: TimestampConfig{OutputFormat: env.OutputFormat},
		Files: FilesConfig{
			InputDir:  env.InputDir,
			OutputDir: env.OutputDir,
			Encoding:  env.Encoding,
		},
		Processing: ProcessingConfig{OnParseError: env.OnParseError},
	}, nil
}
