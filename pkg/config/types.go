// Package config provides configuration loading and validation for tsadjust.
package config

import (
	"github.com/ccollicutt/tsadjust/pkg/naming"
	"github.com/ccollicutt/tsadjust/pkg/processor"
	"github.com/ccollicutt/tsadjust/pkg/timestamp"
)

// Config is the root configuration structure loaded from YAML.
//
// The same type is used for every configuration source. Zero values mean
// "not set" and are filled in by lower-priority sources during Resolve.
type Config struct {
	Timestamp    TimestampConfig  `yaml:"timestamp"`
	Files        FilesConfig      `yaml:"files"`
	OutputNaming NamingConfig     `yaml:"output_naming"`
	Processing   ProcessingConfig `yaml:"processing"`

	// source is the config file that was loaded, if any.
	source string

	// registry is the compiled pattern registry (populated during validation).
	registry *timestamp.Registry
}

// TimestampConfig defines how timestamps are found and rendered.
type TimestampConfig struct {
	// InputFormats are tried in order; the first enabled match wins.
	InputFormats []FormatConfig `yaml:"input_formats,omitempty"`

	// OutputFormat is the template for adjusted timestamps,
	// e.g. "[{hours:02d}:{minutes:02d}:{seconds:02d}]".
	OutputFormat string `yaml:"output_format,omitempty"`
}

// FormatConfig defines one input timestamp pattern.
type FormatConfig struct {
	Pattern string `yaml:"pattern"`
	Name    string `yaml:"name,omitempty"`

	// Groups names the positional capture groups (hours, minutes, seconds).
	Groups []string `yaml:"groups,omitempty"`

	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the format takes part in parsing.
func (f FormatConfig) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

// FilesConfig defines file locations and encoding.
type FilesConfig struct {
	InputDir     string `yaml:"input_dir,omitempty"`
	OutputDir    string `yaml:"output_dir,omitempty"`
	Encoding     string `yaml:"encoding,omitempty"`
	CreateBackup *bool  `yaml:"create_backup,omitempty"`
}

// NamingConfig defines how output file names are generated.
type NamingConfig struct {
	Template     string `yaml:"template,omitempty"`
	PositiveSign string `yaml:"positive_sign,omitempty"`
	NegativeSign string `yaml:"negative_sign,omitempty"`
}

// Scheme converts the naming config to a naming.Scheme.
func (n NamingConfig) Scheme() naming.Scheme {
	return naming.Scheme{
		Template:     n.Template,
		PositiveSign: n.PositiveSign,
		NegativeSign: n.NegativeSign,
	}
}

// ProcessingConfig defines processing behavior.
type ProcessingConfig struct {
	// OnParseError is "fail" (default) or "skip".
	OnParseError string `yaml:"on_parse_error,omitempty"`
}

// ParseErrorPolicy returns the configured policy.
func (p ProcessingConfig) ParseErrorPolicy() processor.ParseErrorPolicy {
	return processor.ParseErrorPolicy(p.OnParseError)
}

// Registry returns the compiled pattern registry. It is nil until the
// configuration has been validated.
func (c *Config) Registry() *timestamp.Registry {
	return c.registry
}

// Source returns the path of the loaded config file, or "" if none was used.
func (c *Config) Source() string {
	return c.source
}

// FileOptions returns the processor file options for this configuration.
func (c *Config) FileOptions() processor.FileOptions {
	return processor.FileOptions{
		Encoding:     c.Files.Encoding,
		CreateBackup: c.Files.CreateBackup != nil && *c.Files.CreateBackup,
	}
}
