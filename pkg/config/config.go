package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/tsadjust/pkg/processor"
	"github.com/ccollicutt/tsadjust/pkg/timestamp"
)

// LoadOptions controls where configuration comes from.
type LoadOptions struct {
	// Path is an explicit config file. When empty, the default locations
	// are searched and a missing file is not an error.
	Path string

	// Overrides is the highest-priority layer, usually built from CLI flags.
	Overrides *Config
}

// Load resolves configuration from defaults, the config file, the environment
// and overrides, in increasing priority, then validates it.
func Load(_ context.Context, opts LoadOptions) (*Config, error) {
	path, err := FindConfigFile(opts.Path)
	if err != nil {
		return nil, err
	}

	var file *Config
	if path != "" {
		file, err = ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	env, err := FromEnvironment()
	if err != nil {
		return nil, err
	}

	cfg := Resolve(DefaultConfig(), file, env, opts.Overrides)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// ReadFile parses a YAML config file into a configuration layer.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.source = path

	return cfg, nil
}

// SearchPaths returns the default config file locations in order of preference.
func SearchPaths() []string {
	paths := []string{"tsadjust.yaml", "config.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "tsadjust", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tsadjust.yaml"))
	}
	return paths
}

// FindConfigFile returns the config file to load. An explicit path must exist.
// Without one, the first existing default location is returned, or "".
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	for _, p := range SearchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", nil
}

// Validate checks a configuration for errors and compiles the pattern registry.
func Validate(cfg *Config) error {
	if len(cfg.Timestamp.InputFormats) == 0 {
		return &timestamp.ConfigError{Field: "timestamp.input_formats", Err: errors.New("at least one input format is required")}
	}

	registry, err := Build(cfg)
	if err != nil {
		return err
	}

	if _, err := processor.LookupEncoding(cfg.Files.Encoding); err != nil {
		return &timestamp.ConfigError{Field: "files.encoding", Err: err}
	}

	if !cfg.Processing.ParseErrorPolicy().Valid() {
		return &timestamp.ConfigError{
			Field: "processing.on_parse_error",
			Err:   fmt.Errorf("invalid value %q (must be fail or skip)", cfg.Processing.OnParseError),
		}
	}

	cfg.registry = registry
	return nil
}

// Build compiles the input formats and output template into a registry.
func Build(cfg *Config) (*timestamp.Registry, error) {
	specs := make([]timestamp.PatternSpec, 0, len(cfg.Timestamp.InputFormats))
	for i, f := range cfg.Timestamp.InputFormats {
		spec, err := timestamp.NewPatternSpec(f.Name, f.Pattern, f.Groups, f.IsEnabled())
		if err != nil {
			return nil, fmt.Errorf("timestamp.input_formats[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}

	tmpl, err := timestamp.ParseTemplate(cfg.Timestamp.OutputFormat)
	if err != nil {
		return nil, &timestamp.ConfigError{Field: "timestamp.output_format", Err: err}
	}

	return timestamp.NewRegistry(specs, tmpl)
}

// Warnings returns non-fatal problems with a validated configuration.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.registry != nil {
		for _, comp := range c.registry.OutputTemplate().Missing() {
			warnings = append(warnings, fmt.Sprintf("output_format does not render %s; that value is dropped", comp))
		}
	}
	return warnings
}
