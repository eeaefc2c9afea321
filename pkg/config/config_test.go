package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/tsadjust/pkg/processor"
	"github.com/ccollicutt/tsadjust/pkg/timestamp"
)

// isolate keeps tests away from config files and variables on the host.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevDir) })
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, name := range []string{EnvOutputFormat, EnvInputDir, EnvOutputDir, EnvEncoding, EnvOnParseError} {
		t.Setenv(name, "")
	}
	return dir
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(context.Background(), LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Source())
	assert.Equal(t, timestamp.DefaultTemplate, cfg.Timestamp.OutputFormat)
	assert.Equal(t, DefaultInputDir, cfg.Files.InputDir)
	assert.Equal(t, DefaultOutputDir, cfg.Files.OutputDir)
	assert.Equal(t, processor.PolicyFail, cfg.Processing.ParseErrorPolicy())
	require.NotNil(t, cfg.Registry())

	var names []string
	for _, p := range cfg.Registry().EnabledPatterns() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"bracketed_hms", "simple_hms"}, names)
	assert.Len(t, cfg.Registry().Patterns(), 3)
	assert.Empty(t, cfg.Warnings())
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := writeTempFile(t, "config.yaml", `
timestamp:
  input_formats:
    - pattern: '\[(\d{2}):(\d{2}):(\d{2})\]'
      name: test_format
      groups: [hours, minutes, seconds]
      enabled: true
  output_format: "({hours:02d}:{minutes:02d}:{seconds:02d})"
files:
  output_dir: shifted
output_naming:
  template: "{basename}_{sign}{adjustment}s{extension}"
`)

	cfg, err := Load(context.Background(), LoadOptions{Path: path})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source())
	require.Len(t, cfg.Registry().EnabledPatterns(), 1)
	assert.Equal(t, "test_format", cfg.Registry().EnabledPatterns()[0].Name)
	assert.Equal(t, "({hours:02d}:{minutes:02d}:{seconds:02d})", cfg.Registry().OutputTemplate().String())
	assert.Equal(t, "shifted", cfg.Files.OutputDir)
	assert.Equal(t, DefaultInputDir, cfg.Files.InputDir)
	assert.Equal(t, "{basename}_{sign}{adjustment}s{extension}", cfg.OutputNaming.Template)
	assert.Equal(t, "plus", cfg.OutputNaming.PositiveSign)
}

func TestLoad_EnabledFlagFiltering(t *testing.T) {
	isolate(t)
	path := writeTempFile(t, "config.yaml", `
timestamp:
  input_formats:
    - pattern: '\[(\d{2}):(\d{2}):(\d{2})\]'
      name: enabled_format
    - pattern: '(\d{2}):(\d{2}):(\d{2})'
      name: disabled_format
      enabled: false
`)

	cfg, err := Load(context.Background(), LoadOptions{Path: path})
	require.NoError(t, err)

	enabled := cfg.Registry().EnabledPatterns()
	require.Len(t, enabled, 1)
	assert.Equal(t, "enabled_format", enabled[0].Name)
}

func TestLoad_DiscoversDefaultLocation(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsadjust.yaml"), []byte("files:\n  input_dir: transcripts\n"), 0o644))

	cfg, err := Load(context.Background(), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "tsadjust.yaml", cfg.Source())
	assert.Equal(t, "transcripts", cfg.Files.InputDir)
}

func TestLoad_Priority(t *testing.T) {
	isolate(t)
	path := writeTempFile(t, "config.yaml", `
timestamp:
  output_format: "FILE {hours}:{minutes}:{seconds}"
files:
  input_dir: file-in
  output_dir: file-out
  encoding: latin1
`)
	t.Setenv(EnvOutputFormat, "[ENV:{hours:02d}:{minutes:02d}:{seconds:02d}]")
	t.Setenv(EnvOutputDir, "env-out")

	overrides := &Config{Files: FilesConfig{OutputDir: "cli-out"}}

	cfg, err := Load(context.Background(), LoadOptions{Path: path, Overrides: overrides})
	require.NoError(t, err)

	assert.Equal(t, "[ENV:{hours:02d}:{minutes:02d}:{seconds:02d}]", cfg.Timestamp.OutputFormat)
	assert.Equal(t, "file-in", cfg.Files.InputDir)
	assert.Equal(t, "cli-out", cfg.Files.OutputDir)
	assert.Equal(t, "latin1", cfg.Files.Encoding)
}

func TestLoad_FileNotFound(t *testing.T) {
	isolate(t)
	_, err := Load(context.Background(), LoadOptions{Path: "/nonexistent/config.yaml"})
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := writeTempFile(t, "invalid.yaml", `invalid: yaml: content: [`)

	_, err := Load(context.Background(), LoadOptions{Path: path})
	assert.Error(t, err)
}

func TestLoad_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no enabled formats", "timestamp:\n  input_formats:\n    - pattern: '(\\d+):(\\d+):(\\d+)'\n      enabled: false\n"},
		{"invalid regex", "timestamp:\n  input_formats:\n    - pattern: '[(\\d+'\n"},
		{"unknown group", "timestamp:\n  input_formats:\n    - pattern: '(\\d+)'\n      groups: [days]\n"},
		{"malformed template", "timestamp:\n  output_format: '[{hours:02d'\n"},
		{"unknown encoding", "files:\n  encoding: klingon\n"},
		{"unknown parse error policy", "processing:\n  on_parse_error: ignore\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeTempFile(t, "config.yaml", tt.content)

			_, err := Load(context.Background(), LoadOptions{Path: path})
			require.Error(t, err)

			var ce *timestamp.ConfigError
			assert.True(t, errors.As(err, &ce), "want ConfigError, got %v", err)
		})
	}
}

func TestLoad_TemplateFormatError(t *testing.T) {
	isolate(t)
	_, err := Load(context.Background(), LoadOptions{
		Overrides: &Config{Timestamp: TimestampConfig{OutputFormat: "{hours}}"}},
	})
	require.Error(t, err)

	var fe *timestamp.FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestValidate_EmptyFormats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timestamp.InputFormats = nil
	assert.Error(t, Validate(cfg))
}

func TestWarnings_MissingComponent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timestamp.OutputFormat = "{minutes:02d}:{seconds:02d}"
	require.NoError(t, Validate(cfg))

	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "hours")
}

func TestFileOptions(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, processor.FileOptions{Encoding: "utf-8"}, cfg.FileOptions())

	cfg.Files.CreateBackup = boolPtr(true)
	assert.True(t, cfg.FileOptions().CreateBackup)
}

func TestDefaults_ReadBackLongTranscripts(t *testing.T) {
	reg, err := Build(DefaultConfig())
	require.NoError(t, err)

	tests := []struct {
		line string
		want string
		back string
	}{
		{"[99:59:58] y", "[100:00:03] y", "[99:59:58] y"},
		{"[100:00:00] x", "[100:00:05] x", "[100:00:00] x"},
		{"2777:00:00 z", "[2777:00:05] z", "[2777:00:00] z"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := processor.ProcessText([]string{tt.line}, 5, reg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got[0])

			again, err := processor.ProcessText(got, -5, reg)
			require.NoError(t, err)
			assert.Equal(t, tt.back, again[0])
		})
	}
}
