package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarter_RoundTrips(t *testing.T) {
	primary := FormatConfig{
		Name:    "unit_hms",
		Pattern: `(\d{1,3})h\s?(\d{1,2})m\s?(\d{1,2})s`,
		Groups:  []string{"hours", "minutes", "seconds"},
		Enabled: boolPtr(true),
	}

	data, err := Starter(primary)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Generated by: tsadjust detect")

	path := writeTempFile(t, "tsadjust.yaml", string(data))
	cfg, err := ReadFile(path)
	require.NoError(t, err)

	require.Len(t, cfg.Timestamp.InputFormats, 4)
	assert.Equal(t, "unit_hms", cfg.Timestamp.InputFormats[0].Name)
	assert.Equal(t, primary.Pattern, cfg.Timestamp.InputFormats[0].Pattern)
	assert.Equal(t, DefaultOutputDir, cfg.Files.OutputDir)

	resolved := Resolve(DefaultConfig(), cfg)
	require.NoError(t, Validate(resolved))
	assert.Equal(t, "unit_hms", resolved.Registry().EnabledPatterns()[0].Name)
}

func TestStarter_DeduplicatesDefaultPattern(t *testing.T) {
	primary := DefaultFormats()[1]

	data, err := Starter(primary)
	require.NoError(t, err)

	cfg, err := ReadFile(writeTempFile(t, "c.yaml", string(data)))
	require.NoError(t, err)

	require.Len(t, cfg.Timestamp.InputFormats, 3)
	assert.Equal(t, "simple_hms", cfg.Timestamp.InputFormats[0].Name)
	assert.Equal(t, "bracketed_hms", cfg.Timestamp.InputFormats[1].Name)
}
