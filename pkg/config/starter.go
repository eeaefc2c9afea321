package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const starterHeader = `# tsadjust configuration
# Generated by: tsadjust detect
#
# input_formats are tried in order; the first enabled pattern that matches
# a line is adjusted. groups name the capture groups of each pattern.
`

// Starter renders a starter config file with primary as the first input
// format, followed by the defaults that do not share its pattern.
func Starter(primary FormatConfig) ([]byte, error) {
	cfg := DefaultConfig()

	formats := []FormatConfig{primary}
	for _, f := range cfg.Timestamp.InputFormats {
		if f.Pattern != primary.Pattern {
			formats = append(formats, f)
		}
	}
	cfg.Timestamp.InputFormats = formats

	var buf bytes.Buffer
	buf.WriteString(starterHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding starter config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding starter config: %w", err)
	}

	return buf.Bytes(), nil
}
