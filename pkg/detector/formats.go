package detector

import "github.com/ccollicutt/tsadjust/pkg/timestamp"

// Format is a known transcript timestamp format that can be suggested when
// the configured patterns do not match a file.
type Format struct {
	Spec       timestamp.PatternSpec
	PatternStr string   // Pattern string for config output
	Groups     []string // Group names for config output
	Examples   []string // Example timestamps
}

// DefaultFormats returns the built-in transcript formats to suggest.
// Formats are ordered roughly by specificity (more specific patterns first).
func DefaultFormats() []*Format {
	formats := []*Format{
		{
			PatternStr: `\[(\d{2,}):(\d{2}):(\d{2})\]`,
			Groups:     []string{"hours", "minutes", "seconds"},
			Examples:   []string{"[00:03:32]"},
		},
		{
			PatternStr: `\[(\d{1,2}):(\d{2}):(\d{2})\]`,
			Groups:     []string{"hours", "minutes", "seconds"},
			Examples:   []string{"[1:03:32]"},
		},
		{
			PatternStr: `\((\d{1,2}):(\d{2}):(\d{2})\)`,
			Groups:     []string{"hours", "minutes", "seconds"},
			Examples:   []string{"(00:03:32)", "(1:03:32)"},
		},
		{
			PatternStr: `(\d{1,3})h\s?(\d{1,2})m\s?(\d{1,2})s`,
			Groups:     []string{"hours", "minutes", "seconds"},
			Examples:   []string{"1h03m32s", "0h 3m 2s"},
		},
		{
			PatternStr: `(\d{2,}):(\d{2}):(\d{2})`,
			Groups:     []string{"hours", "minutes", "seconds"},
			Examples:   []string{"00:03:32"},
		},
		{
			PatternStr: `\[(\d{1,3}):(\d{2})\]`,
			Groups:     []string{"minutes", "seconds"},
			Examples:   []string{"[03:32]", "[103:32]"},
		},
		{
			PatternStr: `(\d{1,3})m\s?(\d{1,2})s`,
			Groups:     []string{"minutes", "seconds"},
			Examples:   []string{"3m32s"},
		},
		{
			PatternStr: `\b(\d{1,2}):(\d{2})\b`,
			Groups:     []string{"minutes", "seconds"},
			Examples:   []string{"03:32", "3:32"},
		},
	}

	names := []string{
		"bracketed_hms",
		"bracketed_hms_flex",
		"parenthesized_hms",
		"unit_hms",
		"simple_hms",
		"bracketed_ms",
		"unit_ms",
		"simple_ms",
	}

	for i, f := range formats {
		f.Spec = timestamp.MustPatternSpec(names[i], f.PatternStr, f.Groups, true)
	}

	return formats
}
