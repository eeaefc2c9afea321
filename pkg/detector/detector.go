// Package detector reports which timestamp patterns match a transcript.
package detector

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ccollicutt/tsadjust/pkg/processor"
	"github.com/ccollicutt/tsadjust/pkg/timestamp"
)

// DefaultSampleSize is the number of lines sampled from a file.
const DefaultSampleSize = 200

// DetectionResult holds the result of scanning a transcript.
type DetectionResult struct {
	SampledLines int            // Number of non-blank lines sampled
	MatchedLines int            // Lines an enabled pattern would adjust
	Usage        []PatternUsage // One entry per configured pattern, in priority order
	Suggestions  []Suggestion   // Built-in formats that match, best first
}

// PatternUsage reports how a configured pattern fares on the sample.
type PatternUsage struct {
	Name       string
	Pattern    string
	Enabled    bool
	MatchCount int    // Lines the pattern matches anywhere
	WinCount   int    // Lines where this pattern is the one applied
	SampleLine string // First line the pattern matched
}

// Suggestion is a built-in format that matched the sample.
type Suggestion struct {
	Format     *Format
	Confidence float64 // 0.0 to 1.0 (fraction of sampled lines matched)
	MatchCount int
	SampleLine string
}

// Detector scans transcripts against a registry and the built-in formats.
type Detector struct {
	registry   *timestamp.Registry
	formats    []*Format
	sampleSize int
	encoding   string
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample.
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithEncoding sets the text encoding files are decoded from. The default
// is UTF-8.
func WithEncoding(name string) Option {
	return func(d *Detector) {
		d.encoding = name
	}
}

// New creates a new Detector for the registry's patterns.
func New(registry *timestamp.Registry, opts ...Option) *Detector {
	d := &Detector{
		registry:   registry,
		formats:    DefaultFormats(),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples a file and scans it.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines scans a slice of transcript lines. Blank lines are ignored.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	patterns := d.registry.Patterns()
	result := &DetectionResult{
		Usage: make([]PatternUsage, len(patterns)),
	}
	for i, p := range patterns {
		result.Usage[i] = PatternUsage{Name: p.Name, Pattern: p.Pattern.String(), Enabled: p.Enabled}
	}

	suggestions := make([]Suggestion, len(d.formats))
	for i, f := range d.formats {
		suggestions[i].Format = f
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.SampledLines++

		won := false
		for i, p := range patterns {
			if !p.Pattern.MatchString(line) {
				continue
			}
			u := &result.Usage[i]
			u.MatchCount++
			if u.SampleLine == "" {
				u.SampleLine = line
			}
			if p.Enabled && !won {
				u.WinCount++
				won = true
			}
		}
		if won {
			result.MatchedLines++
		}

		for i, f := range d.formats {
			if f.Spec.Pattern.MatchString(line) {
				s := &suggestions[i]
				s.MatchCount++
				if s.SampleLine == "" {
					s.SampleLine = line
				}
			}
		}
	}

	for _, s := range suggestions {
		if s.MatchCount == 0 {
			continue
		}
		s.Confidence = float64(s.MatchCount) / float64(result.SampledLines)
		result.Suggestions = append(result.Suggestions, s)
	}

	// Stable keeps catalog order (more specific first) among equal confidence.
	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		return result.Suggestions[i].Confidence > result.Suggestions[j].Confidence
	})

	return result
}

// sampleFile reads up to sampleSize non-blank lines from a file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	in, err := processor.OpenText(path, d.encoding)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var lines []string
	reader := processor.NewLineReader(in)
	for len(lines) < d.sampleSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, _, ok, err := reader.Next()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if !ok {
			break
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// HasMatch returns true if an enabled pattern matched at least one line.
func (r *DetectionResult) HasMatch() bool {
	return r.MatchedLines > 0
}

// BestSuggestion returns the highest confidence built-in format, or nil.
func (r *DetectionResult) BestSuggestion() *Suggestion {
	if len(r.Suggestions) == 0 {
		return nil
	}
	return &r.Suggestions[0]
}
