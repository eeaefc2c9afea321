// Package output provides formatting for processing reports.
package output

import (
	"time"

	"github.com/ccollicutt/tsadjust/pkg/processor"
)

// Report is the result of adjusting one transcript.
type Report struct {
	// Input is the transcript that was read.
	Input string `json:"input"`

	// Output is the file that was written.
	Output string `json:"output"`

	// Offset is the number of seconds added to every timestamp.
	Offset int64 `json:"offset"`

	// Stats summarizes the processed lines.
	Stats processor.Stats `json:"stats"`

	// Warnings lists non-fatal problems found during the run.
	Warnings []string `json:"warnings,omitempty"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about the run.
type Metadata struct {
	// ConfigFile is the config file used, if any.
	ConfigFile string `json:"config_file,omitempty"`

	// ProcessedAt is when processing finished.
	ProcessedAt time.Time `json:"processed_at"`

	// Duration is how long processing took.
	Duration time.Duration `json:"duration_ns"`
}

// NewReport creates a Report from processing stats.
func NewReport(input, output string, offset int64, stats *processor.Stats) *Report {
	r := &Report{
		Input:  input,
		Output: output,
		Offset: offset,
	}
	if stats != nil {
		r.Stats = *stats
	}
	if !r.HasMatches() {
		r.Warnings = append(r.Warnings, "no timestamps matched any enabled input format")
	}
	return r
}

// HasMatches returns true if at least one timestamp was adjusted.
func (r *Report) HasMatches() bool {
	return r.Stats.Adjusted > 0
}
