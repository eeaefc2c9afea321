package output

import (
	"context"
	"fmt"
	"io"
	"sort"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintf(w, "%s: %d/%d lines adjusted by %+ds\n",
			report.Output, report.Stats.Adjusted, report.Stats.Lines, report.Offset)
		return err
	}

	fmt.Fprintf(w, "Adjusted timestamps by %d seconds.\n", report.Offset)
	fmt.Fprintf(w, "Input:  %s\n", report.Input)
	fmt.Fprintf(w, "Output: %s\n", report.Output)
	fmt.Fprintf(w, "Lines:  %d read, %d adjusted", report.Stats.Lines, report.Stats.Adjusted)
	if report.Stats.Skipped > 0 {
		fmt.Fprintf(w, ", %d skipped", report.Stats.Skipped)
	}
	fmt.Fprintln(w)

	if f.opts.Verbose {
		names := make([]string, 0, len(report.Stats.PerPattern))
		for name := range report.Stats.PerPattern {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %d\n", name, report.Stats.PerPattern[name])
		}
		if report.Metadata.ConfigFile != "" {
			fmt.Fprintf(w, "Config: %s\n", report.Metadata.ConfigFile)
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e3))
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}

	return nil
}
