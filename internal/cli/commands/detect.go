package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/tsadjust/pkg/config"
	"github.com/ccollicutt/tsadjust/pkg/detector"
	"github.com/ccollicutt/tsadjust/pkg/files"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Report      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand(g *GlobalOptions) *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <input>...",
		Short: "Report which timestamp formats match a transcript",
		Long: `Sample lines from one or more transcripts and report, for every configured
input format, how many lines it matches and how many it would adjust.

When the configured formats miss, built-in formats that do match are
suggested with a ready-to-use config snippet. --write-config writes a
starter config file using the best suggestion.

Example:
  tsadjust detect inputs/meeting.txt
  tsadjust detect --all 'inputs/*.txt'
  tsadjust detect -w tsadjust.yaml inputs/meeting.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, g, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Report, "report", "text", "Report format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of lines to sample per file")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all suggested formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, g *GlobalOptions, opts *DetectOptions, args []string) error {
	if opts.Report != "text" && opts.Report != "json" {
		return fmt.Errorf("unknown report format %q (use text or json)", opts.Report)
	}

	log := NewLogger(cmd.ErrOrStderr())
	cfg, err := g.Load(cmd, log)
	if err != nil {
		return err
	}

	paths, err := files.ExpandGlobs(args)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	d := detector.New(cfg.Registry(),
		detector.WithSampleSize(opts.SampleSize),
		detector.WithEncoding(cfg.Files.Encoding),
	)

	results := make([]fileDetection, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("transcript not found: %s", path)
		}
		result, err := d.DetectFromFile(ctx, path)
		if err != nil {
			return fmt.Errorf("detection failed for %s: %w", path, err)
		}
		results = append(results, fileDetection{path: path, result: result})
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(results, opts.WriteConfig); err != nil {
			return err
		}
		log.Success("wrote starter config to %s", opts.WriteConfig)
	}

	out := cmd.OutOrStdout()
	if opts.Report == "json" {
		err = outputDetectJSON(out, results, opts)
	} else {
		for _, r := range results {
			outputDetectText(out, r, opts)
		}
	}
	if err != nil {
		return err
	}

	for _, r := range results {
		if !r.result.HasMatch() {
			ExitCode = ExitNoMatches
		}
	}
	return nil
}

type fileDetection struct {
	path   string
	result *detector.DetectionResult
}

func outputDetectText(w io.Writer, fd fileDetection, opts *DetectOptions) {
	result := fd.result

	fmt.Fprintln(w, "=== Timestamp Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", fd.path)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines that would be adjusted: %d\n", result.MatchedLines)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configured formats (in priority order):")
	for i, u := range result.Usage {
		state := ""
		if !u.Enabled {
			state = " (disabled)"
		}
		fmt.Fprintf(w, "  %d. %s%s: matches %d, applied %d\n", i+1, u.Name, state, u.MatchCount, u.WinCount)
		if u.SampleLine != "" {
			fmt.Fprintf(w, "     e.g. %s\n", u.SampleLine)
		}
	}
	fmt.Fprintln(w)

	if result.HasMatch() && !opts.ShowAll {
		return
	}

	best := result.BestSuggestion()
	if best == nil {
		if !result.HasMatch() {
			fmt.Fprintln(w, "No timestamp format detected.")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Tip: The file may use an uncommon format.")
			fmt.Fprintln(w, "Check the first few lines manually and add an input format for it.")
		}
		return
	}

	if !result.HasMatch() {
		fmt.Fprintln(w, "No configured format matched.")
	}
	fmt.Fprintf(w, "Suggested Format: %s\n", best.Format.Spec.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Configuration snippet (add to timestamp.input_formats) ---")
	fmt.Fprintln(w)
	writeFormatSnippet(w, best.Format)
	fmt.Fprintln(w)

	if opts.ShowAll && len(result.Suggestions) > 1 {
		fmt.Fprintln(w, "--- Alternative formats detected ---")
		for i, s := range result.Suggestions[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, s.Format.Spec.Name, s.Confidence*100)
			fmt.Fprintf(w, "   pattern: '%s'\n", s.Format.PatternStr)
		}
		fmt.Fprintln(w)
	}
}

func writeFormatSnippet(w io.Writer, f *detector.Format) {
	fmt.Fprintf(w, "  - name: %s\n", f.Spec.Name)
	fmt.Fprintf(w, "    pattern: '%s'\n", f.PatternStr)
	fmt.Fprintf(w, "    groups: [%s]\n", strings.Join(f.Groups, ", "))
	fmt.Fprintln(w, "    enabled: true")
}

// JSONUsage represents a configured format in JSON output.
type JSONUsage struct {
	Name       string `json:"name"`
	Pattern    string `json:"pattern"`
	Enabled    bool   `json:"enabled"`
	MatchCount int    `json:"match_count"`
	WinCount   int    `json:"applied_count"`
	SampleLine string `json:"sample_line,omitempty"`
}

// JSONSuggestion represents a suggested built-in format in JSON output.
type JSONSuggestion struct {
	Name       string   `json:"name"`
	Pattern    string   `json:"pattern"`
	Groups     []string `json:"groups"`
	Confidence float64  `json:"confidence"`
	MatchCount int      `json:"match_count"`
	SampleLine string   `json:"sample_line"`
}

// JSONDetection represents the detection result for one file.
type JSONDetection struct {
	File         string           `json:"file"`
	SampledLines int              `json:"sampled_lines"`
	MatchedLines int              `json:"matched_lines"`
	Formats      []JSONUsage      `json:"formats"`
	Suggestions  []JSONSuggestion `json:"suggestions"`
}

func outputDetectJSON(w io.Writer, results []fileDetection, opts *DetectOptions) error {
	out := make([]JSONDetection, 0, len(results))
	for _, fd := range results {
		r := fd.result
		jd := JSONDetection{
			File:         fd.path,
			SampledLines: r.SampledLines,
			MatchedLines: r.MatchedLines,
			Formats:      make([]JSONUsage, 0, len(r.Usage)),
			Suggestions:  make([]JSONSuggestion, 0),
		}
		for _, u := range r.Usage {
			jd.Formats = append(jd.Formats, JSONUsage(u))
		}

		suggestions := r.Suggestions
		if !opts.ShowAll && len(suggestions) > 1 {
			suggestions = suggestions[:1]
		}
		for _, s := range suggestions {
			jd.Suggestions = append(jd.Suggestions, JSONSuggestion{
				Name:       s.Format.Spec.Name,
				Pattern:    s.Format.PatternStr,
				Groups:     s.Format.Groups,
				Confidence: s.Confidence,
				MatchCount: s.MatchCount,
				SampleLine: s.SampleLine,
			})
		}
		out = append(out, jd)
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// writeStarterConfig writes a config file built around the best suggestion
// of the first file that has one.
func writeStarterConfig(results []fileDetection, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	var best *detector.Suggestion
	for _, r := range results {
		if best = r.result.BestSuggestion(); best != nil {
			break
		}
	}
	if best == nil {
		return fmt.Errorf("cannot generate config: no timestamp format detected")
	}

	enabled := true
	data, err := config.Starter(config.FormatConfig{
		Name:    best.Format.Spec.Name,
		Pattern: best.Format.PatternStr,
		Groups:  best.Format.Groups,
		Enabled: &enabled,
	})
	if err != nil {
		return err
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
