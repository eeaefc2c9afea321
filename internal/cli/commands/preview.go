package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccollicutt/tsadjust/pkg/config"
	"github.com/ccollicutt/tsadjust/pkg/processor"
	"github.com/ccollicutt/tsadjust/pkg/timestamp"
)

// DefaultPreviewLines is the number of lines shown by preview.
const DefaultPreviewLines = 10

const lineNumberWidth = 6 // "  12: "

var highlight = color.New(color.FgHiYellow, color.Bold)

// PreviewOptions holds command-line options for the preview command.
type PreviewOptions struct {
	Lines   int
	Offset  int64
	NoColor bool

	// shift is true when Offset should be applied to the shown timestamps.
	shift bool
	// width truncates lines to the terminal width; 0 disables truncation.
	width int
	color bool
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(g *GlobalOptions) *cobra.Command {
	opts := &PreviewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <input>",
		Short: "Show the first lines of a transcript with timestamps highlighted",
		Long: `Show the first lines of a transcript with the timestamp that would be
adjusted on each line highlighted.

With --offset, the highlighted timestamps are shown already shifted and
rendered with the output format, exactly as adjust would write them.

Example:
  tsadjust preview inputs/meeting.txt
  tsadjust preview -n 25 inputs/meeting.txt --offset=-15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := NewLogger(cmd.ErrOrStderr())
			cfg, err := g.Load(cmd, log)
			if err != nil {
				return err
			}

			opts.shift = cmd.Flags().Changed("offset")
			opts.width, opts.color = terminalSettings(cmd.OutOrStdout())
			if opts.NoColor {
				opts.color = false
			}
			return writePreview(cmd.OutOrStdout(), args[0], cfg, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", DefaultPreviewLines, "Number of lines to show")
	cmd.Flags().Int64Var(&opts.Offset, "offset", 0, "Show timestamps shifted by this many seconds")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable highlighting")

	return cmd
}

// terminalSettings returns the usable width and whether color is wanted for w.
func terminalSettings(w io.Writer) (width int, colored bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) { // #nosec G115 -- file descriptors fit in int
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd())) // #nosec G115
	if err != nil {
		width = 0
	}
	return width, true
}

func writePreview(w io.Writer, path string, cfg *config.Config, opts *PreviewOptions) error {
	in, err := processor.OpenText(path, cfg.Files.Encoding)
	if err != nil {
		return err
	}
	defer in.Close()

	maxLines := opts.Lines
	if maxLines <= 0 {
		maxLines = DefaultPreviewLines
	}

	var shown []string
	total := 0
	lines := processor.NewLineReader(in)
	for {
		line, _, ok, err := lines.Next()
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if !ok {
			break
		}
		total++
		if len(shown) < maxLines {
			shown = append(shown, strings.TrimRight(line, "\r"))
		}
	}

	fmt.Fprintf(w, "Preview of %s (first %d lines):\n", filepath.Base(path), len(shown))
	fmt.Fprintln(w, strings.Repeat("-", 50))

	parser := timestamp.NewParser(cfg.Registry())
	tmpl := cfg.Registry().OutputTemplate()
	for i, line := range shown {
		fmt.Fprintf(w, "  %2d: %s\n", i+1, previewLine(line, parser, tmpl, opts))
	}

	if total > len(shown) {
		fmt.Fprintf(w, "  ... (%d more lines)\n", total-len(shown))
	}
	return nil
}

// previewLine renders one line with its timestamp highlighted, truncated to
// the terminal width.
func previewLine(line string, parser *timestamp.Parser, tmpl *timestamp.Template, opts *PreviewOptions) string {
	start, end := -1, -1
	if m, ok, err := parser.ParseLine(line); err == nil && ok {
		stamp := line[m.Start:m.End]
		if opts.shift {
			stamp = tmpl.Format(timestamp.Adjust(m.Timestamp, opts.Offset))
		}
		line = line[:m.Start] + stamp + line[m.End:]
		start, end = m.Start, m.Start+len(stamp)
	}

	cut := len(line)
	if opts.width > lineNumberWidth {
		const tail = "…"
		if truncated := runewidth.Truncate(line, opts.width-lineNumberWidth, tail); truncated != line {
			cut = len(truncated) - len(tail)
			line = truncated
		}
	}

	if !opts.color || start < 0 || start >= cut {
		return line
	}
	if end > cut {
		end = cut
	}
	return line[:start] + paint(highlight, line[start:end]) + line[end:]
}
