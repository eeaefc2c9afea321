package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/tsadjust/pkg/config"
	"github.com/ccollicutt/tsadjust/pkg/detector"
	"github.com/ccollicutt/tsadjust/pkg/timestamp"
)

// sampleTimestamp is rendered to show what the output format produces.
var sampleTimestamp = timestamp.FromComponents(1, 2, 3)

// NewFormatsCommand creates the formats command.
func NewFormatsCommand(g *GlobalOptions) *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the configured input formats and output format",
		Long: `List the input formats in priority order, whether each is enabled, and
the output format with a rendered example.

With --builtin, list the formats detect can suggest instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if builtin {
				writeBuiltinFormats(cmd.OutOrStdout())
				return nil
			}

			cfg, err := g.Load(cmd, NewLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			writeFormats(cmd.OutOrStdout(), cfg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&builtin, "builtin", false, "List the built-in formats known to detect")
	return cmd
}

func writeFormats(w io.Writer, cfg *config.Config) {
	patterns := cfg.Registry().Patterns()

	width := 0
	for _, p := range patterns {
		width = max(width, runewidth.StringWidth(p.Name))
	}

	fmt.Fprintln(w, "Input formats (first match wins):")
	for i, p := range patterns {
		state := "enabled"
		if !p.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(w, "  %d. %s  %-8s  %s  groups: %s\n",
			i+1, runewidth.FillRight(p.Name, width), state, p.Pattern, componentList(p.Groups))
	}

	tmpl := cfg.Registry().OutputTemplate()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Output format: %s\n", tmpl)
	fmt.Fprintf(w, "  01:02:03 renders as %s\n", tmpl.Format(sampleTimestamp))
	for _, c := range tmpl.Missing() {
		fmt.Fprintf(w, "  note: %s is not rendered\n", c)
	}
}

func writeBuiltinFormats(w io.Writer) {
	formats := detector.DefaultFormats()

	width := 0
	for _, f := range formats {
		width = max(width, runewidth.StringWidth(f.Spec.Name))
	}

	fmt.Fprintln(w, "Built-in formats:")
	for _, f := range formats {
		fmt.Fprintf(w, "  %s  %s  e.g. %s\n",
			runewidth.FillRight(f.Spec.Name, width), f.PatternStr, strings.Join(f.Examples, ", "))
	}
}

func componentList(cs []timestamp.Component) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
