package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tsadjust/pkg/config"
	"github.com/ccollicutt/tsadjust/pkg/naming"
	"github.com/ccollicutt/tsadjust/pkg/output"
	"github.com/ccollicutt/tsadjust/pkg/processor"
)

// AdjustOptions holds command-line options for adjusting a single file.
type AdjustOptions struct {
	Output string
	Offset int64
	Report string
}

// AddFlags registers the adjust flags on cmd.
func (o *AdjustOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "", "Output file (default: generated name in the output directory)")
	cmd.Flags().Int64Var(&o.Offset, "offset", 0, "Seconds to add to every timestamp (negative to subtract)")
	cmd.Flags().StringVar(&o.Report, "report", "text", "Report format (text|json)")
}

// NewAdjustCommand creates the adjust command.
func NewAdjustCommand(g *GlobalOptions) *cobra.Command {
	opts := &AdjustOptions{}

	cmd := &cobra.Command{
		Use:   "adjust <input> <offset>",
		Short: "Shift every timestamp in a transcript",
		Long: `Shift the timestamps in a transcript by a fixed number of seconds.

The first timestamp on each line that matches an enabled input format is
rewritten with the output format. Everything else is copied unchanged.
Results below zero are clamped to 00:00:00.

Exit codes:
  0 - Timestamps adjusted
  1 - File written but no timestamp matched
  2 - Configuration or runtime error

Example:
  tsadjust adjust inputs/meeting.txt 30
  tsadjust adjust inputs/meeting.txt -15 -o fixed.txt
  tsadjust adjust inputs/meeting.txt --offset=-15 --report json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAdjust(cmd, g, opts, args)
		},
	}

	opts.AddFlags(cmd)
	return cmd
}

// RunAdjust adjusts args[0] by the offset given as args[1] or --offset.
func RunAdjust(cmd *cobra.Command, g *GlobalOptions, opts *AdjustOptions, args []string) error {
	if len(args) == 0 {
		return errors.New("an input file is required (or run without arguments for interactive mode)")
	}
	offset, err := resolveOffset(cmd, opts.Offset, args[1:])
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(opts.Report, output.FormatOptions{
		Verbose: g.Verbose,
		Quiet:   g.Quiet,
	})
	if err != nil {
		return err
	}

	log := NewLogger(cmd.ErrOrStderr())
	cfg, err := g.Load(cmd, log)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	report, err := adjustFile(ctx, cfg, args[0], opts.Output, offset, log)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if !report.HasMatches() {
		ExitCode = ExitNoMatches
	}
	return nil
}

// resolveOffset takes the offset from the optional positional argument or
// from --offset, but not both.
func resolveOffset(cmd *cobra.Command, flagValue int64, positional []string) (int64, error) {
	flagSet := cmd.Flags().Changed("offset")
	switch {
	case len(positional) > 0 && flagSet:
		return 0, errors.New("offset given both as an argument and with --offset")
	case len(positional) > 0:
		return ParseOffset(positional[0])
	case flagSet:
		return flagValue, nil
	default:
		return 0, errors.New("an offset in seconds is required")
	}
}

// adjustFile processes one transcript into outPath, or into a generated name
// in the output directory when outPath is empty.
func adjustFile(ctx context.Context, cfg *config.Config, input, outPath string, offset int64, log *Logger) (*output.Report, error) {
	if outPath == "" {
		outPath = naming.OutputPath(input, offset, cfg.Files.OutputDir, cfg.OutputNaming.Scheme())
	}

	start := time.Now()
	p := processor.New(cfg.Registry(), offset,
		processor.WithParseErrorPolicy(cfg.Processing.ParseErrorPolicy()),
		processor.WithWarnFunc(func(msg string) {
			log.Warn("%s: %s", input, msg)
		}),
	)

	stats, err := p.ProcessFile(ctx, input, outPath, cfg.FileOptions())
	if err != nil {
		return nil, err
	}

	report := output.NewReport(input, outPath, offset, stats)
	report.Metadata = output.Metadata{
		ConfigFile:  cfg.Source(),
		ProcessedAt: time.Now(),
		Duration:    time.Since(start),
	}
	return report, nil
}
