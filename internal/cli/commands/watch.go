package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tsadjust/pkg/config"
	"github.com/ccollicutt/tsadjust/pkg/files"
	"github.com/ccollicutt/tsadjust/pkg/watch"
)

// WatchOptions holds command-line options for the watch command.
type WatchOptions struct {
	Offset   int64
	Debounce time.Duration
	Existing bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(g *GlobalOptions) *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <offset>",
		Short: "Adjust transcripts as they appear in the input directory",
		Long: `Watch the input directory and adjust every transcript that is created or
written there, once it has been quiet for the debounce period. Results go to
the output directory with generated names. Stop with Ctrl+C.

Example:
  tsadjust watch 30
  tsadjust watch --offset=-15 --input-dir drop --output-dir done --existing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, g, opts, args)
		},
	}

	cmd.Flags().Int64Var(&opts.Offset, "offset", 0, "Seconds to add to every timestamp (negative to subtract)")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", watch.DefaultDebounce, "Quiet period before a file is processed")
	cmd.Flags().BoolVar(&opts.Existing, "existing", false, "Also process transcripts already in the input directory")

	return cmd
}

func runWatch(cmd *cobra.Command, g *GlobalOptions, opts *WatchOptions, args []string) error {
	offset, err := resolveOffset(cmd, opts.Offset, args)
	if err != nil {
		return err
	}

	log := NewLogger(cmd.ErrOrStderr())
	cfg, err := g.Load(cmd, log)
	if err != nil {
		return err
	}

	if err := checkWatchDirs(cfg); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	handle := func(ctx context.Context, path string) error {
		report, err := adjustFile(ctx, cfg, path, "", offset, log)
		if err != nil {
			return err
		}
		if !report.HasMatches() {
			log.Warn("%s: no timestamps matched (written to %s)", path, report.Output)
			return nil
		}
		log.Success("%s -> %s (%d/%d lines adjusted)", path, report.Output, report.Stats.Adjusted, report.Stats.Lines)
		return nil
	}

	if opts.Existing {
		inputs, err := files.ListInputs(cfg.Files.InputDir)
		if err != nil {
			return err
		}
		for _, path := range inputs {
			if err := handle(ctx, path); err != nil {
				log.Error("%v", err)
			}
		}
	}

	w := watch.New(cfg.Files.InputDir, handle,
		watch.WithDebounce(opts.Debounce),
		watch.WithErrorHandler(func(path string, err error) {
			log.Error("%s: %v", path, err)
		}),
	)

	log.Info("watching %s, adjusting by %+d seconds into %s (Ctrl+C to stop)", cfg.Files.InputDir, offset, cfg.Files.OutputDir)
	if err := w.Run(ctx); err != nil {
		return err
	}
	log.Info("stopped watching %s", cfg.Files.InputDir)
	return nil
}

// checkWatchDirs rejects layouts where outputs would be picked up as inputs.
func checkWatchDirs(cfg *config.Config) error {
	in, err := filepath.Abs(cfg.Files.InputDir)
	if err != nil {
		return fmt.Errorf("resolving input directory: %w", err)
	}
	out, err := filepath.Abs(cfg.Files.OutputDir)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}
	if in == out {
		return errors.New("input and output directories must differ in watch mode")
	}
	return nil
}
