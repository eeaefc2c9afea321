// Package cli provides the command-line interface for tsadjust.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tsadjust/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(NormalizeArgs(os.Args[1:]))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return commands.ExitError
	}
	return commands.ExitCode
}

var negativeNumber = regexp.MustCompile(`^-\d+$`)

// NormalizeArgs rewrites a bare negative number such as "-5" into
// "--offset=-5" so it is not parsed as a shorthand flag. A number that is the
// value of a preceding "--offset", or that follows "--", is left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if negativeNumber.MatchString(arg) && (i == 0 || args[i-1] != "--offset") {
			arg = "--offset=" + arg
		}
		out = append(out, arg)
	}
	return out
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	g := &commands.GlobalOptions{}
	adjust := &commands.AdjustOptions{}
	var interactive bool

	rootCmd := &cobra.Command{
		Use:   "tsadjust [input] [offset]",
		Short: "Shift the timestamps in transcript files",
		Long: `tsadjust rewrites the timestamp markers in plain-text transcripts, shifting
each one by a fixed number of seconds while leaving the rest of the line
untouched.

Run without arguments (or with -i) for the interactive menu.

Examples:
  tsadjust                                  # interactive mode
  tsadjust inputs/transcript.txt 3          # writes outputs/transcript_plus_3s.txt
  tsadjust inputs/transcript.txt -5         # writes outputs/transcript_minus_5s.txt
  tsadjust inputs/file.txt 10 -o output.txt # writes output.txt

Configuration is read from --config, or from tsadjust.yaml, config.yaml or the
user config directory, then overridden by TIMESTAMP_* environment variables
and flags.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive || (len(args) == 0 && !cmd.Flags().Changed("offset")) {
				return commands.RunInteractive(cmd, g)
			}
			return commands.RunAdjust(cmd, g, adjust, args)
		},
	}

	g.AddFlags(rootCmd)
	adjust.AddFlags(rootCmd)
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run in interactive mode")

	rootCmd.AddCommand(commands.NewAdjustCommand(g))
	rootCmd.AddCommand(commands.NewPreviewCommand(g))
	rootCmd.AddCommand(commands.NewDetectCommand(g))
	rootCmd.AddCommand(commands.NewFormatsCommand(g))
	rootCmd.AddCommand(commands.NewValidateCommand(g))
	rootCmd.AddCommand(commands.NewWatchCommand(g))
	rootCmd.AddCommand(commands.NewInteractiveCommand(g))
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
