package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tsadjust/pkg/files"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Long: `Validate a tsadjust configuration without processing any file.

The file is merged with the defaults, the environment and any flags exactly
as it would be for adjust. Without an argument the default locations are
searched.

Checks:
  - YAML syntax
  - Regex pattern validity and capture group names
  - Output format syntax
  - Encoding name and parse error policy
  - Output format omitting a component (warning only)
  - Input directory contents (warning only)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				g.ConfigPath = args[0]
			}
			return runValidate(cmd, g)
		},
	}
}

func runValidate(cmd *cobra.Command, g *GlobalOptions) error {
	out := cmd.OutOrStdout()
	log := NewLogger(cmd.ErrOrStderr())

	if g.ConfigPath != "" {
		fmt.Fprintf(out, "Validating %s...\n", g.ConfigPath)
	}

	cfg, err := g.Load(cmd, log)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	source := cfg.Source()
	if source == "" {
		source = "(built-in defaults)"
	}

	registry := cfg.Registry()
	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Config:         %s\n", source)
	fmt.Fprintf(out, "  Input formats:  %d (%d enabled)\n", len(registry.Patterns()), len(registry.EnabledPatterns()))
	fmt.Fprintf(out, "  Output format:  %s\n", registry.OutputTemplate())
	fmt.Fprintf(out, "  Encoding:       %s\n", cfg.Files.Encoding)
	fmt.Fprintf(out, "  On parse error: %s\n", cfg.Processing.OnParseError)
	fmt.Fprintf(out, "  Output dir:     %s\n", cfg.Files.OutputDir)

	inputs, err := files.ListInputs(cfg.Files.InputDir)
	switch {
	case err != nil:
		fmt.Fprintf(out, "\nWarning: %v\n", err)
	case len(inputs) == 0:
		fmt.Fprintf(out, "\nWarning: No transcripts found in %s\n", cfg.Files.InputDir)
	default:
		fmt.Fprintf(out, "\nTranscripts in %s: %d\n", cfg.Files.InputDir, len(inputs))
		for _, f := range inputs {
			fmt.Fprintf(out, "  - %s\n", f)
		}
	}

	for _, w := range cfg.Warnings() {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}

	return nil
}
