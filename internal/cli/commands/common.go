package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tsadjust/pkg/config"
)

// ExitCode is set by commands to indicate the result.
var ExitCode = ExitOK

// Process exit codes.
const (
	ExitOK        = 0
	ExitNoMatches = 1 // files were processed but no timestamp matched
	ExitError     = 2 // configuration or runtime error
)

// GlobalOptions holds the flags shared by every command. Set flags form the
// highest-priority configuration layer.
type GlobalOptions struct {
	ConfigPath   string
	OutputFormat string
	InputDir     string
	OutputDir    string
	Encoding     string
	OnParseError string
	Backup       bool
	Quiet        bool
	Verbose      bool
}

// AddFlags registers the shared flags as persistent flags on cmd.
func (g *GlobalOptions) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.ConfigPath, "config", "c", "", "Config file (default: search tsadjust.yaml, config.yaml, user config dir)")
	flags.StringVarP(&g.OutputFormat, "format", "f", "", `Output timestamp format, e.g. "[{hours:02d}:{minutes:02d}:{seconds:02d}]"`)
	flags.StringVar(&g.InputDir, "input-dir", "", "Directory listed in interactive and watch mode")
	flags.StringVar(&g.OutputDir, "output-dir", "", "Directory for generated output files")
	flags.StringVar(&g.Encoding, "encoding", "", "Text encoding of input and output files")
	flags.StringVar(&g.OnParseError, "on-parse-error", "", "What to do with unparseable timestamps (fail|skip)")
	flags.BoolVar(&g.Backup, "backup", false, "Rename an existing output file to .bak before writing")
	flags.BoolVarP(&g.Quiet, "quiet", "q", false, "Summary only")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Show per-pattern counts and timing")
}

// Overrides converts the set flags into a configuration layer.
func (g *GlobalOptions) Overrides(cmd *cobra.Command) *config.Config {
	o := &config.Config{}
	o.Timestamp.OutputFormat = g.OutputFormat
	o.Files.InputDir = g.InputDir
	o.Files.OutputDir = g.OutputDir
	o.Files.Encoding = g.Encoding
	o.Processing.OnParseError = g.OnParseError
	if cmd.Flags().Changed("backup") {
		backup := g.Backup
		o.Files.CreateBackup = &backup
	}
	return o
}

// Load resolves and validates the configuration, logging its warnings.
func (g *GlobalOptions) Load(cmd *cobra.Command, log *Logger) (*config.Config, error) {
	cfg, err := config.Load(commandContext(cmd), config.LoadOptions{
		Path:      g.ConfigPath,
		Overrides: g.Overrides(cmd),
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if !g.Quiet {
		for _, w := range cfg.Warnings() {
			log.Warn("%s", w)
		}
	}
	return cfg, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// ParseOffset parses a signed whole number of seconds, e.g. "30", "+30" or "-15".
func ParseOffset(s string) (int64, error) {
	offset, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: must be a whole number of seconds", s)
	}
	return offset, nil
}
