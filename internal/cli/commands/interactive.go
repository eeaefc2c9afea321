package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/tsadjust/pkg/config"
	"github.com/ccollicutt/tsadjust/pkg/files"
)

const rule = "============================================="

// errQuit ends the session at any prompt.
var errQuit = errors.New("quit")

// NewInteractiveCommand creates the interactive command.
func NewInteractiveCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Pick a transcript and offset from a menu",
		Long: `Run the menu-driven mode: choose a transcript from the input directory,
optionally preview it, enter an offset, confirm, and repeat.

This is also what runs when tsadjust is started without arguments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInteractive(cmd, g)
		},
	}
}

// RunInteractive runs the menu loop on the command's input and output.
func RunInteractive(cmd *cobra.Command, g *GlobalOptions) error {
	log := NewLogger(cmd.ErrOrStderr())
	cfg, err := g.Load(cmd, log)
	if err != nil {
		return err
	}

	s := &session{
		in:  bufio.NewReader(cmd.InOrStdin()),
		out: cmd.OutOrStdout(),
		log: log,
		cfg: cfg,
	}
	s.preview.width, s.preview.color = terminalSettings(cmd.OutOrStdout())
	s.preview.Lines = DefaultPreviewLines

	return s.run(commandContext(cmd))
}

type session struct {
	in      *bufio.Reader
	out     io.Writer
	log     *Logger
	cfg     *config.Config
	preview PreviewOptions
}

func (s *session) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Timestamp Adjuster - Interactive Mode")
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, "Select a transcript and an offset; every timestamp in it is shifted.")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		err := s.round(ctx)
		switch {
		case errors.Is(err, errQuit):
			fmt.Fprintln(s.out, "\nGoodbye!")
			return nil
		case err != nil:
			return err
		}

		fmt.Fprintln(s.out, "\n"+rule)
		again, err := s.confirm("Would you like to process another file? (y/n): ")
		if err != nil || !again {
			fmt.Fprintln(s.out, "\nGoodbye!")
			return nil
		}
	}
}

// round handles one file: select, preview, offset, process.
func (s *session) round(ctx context.Context) error {
	inputs, err := files.ListInputs(s.cfg.Files.InputDir)
	if err != nil {
		return err
	}
	s.showMenu(inputs)
	if len(inputs) == 0 {
		fmt.Fprintf(s.out, "\nAdd transcript files to %q and try again.\n", s.cfg.Files.InputDir)
		return errQuit
	}

	selected, err := s.selectFile(inputs)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nSelected file: %s\n", filepath.Base(selected))

	show, err := s.confirm("Would you like to see a preview of the file? (y/n): ")
	if err != nil {
		return err
	}
	if show {
		fmt.Fprintln(s.out)
		if err := writePreview(s.out, selected, s.cfg, &s.preview); err != nil {
			s.log.Error("reading %s: %v", selected, err)
		}
	}

	offset, err := s.offset()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nProcessing %s...\n", filepath.Base(selected))
	report, err := adjustFile(ctx, s.cfg, selected, "", offset, s.log)
	if err != nil {
		s.log.Error("%v", err)
		fmt.Fprintln(s.out, "Failed to process file.")
		return nil
	}

	fmt.Fprintf(s.out, "Adjusted timestamps by %d seconds.\n", offset)
	fmt.Fprintf(s.out, "Output written to: %s\n", report.Output)
	for _, w := range report.Warnings {
		s.log.Warn("%s", w)
	}
	return nil
}

func (s *session) showMenu(inputs []string) {
	fmt.Fprintf(s.out, "\nAvailable files in %s:\n", s.cfg.Files.InputDir)
	fmt.Fprintln(s.out, strings.Repeat("=", 40))
	if len(inputs) == 0 {
		fmt.Fprintln(s.out, "No files found.")
		return
	}

	width := 0
	for _, p := range inputs {
		width = max(width, runewidth.StringWidth(filepath.Base(p)))
	}
	for i, p := range inputs {
		fmt.Fprintf(s.out, "  %2d. %s  (%s)\n", i+1, runewidth.FillRight(filepath.Base(p), width), fileSize(p))
	}
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	if n := info.Size(); n < 1024 {
		return fmt.Sprintf("%d bytes", n)
	}
	return fmt.Sprintf("%.1f KB", float64(info.Size())/1024)
}

func (s *session) selectFile(inputs []string) (string, error) {
	for {
		answer, err := s.prompt(fmt.Sprintf("\nSelect a file (1-%d) or 'q' to quit: ", len(inputs)))
		if err != nil {
			return "", err
		}
		if answer == "q" {
			return "", errQuit
		}

		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a valid number or 'q' to quit.")
			continue
		}
		if n < 1 || n > len(inputs) {
			fmt.Fprintf(s.out, "Please enter a number between 1 and %d.\n", len(inputs))
			continue
		}
		return inputs[n-1], nil
	}
}

func (s *session) offset() (int64, error) {
	fmt.Fprintln(s.out, "\nTime Adjustment")
	fmt.Fprintln(s.out, strings.Repeat("=", 20))
	fmt.Fprintln(s.out, "Enter the number of seconds to adjust timestamps:")
	fmt.Fprintln(s.out, "  - positive numbers (e.g. 30) add time")
	fmt.Fprintln(s.out, "  - negative numbers (e.g. -15) subtract time")

	for {
		answer, err := s.prompt("\nAdjustment in seconds (or 'q' to quit): ")
		if err != nil {
			return 0, err
		}
		if answer == "q" {
			return 0, errQuit
		}

		offset, err := ParseOffset(answer)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a valid number or 'q' to quit.")
			continue
		}

		switch {
		case offset == 0:
			fmt.Fprintln(s.out, "No adjustment will be made (0 seconds).")
		case offset > 0:
			fmt.Fprintf(s.out, "Will ADD %d seconds to all timestamps.\n", offset)
		default:
			fmt.Fprintf(s.out, "Will SUBTRACT %d seconds from all timestamps.\n", -offset)
		}

		ok, err := s.confirm("Proceed? (y/n): ")
		if err != nil {
			return 0, err
		}
		if ok {
			return offset, nil
		}
		fmt.Fprintln(s.out, "Let's try again...")
	}
}

func (s *session) confirm(question string) (bool, error) {
	answer, err := s.prompt(question)
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "yes", nil
}

// prompt writes question and reads one trimmed, lower-cased answer. End of
// input quits the session.
func (s *session) prompt(question string) (string, error) {
	fmt.Fprint(s.out, question)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line = strings.TrimSpace(line); line != "" {
				return strings.ToLower(line), nil
			}
			fmt.Fprintln(s.out)
			return "", errQuit
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
