package commands

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Logger writes human-readable status messages. Labels are colored when the
// destination is a terminal.
type Logger struct {
	w     io.Writer
	color bool
	mu    sync.Mutex
}

// NewLogger creates a Logger writing to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w, color: isTerminal(w)}
}

var (
	infoLabel    = color.New(color.FgCyan)
	warnLabel    = color.New(color.FgYellow)
	errorLabel   = color.New(color.FgRed, color.Bold)
	successLabel = color.New(color.FgGreen)
)

// Info prints an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.write(infoLabel, "[INFO]", format, args...)
}

// Warn prints a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.write(warnLabel, "[WARN]", format, args...)
}

// Error prints an error message.
func (l *Logger) Error(format string, args ...any) {
	l.write(errorLabel, "[ERROR]", format, args...)
}

// Success prints a success message.
func (l *Logger) Success(format string, args ...any) {
	l.write(successLabel, "[OK]", format, args...)
}

func (l *Logger) write(c *color.Color, level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	label := level
	if l.color {
		label = paint(c, level)
	}
	fmt.Fprintln(l.w, label, fmt.Sprintf(format, args...))
}

// paint colors s regardless of the global NoColor setting, which only
// reflects stdout.
func paint(c *color.Color, s string) string {
	c.EnableColor()
	return c.Sprint(s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
