package timestamp

import (
	"fmt"
)

// ConfigError reports a pattern registry or output template that cannot be used.
type ConfigError struct {
	// Field identifies the offending setting, e.g. "input_formats[1]".
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %v", e.Err)
	}
	return fmt.Sprintf("config error: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError reports a matched timestamp whose captured component is not a
// usable integer.
type ParseError struct {
	Pattern   string
	Component Component
	Value     string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pattern %s: %s value %q: %v", e.Pattern, e.Component, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError reports malformed placeholder syntax in an output template.
type FormatError struct {
	Template string
	// Pos is the byte offset of the problem within Template.
	Pos int
	Msg string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid template %q at position %d: %s", e.Template, e.Pos, e.Msg)
}
