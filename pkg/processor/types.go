// Package processor applies the timestamp pipeline to transcript text.
package processor

import "fmt"

// ParseErrorPolicy decides what happens when a matched timestamp cannot be
// converted to numbers.
type ParseErrorPolicy string

const (
	// PolicyFail aborts processing of the whole file (default).
	PolicyFail ParseErrorPolicy = "fail"
	// PolicySkip leaves the line unchanged and records a warning.
	PolicySkip ParseErrorPolicy = "skip"
)

// Valid reports whether the policy is known. The empty policy means PolicyFail.
func (p ParseErrorPolicy) Valid() bool {
	switch p {
	case "", PolicyFail, PolicySkip:
		return true
	default:
		return false
	}
}

// Stats summarizes one processing pass.
type Stats struct {
	// Lines is the number of lines read (and written).
	Lines int `json:"lines"`

	// Adjusted counts lines whose timestamp was rewritten.
	Adjusted int `json:"adjusted"`

	// Skipped counts lines left unchanged because of a parse error.
	Skipped int `json:"skipped"`

	// PerPattern counts adjusted lines by the name of the pattern that matched.
	PerPattern map[string]int `json:"per_pattern,omitempty"`
}

// Matched reports whether any timestamp was adjusted.
func (s *Stats) Matched() bool {
	return s.Adjusted > 0
}

func (s *Stats) record(pattern string) {
	s.Adjusted++
	if s.PerPattern == nil {
		s.PerPattern = make(map[string]int)
	}
	s.PerPattern[pattern]++
}

// IOError reports a file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
