package timestamp

import (
	"errors"
	"fmt"
	"regexp"
)

// PatternSpec is a named, enable-able rule for finding a timestamp in a line.
type PatternSpec struct {
	// Name is a human-readable identifier such as "bracketed_hms".
	Name string

	// Pattern is the compiled matcher.
	Pattern *regexp.Regexp

	// Groups lists the components the pattern captures, in capture order.
	Groups []Component

	// Enabled patterns take part in parsing; disabled ones are kept for listing.
	Enabled bool

	// index maps each captured component to its submatch index.
	index map[Component]int
}

// NewPatternSpec compiles expr and maps its capture groups to components.
//
// If expr contains named groups called hours, minutes or seconds, those are
// used and groups is ignored. Otherwise groups names the positional capture
// groups in order; an empty list means hours, minutes, seconds.
// Components a pattern does not capture are read as zero.
func NewPatternSpec(name, expr string, groups []string, enabled bool) (PatternSpec, error) {
	if name == "" {
		name = expr
	}
	if expr == "" {
		return PatternSpec{}, &ConfigError{Field: name, Err: errors.New("pattern is required")}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return PatternSpec{}, &ConfigError{Field: name, Err: fmt.Errorf("invalid pattern: %w", err)}
	}

	spec := PatternSpec{
		Name:    name,
		Pattern: re,
		Enabled: enabled,
		index:   make(map[Component]int),
	}

	for i, sub := range re.SubexpNames() {
		if c, ok := ParseComponent(sub); ok {
			if _, dup := spec.index[c]; dup {
				return PatternSpec{}, &ConfigError{Field: name, Err: fmt.Errorf("group %q captured twice", c)}
			}
			spec.index[c] = i
			spec.Groups = append(spec.Groups, c)
		}
	}
	if len(spec.index) > 0 {
		return spec, nil
	}

	if len(groups) == 0 {
		groups = []string{string(Hours), string(Minutes), string(Seconds)}
	}
	if re.NumSubexp() < len(groups) {
		return PatternSpec{}, &ConfigError{
			Field: name,
			Err:   fmt.Errorf("pattern has %d capture groups but %d group names", re.NumSubexp(), len(groups)),
		}
	}
	for i, g := range groups {
		c, ok := ParseComponent(g)
		if !ok {
			return PatternSpec{}, &ConfigError{Field: name, Err: fmt.Errorf("unknown group %q (must be hours, minutes or seconds)", g)}
		}
		if _, dup := spec.index[c]; dup {
			return PatternSpec{}, &ConfigError{Field: name, Err: fmt.Errorf("group %q listed twice", c)}
		}
		spec.index[c] = i + 1
		spec.Groups = append(spec.Groups, c)
	}

	return spec, nil
}

// MustPatternSpec is like NewPatternSpec but panics on error.
func MustPatternSpec(name, expr string, groups []string, enabled bool) PatternSpec {
	spec, err := NewPatternSpec(name, expr, groups, enabled)
	if err != nil {
		panic(err)
	}
	return spec
}

// Disabled returns a copy of the spec with Enabled cleared.
func (p PatternSpec) Disabled() PatternSpec {
	p.Enabled = false
	return p
}
