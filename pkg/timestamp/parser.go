package timestamp

import (
	"errors"
	"strconv"
)

// maxComponent bounds a single captured value so that the total stays well
// inside int64.
const maxComponent = 1 << 40

// Match is the first timestamp found in a line.
type Match struct {
	Timestamp Timestamp

	// Start and End delimit the matched text, as byte offsets into the line.
	Start int
	End   int

	// Pattern is the name of the pattern that matched.
	Pattern string
}

// Parser finds timestamps using a registry's enabled patterns.
type Parser struct {
	patterns []PatternSpec
}

// NewParser creates a parser over the registry's enabled patterns.
func NewParser(r *Registry) *Parser {
	return &Parser{patterns: r.EnabledPatterns()}
}

// ParseLine tries each enabled pattern in priority order and returns the first
// match. Only the leftmost match of that pattern is considered. ok is false
// when no pattern matches.
func (p *Parser) ParseLine(line string) (m Match, ok bool, err error) {
	for i := range p.patterns {
		spec := &p.patterns[i]
		loc := spec.Pattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}

		ts, err := spec.extract(line, loc)
		if err != nil {
			return Match{}, false, err
		}
		return Match{Timestamp: ts, Start: loc[0], End: loc[1], Pattern: spec.Name}, true, nil
	}
	return Match{}, false, nil
}

// extract converts the captured components of a match to a Timestamp.
func (p *PatternSpec) extract(line string, loc []int) (Timestamp, error) {
	var values [3]int64
	for i, c := range Components {
		idx, ok := p.index[c]
		if !ok {
			continue
		}
		start, end := loc[2*idx], loc[2*idx+1]
		if start < 0 {
			continue
		}

		raw := line[start:end]
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, &ParseError{Pattern: p.Name, Component: c, Value: raw, Err: err}
		}
		if n < 0 || n > maxComponent {
			return 0, &ParseError{Pattern: p.Name, Component: c, Value: raw, Err: errors.New("value out of range")}
		}
		values[i] = n
	}
	return FromComponents(values[0], values[1], values[2]), nil
}
