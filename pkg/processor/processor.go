package processor

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/tsadjust/pkg/timestamp"
)

// Processor rewrites the first timestamp of every line by a fixed offset.
// It holds no mutable state and may be reused across files.
type Processor struct {
	parser   *timestamp.Parser
	template *timestamp.Template
	offset   int64
	policy   ParseErrorPolicy
	warn     func(string)
}

// Option configures a Processor.
type Option func(*Processor)

// WithParseErrorPolicy sets how unparseable timestamps are handled.
func WithParseErrorPolicy(policy ParseErrorPolicy) Option {
	return func(p *Processor) {
		if policy != "" {
			p.policy = policy
		}
	}
}

// WithWarnFunc sets a sink for non-fatal warnings, such as skipped lines.
func WithWarnFunc(fn func(string)) Option {
	return func(p *Processor) {
		if fn != nil {
			p.warn = fn
		}
	}
}

// New creates a Processor that shifts timestamps by offset seconds.
func New(registry *timestamp.Registry, offset int64, opts ...Option) *Processor {
	p := &Processor{
		parser:   timestamp.NewParser(registry),
		template: registry.OutputTemplate(),
		offset:   offset,
		policy:   PolicyFail,
		warn:     func(string) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessText shifts the timestamps in lines and returns a slice of the same
// length. Lines should not carry their terminators.
func ProcessText(lines []string, offset int64, registry *timestamp.Registry) ([]string, error) {
	return New(registry, offset).Lines(lines)
}

// Lines processes a slice of lines. Parse errors follow the processor policy.
func (p *Processor) Lines(lines []string) ([]string, error) {
	var stats Stats
	out := make([]string, len(lines))
	for i, line := range lines {
		stats.Lines++
		adjusted, err := p.line(line, i+1, &stats)
		if err != nil {
			return nil, err
		}
		out[i] = adjusted
	}
	return out, nil
}

// Process streams r to w line by line. Line terminators (\n or \r\n) are
// copied unchanged, so the output has exactly as many lines as the input.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) (*Stats, error) {
	stats := &Stats{}
	lr := NewLineReader(r)
	bw := bufio.NewWriter(w)

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		body, term, ok, err := lr.Next()
		if err != nil {
			return stats, err
		}
		if !ok {
			break
		}

		stats.Lines++
		adjusted, err := p.line(body, stats.Lines, stats)
		if err != nil {
			return stats, err
		}
		if _, err := bw.WriteString(adjusted + term); err != nil {
			return stats, fmt.Errorf("writing line %d: %w", stats.Lines, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("flushing output: %w", err)
	}
	return stats, nil
}

// line rewrites a single line body. Only the matched span is replaced.
func (p *Processor) line(line string, num int, stats *Stats) (string, error) {
	m, ok, err := p.parser.ParseLine(line)
	if err != nil {
		if p.policy == PolicySkip {
			stats.Skipped++
			p.warn(fmt.Sprintf("line %d: skipped: %v", num, err))
			return line, nil
		}
		return "", fmt.Errorf("line %d: %w", num, err)
	}
	if !ok {
		return line, nil
	}

	ts := timestamp.Adjust(m.Timestamp, p.offset)
	stats.record(m.Pattern)
	return line[:m.Start] + p.template.Format(ts) + line[m.End:], nil
}
