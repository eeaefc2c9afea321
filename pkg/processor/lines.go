package processor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineReader splits a reader into lines of any length, keeping each line's
// terminator separate from its body.
type LineReader struct {
	br *bufio.Reader
	n  int
}

// NewLineReader creates a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{br: bufio.NewReader(r)}
}

// Next returns the next line body and its terminator ("\n", "\r\n" or "" for
// a final unterminated line). ok is false once the input is exhausted.
func (l *LineReader) Next() (body, term string, ok bool, err error) {
	raw, err := l.br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", "", false, fmt.Errorf("reading line %d: %w", l.n+1, err)
	}
	if raw == "" {
		return "", "", false, nil
	}
	l.n++
	body, term = splitTerminator(raw)
	return body, term, true, nil
}

// Line returns the number of lines read so far.
func (l *LineReader) Line() int {
	return l.n
}

func splitTerminator(raw string) (body, term string) {
	if strings.HasSuffix(raw, "\r\n") {
		return raw[:len(raw)-2], "\r\n"
	}
	if strings.HasSuffix(raw, "\n") {
		return raw[:len(raw)-1], "\n"
	}
	return raw, ""
}
