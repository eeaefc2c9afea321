package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// FileOptions controls file-level behavior of ProcessFile.
type FileOptions struct {
	// Encoding is the text encoding of input and output, e.g. "utf-8" or
	// "windows-1252". Empty means UTF-8.
	Encoding string

	// CreateBackup renames an existing output file to <output>.bak before
	// writing.
	CreateBackup bool
}

// LookupEncoding resolves an encoding name. It returns nil for UTF-8, which is
// passed through byte for byte.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

type textFile struct {
	io.Reader
	file *os.File
}

func (t *textFile) Close() error {
	return t.file.Close()
}

// OpenText opens path and decodes it from the named encoding to UTF-8.
func OpenText(path, encodingName string) (io.ReadCloser, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided input path is expected
	if err != nil {
		return nil, &IOError{Op: "open input", Path: path, Err: err}
	}

	var r io.Reader = f
	if enc != nil {
		r = transform.NewReader(f, enc.NewDecoder())
	}
	return &textFile{Reader: r, file: f}, nil
}

// ProcessFile reads inPath, shifts its timestamps and writes outPath. The
// output directory is created if needed. Nothing is written if processing
// fails.
func (p *Processor) ProcessFile(ctx context.Context, inPath, outPath string, opts FileOptions) (*Stats, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	in, err := OpenText(inPath, opts.Encoding)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var buf bytes.Buffer
	stats, err := p.Process(ctx, in, &buf)
	if err != nil {
		return stats, fmt.Errorf("processing %s: %w", inPath, err)
	}

	data := buf.Bytes()
	if enc != nil {
		data, err = enc.NewEncoder().Bytes(data)
		if err != nil {
			return stats, fmt.Errorf("encoding output as %s: %w", opts.Encoding, err)
		}
	}

	if err := writeOutput(outPath, data, opts.CreateBackup); err != nil {
		return stats, err
	}
	return stats, nil
}

func writeOutput(path string, data []byte, backup bool) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Op: "create output directory", Path: dir, Err: err}
		}
	}

	if backup {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+".bak"); err != nil {
				return &IOError{Op: "back up", Path: path, Err: err}
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return &IOError{Op: "stat output", Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- transcripts are not secret
		return &IOError{Op: "write output", Path: path, Err: err}
	}
	return nil
}
