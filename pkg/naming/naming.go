// Package naming derives output file names for adjusted transcripts.
package naming

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults for the output naming scheme.
const (
	DefaultTemplate     = "{basename}_{sign}_{adjustment}s{extension}"
	DefaultPositiveSign = "plus"
	DefaultNegativeSign = "minus"
)

// Scheme describes how output file names are built.
//
// Template placeholders: {basename} is the input name without extension,
// {extension} includes the leading dot (or is empty), {adjustment} is the
// absolute offset and {sign} is PositiveSign for offsets >= 0, NegativeSign
// otherwise.
type Scheme struct {
	Template     string
	PositiveSign string
	NegativeSign string
}

// DefaultScheme returns the built-in naming scheme.
func DefaultScheme() Scheme {
	return Scheme{
		Template:     DefaultTemplate,
		PositiveSign: DefaultPositiveSign,
		NegativeSign: DefaultNegativeSign,
	}
}

// FileName renders the output file name for input and offset.
func (s Scheme) FileName(input string, offset int64) string {
	name := filepath.Base(input)
	ext := filepath.Ext(name)
	if ext == name {
		// dot files such as ".notes" have no extension
		ext = ""
	}
	base := strings.TrimSuffix(name, ext)

	sign, abs := s.PositiveSign, offset
	if offset < 0 {
		sign, abs = s.NegativeSign, -offset
	}

	tmpl := s.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}

	r := strings.NewReplacer(
		"{basename}", base,
		"{extension}", ext,
		"{adjustment}", strconv.FormatInt(abs, 10),
		"{sign}", sign,
	)
	return sanitize(r.Replace(tmpl))
}

// OutputPath joins dir with the rendered file name.
func OutputPath(input string, offset int64, dir string, s Scheme) string {
	return filepath.Join(dir, s.FileName(input, offset))
}

// sanitize keeps a rendered name inside its directory.
func sanitize(name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "output"
	}
	return name
}
