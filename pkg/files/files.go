// Package files discovers transcript files on disk.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsTranscript reports whether a file name looks like a transcript to offer
// for processing. Hidden files, test_ fixtures, Python sources and .bak
// backups are excluded.
func IsTranscript(name string) bool {
	base := filepath.Base(name)
	switch {
	case strings.HasPrefix(base, "."):
		return false
	case strings.HasPrefix(base, "test_"):
		return false
	case strings.HasSuffix(base, ".py"), strings.HasSuffix(base, ".bak"):
		return false
	}
	return true
}

// ListInputs returns the transcripts directly inside dir, sorted by path.
// A missing directory yields an empty list.
func ListInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var result []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsTranscript(e.Name()) {
			continue
		}
		result = append(result, filepath.Join(dir, e.Name()))
	}

	sort.Strings(result)
	return result, nil
}

// ExpandGlobs expands a list of file paths and glob patterns into a deduplicated
// list of matching file paths. Patterns that don't match any files are returned as-is
// (the caller should handle file-not-found errors).
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			matches = []string{pattern}
		}

		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				result = append(result, match)
			}
		}
	}

	sort.Strings(result)

	return result, nil
}
