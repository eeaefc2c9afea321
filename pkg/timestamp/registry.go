package timestamp

import "errors"

// Registry holds the ordered input patterns and the output template for a run.
// It is immutable after construction and safe to share.
type Registry struct {
	patterns []PatternSpec
	enabled  []PatternSpec
	template *Template
}

// NewRegistry builds a registry. Declaration order of patterns is their
// matching priority. At least one pattern must be enabled.
func NewRegistry(patterns []PatternSpec, tmpl *Template) (*Registry, error) {
	if tmpl == nil {
		return nil, &ConfigError{Field: "output_format", Err: errors.New("output template is required")}
	}

	r := &Registry{
		patterns: append([]PatternSpec(nil), patterns...),
		template: tmpl,
	}
	for _, p := range r.patterns {
		if p.Enabled {
			r.enabled = append(r.enabled, p)
		}
	}
	if len(r.enabled) == 0 {
		return nil, &ConfigError{Field: "input_formats", Err: errors.New("no input formats are enabled")}
	}

	return r, nil
}

// EnabledPatterns returns the enabled patterns in priority order.
func (r *Registry) EnabledPatterns() []PatternSpec {
	return append([]PatternSpec(nil), r.enabled...)
}

// Patterns returns every pattern, including disabled ones, in declaration order.
func (r *Registry) Patterns() []PatternSpec {
	return append([]PatternSpec(nil), r.patterns...)
}

// OutputTemplate returns the output template.
func (r *Registry) OutputTemplate() *Template {
	return r.template
}
