package timestamp

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultTemplate renders timestamps as [HH:MM:SS].
const DefaultTemplate = "[{hours:02d}:{minutes:02d}:{seconds:02d}]"

// segment is either a literal run of text or a component placeholder.
type segment struct {
	literal   string
	component Component
	fill      byte
	width     int
}

// Template is a parsed output template. Placeholders take the form
// {name} or {name:spec}, where spec is an optional 0 fill flag, an optional
// width and an optional trailing d. {{ and }} produce literal braces.
// Placeholders that do not name a component are copied through verbatim.
type Template struct {
	raw      string
	segments []segment
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(s string) *Template {
	t, err := ParseTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTemplate parses an output template.
func ParseTemplate(s string) (*Template, error) {
	t := &Template{raw: s}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		switch s[i] {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexAny(s[i+1:], "{}")
			if end < 0 || s[i+1+end] != '}' {
				return nil, &FormatError{Template: s, Pos: i, Msg: "unclosed '{'"}
			}
			field := s[i+1 : i+1+end]
			seg, known, err := parseField(field)
			if err != nil {
				return nil, &FormatError{Template: s, Pos: i, Msg: err.Error()}
			}
			if known {
				flush()
				t.segments = append(t.segments, seg)
			} else {
				lit.WriteString(s[i : i+2+end])
			}
			i += end + 2
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, &FormatError{Template: s, Pos: i, Msg: "single '}' encountered"}
		default:
			lit.WriteByte(s[i])
			i++
		}
	}
	flush()

	return t, nil
}

// parseField parses the inside of a placeholder. known is false for names
// that are not components; those are passed through literally.
func parseField(field string) (segment, bool, error) {
	name, spec, hasSpec := strings.Cut(field, ":")
	if name == "" {
		return segment{}, false, errors.New("empty placeholder name")
	}

	component, ok := ParseComponent(name)
	if !ok {
		return segment{}, false, nil
	}

	seg := segment{component: component, fill: ' '}
	if !hasSpec {
		return seg, true, nil
	}

	spec = strings.TrimSuffix(spec, "d")
	if strings.HasPrefix(spec, "0") {
		seg.fill = '0'
		spec = spec[1:]
	}
	if spec != "" {
		width, err := strconv.Atoi(spec)
		if err != nil || width < 0 {
			return segment{}, false, errors.New("invalid format spec for " + name)
		}
		seg.width = width
	}
	return seg, true, nil
}

// String returns the template source.
func (t *Template) String() string {
	return t.raw
}

// Format renders ts into the template.
func (t *Template) Format(ts Timestamp) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.component == "" {
			b.WriteString(seg.literal)
			continue
		}
		v := strconv.FormatInt(ts.value(seg.component), 10)
		for n := len(v); n < seg.width; n++ {
			b.WriteByte(seg.fill)
		}
		b.WriteString(v)
	}
	return b.String()
}

// Missing returns the components the template never renders. Their values
// are dropped from the output.
func (t *Template) Missing() []Component {
	used := make(map[Component]bool, len(Components))
	for _, seg := range t.segments {
		if seg.component != "" {
			used[seg.component] = true
		}
	}

	var missing []Component
	for _, c := range Components {
		if !used[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Format renders ts with tmpl.
func Format(ts Timestamp, tmpl *Template) string {
	return tmpl.Format(ts)
}
