package iaga2002

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadTemplate indicates a URL template that cannot be parsed: an
// unclosed brace or a placeholder outside the fixed set.
var ErrBadTemplate = errors.New("malformed url template")

// PlaceholderValues carries the substitutions for one rendered URL.
type PlaceholderValues struct {
	IntervalAbbreviation string // {i}
	IntervalName         string // {interval}
	Observatory          string // {obs}, lowercase
	ObservatoryUpper     string // {OBS}
	TypeAbbreviation     string // {t}
	TypeName             string // {type}
	Date                 string // {ymd}, formatted YYYYMMDD
}

type templateSegment struct {
	literal     string
	placeholder string // empty for literal segments
}

// URLTemplate is a location template over the fixed placeholder set
// {i}, {interval}, {obs}, {OBS}, {t}, {type} and {ymd}. Placeholders are
// validated when the template is parsed, so rendering is total: an unknown
// placeholder is a configuration error, never a silently ignored token.
type URLTemplate struct {
	raw      string
	segments []templateSegment
}

// ParseTemplate validates and compiles a URL template.
func ParseTemplate(raw string) (*URLTemplate, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty template: %w", ErrBadTemplate)
	}

	t := &URLTemplate{raw: raw}
	rest := raw
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if rest != "" {
				t.segments = append(t.segments, templateSegment{literal: rest})
			}
			return t, nil
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return nil, fmt.Errorf("unclosed placeholder in %q: %w", raw, ErrBadTemplate)
		}
		name := rest[open+1 : open+closing]
		if !knownPlaceholder(name) {
			return nil, fmt.Errorf("unknown placeholder {%s} in %q: %w", name, raw, ErrBadTemplate)
		}
		if open > 0 {
			t.segments = append(t.segments, templateSegment{literal: rest[:open]})
		}
		t.segments = append(t.segments, templateSegment{placeholder: name})
		rest = rest[open+closing+1:]
	}
}

func knownPlaceholder(name string) bool {
	switch name {
	case "i", "interval", "obs", "OBS", "t", "type", "ymd":
		return true
	}
	return false
}

// Render substitutes every placeholder. Pure and total for parsed templates.
func (t *URLTemplate) Render(v PlaceholderValues) string {
	var b strings.Builder
	for _, seg := range t.segments {
		switch seg.placeholder {
		case "":
			b.WriteString(seg.literal)
		case "i":
			b.WriteString(v.IntervalAbbreviation)
		case "interval":
			b.WriteString(v.IntervalName)
		case "obs":
			b.WriteString(v.Observatory)
		case "OBS":
			b.WriteString(v.ObservatoryUpper)
		case "t":
			b.WriteString(v.TypeAbbreviation)
		case "type":
			b.WriteString(v.TypeName)
		case "ymd":
			b.WriteString(v.Date)
		}
	}
	return b.String()
}

// uses reports whether the template references the named placeholder.
func (t *URLTemplate) uses(name string) bool {
	for _, seg := range t.segments {
		if seg.placeholder == name {
			return true
		}
	}
	return false
}

// IsFile reports whether the template addresses the local filesystem.
func (t *URLTemplate) IsFile() bool {
	return strings.HasPrefix(t.raw, "file://")
}

func (t *URLTemplate) String() string { return t.raw }
