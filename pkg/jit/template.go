package jit

import (
	"fmt"
	"strings"
)

// DefaultSeparator is prepended to appended template text by ExtendLine.
const DefaultSeparator = "\n"

// ArgSource produces the full ordered argument list for a Template whose
// bindings are computed as a batch rather than held individually. Returned
// values may themselves be Evaluable; rendering resolves them.
type ArgSource func() ([]any, error)

// Template is a deferred template string: static text containing {}
// placeholders, bound to an ordered list of jit values. Every Render
// re-resolves all bindings and substitutes the fresh results positionally,
// left to right. The literal sequences {{ and }} escape a brace.
//
// Placeholder and binding counts are deliberately not validated at
// construction; an inconsistent Template builds fine and only fails with a
// *FormatError once rendered. Callers rely on being able to construct a
// partial template before all bindings are known.
type Template struct {
	text     string
	bindings []Evaluable
	source   ArgSource
}

// NewTemplate binds text to an ordered list of jit values.
func NewTemplate(text string, bindings ...Evaluable) *Template {
	return &Template{text: text, bindings: bindings}
}

// NewTemplateFunc binds text to a single source that yields the whole
// argument list at render time. A source-backed Template cannot be
// extended.
func NewTemplateFunc(text string, source ArgSource) *Template {
	return &Template{text: text, source: source}
}

// Text returns the current template text.
func (t *Template) Text() string {
	return t.text
}

// Bindings returns the bound values, or nil for a source-backed Template.
func (t *Template) Bindings() []Evaluable {
	return t.bindings
}

// Extend appends more template text, prefixed by sep, and more bindings.
// It fails with an ErrConfiguration-wrapped error on a source-backed
// Template, whose argument list is not a sequence that can grow.
func (t *Template) Extend(text string, bindings []Evaluable, sep string) error {
	if t.source != nil {
		return fmt.Errorf("cannot extend a template backed by an argument source: %w", ErrConfiguration)
	}
	t.text += sep + text
	t.bindings = append(t.bindings, bindings...)
	return nil
}

// ExtendLine appends text and bindings on a new line.
func (t *Template) ExtendLine(text string, bindings ...Evaluable) error {
	return t.Extend(text, bindings, DefaultSeparator)
}

// Render produces the current string: it resolves every binding (or the
// source), stringifies each value, and substitutes the placeholders in
// order. A count mismatch fails with *FormatError.
func (t *Template) Render() (string, error) {
	values, err := t.resolveValues()
	if err != nil {
		return "", err
	}
	return substitute(t.text, values)
}

// Resolve satisfies Evaluable, so a Template can itself be a binding of a
// larger Template.
func (t *Template) Resolve() (any, error) {
	return t.Render()
}

func (t *Template) resolveValues() ([]string, error) {
	var raw []any
	if t.source != nil {
		vs, err := t.source()
		if err != nil {
			return nil, err
		}
		raw = vs
	} else {
		raw = make([]any, len(t.bindings))
		for i, b := range t.bindings {
			raw[i] = b
		}
	}

	out := make([]string, len(raw))
	for i, v := range raw {
		if ev, ok := v.(Evaluable); ok {
			resolved, err := ev.Resolve()
			if err != nil {
				return nil, err
			}
			v = resolved
		}
		out[i] = stringify(v)
	}
	return out, nil
}

// substitute replaces each {} in text with the next value, left to right.
// {{ and }} emit literal braces without consuming a value.
func substitute(text string, values []string) (string, error) {
	var b strings.Builder
	b.Grow(len(text) + 16*len(values))

	next := 0
	used := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			if i+1 < len(text) && text[i+1] == '}' {
				if next < len(values) {
					b.WriteString(values[next])
				}
				next++
				used++
				i++
				continue
			}
			b.WriteByte('{')
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			b.WriteByte('}')
		default:
			b.WriteByte(text[i])
		}
	}

	if used != len(values) {
		return "", &FormatError{Placeholders: used, Values: len(values), Text: text}
	}
	return b.String(), nil
}
