package schema

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Field declares a single recognised field of a request type.
type Field struct {
	// Name is the identifier callers use when setting the field.
	Name string `json:"name" yaml:"name"`
	// Node is the element name used in the wire document. Defaults to the
	// snake_case form of Name.
	Node        string   `json:"node,omitempty" yaml:"node,omitempty"`
	Kind        Kind     `json:"kind" yaml:"kind"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Values      []string `json:"values,omitempty" yaml:"values,omitempty"`
	MaxLength   int      `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// HasValue reports whether member is one of the declared enum values and
// returns its canonical spelling.
func (f Field) HasValue(member string) (string, bool) {
	for _, value := range f.Values {
		if strings.EqualFold(value, member) {
			return value, true
		}
	}
	return "", false
}

func (f Field) clone() Field {
	f.Values = append([]string(nil), f.Values...)
	return f
}

func normaliseField(f Field) (Field, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return Field{}, errors.New("field name is required")
	}
	if !f.Kind.Valid() {
		return Field{}, fmt.Errorf("field %q: unknown kind %q", f.Name, f.Kind)
	}
	f.Node = strings.TrimSpace(f.Node)
	if f.Node == "" {
		f.Node = SnakeCase(f.Name)
	}
	if f.MaxLength < 0 {
		return Field{}, fmt.Errorf("field %q: maxLength must not be negative", f.Name)
	}
	if f.MaxLength > 0 && !f.Kind.Textual() {
		return Field{}, fmt.Errorf("field %q: maxLength is not supported for kind %q", f.Name, f.Kind)
	}

	switch {
	case f.Kind == KindEnum && len(f.Values) == 0:
		return Field{}, fmt.Errorf("field %q: enum requires at least one value", f.Name)
	case f.Kind != KindEnum && len(f.Values) > 0:
		return Field{}, fmt.Errorf("field %q: values are only allowed for enum fields", f.Name)
	}

	values := make([]string, 0, len(f.Values))
	for _, value := range f.Values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return Field{}, fmt.Errorf("field %q: enum value must not be empty", f.Name)
		}
		for _, existing := range values {
			if strings.EqualFold(existing, trimmed) {
				return Field{}, fmt.Errorf("field %q: duplicate enum value %q", f.Name, trimmed)
			}
		}
		values = append(values, trimmed)
	}
	if len(values) > 0 {
		f.Values = values
	} else {
		f.Values = nil
	}
	return f, nil
}

// SnakeCase converts a camelCase identifier into the snake_case form used for
// wire element names ("returnSuccessUrl" -> "return_success_url").
func SnakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
