package request

import (
	"strconv"

	"github.com/goliatone/go-paygate/internal/fieldcheck"
	"github.com/goliatone/go-paygate/pkg/schema"
)

// Value is the normalised form of an accepted field value.
type Value struct {
	Kind schema.Kind
	Int  int64
	Text string
}

// Render formats the value for the wire: base-10 for numeric kinds, the
// stored text otherwise.
func (v Value) Render() string {
	if v.Kind.Numeric() {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Text
}

// Instance holds the values set for one concrete request. It is owned by a
// single caller and is not safe for concurrent mutation.
type Instance struct {
	schema   *schema.RequestType
	values   map[string]Value
	revision uint64
}

// New creates an empty instance bound to rt.
func New(rt *schema.RequestType) *Instance {
	return &Instance{
		schema: rt,
		values: make(map[string]Value),
	}
}

// Schema returns the request type the instance is bound to.
func (i *Instance) Schema() *schema.RequestType {
	return i.schema
}

// Set validates value against the declared kind of field and stores it. The
// instance is left untouched when an error is returned.
func (i *Instance) Set(field string, value any) error {
	decl, ok := i.schema.Field(field)
	if !ok {
		return &UnknownFieldError{RequestType: i.schema.ID(), Field: field}
	}
	normalized, err := fieldcheck.Check(decl, value)
	if err != nil {
		return &InvalidFieldValueError{Field: decl.Name, Kind: decl.Kind, Reason: err.Error()}
	}
	i.values[decl.Name] = Value{Kind: decl.Kind, Int: normalized.Int, Text: normalized.Text}
	i.revision++
	return nil
}

// Unset removes a previously set value. Unsetting a field that was never set
// is a no-op.
func (i *Instance) Unset(field string) error {
	if _, ok := i.schema.Field(field); !ok {
		return &UnknownFieldError{RequestType: i.schema.ID(), Field: field}
	}
	if _, ok := i.values[field]; !ok {
		return nil
	}
	delete(i.values, field)
	i.revision++
	return nil
}

// Get returns the stored value for field.
func (i *Instance) Get(field string) (Value, bool) {
	v, ok := i.values[field]
	return v, ok
}

// IsSet reports whether field holds a value.
func (i *Instance) IsSet(field string) bool {
	_, ok := i.values[field]
	return ok
}

// Rendered returns the wire representation of field.
func (i *Instance) Rendered(field string) (string, bool) {
	v, ok := i.values[field]
	if !ok {
		return "", false
	}
	return v.Render(), true
}

// SetFields lists the populated field names in schema order.
func (i *Instance) SetFields() []string {
	out := make([]string, 0, len(i.values))
	for _, field := range i.schema.Fields() {
		if _, ok := i.values[field.Name]; ok {
			out = append(out, field.Name)
		}
	}
	return out
}

// Len returns the number of populated fields.
func (i *Instance) Len() int {
	return len(i.values)
}

// Revision increases every time the instance is modified. Validation results
// record it so stale verdicts can be detected.
func (i *Instance) Revision() uint64 {
	return i.revision
}

var _ schema.Values = (*Instance)(nil)
