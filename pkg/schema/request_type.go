package schema

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultRoot is the document root element used when a definition omits one.
const DefaultRoot = "payment_transaction"

// Definition is the mutable blueprint of a request type. It is turned into an
// immutable RequestType by NewRequestType.
type Definition struct {
	ID              string
	TransactionType string
	Root            string
	Description     string
	Fields          []Field
	Constraints     []Constraint
}

// RequestType is the ordered, read-only field contract of one instrument or
// operation. Field order determines node order in rendered documents.
type RequestType struct {
	id              string
	transactionType string
	root            string
	description     string
	fields          []Field
	index           map[string]int
	constraints     []Constraint
}

// NewRequestType validates a definition and freezes it.
func NewRequestType(def Definition) (*RequestType, error) {
	id := strings.TrimSpace(def.ID)
	if id == "" {
		return nil, errors.New("schema: request type id is required")
	}
	if len(def.Fields) == 0 {
		return nil, fmt.Errorf("schema: request type %q declares no fields", id)
	}

	rt := &RequestType{
		id:              id,
		transactionType: strings.TrimSpace(def.TransactionType),
		root:            strings.TrimSpace(def.Root),
		description:     strings.TrimSpace(def.Description),
		fields:          make([]Field, 0, len(def.Fields)),
		index:           make(map[string]int, len(def.Fields)),
	}
	if rt.transactionType == "" {
		rt.transactionType = id
	}
	if rt.root == "" {
		rt.root = DefaultRoot
	}

	nodes := make(map[string]string, len(def.Fields))
	for _, raw := range def.Fields {
		field, err := normaliseField(raw)
		if err != nil {
			return nil, fmt.Errorf("schema: request type %q: %w", id, err)
		}
		if _, exists := rt.index[field.Name]; exists {
			return nil, fmt.Errorf("schema: request type %q: duplicate field %q", id, field.Name)
		}
		if owner, exists := nodes[field.Node]; exists {
			return nil, fmt.Errorf("schema: request type %q: fields %q and %q share node %q", id, owner, field.Name, field.Node)
		}
		nodes[field.Node] = field.Name
		rt.index[field.Name] = len(rt.fields)
		rt.fields = append(rt.fields, field.clone())
	}

	for idx, constraint := range def.Constraints {
		if constraint == nil {
			return nil, fmt.Errorf("schema: request type %q: constraint %d is nil", id, idx)
		}
		refs := constraint.Fields()
		if len(refs) == 0 {
			return nil, fmt.Errorf("schema: request type %q: constraint %q references no fields", id, constraint.Description())
		}
		for _, ref := range refs {
			if _, ok := rt.index[ref]; !ok {
				return nil, fmt.Errorf("schema: request type %q: constraint %q references unknown field %q", id, constraint.Description(), ref)
			}
		}
		rt.constraints = append(rt.constraints, constraint)
	}

	return rt, nil
}

// MustNewRequestType panics if the definition is invalid. Useful for
// package-level instrument declarations and tests.
func MustNewRequestType(def Definition) *RequestType {
	rt, err := NewRequestType(def)
	if err != nil {
		panic(err)
	}
	return rt
}

// ID returns the registry identifier.
func (rt *RequestType) ID() string { return rt.id }

// TransactionType is the gateway transaction type emitted with documents.
func (rt *RequestType) TransactionType() string { return rt.transactionType }

// Root is the wire document root element.
func (rt *RequestType) Root() string { return rt.root }

func (rt *RequestType) Description() string { return rt.description }

// Fields returns a copy of the ordered field declarations.
func (rt *RequestType) Fields() []Field {
	out := make([]Field, len(rt.fields))
	for i, field := range rt.fields {
		out[i] = field.clone()
	}
	return out
}

// Field looks up a declaration by name.
func (rt *RequestType) Field(name string) (Field, bool) {
	idx, ok := rt.index[name]
	if !ok {
		return Field{}, false
	}
	return rt.fields[idx].clone(), true
}

// Position returns the declared index of a field, or -1.
func (rt *RequestType) Position(name string) int {
	idx, ok := rt.index[name]
	if !ok {
		return -1
	}
	return idx
}

// Required lists required field names in declaration order.
func (rt *RequestType) Required() []string {
	var out []string
	for _, field := range rt.fields {
		if field.Required {
			out = append(out, field.Name)
		}
	}
	return out
}

// Constraints returns the declared cross-field predicates in order.
func (rt *RequestType) Constraints() []Constraint {
	return append([]Constraint(nil), rt.constraints...)
}

// Len returns the number of declared fields.
func (rt *RequestType) Len() int { return len(rt.fields) }
