package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-paygate/pkg/schema"
)

// Constraint type identifiers accepted in catalog files.
const (
	ConstraintRequires = "requires"
	ConstraintTogether = "together"
	ConstraintWhen     = "when"
)

type documentFile struct {
	RequestTypes []requestTypeFile `json:"requestTypes" yaml:"requestTypes"`
}

type requestTypeFile struct {
	ID              string           `json:"id" yaml:"id"`
	TransactionType string           `json:"transactionType,omitempty" yaml:"transactionType,omitempty"`
	Root            string           `json:"root,omitempty" yaml:"root,omitempty"`
	Description     string           `json:"description,omitempty" yaml:"description,omitempty"`
	Fields          []fieldFile      `json:"fields" yaml:"fields"`
	Constraints     []constraintFile `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

type fieldFile struct {
	Name        string   `json:"name" yaml:"name"`
	Node        string   `json:"node,omitempty" yaml:"node,omitempty"`
	Kind        string   `json:"kind" yaml:"kind"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Values      []string `json:"values,omitempty" yaml:"values,omitempty"`
	MaxLength   int      `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

type constraintFile struct {
	Type    string   `json:"type" yaml:"type"`
	Field   string   `json:"field,omitempty" yaml:"field,omitempty"`
	Needs   []string `json:"needs,omitempty" yaml:"needs,omitempty"`
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`
	Equals  string   `json:"equals,omitempty" yaml:"equals,omitempty"`
	Require []string `json:"require,omitempty" yaml:"require,omitempty"`
}

func (r requestTypeFile) definition() (schema.Definition, error) {
	def := schema.Definition{
		ID:              r.ID,
		TransactionType: r.TransactionType,
		Root:            r.Root,
		Description:     r.Description,
		Fields:          make([]schema.Field, 0, len(r.Fields)),
	}
	for _, raw := range r.Fields {
		kind, err := schema.ParseKind(raw.Kind)
		if err != nil {
			return schema.Definition{}, fmt.Errorf("field %q: %w", raw.Name, err)
		}
		def.Fields = append(def.Fields, schema.Field{
			Name:        raw.Name,
			Node:        raw.Node,
			Kind:        kind,
			Required:    raw.Required,
			Values:      raw.Values,
			MaxLength:   raw.MaxLength,
			Description: raw.Description,
		})
	}
	for idx, raw := range r.Constraints {
		constraint, err := raw.constraint()
		if err != nil {
			return schema.Definition{}, fmt.Errorf("constraint %d: %w", idx, err)
		}
		def.Constraints = append(def.Constraints, constraint)
	}
	return def, nil
}

func (c constraintFile) constraint() (schema.Constraint, error) {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case ConstraintRequires:
		if c.Field == "" || len(c.Needs) == 0 {
			return nil, errors.New("requires needs both field and needs")
		}
		return schema.Requires{Field: c.Field, Needs: c.Needs}, nil
	case ConstraintTogether:
		if len(c.Members) < 2 {
			return nil, errors.New("together needs at least two members")
		}
		return schema.Together{Members: c.Members}, nil
	case ConstraintWhen:
		if c.Field == "" || c.Equals == "" || len(c.Require) == 0 {
			return nil, errors.New("when needs field, equals and require")
		}
		return schema.When{Field: c.Field, Equals: c.Equals, Require: c.Require}, nil
	case "":
		return nil, errors.New("constraint type is required")
	default:
		return nil, fmt.Errorf("unknown constraint type %q", c.Type)
	}
}

func constraintToFile(constraint schema.Constraint) (constraintFile, bool) {
	switch c := constraint.(type) {
	case schema.Requires:
		return constraintFile{Type: ConstraintRequires, Field: c.Field, Needs: c.Needs}, true
	case schema.Together:
		return constraintFile{Type: ConstraintTogether, Members: c.Members}, true
	case schema.When:
		return constraintFile{Type: ConstraintWhen, Field: c.Field, Equals: c.Equals, Require: c.Require}, true
	default:
		return constraintFile{}, false
	}
}
