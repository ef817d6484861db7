package openapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paygate/pkg/registry"
	"github.com/goliatone/go-paygate/pkg/schema"
)

// Extension keys carried on exported schemas.
const (
	ExtensionNamespace = "x-paygate"
	ExtKind            = ExtensionNamespace + "-kind"
	ExtNode            = ExtensionNamespace + "-node"
	ExtOrder           = ExtensionNamespace + "-order"
	ExtRoot            = ExtensionNamespace + "-root"
	ExtTransactionType = ExtensionNamespace + "-transaction-type"
	ExtConstraints     = ExtensionNamespace + "-constraints"
)

const (
	defaultOpenAPIVersion  = "3.0.3"
	defaultDocumentTitle   = "paygate request types"
	defaultDocumentVersion = "1.0.0"
	currencyPattern        = "^[A-Z]{3}$"
)

// Info describes the exported document.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Export builds an OpenAPI document with one component schema per request
// type registered in reg.
func Export(reg *registry.Registry, info Info) *openapi3.T {
	if info.Title == "" {
		info.Title = defaultDocumentTitle
	}
	if info.Version == "" {
		info.Version = defaultDocumentVersion
	}

	doc := &openapi3.T{
		OpenAPI: defaultOpenAPIVersion,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}
	for _, rt := range reg.Types() {
		doc.Components.Schemas[rt.ID()] = &openapi3.SchemaRef{Value: RequestTypeSchema(rt)}
	}
	return doc
}

// RequestTypeSchema converts one request type into an object schema. Field
// order, wire names and kinds travel as x-paygate extensions.
func RequestTypeSchema(rt *schema.RequestType) *openapi3.Schema {
	out := &openapi3.Schema{
		Type:        &openapi3.Types{"object"},
		Description: rt.Description(),
		Properties:  openapi3.Schemas{},
		Required:    rt.Required(),
		Extensions: map[string]any{
			ExtRoot:            rt.Root(),
			ExtTransactionType: rt.TransactionType(),
		},
	}

	order := make([]string, 0, rt.Len())
	for _, field := range rt.Fields() {
		order = append(order, field.Name)
		out.Properties[field.Name] = &openapi3.SchemaRef{Value: fieldSchema(field)}
	}
	out.Extensions[ExtOrder] = order

	if constraints := rt.Constraints(); len(constraints) > 0 {
		descriptions := make([]string, len(constraints))
		for i, c := range constraints {
			descriptions[i] = c.Description()
		}
		out.Extensions[ExtConstraints] = descriptions
	}
	return out
}

func fieldSchema(field schema.Field) *openapi3.Schema {
	s := &openapi3.Schema{
		Description: field.Description,
		Extensions: map[string]any{
			ExtKind: field.Kind.String(),
			ExtNode: field.Node,
		},
	}

	switch field.Kind {
	case schema.KindInteger:
		s.Type = &openapi3.Types{"integer"}
		s.Format = "int64"
	case schema.KindAmount:
		s.Type = &openapi3.Types{"integer"}
		s.Format = "int64"
		lower := float64(0)
		s.Min = &lower
	case schema.KindEnum:
		s.Type = &openapi3.Types{"string"}
		s.Enum = make([]any, len(field.Values))
		for i, v := range field.Values {
			s.Enum[i] = v
		}
	case schema.KindURL:
		s.Type = &openapi3.Types{"string"}
		s.Format = "uri"
	case schema.KindEmail:
		s.Type = &openapi3.Types{"string"}
		s.Format = "email"
	case schema.KindIP:
		s.Type = &openapi3.Types{"string"}
		s.AnyOf = openapi3.SchemaRefs{
			{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "ipv4"}},
			{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "ipv6"}},
		}
	case schema.KindCurrency:
		s.Type = &openapi3.Types{"string"}
		s.Pattern = currencyPattern
	default:
		s.Type = &openapi3.Types{"string"}
		s.MinLength = 1
	}
	if field.MaxLength > 0 {
		limit := uint64(field.MaxLength)
		s.MaxLength = &limit
	}
	return s
}

// Validate runs kin-openapi's document validation.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if doc == nil {
		return fmt.Errorf("openapi: document is required")
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("openapi: validate document: %w", err)
	}
	return nil
}

// MarshalJSON renders doc as indented JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal json: %w", err)
	}
	return raw, nil
}

// MarshalYAML renders doc as YAML. The JSON form is re-read as a YAML node so
// key order matches MarshalJSON.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal json: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("openapi: convert to yaml: %w", err)
	}
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal yaml: %w", err)
	}
	return out, nil
}

// Load parses an OpenAPI document from JSON or YAML bytes.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}
