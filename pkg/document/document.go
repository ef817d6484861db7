package document

import (
	"errors"

	"github.com/goliatone/go-paygate/pkg/request"
	"github.com/goliatone/go-paygate/pkg/validation"
)

// ErrNotValidated is returned by Build when the supplied validation result is
// not a passing verdict for the instance at its current revision.
var ErrNotValidated = errors.New("document: request has not been validated")

// Node is one rendered field of a wire document.
type Node struct {
	// Field is the schema field name ("transactionId").
	Field string `json:"field"`
	// Name is the wire element name ("transaction_id").
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WireDocument is the ordered, rendered form of a validated request. It is
// immutable; accessors return copies.
type WireDocument struct {
	requestType     string
	transactionType string
	root            string
	nodes           []Node
}

// Build renders inst into a WireDocument. result must come from
// validation.Validate(inst) and the instance must not have changed since.
// Nodes follow the schema's declared field order and unset fields are
// omitted.
func Build(inst *request.Instance, result validation.Result) (WireDocument, error) {
	if inst == nil || !result.Valid || !result.Covers(inst) {
		return WireDocument{}, ErrNotValidated
	}

	rt := inst.Schema()
	doc := WireDocument{
		requestType:     rt.ID(),
		transactionType: rt.TransactionType(),
		root:            rt.Root(),
	}
	for _, field := range rt.Fields() {
		value, ok := inst.Get(field.Name)
		if !ok {
			continue
		}
		doc.nodes = append(doc.nodes, Node{
			Field: field.Name,
			Name:  field.Node,
			Value: value.Render(),
		})
	}
	return doc, nil
}

// RequestType is the registry identifier of the source request.
func (d WireDocument) RequestType() string { return d.requestType }

// TransactionType is the gateway transaction type.
func (d WireDocument) TransactionType() string { return d.transactionType }

// Root is the document root element name.
func (d WireDocument) Root() string { return d.root }

// Nodes returns a copy of the ordered nodes.
func (d WireDocument) Nodes() []Node {
	return append([]Node(nil), d.nodes...)
}

// Len returns the number of nodes.
func (d WireDocument) Len() int { return len(d.nodes) }

// Empty reports whether the document carries no nodes.
func (d WireDocument) Empty() bool { return len(d.nodes) == 0 }

// Value returns the rendered value for a schema field name.
func (d WireDocument) Value(field string) (string, bool) {
	for _, node := range d.nodes {
		if node.Field == field {
			return node.Value, true
		}
	}
	return "", false
}

// Fields lists the schema field names in node order.
func (d WireDocument) Fields() []string {
	out := make([]string, len(d.nodes))
	for i, node := range d.nodes {
		out[i] = node.Field
	}
	return out
}
