package paygate

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-paygate/pkg/document"
	"github.com/goliatone/go-paygate/pkg/encode"
	"github.com/goliatone/go-paygate/pkg/financial"
	"github.com/goliatone/go-paygate/pkg/gateway"
	"github.com/goliatone/go-paygate/pkg/request"
)

// Request aliases financial.Request for callers importing only the root
// package.
type Request = financial.Request

// WireDocument aliases document.WireDocument.
type WireDocument = document.WireDocument

// Option aliases financial.Option.
type Option = financial.Option

// NewRequest creates a request for a registered request type.
func NewRequest(id string, options ...financial.Option) (*financial.Request, error) {
	return financial.New(id, options...)
}

// BuildDocument populates a request of type id from values and returns its
// wire document. Values are applied in schema order so the first reported
// error is deterministic.
func BuildDocument(id string, values map[string]any, options ...financial.Option) (document.WireDocument, error) {
	req, err := financial.New(id, options...)
	if err != nil {
		return document.WireDocument{}, err
	}
	if err := Populate(req, values); err != nil {
		return document.WireDocument{}, err
	}
	return req.Document()
}

// Populate sets every entry of values on req in schema order. Keys that are
// not fields of the request type fail with request.ErrUnknownField before any
// value is applied; a value rejected by its kind stops population at that
// field.
func Populate(req *financial.Request, values map[string]any) error {
	if req == nil {
		return errors.New("paygate: request is required")
	}
	rt := req.Schema()
	for _, key := range sortedKeys(values) {
		if _, ok := rt.Field(key); !ok {
			return &request.UnknownFieldError{RequestType: rt.ID(), Field: key}
		}
	}
	for _, field := range rt.Fields() {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		if err := req.Set(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// Encode builds the document for id and encodes it with the named built-in
// encoder. An empty name selects XML.
func Encode(id string, values map[string]any, encoderName string, options ...financial.Option) ([]byte, error) {
	doc, err := BuildDocument(id, values, options...)
	if err != nil {
		return nil, err
	}
	if encoderName == "" {
		encoderName = encode.DefaultEncoder
	}
	encoder, err := encode.DefaultRegistry().Get(encoderName)
	if err != nil {
		return nil, fmt.Errorf("paygate: %w", err)
	}
	return encoder.Encode(doc)
}

// NewClient exposes the gateway client constructor from the top-level module.
func NewClient(transport gateway.Transport, options ...gateway.Option) (*gateway.Client, error) {
	return gateway.New(transport, options...)
}
