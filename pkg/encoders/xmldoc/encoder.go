// Package xmldoc encodes wire documents as gateway XML:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<payment_transaction>
//	  <transaction_type>webmoney</transaction_type>
//	  <transaction_id>...</transaction_id>
//	</payment_transaction>
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/goliatone/go-paygate/pkg/document"
)

const (
	Name        = "xml"
	contentType = "text/xml; charset=utf-8"
)

// Option customises the encoder.
type Option func(*Encoder)

// WithIndent overrides the per-level indentation. An empty string produces a
// single-line document.
func WithIndent(indent string) Option {
	return func(e *Encoder) {
		e.indent = indent
	}
}

// WithoutHeader omits the XML declaration.
func WithoutHeader() Option {
	return func(e *Encoder) {
		e.header = false
	}
}

// Encoder renders documents as XML. The zero value is not usable; call New.
type Encoder struct {
	indent string
	header bool
}

// New returns an XML encoder with two-space indentation and a declaration.
func New(opts ...Option) *Encoder {
	e := &Encoder{indent: "  ", header: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

func (e *Encoder) Name() string { return Name }

func (e *Encoder) ContentType() string { return contentType }

// Encode writes the root element, the transaction type and one element per
// node in document order.
func (e *Encoder) Encode(doc document.WireDocument) ([]byte, error) {
	if doc.Root() == "" {
		return nil, fmt.Errorf("xmldoc: document root is required")
	}

	var buf bytes.Buffer
	if e.header {
		buf.WriteString(xml.Header)
	}

	enc := xml.NewEncoder(&buf)
	enc.Indent("", e.indent)

	root := xml.StartElement{Name: xml.Name{Local: doc.Root()}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, fmt.Errorf("xmldoc: encode root: %w", err)
	}
	if err := writeElement(enc, "transaction_type", doc.TransactionType()); err != nil {
		return nil, err
	}
	for _, node := range doc.Nodes() {
		if err := writeElement(enc, node.Name, node.Value); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, fmt.Errorf("xmldoc: encode root: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("xmldoc: flush: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeElement(enc *xml.Encoder, name, value string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("xmldoc: encode %s: %w", name, err)
	}
	if err := enc.EncodeToken(xml.CharData(value)); err != nil {
		return fmt.Errorf("xmldoc: encode %s: %w", name, err)
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("xmldoc: encode %s: %w", name, err)
	}
	return nil
}
