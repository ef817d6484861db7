// Package formdoc encodes wire documents as application/x-www-form-urlencoded
// bodies. Unlike url.Values.Encode, pairs keep document order.
package formdoc

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-paygate/pkg/document"
)

const Name = "form"

// Encoder renders documents as form data.
type Encoder struct{}

// New returns a form encoder.
func New() *Encoder { return &Encoder{} }

func (e *Encoder) Name() string { return Name }

func (e *Encoder) ContentType() string { return "application/x-www-form-urlencoded" }

// Encode writes transaction_type first, then every node.
func (e *Encoder) Encode(doc document.WireDocument) ([]byte, error) {
	var b strings.Builder
	write := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	write("transaction_type", doc.TransactionType())
	for _, node := range doc.Nodes() {
		write(node.Name, node.Value)
	}
	return []byte(b.String()), nil
}
