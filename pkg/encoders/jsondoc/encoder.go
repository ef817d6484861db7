// Package jsondoc encodes wire documents as a JSON object keyed by the root
// element. Member order matches node order.
package jsondoc

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/goliatone/go-paygate/pkg/document"
)

const Name = "json"

// Encoder renders documents as JSON.
type Encoder struct {
	api sonic.API
}

// New returns a JSON encoder whose string escaping matches encoding/json.
func New() *Encoder {
	return &Encoder{api: sonic.ConfigStd}
}

func (e *Encoder) Name() string { return Name }

func (e *Encoder) ContentType() string { return "application/json" }

// Encode produces {"<root>":{"transaction_type":...,"<node>":"<value>",...}}.
func (e *Encoder) Encode(doc document.WireDocument) ([]byte, error) {
	if doc.Root() == "" {
		return nil, fmt.Errorf("jsondoc: document root is required")
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := e.writeString(&buf, doc.Root()); err != nil {
		return nil, err
	}
	buf.WriteString(":{")
	if err := e.writeMember(&buf, "transaction_type", doc.TransactionType()); err != nil {
		return nil, err
	}
	for _, node := range doc.Nodes() {
		buf.WriteByte(',')
		if err := e.writeMember(&buf, node.Name, node.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func (e *Encoder) writeMember(buf *bytes.Buffer, key, value string) error {
	if err := e.writeString(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return e.writeString(buf, value)
}

func (e *Encoder) writeString(buf *bytes.Buffer, value string) error {
	raw, err := e.api.Marshal(value)
	if err != nil {
		return fmt.Errorf("jsondoc: encode %q: %w", value, err)
	}
	buf.Write(raw)
	return nil
}
