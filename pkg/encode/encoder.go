package encode

import "github.com/goliatone/go-paygate/pkg/document"

// Encoder serialises a WireDocument into a gateway payload (XML, JSON, form
// data, templated text).
type Encoder interface {
	Name() string
	ContentType() string
	Encode(doc document.WireDocument) ([]byte, error)
}
