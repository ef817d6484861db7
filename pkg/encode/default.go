package encode

import (
	"github.com/goliatone/go-paygate/pkg/encoders/formdoc"
	"github.com/goliatone/go-paygate/pkg/encoders/jsondoc"
	"github.com/goliatone/go-paygate/pkg/encoders/xmldoc"
)

var (
	_ Encoder = xmldoc.New()
	_ Encoder = jsondoc.New()
	_ Encoder = formdoc.New()
)

// DefaultEncoder is the encoder name used when callers do not pick one.
const DefaultEncoder = xmldoc.Name

// DefaultRegistry returns a fresh registry holding the built-in xml, json and
// form encoders. Callers may register more on the returned value.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(xmldoc.New())
	reg.MustRegister(jsondoc.New())
	reg.MustRegister(formdoc.New())
	return reg
}
