package gateway

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XMLResponse is a flat gateway response: the root element name and the text
// of each direct child keyed by element name.
type XMLResponse struct {
	Root   string
	Fields map[string]string
}

// Get returns the text of a child element.
func (r XMLResponse) Get(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// XMLResponseParser decodes flat XML responses such as
// <payment_response><status>approved</status></payment_response>. Nested
// elements deeper than one level are ignored.
type XMLResponseParser struct{}

var _ ResponseParser = XMLResponseParser{}

// Parse returns an XMLResponse.
func (XMLResponseParser) Parse(ctx context.Context, raw []byte) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))

	resp := XMLResponse{Fields: map[string]string{}}
	depth := 0
	var current string
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gateway: decode xml response: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				resp.Root = t.Name.Local
			case 2:
				current = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 2 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 2 {
				resp.Fields[current] = strings.TrimSpace(text.String())
			}
			depth--
		}
	}
	if resp.Root == "" {
		return nil, errors.New("gateway: xml response has no root element")
	}
	return resp, nil
}
