package schema

import (
	"fmt"
	"strings"
)

// Kind is the semantic data type of a request field. It governs both the
// set-time checks applied to incoming values and how the value is rendered
// into the wire document.
type Kind string

const (
	KindString   Kind = "string"
	KindInteger  Kind = "integer"
	KindEnum     Kind = "enum"
	KindURL      Kind = "url"
	KindEmail    Kind = "email"
	KindCurrency Kind = "currency"
	KindIP       Kind = "ip"
	KindAmount   Kind = "amount"
)

var knownKinds = map[Kind]struct{}{
	KindString:   {},
	KindInteger:  {},
	KindEnum:     {},
	KindURL:      {},
	KindEmail:    {},
	KindCurrency: {},
	KindIP:       {},
	KindAmount:   {},
}

// ParseKind resolves a kind identifier as it appears in catalog files. The
// lookup is case-insensitive and accepts "currencyCode" as an alias.
func ParseKind(raw string) (Kind, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "currencycode" {
		trimmed = string(KindCurrency)
	}
	kind := Kind(trimmed)
	if !kind.Valid() {
		return "", fmt.Errorf("schema: unknown field kind %q", raw)
	}
	return kind, nil
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := knownKinds[k]
	return ok
}

// Numeric reports whether values of this kind are stored as integers.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindAmount
}

// Textual reports whether MaxLength applies to the kind.
func (k Kind) Textual() bool {
	switch k {
	case KindString, KindURL, KindEmail:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}
