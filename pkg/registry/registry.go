package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-paygate/pkg/schema"
)

// ErrUnknownRequestType is matched by errors returned from SchemaFor when the
// identifier has no registered schema.
var ErrUnknownRequestType = errors.New("unknown request type")

// UnknownRequestTypeError carries the identifier that failed to resolve.
type UnknownRequestTypeError struct {
	ID string
}

func (e *UnknownRequestTypeError) Error() string {
	return fmt.Sprintf("registry: unknown request type %q", e.ID)
}

// Is lets errors.Is match ErrUnknownRequestType.
func (e *UnknownRequestTypeError) Is(target error) bool {
	return target == ErrUnknownRequestType
}

// Registry maps request-type identifiers to schemas. It is populated once by
// New and exposes no mutation afterwards, so it is safe for concurrent reads
// without locking.
type Registry struct {
	types map[string]*schema.RequestType
	ids   []string
}

// New builds a registry from the supplied request types. Nil entries and
// duplicate identifiers are rejected.
func New(types ...*schema.RequestType) (*Registry, error) {
	r := &Registry{
		types: make(map[string]*schema.RequestType, len(types)),
		ids:   make([]string, 0, len(types)),
	}
	for _, rt := range types {
		if rt == nil {
			return nil, errors.New("registry: request type is required")
		}
		id := rt.ID()
		if _, exists := r.types[id]; exists {
			return nil, fmt.Errorf("registry: request type %q already registered", id)
		}
		r.types[id] = rt
		r.ids = append(r.ids, id)
	}
	sort.Strings(r.ids)
	return r, nil
}

// MustNew panics on construction failure. Useful for init-time wiring.
func MustNew(types ...*schema.RequestType) *Registry {
	r, err := New(types...)
	if err != nil {
		panic(err)
	}
	return r
}

// SchemaFor resolves the schema registered under id.
func (r *Registry) SchemaFor(id string) (*schema.RequestType, error) {
	key := strings.TrimSpace(id)
	if r != nil {
		if rt, ok := r.types[key]; ok {
			return rt, nil
		}
	}
	return nil, &UnknownRequestTypeError{ID: key}
}

// MustSchemaFor panics if the request type is unknown.
func (r *Registry) MustSchemaFor(id string) *schema.RequestType {
	rt, err := r.SchemaFor(id)
	if err != nil {
		panic(err)
	}
	return rt
}

// List returns the sorted registered identifiers.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.ids...)
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	if r == nil {
		return false
	}
	_, ok := r.types[strings.TrimSpace(id)]
	return ok
}

// Types returns every registered schema ordered by identifier, ready to be
// passed to New together with additional request types.
func (r *Registry) Types() []*schema.RequestType {
	if r == nil {
		return nil
	}
	out := make([]*schema.RequestType, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.types[id])
	}
	return out
}

// Len returns the number of registered request types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ids)
}
