package registry

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-paygate/pkg/catalog"
	"github.com/goliatone/go-paygate/pkg/schema"
)

//go:embed catalog/*.yaml
var embeddedCatalog embed.FS

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// CatalogFS exposes the built-in catalog files so tooling can lint or extend
// them.
func CatalogFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "catalog")
	if err != nil {
		return embeddedCatalog
	}
	return sub
}

// Default returns the process-wide registry holding the built-in request
// types. It is built on first use and never changes afterwards.
func Default() *Registry {
	defaultOnce.Do(func() {
		types, err := catalog.LoadFS(CatalogFS())
		if err != nil {
			panic(fmt.Sprintf("registry: load embedded catalog: %v", err))
		}
		defaultRegistry = MustNew(types...)
	})
	return defaultRegistry
}

// Extend returns a new registry holding the built-in request types plus
// extra. The default registry itself is left untouched.
func Extend(extra ...*schema.RequestType) (*Registry, error) {
	types := append(Default().Types(), extra...)
	return New(types...)
}
