package paygate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-paygate/pkg/catalog"
	"github.com/goliatone/go-paygate/pkg/registry"
	"github.com/goliatone/go-paygate/pkg/schema"
)

// LoadRegistry returns the default registry extended with every catalog file
// found under dirs. Without dirs it returns registry.Default().
func LoadRegistry(dirs ...string) (*registry.Registry, error) {
	var paths []string
	for _, dir := range dirs {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	if len(paths) == 0 {
		return registry.Default(), nil
	}

	var extra []*schema.RequestType
	for _, dir := range paths {
		types, err := catalog.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("paygate: load catalog %s: %w", dir, err)
		}
		extra = append(extra, types...)
	}
	reg, err := registry.Extend(extra...)
	if err != nil {
		return nil, fmt.Errorf("paygate: %w", err)
	}
	return reg, nil
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
