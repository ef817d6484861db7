package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paygate/pkg/registry"
	"github.com/goliatone/go-paygate/pkg/request"
)

// MustInstance builds a request instance for id from the default registry and
// applies values. Any failure aborts the test.
func MustInstance(t *testing.T, id string, values map[string]any) *request.Instance {
	t.Helper()

	rt, err := registry.Default().SchemaFor(id)
	if err != nil {
		t.Fatalf("schema for %s: %v", id, err)
	}
	inst := request.New(rt)
	for _, field := range rt.Fields() {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		if err := inst.Set(field.Name, value); err != nil {
			t.Fatalf("set %s: %v", field.Name, err)
		}
	}
	for name := range values {
		if _, ok := rt.Field(name); !ok {
			t.Fatalf("fixture references unknown field %q for %s", name, id)
		}
	}
	return inst
}

// LoadValues reads a YAML or JSON map of field values. Callers outside of
// *testing.T can use it to wire fixtures in setup code.
func LoadValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, errors.New("testsupport: values path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read values: %w", err)
	}
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal values: %w", err)
	}
	return out, nil
}

// MustLoadValues is LoadValues for tests.
func MustLoadValues(t *testing.T, path string) map[string]any {
	t.Helper()

	values, err := LoadValues(path)
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	return values
}

// MustLoadJSON decodes a JSON golden file into out.
func MustLoadJSON(t *testing.T, path string, out any) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, append(payload, '\n'))
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
