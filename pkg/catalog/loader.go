package catalog

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paygate/pkg/schema"
)

// LoadFS walks the provided filesystem and parses every JSON/YAML catalog
// file into request types. Files are visited in lexical order and request
// types keep their in-file order, so the result is deterministic. A nil fsys
// yields no request types.
func LoadFS(fsys fs.FS) ([]*schema.RequestType, error) {
	if fsys == nil {
		return nil, nil
	}

	var (
		out  []*schema.RequestType
		seen = make(map[string]string)
	)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		types, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, rt := range types {
			if previous, exists := seen[rt.ID()]; exists {
				return fmt.Errorf("catalog: duplicate request type %q (files %s and %s)", rt.ID(), previous, path)
			}
			seen[rt.ID()] = path
			out = append(out, rt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadDir loads every catalog file below dir.
func LoadDir(dir string) ([]*schema.RequestType, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog: %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFile parses a single catalog file from disk.
func LoadFile(path string) ([]*schema.RequestType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, filepath.Clean(path))
}

// strictJSON mirrors encoding/json semantics but rejects keys the catalog
// format does not define.
var strictJSON = sonic.Config{
	EscapeHTML:            true,
	SortMapKeys:           true,
	CompactMarshaler:      true,
	CopyString:            true,
	ValidateString:        true,
	DisallowUnknownFields: true,
}.Froze()

// Parse decodes one catalog document. Documents starting with '{' are decoded
// as JSON, everything else as YAML. Unknown keys are rejected in both formats;
// source is only used to label errors.
func Parse(data []byte, source string) ([]*schema.RequestType, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("catalog: file %s is empty", source)
	}

	var doc documentFile
	if trimmed[0] == '{' {
		if err := strictJSON.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("catalog: parse %s: invalid JSON: %w", source, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("catalog: parse %s: invalid YAML: %w", source, err)
		}
	}
	if len(doc.RequestTypes) == 0 {
		return nil, fmt.Errorf("catalog: file %s declares no request types", source)
	}

	out := make([]*schema.RequestType, 0, len(doc.RequestTypes))
	for idx, raw := range doc.RequestTypes {
		def, err := raw.definition()
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: request type %d (%s): %w", source, idx, raw.ID, err)
		}
		rt, err := schema.NewRequestType(def)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", source, err)
		}
		out = append(out, rt)
	}
	return out, nil
}

// Marshal renders request types back into the YAML catalog format. Only the
// declarative constraint forms survive; schema.Func constraints are skipped.
func Marshal(types []*schema.RequestType) ([]byte, error) {
	doc := documentFile{RequestTypes: make([]requestTypeFile, 0, len(types))}
	for _, rt := range types {
		if rt == nil {
			continue
		}
		entry := requestTypeFile{
			ID:              rt.ID(),
			TransactionType: rt.TransactionType(),
			Root:            rt.Root(),
			Description:     rt.Description(),
		}
		for _, field := range rt.Fields() {
			entry.Fields = append(entry.Fields, fieldFile{
				Name:        field.Name,
				Node:        field.Node,
				Kind:        field.Kind.String(),
				Required:    field.Required,
				Values:      field.Values,
				MaxLength:   field.MaxLength,
				Description: field.Description,
			})
		}
		for _, constraint := range rt.Constraints() {
			if encoded, ok := constraintToFile(constraint); ok {
				entry.Constraints = append(entry.Constraints, encoded)
			}
		}
		doc.RequestTypes = append(doc.RequestTypes, entry)
	}
	return yaml.Marshal(doc)
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// SortedIDs is a small helper for tooling that prints catalog contents.
func SortedIDs(types []*schema.RequestType) []string {
	ids := make([]string, 0, len(types))
	for _, rt := range types {
		if rt != nil {
			ids = append(ids, rt.ID())
		}
	}
	sort.Strings(ids)
	return ids
}
