package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-paygate/pkg/catalog"
	"github.com/goliatone/go-paygate/pkg/openapi"
	"github.com/goliatone/go-paygate/pkg/registry"
	"github.com/goliatone/go-paygate/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("paygate-lint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(fs.Output(), "\nLint request type catalogs and their OpenAPI export. Without paths the embedded catalog is linted.\n\n")
		fs.PrintDefaults()
	}
	standalone := fs.Bool("standalone", false, "do not merge the built-in request types")
	exportPath := fs.String("openapi", "", "write the OpenAPI export to this file (.json or .yaml)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var (
		violations []violation
		types      []*schema.RequestType
	)
	paths := fs.Args()
	if len(paths) == 0 {
		loaded, err := catalog.LoadFS(registry.CatalogFS())
		if err != nil {
			violations = append(violations, violation{file: "embedded", location: "catalog", message: err.Error()})
		}
		types = loaded
		*standalone = true
	}
	for _, path := range paths {
		loaded, err := loadPath(path)
		if err != nil {
			violations = append(violations, violation{file: path, location: "catalog", message: err.Error()})
			continue
		}
		types = append(types, loaded...)
	}

	var (
		reg *registry.Registry
		err error
	)
	if *standalone {
		reg, err = registry.New(types...)
	} else {
		reg, err = registry.Extend(types...)
	}
	if err != nil {
		violations = append(violations, violation{file: "registry", location: "request types", message: err.Error()})
	}

	if reg != nil {
		doc := openapi.Export(reg, openapi.Info{})
		if err := openapi.Validate(ctx, doc); err != nil {
			violations = append(violations, violation{file: "openapi", location: "document", message: err.Error()})
		}
		violations = append(violations, lintDocument(doc)...)
		if *exportPath != "" && len(violations) == 0 {
			if err := writeExport(doc, *exportPath); err != nil {
				fmt.Fprintf(stderr, "write %s: %v\n", *exportPath, err)
				return 1
			}
		}
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		return 1
	}

	fmt.Fprintf(stdout, "ok: %d request types (%s)\n", reg.Len(), strings.Join(reg.List(), ", "))
	return 0
}

func loadPath(path string) ([]*schema.RequestType, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return catalog.LoadDir(path)
	}
	return catalog.LoadFile(path)
}

// lintDocument checks that every exported property carries the extensions
// consumers rely on to rebuild wire documents.
func lintDocument(doc *openapi3.T) []violation {
	var result []violation
	ids := make([]string, 0, len(doc.Components.Schemas))
	for id := range doc.Components.Schemas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ref := doc.Components.Schemas[id]
		if ref == nil || ref.Value == nil {
			result = append(result, violation{file: "openapi", location: id, message: "schema is empty"})
			continue
		}
		result = append(result, lintExtensions(id, ref.Value.Extensions)...)

		nodes := make(map[string]string)
		names := make([]string, 0, len(ref.Value.Properties))
		for name := range ref.Value.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			prop := ref.Value.Properties[name].Value
			location := id + ".properties." + name
			result = append(result, lintExtensions(location, prop.Extensions)...)

			kind, _ := prop.Extensions[openapi.ExtKind].(string)
			if _, err := schema.ParseKind(kind); err != nil {
				result = append(result, violation{file: "openapi", location: location, message: err.Error()})
			}
			node, _ := prop.Extensions[openapi.ExtNode].(string)
			if node == "" {
				result = append(result, violation{file: "openapi", location: location, message: openapi.ExtNode + " is missing"})
				continue
			}
			if other, clash := nodes[node]; clash {
				result = append(result, violation{
					file:     "openapi",
					location: location,
					message:  fmt.Sprintf("node %q already used by %s", node, other),
				})
			}
			nodes[node] = name
		}
	}
	return result
}

var knownExtensions = map[string]struct{}{
	openapi.ExtKind:            {},
	openapi.ExtNode:            {},
	openapi.ExtOrder:           {},
	openapi.ExtRoot:            {},
	openapi.ExtTransactionType: {},
	openapi.ExtConstraints:     {},
}

func lintExtensions(location string, extensions map[string]any) []violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []violation
	for _, key := range keys {
		if !strings.HasPrefix(key, openapi.ExtensionNamespace) {
			continue
		}
		if _, ok := knownExtensions[key]; !ok {
			result = append(result, violation{
				file:     "openapi",
				location: location,
				message:  fmt.Sprintf("unsupported extension %q", key),
			})
		}
	}
	return result
}

func writeExport(doc *openapi3.T, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = openapi.MarshalYAML(doc)
	default:
		data, err = openapi.MarshalJSON(doc)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
