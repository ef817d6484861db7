package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-paygate/pkg/catalog"
	"github.com/goliatone/go-paygate/pkg/openapi"
	"github.com/goliatone/go-paygate/pkg/registry"
)

// Writes the built-in catalog in canonical YAML form plus its OpenAPI export
// so reviewers can diff schema changes.
func main() {
	outDir := flag.String("out", "docs/catalog", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fail("mkdir: %v", err)
	}

	reg := registry.Default()
	canonical, err := catalog.Marshal(reg.Types())
	if err != nil {
		fail("marshal catalog: %v", err)
	}
	write(filepath.Join(*outDir, "catalog.yaml"), canonical)

	doc := openapi.Export(reg, openapi.Info{Title: "paygate request types"})
	spec, err := openapi.MarshalJSON(doc)
	if err != nil {
		fail("marshal openapi: %v", err)
	}
	write(filepath.Join(*outDir, "openapi.json"), append(spec, '\n'))
}

func write(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fail("write %s: %v", path, err)
	}
	fmt.Printf("wrote %s\n", path)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
