package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_EmbeddedCatalog(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "ok: 3 request types") {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

func TestRun_ExtraCatalogAndExport(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "vouchers.yaml")
	if err := os.WriteFile(good, []byte(`requestTypes:
  - id: paysafecard
    fields:
      - { name: transactionId, kind: string, required: true }
      - { name: amount, kind: amount, required: true }
`), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	exportPath := filepath.Join(dir, "openapi.yaml")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-openapi", exportPath, good}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "paysafecard") {
		t.Fatalf("export missing paysafecard schema")
	}
}

func TestRun_ReportsViolations(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte(`requestTypes:
  - id: broken
    fields:
      - { name: amount, kind: money }
`), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	duplicate := filepath.Join(dir, "dup.yaml")
	if err := os.WriteFile(duplicate, []byte(`requestTypes:
  - id: webmoney
    fields:
      - { name: amount, kind: amount }
`), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{bad, duplicate}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	out := stderr.String()
	if !strings.Contains(out, "unknown field kind") {
		t.Fatalf("expected kind violation, got:\n%s", out)
	}
	if !strings.Contains(out, `"webmoney" already registered`) {
		t.Fatalf("expected duplicate violation, got:\n%s", out)
	}
}
