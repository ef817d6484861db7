package paygate_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paygate"
	"github.com/goliatone/go-paygate/pkg/registry"
	"github.com/goliatone/go-paygate/pkg/request"
	"github.com/goliatone/go-paygate/pkg/validation"
)

var refund = map[string]any{
	"transactionId": "rf-1",
	"referenceId":   "ref-1",
	"amount":        99,
	"currency":      "EUR",
}

func TestBuildDocument(t *testing.T) {
	doc, err := paygate.BuildDocument("refund", refund)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"transactionId", "referenceId", "amount", "currency"}, doc.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	_, err = paygate.BuildDocument("refund", map[string]any{"transactionId": "rf-1"})
	if !errors.Is(err, validation.ErrMissingRequiredFields) {
		t.Fatalf("expected missing fields, got %v", err)
	}
	_, err = paygate.BuildDocument("refund", map[string]any{"transactionId": "rf-1", "zeta": 1, "alpha": 2})
	var unknown *request.UnknownFieldError
	if !errors.As(err, &unknown) || unknown.Field != "alpha" {
		t.Fatalf("expected unknown field alpha, got %v", err)
	}
	if _, err := paygate.BuildDocument("cheque", refund); !errors.Is(err, registry.ErrUnknownRequestType) {
		t.Fatalf("expected unknown request type, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	out, err := paygate.Encode("refund", refund, "form")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "transaction_type=refund&transaction_id=rf-1&reference_id=ref-1&amount=99&currency=EUR"
	if string(out) != want {
		t.Fatalf("unexpected form payload %q", out)
	}

	out, err = paygate.Encode("refund", refund, "")
	if err != nil {
		t.Fatalf("encode default: %v", err)
	}
	if !strings.HasPrefix(string(out), "<?xml") {
		t.Fatalf("expected xml by default, got %q", out)
	}
	if _, err := paygate.Encode("refund", refund, "csv"); err == nil {
		t.Fatalf("expected error for unknown encoder")
	}
}

func TestLoadRegistry(t *testing.T) {
	reg, err := paygate.LoadRegistry()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if reg != registry.Default() {
		t.Fatalf("expected default registry without directories")
	}

	dir := t.TempDir()
	catalogYAML := `requestTypes:
  - id: paysafecard
    description: Paysafecard voucher payment.
    fields:
      - { name: transactionId, kind: string, required: true }
      - { name: amount, kind: amount, required: true }
      - { name: currency, kind: currency, required: true }
`
	if err := os.WriteFile(filepath.Join(dir, "vouchers.yaml"), []byte(catalogYAML), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	reg, err = paygate.LoadRegistry(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if diff := cmp.Diff([]string{"neteller", "paysafecard", "refund", "webmoney"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	if _, err := paygate.LoadRegistry(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestPopulate_UnknownKeyLeavesRequestUntouched(t *testing.T) {
	req, err := paygate.NewRequest("refund")
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	values := map[string]any{
		"transactionId": "rf-2",
		"amount":        300,
		"cardNumber":    "4200",
	}
	err = paygate.Populate(req, values)
	var unknown *request.UnknownFieldError
	if !errors.As(err, &unknown) || unknown.Field != "cardNumber" {
		t.Fatalf("expected UnknownFieldError for cardNumber, got %v", err)
	}
	if fields := req.SetFields(); len(fields) != 0 {
		t.Fatalf("expected no fields applied, got %v", fields)
	}
}
