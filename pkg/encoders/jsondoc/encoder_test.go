package jsondoc_test

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paygate/pkg/document"
	"github.com/goliatone/go-paygate/pkg/encoders/jsondoc"
	"github.com/goliatone/go-paygate/pkg/testsupport"
	"github.com/goliatone/go-paygate/pkg/validation"
)

func refundDocument(t *testing.T) document.WireDocument {
	t.Helper()
	inst := testsupport.MustInstance(t, "refund", map[string]any{
		"transactionId": "rf-7",
		"usage":         `Refund "A"`,
		"referenceId":   "ref-7",
		"amount":        "0990",
		"currency":      "EUR",
	})
	doc, err := document.Build(inst, validation.Validate(inst))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return doc
}

func TestEncoder_OrderedObject(t *testing.T) {
	out, err := jsondoc.New().Encode(refundDocument(t))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"payment_transaction":{"transaction_type":"refund","transaction_id":"rf-7",` +
		`"usage":"Refund \"A\"","reference_id":"ref-7","amount":"990","currency":"EUR"}}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoder_OutputIsValidJSON(t *testing.T) {
	out, err := jsondoc.New().Encode(refundDocument(t))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var decoded map[string]map[string]string
	if err := sonic.UnmarshalString(string(out), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	body := decoded["payment_transaction"]
	if body["usage"] != `Refund "A"` || body["amount"] != "990" {
		t.Fatalf("unexpected decoded body %v", body)
	}
}

func TestEncoder_Metadata(t *testing.T) {
	enc := jsondoc.New()
	if enc.Name() != jsondoc.Name || enc.ContentType() != "application/json" {
		t.Fatalf("unexpected metadata %q %q", enc.Name(), enc.ContentType())
	}
	if _, err := enc.Encode(document.WireDocument{}); err == nil {
		t.Fatalf("expected error for document without root")
	}
}
