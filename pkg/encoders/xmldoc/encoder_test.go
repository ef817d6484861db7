package xmldoc_test

import (
	"encoding/xml"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paygate/pkg/document"
	"github.com/goliatone/go-paygate/pkg/encoders/xmldoc"
	"github.com/goliatone/go-paygate/pkg/testsupport"
	"github.com/goliatone/go-paygate/pkg/validation"
)

var webMoneyValues = map[string]any{
	"transactionId":    "wm-42",
	"usage":            "Tickets & fees",
	"remoteIp":         "245.31.22.19",
	"currency":         "USD",
	"amount":           1000,
	"customerEmail":    "buyer@example.com",
	"returnSuccessUrl": "https://shop.example.com/ok?order=42",
	"returnFailureUrl": "https://shop.example.com/fail?order=42",
}

func buildDocument(t *testing.T, id string, values map[string]any) document.WireDocument {
	t.Helper()
	inst := testsupport.MustInstance(t, id, values)
	doc, err := document.Build(inst, validation.Validate(inst))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return doc
}

func TestEncoder_Golden(t *testing.T) {
	doc := buildDocument(t, "webmoney", webMoneyValues)

	out, err := xmldoc.New().Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	goldenPath := filepath.Join("testdata", "webmoney.golden.xml")
	if testsupport.WriteMaybeGolden(t, goldenPath, out) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("xml mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoder_RoundTripsThroughDecoder(t *testing.T) {
	doc := buildDocument(t, "webmoney", webMoneyValues)
	out, err := xmldoc.New().Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var parsed struct {
		XMLName         xml.Name `xml:"payment_transaction"`
		TransactionType string   `xml:"transaction_type"`
		Usage           string   `xml:"usage"`
		Amount          string   `xml:"amount"`
	}
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.TransactionType != "webmoney" || parsed.Usage != "Tickets & fees" || parsed.Amount != "1000" {
		t.Fatalf("unexpected decoded document %+v", parsed)
	}
}

func TestEncoder_Options(t *testing.T) {
	doc := buildDocument(t, "refund", map[string]any{
		"transactionId": "rf-1",
		"referenceId":   "ref-1",
		"amount":        5,
		"currency":      "EUR",
	})

	out, err := xmldoc.New(xmldoc.WithIndent(""), xmldoc.WithoutHeader()).Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "<payment_transaction><transaction_type>refund</transaction_type>" +
		"<transaction_id>rf-1</transaction_id><reference_id>ref-1</reference_id>" +
		"<amount>5</amount><currency>EUR</currency></payment_transaction>\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("xml mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(string(out), "<?xml") {
		t.Fatalf("header should be omitted")
	}
}

func TestEncoder_RejectsZeroDocument(t *testing.T) {
	if _, err := xmldoc.New().Encode(document.WireDocument{}); err == nil {
		t.Fatalf("expected error for document without root")
	}
}
