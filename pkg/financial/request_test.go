package financial_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-paygate/pkg/financial"
	"github.com/goliatone/go-paygate/pkg/registry"
	"github.com/goliatone/go-paygate/pkg/request"
	"github.com/goliatone/go-paygate/pkg/schema"
	"github.com/goliatone/go-paygate/pkg/validation"
)

func refundValues() map[string]any {
	return map[string]any{
		"transactionId": "tx-300",
		"referenceId":   "ref-300",
		"amount":        1500,
		"currency":      "GBP",
	}
}

func TestNew_UnknownRequestType(t *testing.T) {
	_, err := financial.New("skrill")
	if !errors.Is(err, registry.ErrUnknownRequestType) {
		t.Fatalf("expected ErrUnknownRequestType, got %v", err)
	}
}

func TestRequest_StateMachine(t *testing.T) {
	req, err := financial.New("refund")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if req.State() != financial.StateEmpty {
		t.Fatalf("expected empty state, got %s", req.State())
	}

	if err := req.Set("transactionId", "tx-300"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if req.State() != financial.StatePopulating {
		t.Fatalf("expected populating state, got %s", req.State())
	}

	if _, err := req.Document(); !errors.Is(err, validation.ErrMissingRequiredFields) {
		t.Fatalf("expected missing fields, got %v", err)
	}
	if req.State() != financial.StateRejected {
		t.Fatalf("expected rejected state, got %s", req.State())
	}
	wantIssues := []validation.Issue{
		{Field: "referenceId", Reason: "is required", Code: validation.CodeMissingRequired},
		{Field: "amount", Reason: "is required", Code: validation.CodeMissingRequired},
		{Field: "currency", Reason: "is required", Code: validation.CodeMissingRequired},
	}
	if diff := cmp.Diff(wantIssues, req.Issues()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	for field, value := range refundValues() {
		if err := req.Set(field, value); err != nil {
			t.Fatalf("set %s after rejection: %v", field, err)
		}
	}
	doc, err := req.Document()
	if err != nil {
		t.Fatalf("document after retry: %v", err)
	}
	if req.State() != financial.StateValidated {
		t.Fatalf("expected validated state, got %s", req.State())
	}
	if len(req.Issues()) != 0 {
		t.Fatalf("expected issues cleared, got %+v", req.Issues())
	}

	if err := req.Set("usage", "too late"); !errors.Is(err, financial.ErrFinalized) {
		t.Fatalf("expected ErrFinalized, got %v", err)
	}
	if err := req.Unset("usage"); !errors.Is(err, financial.ErrFinalized) {
		t.Fatalf("expected ErrFinalized on unset, got %v", err)
	}
	if err := req.Set("cardNumber", "4200"); !errors.Is(err, request.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField for undeclared field after validation, got %v", err)
	}
	if err := req.Unset("cardNumber"); !errors.Is(err, request.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField on unset of undeclared field, got %v", err)
	}
	again, err := req.Document()
	if err != nil {
		t.Fatalf("cached document: %v", err)
	}
	if diff := cmp.Diff(doc.Nodes(), again.Nodes()); diff != "" {
		t.Fatalf("cached document differs (-first +second):\n%s", diff)
	}
}

func TestRequest_UnsetReturnsToEmpty(t *testing.T) {
	req, err := financial.New("refund")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := req.Set("usage", "note"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := req.Unset("usage"); err != nil {
		t.Fatalf("unset: %v", err)
	}
	if req.State() != financial.StateEmpty {
		t.Fatalf("expected empty state, got %s", req.State())
	}
}

func TestRequest_SetErrorsPropagate(t *testing.T) {
	req, err := financial.New("refund")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	err = req.Set("cardNumber", "4200000000000000")
	var unknown *request.UnknownFieldError
	if !errors.As(err, &unknown) || unknown.Field != "cardNumber" || unknown.RequestType != "refund" {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}

	err = req.Set("currency", "US")
	if !errors.Is(err, request.ErrInvalidFieldValue) {
		t.Fatalf("expected ErrInvalidFieldValue, got %v", err)
	}
	if _, ok := req.Get("currency"); ok {
		t.Fatalf("rejected value must not be stored")
	}
	if req.State() != financial.StateEmpty {
		t.Fatalf("failed set must not change state, got %s", req.State())
	}
}

func TestNewFromSchema(t *testing.T) {
	rt := schema.MustNewRequestType(schema.Definition{
		ID: "payout",
		Fields: []schema.Field{
			{Name: "transactionId", Kind: schema.KindString, Required: true},
			{Name: "amount", Kind: schema.KindAmount, Required: true},
		},
	})
	req, err := financial.NewFromSchema(rt)
	if err != nil {
		t.Fatalf("new from schema: %v", err)
	}
	if err := req.Set("transactionId", 42); err != nil {
		t.Fatalf("set transactionId: %v", err)
	}
	if err := req.Set("amount", "007"); err != nil {
		t.Fatalf("set amount: %v", err)
	}
	doc, err := req.Document()
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if diff := cmp.Diff([]string{"transactionId", "amount"}, doc.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if v, _ := doc.Value("amount"); v != "7" {
		t.Fatalf("expected amount rendered without leading zeros, got %q", v)
	}

	if _, err := financial.NewFromSchema(nil); err == nil {
		t.Fatalf("expected error for nil schema")
	}
}

func TestRequest_EmptyOptionalOnlyIsRejected(t *testing.T) {
	rt := schema.MustNewRequestType(schema.Definition{
		ID:     "optional_only",
		Fields: []schema.Field{{Name: "usage", Kind: schema.KindString}},
	})
	req, err := financial.NewFromSchema(rt)
	if err != nil {
		t.Fatalf("new from schema: %v", err)
	}
	if _, err := req.Document(); !errors.Is(err, validation.ErrMissingRequiredFields) {
		t.Fatalf("expected empty request to be rejected, got %v", err)
	}
	if req.State() != financial.StateRejected {
		t.Fatalf("expected rejected state, got %s", req.State())
	}
}

func TestWithRegistry(t *testing.T) {
	rt := schema.MustNewRequestType(schema.Definition{
		ID:     "voucher",
		Fields: []schema.Field{{Name: "code", Kind: schema.KindString, Required: true}},
	})
	reg := registry.MustNew(rt)
	if _, err := financial.New("voucher", financial.WithRegistry(reg)); err != nil {
		t.Fatalf("new with registry: %v", err)
	}
	if _, err := financial.New("webmoney", financial.WithRegistry(reg)); !errors.Is(err, registry.ErrUnknownRequestType) {
		t.Fatalf("expected custom registry to hide defaults, got %v", err)
	}
}

func TestWithLogger_RecordsBuildAttempts(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	req, err := financial.New("refund", financial.WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := req.Document(); err == nil {
		t.Fatalf("expected empty request to fail")
	}
	for field, value := range refundValues() {
		if err := req.Set(field, value); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
	if _, err := req.Document(); err != nil {
		t.Fatalf("document: %v", err)
	}

	var messages []string
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
		if got := entry.ContextMap()["request_type"]; got != "refund" {
			t.Fatalf("expected request_type field, got %v", got)
		}
	}
	if diff := cmp.Diff([]string{"request rejected", "request validated"}, messages); diff != "" {
		t.Fatalf("log messages mismatch (-want +got):\n%s", diff)
	}
}
