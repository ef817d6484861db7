package schema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paygate/pkg/schema"
)

func sampleDefinition() schema.Definition {
	return schema.Definition{
		ID: "sample",
		Fields: []schema.Field{
			{Name: "transactionId", Kind: schema.KindString, Required: true},
			{Name: "amount", Kind: schema.KindAmount, Required: true},
			{Name: "mode", Kind: schema.KindEnum, Values: []string{"live", "test"}},
			{Name: "returnSuccessUrl", Kind: schema.KindURL},
			{Name: "returnFailureUrl", Kind: schema.KindURL},
		},
		Constraints: []schema.Constraint{
			schema.Requires{Field: "returnFailureUrl", Needs: []string{"returnSuccessUrl"}},
		},
	}
}

func TestNewRequestType_Defaults(t *testing.T) {
	rt, err := schema.NewRequestType(sampleDefinition())
	if err != nil {
		t.Fatalf("new request type: %v", err)
	}
	if rt.TransactionType() != "sample" {
		t.Fatalf("expected transaction type to default to id, got %q", rt.TransactionType())
	}
	if rt.Root() != schema.DefaultRoot {
		t.Fatalf("expected default root, got %q", rt.Root())
	}

	var nodes []string
	for _, field := range rt.Fields() {
		nodes = append(nodes, field.Node)
	}
	want := []string{"transaction_id", "amount", "mode", "return_success_url", "return_failure_url"}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"transactionId", "amount"}, rt.Required()); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if rt.Position("mode") != 2 || rt.Position("missing") != -1 {
		t.Fatalf("unexpected positions")
	}
}

func TestRequestType_FieldsAreCopies(t *testing.T) {
	rt := schema.MustNewRequestType(sampleDefinition())

	fields := rt.Fields()
	fields[2].Values[0] = "mutated"
	fields[0].Required = false

	field, ok := rt.Field("mode")
	if !ok {
		t.Fatalf("expected mode field")
	}
	if field.Values[0] != "live" {
		t.Fatalf("enum values leaked through Fields(): %v", field.Values)
	}
	if !rt.Fields()[0].Required {
		t.Fatalf("required flag leaked through Fields()")
	}
}

func TestNewRequestType_Errors(t *testing.T) {
	cases := map[string]struct {
		mutate func(*schema.Definition)
		want   string
	}{
		"missing id": {
			mutate: func(d *schema.Definition) { d.ID = " " },
			want:   "id is required",
		},
		"no fields": {
			mutate: func(d *schema.Definition) { d.Fields = nil },
			want:   "declares no fields",
		},
		"duplicate field": {
			mutate: func(d *schema.Definition) {
				d.Fields = append(d.Fields, schema.Field{Name: "amount", Kind: schema.KindAmount})
			},
			want: `duplicate field "amount"`,
		},
		"shared node": {
			mutate: func(d *schema.Definition) {
				d.Fields = append(d.Fields, schema.Field{Name: "other", Node: "amount", Kind: schema.KindInteger})
			},
			want: `share node "amount"`,
		},
		"unknown kind": {
			mutate: func(d *schema.Definition) {
				d.Fields[0].Kind = "blob"
			},
			want: `unknown kind "blob"`,
		},
		"enum without values": {
			mutate: func(d *schema.Definition) { d.Fields[2].Values = nil },
			want:   "enum requires at least one value",
		},
		"values on non enum": {
			mutate: func(d *schema.Definition) { d.Fields[1].Values = []string{"x"} },
			want:   "only allowed for enum",
		},
		"duplicate enum value": {
			mutate: func(d *schema.Definition) { d.Fields[2].Values = []string{"live", "LIVE"} },
			want:   "duplicate enum value",
		},
		"max length on numeric": {
			mutate: func(d *schema.Definition) { d.Fields[1].MaxLength = 4 },
			want:   "maxLength is not supported",
		},
		"constraint unknown field": {
			mutate: func(d *schema.Definition) {
				d.Constraints = append(d.Constraints, schema.Together{Members: []string{"amount", "ghost"}})
			},
			want: `unknown field "ghost"`,
		},
		"nil constraint": {
			mutate: func(d *schema.Definition) { d.Constraints = append(d.Constraints, nil) },
			want:   "is nil",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			def := sampleDefinition()
			tc.mutate(&def)
			_, err := schema.NewRequestType(def)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for raw, want := range map[string]schema.Kind{
		"string":       schema.KindString,
		" AMOUNT ":     schema.KindAmount,
		"currencyCode": schema.KindCurrency,
		"ip":           schema.KindIP,
	} {
		got, err := schema.ParseKind(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q = %q, want %q", raw, got, want)
		}
	}
	if _, err := schema.ParseKind("decimal"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"transactionId":     "transaction_id",
		"remoteIp":          "remote_ip",
		"returnSuccessUrl":  "return_success_url",
		"customerAccountId": "customer_account_id",
		"amount":            "amount",
		"URLValue":          "url_value",
	}
	for in, want := range cases {
		if got := schema.SnakeCase(in); got != want {
			t.Fatalf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
