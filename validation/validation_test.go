package validation

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("name", "   ", v)
	if v["name"] != "required" {
		t.Fatalf("expected required, got %v", v)
	}
	v = make(Violations)
	Required("name", "Widget", v)
	if !v.Empty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestPattern(t *testing.T) {
	re := regexp.MustCompile(`^\d{3}$`)
	v := make(Violations)
	Pattern("code", "", re, "bad", v)
	Pattern("ok", "123", re, "bad", v)
	if !v.Empty() {
		t.Fatalf("expected no violations, got %v", v)
	}
	Pattern("code", "12a", re, "bad", v)
	if v["code"] != "bad" {
		t.Fatalf("expected bad code, got %v", v)
	}
}

func TestNonZeroAndNotEmpty(t *testing.T) {
	v := make(Violations)
	NonZero("client_id", 0, v)
	NotEmpty("items", 0, v)
	if len(v) != 2 {
		t.Fatalf("expected 2 violations, got %v", v)
	}
}

func TestNonNegative(t *testing.T) {
	v := make(Violations)
	NonNegative("unit_price", decimal.Zero, v)
	if !v.Empty() {
		t.Fatalf("zero is allowed, got %v", v)
	}
	NonNegative("unit_price", decimal.NewFromInt(-1), v)
	if v["unit_price"] != "negative" {
		t.Fatalf("expected negative, got %v", v)
	}
}

func TestFieldsSorted(t *testing.T) {
	v := Violations{"name": "required", "code": "required", "lines": "empty"}
	got := v.Fields()
	if len(got) != 3 || got[0] != "code" || got[1] != "lines" || got[2] != "name" {
		t.Fatalf("unexpected order %v", got)
	}
}
