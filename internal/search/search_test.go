package search

import (
	"testing"

	"github.com/diewo77/invoicedesk/internal/models"
)

func TestEmptyQueryReturnsSameSlice(t *testing.T) {
	items := []models.Product{{Name: "B"}, {Name: "A"}}
	got := Products(items, "")
	if len(got) != 2 || &got[0] != &items[0] {
		t.Fatalf("expected the input slice back, got %+v", got)
	}
}

func TestProductsMatchAnyField(t *testing.T) {
	items := []models.Product{
		{Code: "A1", Name: "Widget", Description: "x"},
		{Code: "B2", Name: "Gadget", Description: "widget-like"},
		{Code: "C3", Name: "Bolt", Description: "steel"},
	}
	got := Products(items, "widget")
	if len(got) != 2 || got[0].Code != "A1" || got[1].Code != "B2" {
		t.Fatalf("expected A1 and B2, got %+v", got)
	}
	if got := Products(items, "c3"); len(got) != 1 || got[0].Name != "Bolt" {
		t.Fatalf("expected code match, got %+v", got)
	}
	if got := Products(items, "nothing"); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestClientsMatchTaxIdentifiers(t *testing.T) {
	items := []models.Client{
		{Name: "Acme", Email: "office@acme.test"},
		{Name: "Kowalski", NIPNumber: "1234567890"},
		{Name: "Novák", ICONumber: "27074358", VATNumber: "CZ27074358"},
		{Name: "Other", Address: "Acme street"},
	}
	cases := []struct {
		query string
		want  []string
	}{
		{"ACME", []string{"Acme"}},
		{"456", []string{"Kowalski"}},
		{"cz2707", []string{"Novák"}},
		{"2707", []string{"Novák"}},
		{"street", nil},
	}
	for _, tc := range cases {
		got := Clients(items, tc.query)
		if len(got) != len(tc.want) {
			t.Errorf("query %q: expected %v, got %+v", tc.query, tc.want, got)
			continue
		}
		for i, name := range tc.want {
			if got[i].Name != name {
				t.Errorf("query %q: expected %s at %d, got %s", tc.query, name, i, got[i].Name)
			}
		}
	}
}
