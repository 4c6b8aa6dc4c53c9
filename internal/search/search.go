// Package search implements the list filter shared by the entity screens.
package search

import (
	"strings"

	"github.com/diewo77/invoicedesk/internal/models"
)

// Filter returns the items where any field contains query as a
// case-insensitive substring. An empty query returns items itself.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// ProductFields lists the searchable product fields.
func ProductFields(p models.Product) []string {
	return []string{p.Name, p.Code, p.Description}
}

// ClientFields lists the searchable client fields.
func ClientFields(c models.Client) []string {
	return []string{c.Name, c.Email, c.VATNumber, c.NIPNumber, c.ICONumber, c.Phone}
}

// Products filters products by name, code and description.
func Products(items []models.Product, query string) []models.Product {
	return Filter(items, query, ProductFields)
}

// Clients filters clients by name, e-mail, phone and tax identifiers.
func Clients(items []models.Client, query string) []models.Client {
	return Filter(items, query, ClientFields)
}
