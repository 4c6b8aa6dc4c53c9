package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/invoicedesk/internal/clock"
	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/store"
)

func setupService(t *testing.T) (*InvoiceService, *store.Gorm) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.CompanySettings{}, &models.Client{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s := store.NewGorm(db)
	return NewInvoiceService(s, clock.NewFake(time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC))), s
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(qty, price, rate string) models.InvoiceItem {
	return models.InvoiceItem{Description: "Work", Quantity: d(qty), UnitPrice: d(price), VATRate: d(rate)}
}

func TestComputeTotals(t *testing.T) {
	svc := NewInvoiceService(nil, nil)
	inv := &models.Invoice{Items: []models.InvoiceItem{line("2", "100", "21"), line("1", "50", "0")}}
	net, vat, gross := svc.ComputeTotals(inv)
	if !net.Equal(d("250")) || !vat.Equal(d("42")) || !gross.Equal(d("292")) {
		t.Fatalf("unexpected totals %s %s %s", net, vat, gross)
	}
	if net, _, _ := svc.ComputeTotals(nil); !net.IsZero() {
		t.Fatal("nil invoice must total zero")
	}
}

func TestSummary(t *testing.T) {
	svc, s := setupService(t)
	ctx := context.Background()

	client, err := s.CreateClient(ctx, models.Client{Name: "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateProduct(ctx, models.Product{Code: "A1", Name: "Widget"}); err != nil {
		t.Fatal(err)
	}
	issue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mk := func(currency, due string, items ...models.InvoiceItem) models.Invoice {
		dueDate, _ := time.Parse("2006-01-02", due)
		inv, err := s.CreateInvoice(ctx, models.Invoice{ClientID: client.ID, IssueDate: issue, DueDate: dueDate, Currency: currency, Items: items})
		if err != nil {
			t.Fatal(err)
		}
		return inv
	}
	paid := mk("CZK", "2025-03-15", line("1", "1000", "21"))
	mk("CZK", "2025-03-10", line("2", "100", "21"))
	mk("EUR", "2025-04-01", line("1", "10", "0"))

	paid.Status = models.InvoiceStatusPaid
	if _, err := s.UpdateInvoice(ctx, paid.ID, paid); err != nil {
		t.Fatal(err)
	}

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Products != 1 || sum.Clients != 1 || sum.Invoices != 3 {
		t.Fatalf("unexpected counts %+v", sum)
	}
	if sum.Unpaid != 2 || sum.Overdue != 1 {
		t.Fatalf("expected 2 unpaid and 1 overdue, got %d/%d", sum.Unpaid, sum.Overdue)
	}
	if len(sum.Revenue) != 1 || sum.Revenue[0].Currency != "CZK" || !sum.Revenue[0].Total.Equal(d("1210")) {
		t.Fatalf("unexpected revenue %+v", sum.Revenue)
	}
	if len(sum.Outstanding) != 2 || sum.Outstanding[0].Currency != "CZK" || !sum.Outstanding[0].Total.Equal(d("242")) ||
		sum.Outstanding[1].Currency != "EUR" || !sum.Outstanding[1].Total.Equal(d("10")) {
		t.Fatalf("unexpected outstanding %+v", sum.Outstanding)
	}
	if len(sum.Recent) != 3 {
		t.Fatalf("expected 3 recent invoices, got %d", len(sum.Recent))
	}

	rev, err := svc.Revenue(ctx)
	if err != nil || len(rev) != 1 {
		t.Fatalf("revenue: %+v %v", rev, err)
	}
}
