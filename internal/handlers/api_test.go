package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/invoicedesk/internal/clock"
	"github.com/diewo77/invoicedesk/internal/export"
	"github.com/diewo77/invoicedesk/internal/metrics"
	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/store"
)

func setupAPI(t *testing.T) (http.Handler, *store.Gorm) {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.CompanySettings{}, &models.Client{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s := store.NewGorm(db)
	api := NewAPI(s, export.DefaultRegistry(), metrics.New())
	api.Clock = clock.NewFake(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	mux := http.NewServeMux()
	api.Register(mux)
	return mux, s
}

type envelope struct {
	Data          json.RawMessage   `json:"data"`
	Error         string            `json:"error"`
	Violations    map[string]string `json:"violations"`
	Notifications []struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	} `json:"notifications"`
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestProductEndpoints(t *testing.T) {
	h, _ := setupAPI(t)

	w, env := do(t, h, http.MethodPost, "/api/products", `{"code":"A1","name":"Widget","unit_price":"100"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var p models.Product
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID == 0 || p.VATRate.String() != "21" {
		t.Fatalf("expected stored product with default VAT, got %+v", p)
	}
	if len(env.Notifications) != 1 || env.Notifications[0].Level != "success" {
		t.Fatalf("expected one success notification, got %+v", env.Notifications)
	}
	do(t, h, http.MethodPost, "/api/products", `{"code":"B2","name":"Gadget","unit_price":"5"}`)

	w, _ = do(t, h, http.MethodGet, "/api/products?q=gadg", "")
	var list struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || list.Items[0].Name != "Gadget" {
		t.Fatalf("unexpected search result %+v", list)
	}

	w, env = do(t, h, http.MethodPut, "/api/products/"+itoa(p.ID), `{"name":"Widget XL"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	var updated models.Product
	_ = json.Unmarshal(env.Data, &updated)
	if updated.Name != "Widget XL" || updated.Code != "A1" {
		t.Fatalf("partial update must keep other fields, got %+v", updated)
	}

	w, _ = do(t, h, http.MethodPut, "/api/products/999", `{"name":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}

	w, _ = do(t, h, http.MethodDelete, "/api/products/"+itoa(p.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	w, _ = do(t, h, http.MethodDelete, "/api/products/"+itoa(p.ID), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a second delete, got %d", w.Code)
	}
}

func TestProductValidationFailure(t *testing.T) {
	h, s := setupAPI(t)

	w, env := do(t, h, http.MethodPost, "/api/products", `{"code":"A1","name":"  "}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", w.Code)
	}
	if env.Violations["name"] != "required" || len(env.Notifications) != 1 {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if items, _ := s.ListProducts(t.Context()); len(items) != 0 {
		t.Fatalf("nothing must be stored, got %d", len(items))
	}

	w, _ = do(t, h, http.MethodPost, "/api/products", `{"bogus":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown fields, got %d", w.Code)
	}
}

func TestClientEndpoints(t *testing.T) {
	h, _ := setupAPI(t)

	w, env := do(t, h, http.MethodPost, "/api/clients", `{"name":"Kowalski","country":"PL","nip_number":"12"}`)
	if w.Code != http.StatusUnprocessableEntity || env.Violations["nip_number"] != "invalid_nip" {
		t.Fatalf("expected NIP violation, got %d %s", w.Code, w.Body.String())
	}

	w, env = do(t, h, http.MethodPost, "/api/clients", `{"name":"Kowalski","country":"PL","nip_number":"123-456-78-90"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var row struct {
		ID    uint   `json:"id"`
		TaxID string `json:"tax_id"`
	}
	_ = json.Unmarshal(env.Data, &row)
	if row.TaxID != "123-456-78-90" {
		t.Fatalf("unexpected tax id %q", row.TaxID)
	}

	w, _ = do(t, h, http.MethodGet, "/api/clients/tax-fields?country=cz", "")
	var fields struct {
		Country string `json:"country"`
		Fields  []struct {
			Key string `json:"key"`
		} `json:"fields"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &fields)
	if fields.Country != "CZ" || len(fields.Fields) != 2 || fields.Fields[0].Key != "ico_number" {
		t.Fatalf("unexpected tax fields %s", w.Body.String())
	}
}

func TestInvoiceEndpoints(t *testing.T) {
	h, s := setupAPI(t)
	ctx := t.Context()

	client, err := s.CreateClient(ctx, models.Client{Name: "Acme", Email: "billing@acme.test"})
	if err != nil {
		t.Fatal(err)
	}
	body := `{"client_id":` + itoa(client.ID) + `,"lines":[{"description":"Work","quantity":"2","unit_price":"100","vat_rate":"21"}]}`
	w, env := do(t, h, http.MethodPost, "/api/invoices", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var inv models.Invoice
	_ = json.Unmarshal(env.Data, &inv)
	if inv.Number != "INV-2025-0001" || inv.TotalGross.String() != "242" {
		t.Fatalf("unexpected invoice %+v", inv)
	}
	id := itoa(inv.ID)

	// no company profile yet
	w, env = do(t, h, http.MethodGet, "/api/invoices/"+id+"/export?format=csv", "")
	if w.Code != http.StatusConflict || len(env.Notifications) != 1 {
		t.Fatalf("expected 409 with one notification, got %d %s", w.Code, w.Body.String())
	}

	if _, err := s.SaveCompany(ctx, models.CompanySettings{Name: "Seller", IsDefault: true}); err != nil {
		t.Fatal(err)
	}
	w, _ = do(t, h, http.MethodGet, "/api/invoices/"+id+"/export?format=csv", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "invoice-INV-2025-0001.csv") {
		t.Fatalf("unexpected disposition %q", cd)
	}

	w, _ = do(t, h, http.MethodGet, "/api/invoices/"+id+"/export?format=docx", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", w.Code)
	}

	w, env = do(t, h, http.MethodGet, "/api/invoices/"+id+"/email", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	var mail struct {
		To  string `json:"to"`
		URL string `json:"url"`
	}
	_ = json.Unmarshal(env.Data, &mail)
	if mail.To != "billing@acme.test" || !strings.HasPrefix(mail.URL, "mailto:billing@acme.test?subject=") {
		t.Fatalf("unexpected mail %+v", mail)
	}

	w, env = do(t, h, http.MethodPost, "/api/invoices/"+id+"/paid", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(env.Data, &inv)
	if inv.Status != models.InvoiceStatusPaid {
		t.Fatalf("expected paid, got %s", inv.Status)
	}
	if paidAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC); !inv.UpdatedAt.Equal(paidAt) {
		t.Fatalf("updated_at = %v, want the API clock %v", inv.UpdatedAt, paidAt)
	}
	stored, err := s.GetInvoice(ctx, inv.ID)
	if err != nil || !stored.UpdatedAt.Equal(inv.UpdatedAt) {
		t.Fatalf("stored updated_at = %v (%v), want %v", stored.UpdatedAt, err, inv.UpdatedAt)
	}

	w, _ = do(t, h, http.MethodDelete, "/api/clients/"+itoa(client.ID), "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting a client in use, got %d", w.Code)
	}

	w, _ = do(t, h, http.MethodDelete, "/api/invoices/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	w, _ = do(t, h, http.MethodPost, "/api/invoices/"+id+"/paid", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestInvoiceUpdateReplacesLines(t *testing.T) {
	h, s := setupAPI(t)
	ctx := t.Context()

	client, err := s.CreateClient(ctx, models.Client{Name: "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	product, err := s.CreateProduct(ctx, models.Product{Code: "W", Name: "Widget", UnitPrice: dec("10"), VATRate: dec("21")})
	if err != nil {
		t.Fatal(err)
	}
	body := `{"client_id":` + itoa(client.ID) + `,"lines":[{"product_id":` + itoa(product.ID) +
		`,"description":"Widget","quantity":"1","unit_price":"10","vat_rate":"21"}]}`
	w, env := do(t, h, http.MethodPost, "/api/invoices", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var inv models.Invoice
	_ = json.Unmarshal(env.Data, &inv)
	id := itoa(inv.ID)

	w, env = do(t, h, http.MethodDelete, "/api/products/"+itoa(product.ID), "")
	if w.Code != http.StatusConflict || env.Error != "in_use" {
		t.Fatalf("expected 409 in_use deleting a product on an invoice, got %d %s", w.Code, w.Body.String())
	}

	w, env = do(t, h, http.MethodPut, "/api/invoices/"+id, `{"lines":[{"description":"y","quantity":"2","unit_price":"5"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(env.Data, &inv)
	if len(inv.Items) != 1 {
		t.Fatalf("expected one line, got %+v", inv.Items)
	}
	line := inv.Items[0]
	if line.ProductID != nil || !line.VATRate.IsZero() || line.Description != "y" {
		t.Fatalf("replaced line kept stored fields: %+v", line)
	}
	if !inv.TotalGross.Equal(dec("10")) {
		t.Fatalf("gross = %s, want 10", inv.TotalGross)
	}

	w, env = do(t, h, http.MethodPut, "/api/invoices/"+id, `{"notes":"thanks"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(env.Data, &inv)
	if inv.Notes != "thanks" || len(inv.Items) != 1 || inv.Items[0].Description != "y" {
		t.Fatalf("omitted lines must be kept: %+v", inv)
	}

	w, _ = do(t, h, http.MethodDelete, "/api/products/"+itoa(product.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 once the product is unused, got %d", w.Code)
	}
}

func TestCompanyEndpoints(t *testing.T) {
	h, _ := setupAPI(t)

	w, _ := do(t, h, http.MethodGet, "/api/company", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	w, _ = do(t, h, http.MethodPut, "/api/company", `{"name":"Seller s.r.o.","city":"Brno"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	w, env := do(t, h, http.MethodGet, "/api/company", "")
	var c models.CompanySettings
	_ = json.Unmarshal(env.Data, &c)
	if w.Code != http.StatusOK || c.Name != "Seller s.r.o." || !c.IsDefault || c.Country != "CZ" {
		t.Fatalf("unexpected company %d %+v", w.Code, c)
	}

	w, _ = do(t, h, http.MethodGet, "/api/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
