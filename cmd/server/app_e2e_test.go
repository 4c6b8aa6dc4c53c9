package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/invoicedesk/internal/config"
	"github.com/diewo77/invoicedesk/internal/db"
)

func setupE2EApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	dbi, err := gorm.Open(sqlite.Open("file:e2e_"+t.Name()+"?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(dbi, cfg.Database, zerolog.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(dbi, cfg.App.DefaultCountry); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewApp(dbi, cfg, zerolog.Nop())
}

func TestHealthz(t *testing.T) {
	app := setupE2EApp(t)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}
}

func TestProductFlowLocalizedE2E(t *testing.T) {
	app := setupE2EApp(t)

	r := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"code":"P1","name":"ProdX","unit_price":"15.5"}`))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept-Language", "cs-CZ,cs;q=0.9")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Produkt") {
		t.Fatalf("expected a Czech notification, got %s", w.Body.String())
	}

	r = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `invoicedesk_http_requests_total{method="POST",status="201"} 1`) {
		t.Fatalf("expected request counter in metrics output:\n%s", w.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	app := setupE2EApp(t)
	r := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
