package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/invoicedesk/internal/config"
	"github.com/diewo77/invoicedesk/internal/db"
	"github.com/diewo77/invoicedesk/internal/store"
)

// testCLI returns a cli backed by a fresh in-memory database.
func testCLI(t *testing.T) *cli {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	c := newCLI()
	c.cfg = config.Default()
	c.cfg.App.ExportDir = t.TempDir()
	c.store = store.NewGorm(conn)
	c.in = strings.NewReader("")
	c.interactive = func() bool { return false }
	return c
}

func run(t *testing.T, c *cli, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := c.rootCmd()
	root.SetArgs(append(args, "--lang", "en"))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, c *cli, args ...string) string {
	t.Helper()
	out, errOut, err := run(t, c, args...)
	if err != nil {
		t.Fatalf("%v: %v\nstderr: %s", args, err, errOut)
	}
	return out
}

func TestProductCommands(t *testing.T) {
	c := testCLI(t)
	mustRun(t, c, "products", "add", "--code", "W-1", "--name", "Widget", "--price", "100")
	mustRun(t, c, "products", "add", "--code", "G-1", "--name", "Gadget", "--price", "50", "--vat", "12")

	out := mustRun(t, c, "products", "list", "--search", "widg")
	if !strings.Contains(out, "Widget") || strings.Contains(out, "Gadget") {
		t.Fatalf("search output:\n%s", out)
	}
	if !strings.Contains(out, "1 record(s)") {
		t.Fatalf("missing footer:\n%s", out)
	}

	mustRun(t, c, "products", "edit", "1", "--price", "120")
	out = mustRun(t, c, "products", "list")
	if !strings.Contains(out, "120.00") {
		t.Fatalf("price not updated:\n%s", out)
	}
}

func TestProductAddReportsViolations(t *testing.T) {
	c := testCLI(t)
	_, errOut, err := run(t, c, "products", "add", "--code", "X")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(errOut, "name: Required") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestDeleteNeedsYesWhenNotInteractive(t *testing.T) {
	c := testCLI(t)
	mustRun(t, c, "clients", "add", "--name", "Acme")

	if _, _, err := run(t, c, "clients", "delete", "1"); !errors.Is(err, errNeedsConfirmation) {
		t.Fatalf("err = %v, want errNeedsConfirmation", err)
	}
	mustRun(t, c, "clients", "delete", "1", "--yes")
	if out := mustRun(t, c, "clients", "list"); !strings.Contains(out, "(no records)") {
		t.Fatalf("client still listed:\n%s", out)
	}
}

func TestDeleteAsksOnTerminal(t *testing.T) {
	c := testCLI(t)
	mustRun(t, c, "products", "add", "--code", "W-1", "--name", "Widget", "--price", "1")
	c.interactive = func() bool { return true }

	c.in = strings.NewReader("n\n")
	mustRun(t, c, "products", "delete", "1")
	if out := mustRun(t, c, "products", "list"); !strings.Contains(out, "Widget") {
		t.Fatal("declined delete removed the product")
	}

	c.in = strings.NewReader("y\n")
	_, errOut, err := run(t, c, "products", "delete", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, `Delete Product "Widget"?`) {
		t.Fatalf("prompt missing: %q", errOut)
	}
}

func TestDeleteFailsWhenPromptCannotBeRead(t *testing.T) {
	c := testCLI(t)
	mustRun(t, c, "products", "add", "--code", "W-1", "--name", "Widget", "--price", "1")
	c.interactive = func() bool { return true }
	readErr := errors.New("stdin closed")
	c.in = iotest.ErrReader(readErr)

	if _, _, err := run(t, c, "products", "delete", "1"); !errors.Is(err, readErr) {
		t.Fatalf("err = %v, want the read error", err)
	}
	if out := mustRun(t, c, "products", "list"); !strings.Contains(out, "Widget") {
		t.Fatal("product removed although the prompt failed")
	}
}

func TestInvoiceLifecycle(t *testing.T) {
	c := testCLI(t)
	mustRun(t, c, "company", "set", "--name", "My Company", "--city", "Praha")
	mustRun(t, c, "clients", "add", "--name", "Acme", "--email", "billing@acme.test")
	mustRun(t, c, "products", "add", "--code", "W-1", "--name", "Widget", "--price", "100")

	out := mustRun(t, c, "invoices", "create", "--client", "1", "--product", "1:2", "--issue", "2025-06-01")
	if strings.TrimSpace(out) != "INV-2025-0001\t242.00 CZK" {
		t.Fatalf("create output = %q", out)
	}

	out = mustRun(t, c, "invoices", "list")
	for _, want := range []string{"INV-2025-0001", "Acme", "2025-06-15", "unpaid"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list missing %q:\n%s", want, out)
		}
	}

	mustRun(t, c, "invoices", "paid", "1")
	if out := mustRun(t, c, "invoices", "list"); !strings.Contains(out, "paid") || strings.Contains(out, "unpaid") {
		t.Fatalf("status not paid:\n%s", out)
	}

	out = mustRun(t, c, "invoices", "export", "1", "--format", "csv")
	path := strings.TrimSpace(out)
	if filepath.Base(path) != "invoice-INV-2025-0001.csv" {
		t.Fatalf("export path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Widget") {
		t.Fatalf("csv missing line:\n%s", data)
	}

	out = mustRun(t, c, "invoices", "email", "1")
	if !strings.HasPrefix(out, "mailto:billing@acme.test?") {
		t.Fatalf("email output = %q", out)
	}

	out = mustRun(t, c, "summary")
	if !strings.Contains(out, "242.00") {
		t.Fatalf("summary missing revenue:\n%s", out)
	}
}

func TestInvoiceExportUnknownFormat(t *testing.T) {
	c := testCLI(t)
	mustRun(t, c, "clients", "add", "--name", "Acme")
	mustRun(t, c, "invoices", "create", "--client", "1", "--line", "Consulting:2:500:21", "--issue", "2025-03-10")

	if _, _, err := run(t, c, "invoices", "export", "1", "--format", "docx"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestCompanyShowEmpty(t *testing.T) {
	c := testCLI(t)
	if out := mustRun(t, c, "company", "show"); !strings.Contains(out, "no company configured") {
		t.Fatalf("output = %q", out)
	}
}

func TestParseLines(t *testing.T) {
	id, qty, err := parseProductLine("7:2.5")
	if err != nil || id != 7 || qty.String() != "2.5" {
		t.Fatalf("parseProductLine = %d %s %v", id, qty, err)
	}
	if _, _, err := parseProductLine("x"); err == nil {
		t.Fatal("expected error for bad id")
	}
	item, err := parseCustomLine("Support:1:300", config.Default().App.VATRate())
	if err != nil {
		t.Fatal(err)
	}
	if item.VATRate.String() != "21" || item.UnitPrice.String() != "300" {
		t.Fatalf("item = %+v", item)
	}
	if _, err := parseCustomLine("only:two", config.Default().App.VATRate()); err == nil {
		t.Fatal("expected error for short line")
	}
}
