package db

import (
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/invoicedesk/internal/config"
	"github.com/diewo77/invoicedesk/internal/models"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&models.CompanySettings{},
		&models.Client{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
	}
}

// Migrate brings the schema up to date. Postgres with migrations enabled uses
// the embedded SQL files; everything else uses AutoMigrate.
func Migrate(db *gorm.DB, cfg config.DatabaseConfig, log zerolog.Logger) error {
	if cfg.Driver == "postgres" && cfg.Migrations {
		log.Info().Msg("running sql migrations")
		if err := RunSQLMigrations(cfg.URL()); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range Models() {
			if err := db.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"company_settings", "clients", "products", "invoices", "invoice_items"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// RunSQLMigrations applies the embedded migrations to the postgres database at url.
func RunSQLMigrations(url string) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
