package db

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/invoicedesk/internal/config"
)

// Setup opens the database and makes it ready for use: schema migration,
// optional seeding and the client record upgrade.
func Setup(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	conn, err := Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn, cfg.Database, log); err != nil {
		return nil, err
	}
	if cfg.Database.Seed {
		if err := Seed(conn, cfg.App.DefaultCountry); err != nil {
			return nil, err
		}
	}
	if _, err := UpgradeRecords(conn, log); err != nil {
		return nil, err
	}
	return conn, nil
}
