// Package db opens the GORM connection, applies schema migrations and
// prepares stored records for the current application version.
package db

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/diewo77/invoicedesk/internal/config"
)

const connectAttempts = 5

var passwordRe = regexp.MustCompile(`(password=)([^\s]+)|(://[^:/]+:)([^@]+)(@)`)

// Open connects to the configured database. Postgres connections are retried
// to give a freshly started container time to accept connections.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.Debug {
		logLevel = gormlogger.Info
	}
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)}

	switch cfg.Driver {
	case "sqlite":
		dsn := SQLiteDSN(cfg.Path)
		log.Debug().Str("dsn", dsn).Msg("opening sqlite database")
		db, err := gorm.Open(sqlite.Open(dsn), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		return db, nil
	case "postgres":
		dsn := cfg.DSN()
		log.Info().Str("dsn", MaskDSN(dsn)).Msg("connecting to postgres")
		var db *gorm.DB
		var err error
		for i := 0; i < connectAttempts; i++ {
			db, err = gorm.Open(postgres.Open(dsn), gcfg)
			if err == nil {
				break
			}
			log.Warn().Err(err).Int("attempt", i+1).Msg("database connection failed, retrying")
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("connect database after %d attempts: %w", connectAttempts, err)
		}
		if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
			return nil, fmt.Errorf("db ping failed: %w", pingErr)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced, so a
// client referenced by an invoice cannot be deleted.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + "_foreign_keys=on"
}

// MaskDSN hides the password of a key=value or URL style DSN.
func MaskDSN(dsn string) string {
	return passwordRe.ReplaceAllStringFunc(dsn, func(m string) string {
		sub := passwordRe.FindStringSubmatch(m)
		if sub[1] != "" {
			return sub[1] + "***"
		}
		return sub[3] + "***" + sub[5]
	})
}
