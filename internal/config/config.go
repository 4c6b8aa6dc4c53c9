// Package config provides application configuration loaded from an optional
// YAML file and environment variables.
//
// Values are resolved in three layers: built-in defaults, then the YAML file
// named by INVOICEDESK_CONFIG (or passed explicitly), then environment
// variables. A later layer only overrides what it actually sets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/diewo77/invoicedesk/internal/logger"
)

// EnvConfigFile names the environment variable holding the YAML file path.
const EnvConfigFile = "INVOICEDESK_CONFIG"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`  // seconds
	WriteTimeout int    `yaml:"write_timeout"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout"`  // seconds
}

// DatabaseConfig holds the store connection settings.
type DatabaseConfig struct {
	Driver     string `yaml:"driver"` // sqlite or postgres
	Path       string `yaml:"path"`   // sqlite file
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	DBName     string `yaml:"dbname"`
	SSLMode    string `yaml:"sslmode"`
	Migrations bool   `yaml:"migrations"`
	Seed       bool   `yaml:"seed"`
	Debug      bool   `yaml:"debug"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev            bool   `yaml:"dev"`
	Locale         string `yaml:"locale"`
	DefaultCountry string `yaml:"default_country"`
	DefaultVATRate string `yaml:"default_vat_rate"`
	Currency       string `yaml:"currency"`
	ExportDir      string `yaml:"export_dir"`
	PaymentDays    int    `yaml:"payment_days"`
	Template       string `yaml:"template"` // standard or compact
}

// LogConfig mirrors logger.LogConfig with YAML tags.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	TimeFormat string `yaml:"time_format"`
	Output     string `yaml:"output"`
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// VATRate parses DefaultVATRate, falling back to 21.
func (a AppConfig) VATRate() decimal.Decimal {
	if d, err := decimal.NewFromString(a.DefaultVATRate); err == nil {
		return d
	}
	return decimal.NewFromInt(21)
}

// Logger converts the log section into the logger package's configuration.
func (l LogConfig) Logger() logger.LogConfig {
	return logger.LogConfig{
		Level:      l.Level,
		Format:     l.Format,
		TimeFormat: l.TimeFormat,
		Output:     l.Output,
	}
}

// Default returns the built-in configuration for local use.
func Default() *Config {
	lc := logger.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15,
			WriteTimeout: 15,
			IdleTimeout:  60,
		},
		Database: DatabaseConfig{
			Driver:  "sqlite",
			Path:    "invoicedesk.db",
			Host:    "localhost",
			Port:    5432,
			User:    "invoices",
			DBName:  "invoices",
			SSLMode: "disable",
		},
		App: AppConfig{
			Dev:            true,
			Locale:         "en",
			DefaultCountry: "CZ",
			DefaultVATRate: "21",
			Currency:       "CZK",
			ExportDir:      ".",
			PaymentDays:    14,
			Template:       "standard",
		},
		Log: LogConfig{
			Level:      lc.Level,
			Format:     lc.Format,
			TimeFormat: lc.TimeFormat,
			Output:     lc.Output,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// $INVOICEDESK_CONFIG when path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML file on top of the defaults, without the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvInt("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvInt("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvInt("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.Migrations = getEnvBool("MIGRATIONS", c.Database.Migrations)
	c.Database.Seed = getEnvBool("DB_SEED", c.Database.Seed)
	c.Database.Debug = getEnvBool("DB_DEBUG", c.Database.Debug)

	c.App.Dev = getEnvBool("DEV", c.App.Dev)
	c.App.Locale = getEnv("APP_LOCALE", c.App.Locale)
	c.App.DefaultCountry = getEnv("APP_DEFAULT_COUNTRY", c.App.DefaultCountry)
	c.App.DefaultVATRate = getEnv("APP_DEFAULT_VAT_RATE", c.App.DefaultVATRate)
	c.App.Currency = getEnv("APP_CURRENCY", c.App.Currency)
	c.App.ExportDir = getEnv("EXPORT_DIR", c.App.ExportDir)
	c.App.PaymentDays = getEnvInt("APP_PAYMENT_DAYS", c.App.PaymentDays)
	c.App.Template = getEnv("APP_TEMPLATE", c.App.Template)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Log.Output = getEnv("LOG_OUTPUT", c.Log.Output)
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("database.path is required for sqlite")
	}
	if _, err := decimal.NewFromString(c.App.DefaultVATRate); err != nil {
		return fmt.Errorf("app.default_vat_rate: %w", err)
	}
	switch c.App.Template {
	case "", "standard", "compact":
	default:
		return fmt.Errorf("app.template must be standard or compact, got %q", c.App.Template)
	}
	if c.App.PaymentDays < 0 {
		return fmt.Errorf("app.payment_days must not be negative")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
