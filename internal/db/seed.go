package db

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/invoicedesk/internal/models"
)

// Seed creates a default issuing company when none exists. It is safe to call
// on every start.
func Seed(db *gorm.DB, country string) error {
	var existing models.CompanySettings
	err := db.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check company settings: %w", err)
	}
	if country == "" {
		country = models.DefaultCountry
	}
	company := models.CompanySettings{
		Name:      "My Company",
		Country:   country,
		IsDefault: true,
	}
	if err := db.Create(&company).Error; err != nil {
		return fmt.Errorf("seed company settings: %w", err)
	}
	return nil
}

// UpgradeRecords rewrites client rows stored with an older schema version.
// Readers upgrade on load as well, so this only saves repeated work.
func UpgradeRecords(db *gorm.DB, log zerolog.Logger) (int, error) {
	var clients []models.Client
	if err := db.Where("schema_version < ?", models.ClientSchemaVersion).Find(&clients).Error; err != nil {
		return 0, fmt.Errorf("load outdated clients: %w", err)
	}
	upgraded := 0
	for i := range clients {
		if !models.UpgradeClient(&clients[i]) {
			continue
		}
		if err := db.Save(&clients[i]).Error; err != nil {
			return upgraded, fmt.Errorf("upgrade client %d: %w", clients[i].ID, err)
		}
		upgraded++
	}
	if upgraded > 0 {
		log.Info().Int("count", upgraded).Int("version", models.ClientSchemaVersion).Msg("upgraded client records")
	}
	return upgraded, nil
}
