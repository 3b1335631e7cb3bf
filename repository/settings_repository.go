package repository

import (
	"errors"
	"fmt"
	"log"

	"pixelforge/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository defines the interface for admin-editable site settings.
type SettingsRepository interface {
	// GetSetting returns the value for a key, or "" when the key is unset.
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetSetting reads a single setting. An unset key is not an error.
func (r *settingsRepository) GetSetting(key string) (string, error) {
	if key == "" {
		return "", errors.New("setting key cannot be empty")
	}
	var setting models.SiteSetting
	err := r.db.First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		log.Printf("ERROR: [SettingsRepository] Failed to read setting '%s': %v", key, err)
		return "", fmt.Errorf("failed to read setting '%s': %w", key, err)
	}
	return setting.Value, nil
}

// SetSetting writes a setting, inserting or overwriting as needed.
func (r *settingsRepository) SetSetting(key, value string) error {
	if key == "" {
		return errors.New("setting key cannot be empty")
	}
	setting := models.SiteSetting{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error
	if err != nil {
		log.Printf("ERROR: [SettingsRepository] Failed to write setting '%s': %v", key, err)
		return fmt.Errorf("failed to write setting '%s': %w", key, err)
	}
	log.Printf("INFO: [SettingsRepository] Setting '%s' updated.", key)
	return nil
}
