package models

import "time"

// Setting keys used by the social cross-poster.
const (
	SettingMastodonInstance = "mastodon_instance"
	SettingMastodonToken    = "mastodon_access_token"
	SettingMastodonEnabled  = "mastodon_enabled"
)

// SiteSetting is a generic key/value row for admin-editable settings.
type SiteSetting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the SiteSetting model.
func (SiteSetting) TableName() string {
	return "site_settings"
}
