package models

import "time"

// Setting is one row of the key/value application settings store.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting keys for the favorites cleanup job.
const (
	SettingCleanupEnabled = "favorites_cleanup_enabled"
	SettingCleanupDays    = "favorites_cleanup_days"
	SettingCleanupHours   = "favorites_cleanup_hours"
	SettingCleanupMinutes = "favorites_cleanup_minutes"
)

// CleanupSettings is the favorites retention policy as exposed over the API.
type CleanupSettings struct {
	Enabled bool `json:"enabled"`
	Days    int  `json:"days" binding:"min=0"`
	Hours   int  `json:"hours" binding:"min=0,max=23"`
	Minutes int  `json:"minutes" binding:"min=0,max=59"`
}

// Retention returns the configured retention as a duration.
func (s CleanupSettings) Retention() time.Duration {
	return time.Duration(s.Days)*24*time.Hour +
		time.Duration(s.Hours)*time.Hour +
		time.Duration(s.Minutes)*time.Minute
}
