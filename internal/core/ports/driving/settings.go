package driving

import "github.com/custodia-labs/brainview-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its dotted key.
	Set(key, value string) error

	// Reset restores defaults.
	Reset() error

	// Keys returns the supported setting keys.
	Keys() []string

	// Validate checks the current settings.
	Validate() error
}
