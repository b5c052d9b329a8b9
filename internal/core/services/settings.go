package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDefaultMode = "display.default_mode"
	keyFrameRate   = "display.frame_rate"
	keySeed        = "display.seed"
	keyColor       = "display.color"
	keyRegionSrc   = "regions.source"
	keyRegionURL   = "regions.base_url"
	keyRateLimit   = "regions.rate_limit"
	keyDataDir     = "storage.data_dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Display: domain.DisplaySettings{
			DefaultMode: s.getViewMode(defaults.Display.DefaultMode),
			FrameRate:   s.getFrameRate(defaults.Display.FrameRate),
			Seed:        int64(s.configStore.GetInt(keySeed)),
			Color:       s.getBool(keyColor, defaults.Display.Color),
		},
		Regions: domain.RegionSettings{
			Source:    s.getRegionSource(defaults.Regions.Source),
			BaseURL:   s.configStore.GetString(keyRegionURL),
			RateLimit: s.getFloat(keyRateLimit, defaults.Regions.RateLimit),
		},
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(keyDataDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyDefaultMode, settings.Display.DefaultMode.String()); err != nil {
		return fmt.Errorf("save default mode: %w", err)
	}
	if err := s.configStore.Set(keyFrameRate, settings.Display.FrameRate); err != nil {
		return fmt.Errorf("save frame rate: %w", err)
	}
	if err := s.configStore.Set(keySeed, settings.Display.Seed); err != nil {
		return fmt.Errorf("save seed: %w", err)
	}
	if err := s.configStore.Set(keyColor, settings.Display.Color); err != nil {
		return fmt.Errorf("save color: %w", err)
	}

	if err := s.configStore.Set(keyRegionSrc, settings.Regions.Source.String()); err != nil {
		return fmt.Errorf("save region source: %w", err)
	}
	if err := s.configStore.Set(keyRegionURL, settings.Regions.BaseURL); err != nil {
		return fmt.Errorf("save region base_url: %w", err)
	}
	if err := s.configStore.Set(keyRateLimit, settings.Regions.RateLimit); err != nil {
		return fmt.Errorf("save region rate_limit: %w", err)
	}

	if err := s.configStore.Set(keyDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save data_dir: %w", err)
	}

	return nil
}

// Set parses and stores a single setting by key.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case keyDefaultMode:
		if value == "" {
			stored = ""
			break
		}
		mode, err := domain.ParseViewMode(value)
		if err != nil {
			return err
		}
		stored = mode.String()
	case keyFrameRate:
		n, err := strconv.Atoi(value)
		if err != nil || n < domain.MinFrameRate || n > domain.MaxFrameRate {
			return fmt.Errorf("%w: frame rate must be %d-%d", domain.ErrInvalidInput,
				domain.MinFrameRate, domain.MaxFrameRate)
		}
		stored = n
	case keySeed:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: seed must be an integer", domain.ErrInvalidInput)
		}
		stored = n
	case keyColor:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: color must be true or false", domain.ErrInvalidInput)
		}
		stored = b
	case keyRegionSrc:
		src := domain.RegionSource(strings.ToLower(value))
		if !src.IsValid() {
			return fmt.Errorf("%w: region source %q", domain.ErrInvalidInput, value)
		}
		stored = src.String()
	case keyRegionURL:
		if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%w: base url must start with http:// or https://", domain.ErrInvalidInput)
		}
		stored = strings.TrimRight(value, "/")
	case keyRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: rate limit must be a positive number", domain.ErrInvalidInput)
		}
		stored = f
	case keyDataDir:
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes every stored setting so defaults apply.
func (s *SettingsService) Reset() error {
	for _, key := range s.Keys() {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// Keys returns the supported setting keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyDefaultMode, keyFrameRate, keySeed, keyColor,
		keyRegionSrc, keyRegionURL, keyRateLimit, keyDataDir,
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Regions.Source.IsValid() {
		return fmt.Errorf("invalid region source: %s", settings.Regions.Source)
	}
	if !settings.Regions.IsConfigured() {
		return fmt.Errorf(
			"region source %q requires regions.base_url to be set",
			settings.Regions.Source.Description(),
		)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFrameRate(defaultVal int) int {
	val := s.configStore.GetInt(keyFrameRate)
	if val < domain.MinFrameRate || val > domain.MaxFrameRate {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getViewMode(defaultVal domain.ViewMode) domain.ViewMode {
	val := s.configStore.GetString(keyDefaultMode)
	if val == "" {
		return defaultVal
	}
	mode, err := domain.ParseViewMode(val)
	if err != nil {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getRegionSource(defaultVal domain.RegionSource) domain.RegionSource {
	val := s.configStore.GetString(keyRegionSrc)
	if val == "" {
		return defaultVal
	}
	src := domain.RegionSource(val)
	if !src.IsValid() {
		return defaultVal
	}
	return src
}
