package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionSource_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		source   RegionSource
		expected bool
	}{
		{name: "catalog is valid", source: RegionSourceCatalog, expected: true},
		{name: "http is valid", source: RegionSourceHTTP, expected: true},
		{name: "empty string is invalid", source: RegionSource(""), expected: false},
		{name: "unknown source is invalid", source: RegionSource("ftp"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.source.IsValid())
		})
	}
}

func TestRegionSource_Description(t *testing.T) {
	assert.Contains(t, RegionSourceCatalog.Description(), "offline")
	assert.Contains(t, RegionSourceHTTP.Description(), "Remote")
	assert.Equal(t, unknownDescription, RegionSource("x").Description())
}

func TestRegionSettings_IsConfigured(t *testing.T) {
	t.Run("catalog needs nothing", func(t *testing.T) {
		assert.True(t, RegionSettings{Source: RegionSourceCatalog}.IsConfigured())
	})

	t.Run("http needs base url", func(t *testing.T) {
		assert.False(t, RegionSettings{Source: RegionSourceHTTP}.IsConfigured())
		assert.True(t, RegionSettings{Source: RegionSourceHTTP, BaseURL: "http://localhost:5000"}.IsConfigured())
	})

	t.Run("invalid source", func(t *testing.T) {
		assert.False(t, RegionSettings{Source: "nope"}.IsConfigured())
	})
}

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, 30, settings.Display.FrameRate)
	assert.True(t, settings.Display.Color)
	assert.Zero(t, settings.Display.Seed)
	assert.Equal(t, RegionSourceCatalog, settings.Regions.Source)
	assert.Equal(t, 5.0, settings.Regions.RateLimit)
	assert.True(t, settings.Regions.IsConfigured())
}

func TestAllRegionSources(t *testing.T) {
	sources := AllRegionSources()
	assert.Len(t, sources, 2)
	for _, s := range sources {
		assert.True(t, s.IsValid())
	}
}
