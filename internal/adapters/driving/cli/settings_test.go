package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "Empty input returns default", input: "", maxVal: 5, defaultVal: 1, expected: 1},
		{name: "Valid choice within range", input: "3", maxVal: 5, defaultVal: 1, expected: 3},
		{name: "Choice below minimum returns default", input: "0", maxVal: 5, defaultVal: 1, expected: 1},
		{name: "Choice above maximum returns default", input: "6", maxVal: 5, defaultVal: 1, expected: 1},
		{name: "Invalid input returns default", input: "abc", maxVal: 5, defaultVal: 2, expected: 2},
		{name: "Negative number returns default", input: "-1", maxVal: 5, defaultVal: 1, expected: 1},
		{name: "Maximum value is valid", input: "5", maxVal: 5, defaultVal: 1, expected: 5},
		{name: "Minimum value is valid", input: "1", maxVal: 5, defaultVal: 3, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestSettingsShow(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[Display]")
	assert.Contains(t, out, "Default mode: first plane with slices")
	assert.Contains(t, out, "Frame rate: 30 fps")
	assert.Contains(t, out, "Seed: random")
	assert.Contains(t, out, "Source: Built-in catalog (offline)")
	assert.Contains(t, out, "Data dir: ~/.brainview/data")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShow_Invalid(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	require.NoError(t, env.settings.Set("regions.source", "http"))

	out, err := execute(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Base URL: (not set)")
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "brainview settings wizard")
}

func TestSettingsSet(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "settings", "set", "display.frame_rate", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Set display.frame_rate = 60")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 60, settings.Display.FrameRate)

	_, err = execute(t, "settings", "set", "display.frame_rate", "500")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "settings", "set", "search.mode", "full")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsReset(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	require.NoError(t, env.settings.Set("display.seed", "42"))

	out, err := execute(t, "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings restored to defaults.")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Zero(t, settings.Display.Seed)
}

func TestSettingsWizard(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	rootCmd.SetIn(strings.NewReader("3\n45\n2\nhttp://localhost:5000/\n"))
	out, err := execute(t, "settings", "wizard")
	require.NoError(t, err)
	assert.Contains(t, out, "Step 3: Region Information Source")
	assert.Contains(t, out, "All settings are valid and saved.")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ViewSagittal, settings.Display.DefaultMode)
	assert.Equal(t, 45, settings.Display.FrameRate)
	assert.Equal(t, domain.RegionSourceHTTP, settings.Regions.Source)
	assert.Equal(t, "http://localhost:5000", settings.Regions.BaseURL)
}

func TestSettingsWizard_Defaults(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	rootCmd.SetIn(strings.NewReader("\n\n\n"))
	_, err := execute(t, "settings", "wizard")
	require.NoError(t, err)

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ViewMode(""), settings.Display.DefaultMode)
	assert.Equal(t, 30, settings.Display.FrameRate)
	assert.Equal(t, domain.RegionSourceCatalog, settings.Regions.Source)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	resetCLI()
	defer resetCLI()

	_, err := execute(t, "settings", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
