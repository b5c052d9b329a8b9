package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure display, region lookup and storage settings.

Use subcommands to change a single key or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by key.

Keys:
  display.default_mode   axial, sagittal, coronal, volumetric or empty
  display.frame_rate     volumetric frames per second (1-120)
  display.seed           fixed scene seed, 0 for random
  display.color          true or false
  regions.source         catalog or http
  regions.base_url       base URL of a remote region service
  regions.rate_limit     remote requests per second
  storage.data_dir       analysis database directory`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Display]")
	mode := "first plane with slices"
	if settings.Display.DefaultMode != "" {
		mode = settings.Display.DefaultMode.Label()
	}
	cmd.Printf("  Default mode: %s\n", mode)
	cmd.Printf("  Frame rate: %d fps\n", settings.Display.FrameRate)
	if settings.Display.Seed != 0 {
		cmd.Printf("  Seed: %d\n", settings.Display.Seed)
	} else {
		cmd.Printf("  Seed: random\n")
	}
	cmd.Printf("  Colour: %s\n", yesNo(settings.Display.Color))
	cmd.Println()

	cmd.Println("[Regions]")
	cmd.Printf("  Source: %s\n", settings.Regions.Source.Description())
	if settings.Regions.Source.RequiresBaseURL() {
		baseURL := settings.Regions.BaseURL
		if baseURL == "" {
			baseURL = "(not set)"
		}
		cmd.Printf("  Base URL: %s\n", baseURL)
		cmd.Printf("  Rate limit: %g req/s\n", settings.Regions.RateLimit)
	}
	cmd.Println()

	cmd.Println("[Storage]")
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "~/.brainview/data"
	}
	cmd.Printf("  Data dir: %s\n", dataDir)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'brainview settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("brainview Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Default view mode
	cmd.Println("Step 1: Default View Mode")
	cmd.Println("-------------------------")
	modes := append([]domain.ViewMode{""}, domain.CanonicalPlanes()...)
	modes = append(modes, domain.ViewVolumetric)
	for i, mode := range modes {
		label := "First plane with slice data"
		if mode != "" {
			label = mode.Label()
		}
		cmd.Printf("  %d. %s\n", i+1, label)
	}
	cmd.Print("\nEnter choice [1]: ")
	selected := modes[parseChoice(readLine(reader), len(modes), 1)-1]
	if err := settingsService.Set("display.default_mode", string(selected)); err != nil {
		return fmt.Errorf("failed to set default mode: %w", err)
	}
	cmd.Println()

	// Step 2: Frame rate
	cmd.Println("Step 2: Volumetric Frame Rate")
	cmd.Println("-----------------------------")
	current := domain.DefaultAppSettings().Display.FrameRate
	if settings, err := settingsService.Get(); err == nil {
		current = settings.Display.FrameRate
	}
	cmd.Printf("Frames per second [%d]: ", current)
	if input := readLine(reader); input != "" {
		if err := settingsService.Set("display.frame_rate", input); err != nil {
			cmd.Printf("Keeping %d fps: %v\n", current, err)
		}
	}
	cmd.Println()

	// Step 3: Region source
	cmd.Println("Step 3: Region Information Source")
	cmd.Println("---------------------------------")
	sources := domain.AllRegionSources()
	for i, src := range sources {
		cmd.Printf("  %d. %s\n", i+1, src.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	source := sources[parseChoice(readLine(reader), len(sources), 1)-1]
	if err := settingsService.Set("regions.source", source.String()); err != nil {
		return fmt.Errorf("failed to set region source: %w", err)
	}
	if source.RequiresBaseURL() {
		cmd.Print("Base URL (e.g. http://localhost:5000): ")
		if err := settingsService.Set("regions.base_url", readLine(reader)); err != nil {
			return fmt.Errorf("failed to set base url: %w", err)
		}
	}
	cmd.Println()

	// Final validation
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
