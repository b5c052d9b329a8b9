// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Tissue is the anatomical base colour.
	Tissue lipgloss.Color

	// Emotions colours the emotion tags. Labels without an entry use Tissue.
	Emotions map[domain.EmotionLabel]lipgloss.Color
}

// EmotionColor returns the tag colour for an emotion label.
func (t *Theme) EmotionColor(label domain.EmotionLabel) lipgloss.Color {
	if c, ok := t.Emotions[label]; ok {
		return c
	}
	return t.Tissue
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#4F7CFF"), // Activation blue
		Secondary:  lipgloss.Color("#FF5A4F"), // Activation red
		Background: lipgloss.Color("#14141C"),
		Foreground: lipgloss.Color("#E6E6F0"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Tissue:     lipgloss.Color("#E0CDCD"),
		Emotions: map[domain.EmotionLabel]lipgloss.Color{
			domain.EmotionHappy:     lipgloss.Color("#FAD643"),
			domain.EmotionSad:       lipgloss.Color("#5C8DD6"),
			domain.EmotionCalm:      lipgloss.Color("#7FC8A9"),
			domain.EmotionEnergetic: lipgloss.Color("#FF8A3D"),
			domain.EmotionTense:     lipgloss.Color("#D9534F"),
		},
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Tab and ActiveTab render the view mode tabs.
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	// Tag renders an emotion tag.
	Tag lipgloss.Style

	// Slider renders the filled part of the slice slider.
	Slider lipgloss.Style

	// Panel frames the region info panel.
	Panel lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary).
			Padding(0, 1),

		Tag: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Tissue).
			Padding(0, 1),

		Slider: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// EmotionTag renders an emotion label as a coloured tag.
func (s *Styles) EmotionTag(label domain.EmotionLabel) string {
	return s.Tag.Background(s.theme.EmotionColor(label)).Render(string(label))
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
