// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateLoading  State = "loading"
	StateWatching State = "watching"
	StateError    State = "error"
	StateHelp     State = "help"
)

// Bar displays the loaded analysis, view position and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	dataset  string
	emotion  domain.EmotionLabel
	position string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, analysis and position.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady, StateWatching:
	}

	if s.dataset == "" {
		return s.styles.Muted.Render("No analysis loaded")
	}
	parts := []string{s.styles.Normal.Render(s.dataset)}
	if s.emotion != "" {
		parts = append(parts, s.styles.Subtitle.Render(string(s.emotion)))
	}
	if s.position != "" {
		parts = append(parts, s.styles.Muted.Render(s.position))
	}
	if s.state == StateWatching {
		parts = append(parts, s.styles.Success.Render("watching"))
	}
	return strings.Join(parts, "  ")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateHelp {
		bindings = []key.Binding{s.keymap.Back, s.keymap.Quit}
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetDataset sets the analysis name and its dominant emotion.
func (s *Bar) SetDataset(name string, dominant domain.EmotionLabel) {
	s.dataset = name
	s.emotion = dominant
}

// Dataset returns the analysis name shown.
func (s *Bar) Dataset() string {
	return s.dataset
}

// SetPosition sets the view position text, e.g. "Axial 5/10".
func (s *Bar) SetPosition(position string) {
	s.position = position
}

// Position returns the view position text.
func (s *Bar) Position() string {
	return s.position
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.dataset = ""
	s.emotion = ""
	s.position = ""
}
