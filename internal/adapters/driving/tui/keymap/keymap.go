// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view or closes the region panel.
	Back key.Binding

	// NextMode and PrevMode cycle the view mode tabs.
	NextMode key.Binding
	PrevMode key.Binding

	// PrevSlice and NextSlice move the slice slider by one.
	PrevSlice key.Binding
	NextSlice key.Binding

	// JumpBack and JumpForward move the slider by a page.
	JumpBack    key.Binding
	JumpForward key.Binding

	// FirstSlice and LastSlice move the slider to its ends.
	FirstSlice key.Binding
	LastSlice  key.Binding

	// Up and Down move the region cursor or list selection.
	Up   key.Binding
	Down key.Binding

	// Select picks the highlighted region or analysis.
	Select key.Binding

	// Library opens the stored analyses list.
	Library key.Binding

	// Refresh reloads the current list.
	Refresh key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		PrevSlice: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev slice"),
		),
		NextSlice: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next slice"),
		),
		JumpBack: key.NewBinding(
			key.WithKeys("pgup", "H"),
			key.WithHelp("pgup", "back 10"),
		),
		JumpForward: key.NewBinding(
			key.WithKeys("pgdown", "L"),
			key.WithHelp("pgdn", "forward 10"),
		),
		FirstSlice: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first slice"),
		),
		LastSlice: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last slice"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Library: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open analysis"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.PrevSlice, k.NextSlice, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextMode, k.PrevMode},
		{k.PrevSlice, k.NextSlice, k.JumpBack, k.JumpForward, k.FirstSlice, k.LastSlice},
		{k.Up, k.Down, k.Select, k.Back},
		{k.Library, k.Refresh, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
