// Package help provides the scrollable keybindings view for the TUI.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/styles"
)

// groupTitles names the keymap.FullHelp groups in order.
var groupTitles = []string{"Views", "Slices", "Regions", "General"}

// View lists every keybinding in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model
}

// NewView creates a help view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 20),
	}
	v.viewport.SetContent(v.content())
	return v
}

// SetDimensions sizes the viewport, leaving room for the title and footer.
func (v *View) SetDimensions(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = max(1, height-4)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.viewport.GotoTop()
	return nil
}

// Update scrolls the viewport. Esc and ? return to the visualizer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		k := msg.String()
		if keymap.Matches(k, v.keymap.Back) || keymap.Matches(k, v.keymap.Help) {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewVisualizer}
			}
		}
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the help view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Keybindings"))
	b.WriteString("\n\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] scroll  [esc] back"))
	return b.String()
}

func (v *View) content() string {
	var b strings.Builder
	for i, group := range v.keymap.FullHelp() {
		title := "More"
		if i < len(groupTitles) {
			title = groupTitles[i]
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(v.styles.Subtitle.Render(title))
		b.WriteString("\n")
		for _, binding := range group {
			b.WriteString(formatBinding(binding))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatBinding(binding key.Binding) string {
	h := binding.Help()
	return fmt.Sprintf("  %-12s %s", h.Key, h.Desc)
}
