// Package regionpanel provides the region information panel for the TUI.
package regionpanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// Width is the panel's outer width in cells.
const Width = 40

// View shows the metadata of the selected region.
type View struct {
	styles   *styles.Styles
	regions  driving.RegionSelector
	spinner  spinner.Model
	panel    domain.RegionPanel
	spinning bool
	height   int
}

// NewView creates a region panel bound to a selector.
func NewView(s *styles.Styles, regions driving.RegionSelector) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = s.Subtitle
	return &View{
		styles:  s,
		regions: regions,
		spinner: spin,
		panel:   regions.Panel(),
	}
}

// SetHeight sets the panel height.
func (v *View) SetHeight(height int) {
	v.height = height
}

// Open returns true while a region is selected.
func (v *View) Open() bool {
	return v.panel.Open()
}

// Panel returns the last panel snapshot.
func (v *View) Panel() domain.RegionPanel {
	return v.panel
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update refreshes the snapshot and drives the loading spinner.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PanelChanged:
		v.panel = v.regions.Panel()
		if v.panel.Status == domain.FetchLoading && !v.spinning {
			v.spinning = true
			return v, v.spinner.Tick
		}
		return v, nil

	case spinner.TickMsg:
		if v.panel.Status != domain.FetchLoading {
			v.spinning = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the panel, or "" when no region is selected.
func (v *View) View() string {
	if !v.panel.Open() {
		return ""
	}

	inner := Width - 4
	var b strings.Builder

	switch v.panel.Status {
	case domain.FetchLoading:
		b.WriteString(v.styles.Title.Render(string(v.panel.Key)))
		b.WriteString("\n\n")
		b.WriteString(v.spinner.View() + " Loading region information...")
	case domain.FetchError:
		b.WriteString(v.styles.Title.Render(string(v.panel.Key)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(v.panel.Message))
	case domain.FetchReady:
		b.WriteString(v.renderInfo(v.panel.Info, inner))
	default:
		b.WriteString(v.styles.Muted.Render(string(v.panel.Key)))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[esc] close"))

	style := v.styles.Panel.Width(inner)
	if v.height > 2 {
		style = style.Height(v.height - 2)
	}
	return style.Render(b.String())
}

func (v *View) renderInfo(info *domain.RegionInfo, width int) string {
	if info == nil {
		return v.styles.Muted.Render("No information")
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(info.Name))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(info.Description))

	if len(info.Functions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Subtitle.Render("Functions"))
		for _, f := range info.Functions {
			b.WriteString("\n")
			b.WriteString(wrap.Render(fmt.Sprintf("• %s", f)))
		}
	}

	if info.MusicRelation != "" {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Subtitle.Render("Music"))
		b.WriteString("\n")
		b.WriteString(wrap.Render(info.MusicRelation))
	}

	if emotions := info.DisplayEmotions(); len(emotions) > 0 {
		tags := make([]string, len(emotions))
		for i, e := range emotions {
			tags[i] = v.styles.EmotionTag(e)
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Subtitle.Render("Emotions"))
		b.WriteString("\n")
		b.WriteString(strings.Join(tags, " "))
	}
	return b.String()
}
