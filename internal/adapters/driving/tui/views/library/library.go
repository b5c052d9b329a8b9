// Package library provides the stored analyses view for the TUI.
package library

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// View lists stored analyses and opens the selected one.
type View struct {
	styles   *styles.Styles
	analysis driving.AnalysisService

	summaries []domain.AnalysisSummary
	selected  int
	width     int
	height    int
	err       error
	loading   bool
}

// NewView creates a library view.
func NewView(s *styles.Styles, analysis driving.AnalysisService) *View {
	return &View{
		styles:   s,
		analysis: analysis,
		width:    80,
	}
}

// SetDimensions sets the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Init loads the analyses.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

// load returns a command that lists the stored analyses.
func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.analysis == nil {
			return messages.AnalysesLoaded{Err: fmt.Errorf("analysis library not available")}
		}
		summaries, err := v.analysis.List(context.Background())
		return messages.AnalysesLoaded{Summaries: summaries, Err: err}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnalysesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.summaries = msg.Summaries
		v.err = nil
		if v.selected >= len(v.summaries) {
			v.selected = 0
		}
		return v, nil
	}
	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.summaries)-1 {
			v.selected++
		}
	case "enter":
		if v.selected < len(v.summaries) {
			id := v.summaries[v.selected].ID
			return v, func() tea.Msg {
				return messages.AnalysisSelected{ID: id}
			}
		}
	case "r":
		v.loading = true
		return v, v.load()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewVisualizer}
		}
	}
	return v, nil
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}

// View renders the library view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Analyses"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading analyses..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.summaries) == 0:
		b.WriteString(v.styles.Muted.Render("No analyses imported. Use 'brainview analysis import <file>'."))
	default:
		for i := range v.summaries {
			b.WriteString(v.renderSummary(i, &v.summaries[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] open  [r] reload  [esc] back  [q] quit"))
	return b.String()
}

// renderSummary renders a single analysis line.
func (v *View) renderSummary(index int, s *domain.AnalysisSummary) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := s.Name
	if name == "" {
		name = s.ID
	}
	maxNameLen := v.width - 48
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	detail := fmt.Sprintf("%-6s %6d voxels", s.Shape, s.VoxelCount)
	if s.Dominant != "" {
		detail += fmt.Sprintf("  %s %.0f%%", s.Dominant, s.DominantPct*100)
	}
	date := s.CreatedAt.Local().Format("2006-01-02")

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%s  %-*s %s", indicator, date, maxNameLen, name, detail))
	}
	return v.styles.Normal.Render(indicator) +
		v.styles.Muted.Render(date+"  ") +
		v.styles.Normal.Render(fmt.Sprintf("%-*s ", maxNameLen, name)) +
		v.styles.Muted.Render(detail)
}
