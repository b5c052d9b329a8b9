// Package slices provides the 2D slice view for the TUI.
package slices

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// pageSize is how far JumpBack and JumpForward move.
const pageSize = 10

// View shows the current slice: mode tabs, slider, layers and regions.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	visualizer driving.Visualizer
	regions    driving.RegionSelector

	ctx    context.Context
	cursor int
	width  int
	height int
}

// NewView creates a slice view.
func NewView(s *styles.Styles, km *keymap.KeyMap, visualizer driving.Visualizer, regions driving.RegionSelector) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:     s,
		keymap:     km,
		visualizer: visualizer,
		regions:    regions,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for region selections.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDimensions sets the drawable size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles slice navigation and region picking.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case messages.StateChanged:
		v.clampCursor()
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	var err error
	key := msg.String()
	state := v.visualizer.State()

	switch {
	case keymap.Matches(key, v.keymap.PrevSlice):
		err = v.visualizer.StepSlice(-1)
	case keymap.Matches(key, v.keymap.NextSlice):
		err = v.visualizer.StepSlice(1)
	case keymap.Matches(key, v.keymap.JumpBack):
		err = v.visualizer.StepSlice(-pageSize)
	case keymap.Matches(key, v.keymap.JumpForward):
		err = v.visualizer.StepSlice(pageSize)
	case keymap.Matches(key, v.keymap.FirstSlice):
		err = v.visualizer.SetSliceIndex(0)
	case keymap.Matches(key, v.keymap.LastSlice):
		err = v.visualizer.SetSliceIndex(state.SliceCount)
	case keymap.Matches(key, v.keymap.Up):
		v.moveCursor(-1)
	case keymap.Matches(key, v.keymap.Down):
		v.moveCursor(1)
	case keymap.Matches(key, v.keymap.Select):
		if region := v.CursorRegion(); region != "" {
			err = v.regions.Select(v.ctx, region)
		}
	}

	if err != nil {
		return v, func() tea.Msg { return messages.ErrorOccurred{Err: err} }
	}
	return v, nil
}

// moveCursor moves the region cursor and hovers the region under it.
func (v *View) moveCursor(delta int) {
	regions := v.visualizer.SliceFrame().Regions
	if len(regions) == 0 {
		return
	}
	v.cursor = (v.cursor + delta + len(regions)) % len(regions)
	v.visualizer.Hover(regions[v.cursor])
}

func (v *View) clampCursor() {
	n := len(v.visualizer.SliceFrame().Regions)
	if v.cursor >= n {
		v.cursor = 0
	}
}

// CursorRegion returns the region under the cursor, or "".
func (v *View) CursorRegion() domain.RegionKey {
	regions := v.visualizer.SliceFrame().Regions
	if v.cursor < 0 || v.cursor >= len(regions) {
		return ""
	}
	return regions[v.cursor]
}

// View renders the slice view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(RenderTabs(v.styles, v.visualizer.Modes(), v.visualizer.State().Mode))
	b.WriteString("\n\n")

	frame := v.visualizer.SliceFrame()
	if frame.Empty {
		b.WriteString(v.styles.Muted.Render(frame.Message))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render(frame.Hint))
		return b.String()
	}

	b.WriteString(v.renderSlider(frame))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%-9s %s\n", "Base:", describeImage(frame.Base.Image)))
	if frame.Overlay != nil {
		b.WriteString(fmt.Sprintf("%-9s %s %s\n", "Overlay:", describeImage(frame.Overlay.Image),
			v.styles.Muted.Render(fmt.Sprintf("(%s, %.0f%%)", frame.Overlay.Blend, frame.Overlay.Opacity*100))))
	} else {
		b.WriteString(fmt.Sprintf("%-9s %s\n", "Overlay:", v.styles.Muted.Render("none")))
	}

	b.WriteString("\n")
	b.WriteString(v.renderRegions(frame.Regions))
	return b.String()
}

func (v *View) renderSlider(frame domain.SliceFrame) string {
	width := v.width - 24
	if width < 10 {
		width = 10
	}
	filled := width
	if frame.Count > 0 {
		filled = frame.Index * width / frame.Count
	}
	bar := v.styles.Slider.Render(strings.Repeat("━", filled)) + "●" +
		v.styles.Muted.Render(strings.Repeat("─", width-filled))
	return fmt.Sprintf("Slice %3d/%-3d %s", frame.Index, frame.Count, bar)
}

func (v *View) renderRegions(regions []domain.RegionKey) string {
	if len(regions) == 0 {
		return v.styles.Muted.Render("No labelled regions in this slice")
	}

	state := v.visualizer.State()
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Regions"))
	for i, key := range regions {
		b.WriteString("\n")
		marker := "  "
		if key == state.SelectedRegion {
			marker = "● "
		}
		line := marker + string(key)
		if i == v.cursor && key == state.HoveredRegion {
			line = v.styles.Selected.Render(line)
		}
		b.WriteString(line)
	}
	return b.String()
}

// RenderTabs renders the mode tabs with mode highlighted.
func RenderTabs(s *styles.Styles, modes []domain.ViewMode, mode domain.ViewMode) string {
	tabs := make([]string, 0, len(modes))
	for _, m := range modes {
		if m == mode {
			tabs = append(tabs, s.ActiveTab.Render(m.Label()))
			continue
		}
		tabs = append(tabs, s.Tab.Render(m.Label()))
	}
	return strings.Join(tabs, " ")
}

// describeImage summarises an image reference without decoding it.
func describeImage(ref domain.ImageRef) string {
	s := string(ref)
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		mime, payload, _ := strings.Cut(rest, ",")
		mime = strings.TrimSuffix(mime, ";base64")
		if mime == "" {
			mime = "inline"
		}
		return fmt.Sprintf("%s, %s", mime, humanSize(len(payload)*3/4))
	}
	if len(s) > 48 {
		return s[:45] + "..."
	}
	return s
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
