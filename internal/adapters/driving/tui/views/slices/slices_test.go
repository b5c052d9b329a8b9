package slices

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

type stubLookup struct{}

func (stubLookup) Lookup(_ context.Context, key domain.RegionKey) (*domain.RegionInfo, error) {
	return &domain.RegionInfo{Key: key, Name: string(key)}, nil
}

func dataset(n int) *domain.AnalysisResult {
	slices := make([]domain.Slice, n)
	for i := range slices {
		slices[i] = domain.Slice{
			Index:   i,
			Image:   "data:image/png;base64,AAAAAAAA",
			Regions: []domain.RegionKey{"amygdala", "insula"},
		}
	}
	slices[0].Overlay = "https://cdn.example.com/overlay.png"
	return &domain.AnalysisResult{
		ID: "a1",
		Brain: domain.BrainData{
			Shape: domain.ShapeViews,
			Views: map[domain.ViewMode]domain.SliceSet{domain.ViewAxial: {Slices: slices}},
		},
	}
}

func newTestView(t *testing.T, n int) (*View, *services.VisualizationService, *services.RegionCoordinator) {
	t.Helper()
	visualizer := services.NewVisualizationService(nil, nil)
	if n > 0 {
		require.NoError(t, visualizer.Load(dataset(n)))
	}
	regions := services.NewRegionCoordinator(stubLookup{})
	v := NewView(styles.DefaultStyles(), nil, visualizer, regions)
	v.SetDimensions(120, 30)
	return v, visualizer, regions
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_Navigation(t *testing.T) {
	v, visualizer, _ := newTestView(t, 25)
	require.Equal(t, 12, visualizer.State().SliceIndex)

	tests := []struct {
		key  string
		want int
	}{
		{"right", 13},
		{"l", 14},
		{"left", 13},
		{"pgdown", 23},
		{"pgdown", 24},
		{"pgup", 14},
		{"g", 0},
		{"h", 0},
		{"G", 24},
	}
	for _, tt := range tests {
		_, cmd := v.Update(key(tt.key))
		assert.Nil(t, cmd)
		assert.Equal(t, tt.want, visualizer.State().SliceIndex, "after %s", tt.key)
	}
}

func TestView_NavigationInVolumetricMode(t *testing.T) {
	v, visualizer, _ := newTestView(t, 3)
	require.NoError(t, visualizer.SetMode(domain.ViewVolumetric))

	_, cmd := v.Update(key("G"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, domain.ErrNotSliceMode)
}

func TestView_RegionCursor(t *testing.T) {
	v, visualizer, regions := newTestView(t, 3)

	assert.Equal(t, domain.RegionKey("amygdala"), v.CursorRegion())

	v.Update(key("down"))
	assert.Equal(t, domain.RegionKey("insula"), v.CursorRegion())
	assert.Equal(t, domain.RegionKey("insula"), visualizer.State().HoveredRegion)

	v.Update(key("down"))
	assert.Equal(t, domain.RegionKey("amygdala"), v.CursorRegion(), "cursor wraps")

	v.Update(key("up"))
	assert.Equal(t, domain.RegionKey("insula"), v.CursorRegion())

	_, cmd := v.Update(key("enter"))
	assert.Nil(t, cmd)
	regions.Wait()
	assert.Equal(t, domain.RegionKey("insula"), regions.Panel().Key)
	assert.Equal(t, domain.FetchReady, regions.Panel().Status)
}

func TestView_StateChangedClampsCursor(t *testing.T) {
	v, visualizer, _ := newTestView(t, 3)
	v.Update(key("down"))
	require.Equal(t, 1, v.cursor)

	require.NoError(t, visualizer.Load(&domain.AnalysisResult{
		Brain: domain.BrainData{Shape: domain.ShapeFlat, Flat: domain.SliceSet{Slices: []domain.Slice{
			{Image: "img", Regions: []domain.RegionKey{"thalamus"}},
		}}},
	}))
	v.Update(messages.StateChanged{})
	assert.Equal(t, domain.RegionKey("thalamus"), v.CursorRegion())
}

func TestView_Render(t *testing.T) {
	t.Run("empty state", func(t *testing.T) {
		v, _, _ := newTestView(t, 0)
		out := v.View()
		assert.Contains(t, out, domain.EmptySliceMessage)
		assert.Contains(t, out, domain.EmptySliceHint)
	})

	t.Run("slice with overlay", func(t *testing.T) {
		v, visualizer, _ := newTestView(t, 3)
		require.NoError(t, visualizer.SetSliceIndex(0))
		visualizer.MarkSelected("insula")

		out := v.View()
		assert.Contains(t, out, "Slice   0/2")
		assert.Contains(t, out, "image/png, 6 B")
		assert.Contains(t, out, "https://cdn.example.com/overlay.png")
		assert.Contains(t, out, "screen, 70%")
		assert.Contains(t, out, "● insula")
	})

	t.Run("slice without overlay", func(t *testing.T) {
		v, _, _ := newTestView(t, 3)
		assert.Contains(t, v.View(), "none")
	})
}

func TestDescribeImage(t *testing.T) {
	assert.Equal(t, "inline, 3 B", describeImage("data:,AAAA"))
	assert.Equal(t, "https://x.test/a.png", describeImage("https://x.test/a.png"))
	long := domain.ImageRef("https://cdn.example.com/very/long/path/to/an/overlay/image.png")
	assert.Len(t, describeImage(long), 48)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "2.0 KB", humanSize(2048))
	assert.Equal(t, "1.5 MB", humanSize(3<<19))
}
