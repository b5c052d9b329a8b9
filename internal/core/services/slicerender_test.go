package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

func TestRenderSlice_BaseAndOverlay(t *testing.T) {
	view := Resolve(viewsDataset(map[domain.ViewMode]int{domain.ViewAxial: 11}), domain.ViewAxial)

	frame := RenderSlice(view, view.SliceIndex)

	assert.False(t, frame.Empty)
	assert.Equal(t, domain.ViewAxial, frame.Mode)
	assert.Equal(t, 5, frame.Index)
	assert.Equal(t, 10, frame.Count)
	assert.InDelta(t, 0.5, frame.Position, 1e-9)

	require.NotNil(t, frame.Base)
	assert.Equal(t, domain.ImageRef("img-5"), frame.Base.Image)
	assert.Equal(t, domain.BlendNormal, frame.Base.Blend)
	assert.InDelta(t, 1.0, frame.Base.Opacity, 1e-9)

	require.NotNil(t, frame.Overlay)
	assert.Equal(t, domain.ImageRef("ovl-5"), frame.Overlay.Image)
	assert.Equal(t, domain.BlendScreen, frame.Overlay.Blend)
	assert.InDelta(t, domain.OverlayOpacity, frame.Overlay.Opacity, 1e-9)
}

func TestRenderSlice_NoOverlay(t *testing.T) {
	ds := viewsDataset(map[domain.ViewMode]int{domain.ViewAxial: 3})
	set := ds.Brain.Views[domain.ViewAxial]
	set.Slices[1].Overlay = ""
	ds.Brain.Views[domain.ViewAxial] = set

	frame := RenderSlice(Resolve(ds, domain.ViewAxial), 1)

	require.NotNil(t, frame.Base)
	assert.Nil(t, frame.Overlay)
}

func TestRenderSlice_ClampsIndex(t *testing.T) {
	view := Resolve(flatDataset(5), domain.ViewCoronal)

	assert.Equal(t, 0, RenderSlice(view, -3).Index)
	assert.Equal(t, 4, RenderSlice(view, 99).Index)
	assert.Equal(t, domain.ImageRef("img-4"), RenderSlice(view, 99).Base.Image)
}

func TestRenderSlice_EmptyState(t *testing.T) {
	view := Resolve(viewsDataset(map[domain.ViewMode]int{domain.ViewAxial: 0}), domain.ViewAxial)

	frame := RenderSlice(view, 0)

	assert.True(t, frame.Empty)
	assert.Nil(t, frame.Base)
	assert.Nil(t, frame.Overlay)
	assert.Equal(t, domain.EmptySliceMessage, frame.Message)
	assert.Equal(t, domain.EmptySliceHint, frame.Hint)
}

func TestRenderSlice_CarriesRegions(t *testing.T) {
	ds := flatDataset(2)
	ds.Brain.Flat.Slices[1].Regions = []domain.RegionKey{"amygdala", "hippocampus"}

	frame := RenderSlice(Resolve(ds, domain.ViewAxial), 1)

	assert.Equal(t, []domain.RegionKey{"amygdala", "hippocampus"}, frame.Regions)
}
