package services

import (
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// RenderSlice builds the drawable layers for one slice of a resolved view.
// The index is clamped; an empty slice set yields the explicit empty state.
func RenderSlice(view domain.ResolvedView, index int) domain.SliceFrame {
	frame := domain.SliceFrame{Mode: view.Mode}
	if len(view.Slices) == 0 {
		frame.Empty = true
		frame.Message = domain.EmptySliceMessage
		frame.Hint = domain.EmptySliceHint
		return frame
	}

	count := len(view.Slices) - 1
	index = domain.ClampIndex(index, count)
	slice := view.Slices[index]

	frame.Index = index
	frame.Count = count
	frame.Position = slice.Position
	frame.Regions = slice.Regions
	frame.Base = &domain.Layer{
		Image:   slice.Image,
		Blend:   domain.BlendNormal,
		Opacity: 1,
	}
	if slice.HasOverlay() {
		frame.Overlay = &domain.Layer{
			Image:   slice.Overlay,
			Blend:   domain.BlendScreen,
			Opacity: domain.OverlayOpacity,
		}
	}
	return frame
}
