package services

import (
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// Resolve normalises a dataset into the view model for one mode.
//
// For a 2D mode the per-plane slice set wins if the dataset names the plane
// at all, even when it is empty; otherwise the legacy flat set is used.
// A non-empty result is always centred. Missing data yields an empty view,
// never an error.
func Resolve(dataset *domain.AnalysisResult, mode domain.ViewMode) domain.ResolvedView {
	view := domain.ResolvedView{Mode: mode, Source: domain.SourceNone}
	if dataset == nil {
		return view
	}

	brain := dataset.Brain
	if mode == domain.ViewVolumetric {
		if brain.Voxels != nil {
			view.Voxels = brain.Voxels
			view.Source = sourceFor(brain.Shape)
		}
		return view
	}

	if set, ok := brain.Views[mode]; ok && brain.Shape == domain.ShapeViews {
		view.Source = domain.SourceViews
		view.Slices = set.Slices
	} else if brain.Flat.Len() > 0 {
		view.Source = domain.SourceFlat
		view.Slices = brain.Flat.Slices
	}

	if len(view.Slices) > 0 {
		view.SliceCount = len(view.Slices) - 1
		view.SliceIndex = domain.CenterIndex(view.SliceCount)
	}
	return view
}

func sourceFor(shape domain.BrainShape) domain.ResolvedSource {
	if shape == domain.ShapeFlat {
		return domain.SourceFlat
	}
	return domain.SourceViews
}

// AvailableModes lists the selectable modes for a dataset: the canonical
// planes first, then any extra plane keys in name order, then volumetric.
// A dataset without per-plane views still offers every canonical plane,
// since they all fall back to the flat set.
func AvailableModes(dataset *domain.AnalysisResult) []domain.ViewMode {
	modes := make([]domain.ViewMode, 0, 4)
	if dataset == nil || dataset.Brain.Shape != domain.ShapeViews {
		modes = append(modes, domain.CanonicalPlanes()...)
		return append(modes, domain.ViewVolumetric)
	}

	seen := make(map[domain.ViewMode]bool)
	for _, plane := range domain.CanonicalPlanes() {
		if _, ok := dataset.Brain.Views[plane]; ok || dataset.Brain.Flat.Len() > 0 {
			modes = append(modes, plane)
			seen[plane] = true
		}
	}
	for _, plane := range dataset.Brain.Planes() {
		if !seen[plane] && plane.IsPlanar() {
			modes = append(modes, plane)
		}
	}
	if len(modes) == 0 {
		modes = append(modes, domain.ViewAxial)
	}
	return append(modes, domain.ViewVolumetric)
}

// InitialMode picks the first 2D mode that resolves a non-empty slice set.
// When none does, the first 2D mode is returned so the host shows the
// explicit empty state.
func InitialMode(dataset *domain.AnalysisResult) domain.ViewMode {
	modes := AvailableModes(dataset)
	for _, mode := range modes {
		if mode.IsPlanar() && !Resolve(dataset, mode).Empty() {
			return mode
		}
	}
	return modes[0]
}
