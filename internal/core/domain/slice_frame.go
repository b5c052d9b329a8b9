package domain

// Empty-state text shown when a mode resolves no slices.
const (
	EmptySliceMessage = "No slice data available"
	EmptySliceHint    = "Try another view mode or upload a different music file"
)

// OverlayOpacity is the fixed opacity of activation overlays.
const OverlayOpacity = 0.7

// ResolvedSource records which dataset variant a view came from.
type ResolvedSource string

// Resolution sources.
const (
	SourceViews ResolvedSource = "views"
	SourceFlat  ResolvedSource = "flat"
	SourceNone  ResolvedSource = "none"
)

// ResolvedView is the canonical view model consumed by the renderers.
type ResolvedView struct {
	Mode       ViewMode       `json:"mode"`
	Source     ResolvedSource `json:"source"`
	Slices     []Slice        `json:"slices,omitempty"`
	Voxels     *VoxelData     `json:"-"`
	SliceCount int            `json:"slice_count"`
	SliceIndex int            `json:"slice_index"`
}

// Empty returns true if the view has nothing to draw for its mode.
func (v ResolvedView) Empty() bool {
	if v.Mode == ViewVolumetric {
		return v.Voxels.Len() == 0
	}
	return len(v.Slices) == 0
}

// Layer is one image in a composited slice.
type Layer struct {
	Image   ImageRef `json:"image"`
	Blend   Blend    `json:"blend"`
	Opacity float64  `json:"opacity"`
}

// SliceFrame is what a host draws for a 2D mode: a base layer, an optional
// overlay, or an explicit empty state.
type SliceFrame struct {
	Mode     ViewMode    `json:"mode"`
	Index    int         `json:"index"`
	Count    int         `json:"count"`
	Position float64     `json:"position"`
	Base     *Layer      `json:"base,omitempty"`
	Overlay  *Layer      `json:"overlay,omitempty"`
	Regions  []RegionKey `json:"regions,omitempty"`
	Empty    bool        `json:"empty"`
	Message  string      `json:"message,omitempty"`
	Hint     string      `json:"hint,omitempty"`
}
