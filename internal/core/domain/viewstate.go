package domain

// ViewState is the engine-owned view position. It is mutated only through
// the visualizer; hosts receive copies.
//
// Invariant: 0 <= SliceIndex <= SliceCount, where SliceCount is the length
// of the active slice set minus one. Both are zero in the volumetric mode
// and when no slice data resolves.
type ViewState struct {
	Mode           ViewMode  `json:"mode"`
	SliceIndex     int       `json:"slice_index"`
	SliceCount     int       `json:"slice_count"`
	HoveredRegion  RegionKey `json:"hovered_region,omitempty"`
	SelectedRegion RegionKey `json:"selected_region,omitempty"`
}

// CenterIndex returns the centred default index for a slice count.
func CenterIndex(sliceCount int) int {
	if sliceCount <= 0 {
		return 0
	}
	return sliceCount / 2
}

// ClampIndex clamps i into [0, sliceCount].
func ClampIndex(i, sliceCount int) int {
	if sliceCount < 0 {
		sliceCount = 0
	}
	switch {
	case i < 0:
		return 0
	case i > sliceCount:
		return sliceCount
	default:
		return i
	}
}
