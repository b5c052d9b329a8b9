package domain

import (
	"sort"
	"time"
)

// ImageRef is an opaque reference to an image (a data URI or a hosted URL).
// The engine never fetches or decodes the bytes behind it.
type ImageRef string

// IsZero returns true if the reference is empty.
func (r ImageRef) IsZero() bool {
	return r == ""
}

// Slice is one 2D cross section along a plane.
type Slice struct {
	// Index is the slice number assigned by the producer.
	Index int `json:"index"`

	// Position is the normalised location of the slice along its axis.
	Position float64 `json:"position"`

	// Image is the base anatomical image.
	Image ImageRef `json:"image"`

	// Overlay is the optional activation overlay.
	Overlay ImageRef `json:"overlay,omitempty"`

	// Regions lists the anatomical regions visible in this slice.
	Regions []RegionKey `json:"regions,omitempty"`
}

// HasOverlay returns true if the slice carries an activation overlay.
func (s Slice) HasOverlay() bool {
	return !s.Overlay.IsZero()
}

// SliceSet is an ordered sequence of slices along one plane.
// Order defines the navigable index.
type SliceSet struct {
	Orientation string  `json:"orientation,omitempty"`
	Slices      []Slice `json:"slices"`
}

// Len returns the number of slices.
func (s SliceSet) Len() int {
	return len(s.Slices)
}

// VoxelSample is one activation sample. Coordinates are in [0,100] per axis
// and Value in [0,1]; callers clamp upstream.
type VoxelSample struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Value float64 `json:"value"`
}

// VoxelData holds raw activation samples and the source grid dimensions.
type VoxelData struct {
	Dimensions [3]int        `json:"dimensions"`
	Samples    []VoxelSample `json:"voxels"`
}

// Len returns the number of samples, tolerating a nil receiver.
func (v *VoxelData) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Samples)
}

// BrainShape tags which variant of BrainData is populated.
type BrainShape int

const (
	// ShapeNone means no slice data is present.
	ShapeNone BrainShape = iota
	// ShapeViews means slice sets keyed by plane.
	ShapeViews
	// ShapeFlat means a single legacy slice set.
	ShapeFlat
)

// String returns the string representation of the shape.
func (s BrainShape) String() string {
	switch s {
	case ShapeViews:
		return "views"
	case ShapeFlat:
		return "flat"
	default:
		return "none"
	}
}

// BrainData is the brain portion of an analysis: either per-plane slice sets
// or one legacy flat set, optionally with raw voxel samples.
type BrainData struct {
	Shape  BrainShape
	Views  map[ViewMode]SliceSet
	Flat   SliceSet
	Voxels *VoxelData
}

// Planes returns the plane keys of a views-shaped dataset, sorted.
func (b BrainData) Planes() []ViewMode {
	planes := make([]ViewMode, 0, len(b.Views))
	for mode := range b.Views {
		planes = append(planes, mode)
	}
	sort.Slice(planes, func(i, j int) bool { return planes[i] < planes[j] })
	return planes
}

// HasSlices returns true if any slice set holds at least one slice.
func (b BrainData) HasSlices() bool {
	switch b.Shape {
	case ShapeViews:
		for _, set := range b.Views {
			if set.Len() > 0 {
				return true
			}
		}
		return false
	case ShapeFlat:
		return b.Flat.Len() > 0
	default:
		return false
	}
}

// AnalysisResult is an immutable brain activation dataset produced by the
// external analysis pipeline. A new analysis replaces it wholesale.
type AnalysisResult struct {
	ID        string
	Name      string
	Source    string
	CreatedAt time.Time
	Emotions  map[EmotionLabel]float64
	Brain     BrainData
}

// Recognised returns true if the dataset has a usable shape:
// a slice set variant or a voxel block, even if empty.
func (a *AnalysisResult) Recognised() bool {
	if a == nil {
		return false
	}
	return a.Brain.Shape != ShapeNone || a.Brain.Voxels != nil
}

// DominantEmotion returns the emotion with the highest score.
// Ties resolve alphabetically so the result is stable.
func (a *AnalysisResult) DominantEmotion() (EmotionLabel, float64) {
	if a == nil {
		return "", 0
	}
	var best EmotionLabel
	bestScore := -1.0
	for label, score := range a.Emotions {
		if score > bestScore || (score == bestScore && label < best) {
			best = label
			bestScore = score
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	return best, bestScore
}

// AnalysisSummary is a lightweight listing entry for a stored analysis.
type AnalysisSummary struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Source      string       `json:"source,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	Shape       string       `json:"shape"`
	Planes      []ViewMode   `json:"planes,omitempty"`
	VoxelCount  int          `json:"voxel_count"`
	Dominant    EmotionLabel `json:"dominant_emotion,omitempty"`
	DominantPct float64      `json:"dominant_score,omitempty"`
}

// Summarise builds the listing entry for an analysis.
func (a *AnalysisResult) Summarise() AnalysisSummary {
	dominant, score := a.DominantEmotion()
	summary := AnalysisSummary{
		ID:          a.ID,
		Name:        a.Name,
		Source:      a.Source,
		CreatedAt:   a.CreatedAt,
		Shape:       a.Brain.Shape.String(),
		VoxelCount:  a.Brain.Voxels.Len(),
		Dominant:    dominant,
		DominantPct: score,
	}
	if a.Brain.Shape == ShapeViews {
		summary.Planes = a.Brain.Planes()
	}
	return summary
}

// DatasetEvent reports a reload of a watched dataset file.
type DatasetEvent struct {
	Path   string
	Result *AnalysisResult
	Err    error
}
