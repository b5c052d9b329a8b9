package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/logger"
)

// Verify interface compliance.
var _ driven.DatasetCodec = (*Codec)(nil)

// Codec reads and writes the analysis pipeline's JSON format.
type Codec struct{}

// NewCodec creates a JSON dataset codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode reads one analysis document.
func (c *Codec) Decode(r io.Reader) (*domain.AnalysisResult, driven.DecodeReport, error) {
	var report driven.DecodeReport

	var doc wireAnalysis
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, report, fmt.Errorf("decoding dataset: %w", err)
	}

	result := &domain.AnalysisResult{
		ID:       doc.ID,
		Name:     doc.Name,
		Source:   doc.Source,
		Emotions: decodeEmotions(doc.Emotions),
	}
	if doc.CreatedAt != nil {
		result.CreatedAt = doc.CreatedAt.UTC()
	}

	switch {
	case doc.Views != nil:
		result.Brain.Shape = domain.ShapeViews
		result.Brain.Views = decodeViews(doc.Views, &report)
		if doc.BrainData != nil {
			result.Brain.Flat = decodeSet(doc.BrainData, &report)
		}
	case doc.BrainData != nil:
		result.Brain.Shape = domain.ShapeFlat
		result.Brain.Flat = decodeSet(doc.BrainData, &report)
	}

	if voxels := findVoxels(&doc); voxels != nil {
		result.Brain.Voxels = decodeVoxels(voxels, &report)
	}

	if !result.Recognised() {
		return nil, report, domain.ErrUnrecognizedDataset
	}
	if report.SkippedSlices > 0 || report.SkippedVoxels > 0 || report.SkippedViews > 0 {
		logger.Debug("dataset: skipped %d slices, %d voxels and %d views",
			report.SkippedSlices, report.SkippedVoxels, report.SkippedViews)
	}
	return result, report, nil
}

// decodeViews maps plane keys onto view modes. Keys that differ only in
// case resolve to one mode: the canonical lowercase spelling wins, then the
// first key in sorted order. The rest are counted as skipped.
func decodeViews(views map[string]*wireViewSet, report *driven.DecodeReport) map[domain.ViewMode]domain.SliceSet {
	chosen := make(map[domain.ViewMode]string, len(views))
	for _, name := range slices.Sorted(maps.Keys(views)) {
		mode, err := domain.ParseViewMode(name)
		if err != nil || !mode.IsPlanar() {
			logger.Debug("dataset: ignoring view %q", name)
			continue
		}
		prev, dup := chosen[mode]
		if !dup {
			chosen[mode] = name
			continue
		}
		report.SkippedViews++
		if name == string(mode) {
			logger.Debug("dataset: view %q replaces %q", name, prev)
			chosen[mode] = name
		} else {
			logger.Debug("dataset: ignoring duplicate view %q", name)
		}
	}

	out := make(map[domain.ViewMode]domain.SliceSet, len(chosen))
	for mode, name := range chosen {
		out[mode] = decodeSet(views[name], report)
	}
	return out
}

// findVoxels prefers the top-level block, then the flat set, then the
// first plane carrying one in canonical order.
func findVoxels(doc *wireAnalysis) *wireVoxelData {
	if doc.VoxelData != nil {
		return doc.VoxelData
	}
	if doc.BrainData != nil && doc.BrainData.VoxelData != nil {
		return doc.BrainData.VoxelData
	}
	names := make([]string, 0, len(doc.Views))
	for name := range doc.Views {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, plane := range domain.CanonicalPlanes() {
		if set := doc.Views[string(plane)]; set != nil && set.VoxelData != nil {
			return set.VoxelData
		}
	}
	for _, name := range names {
		if set := doc.Views[name]; set != nil && set.VoxelData != nil {
			return set.VoxelData
		}
	}
	return nil
}

func decodeEmotions(in map[string]float64) map[domain.EmotionLabel]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[domain.EmotionLabel]float64, len(in))
	for label, score := range in {
		out[domain.EmotionLabel(label)] = score
	}
	return out
}

func decodeSet(set *wireViewSet, report *driven.DecodeReport) domain.SliceSet {
	out := domain.SliceSet{}
	if set == nil {
		return out
	}
	out.Orientation = set.Orientation
	for i, s := range set.Slices {
		if s.Image == nil || *s.Image == "" {
			report.SkippedSlices++
			continue
		}
		slice := domain.Slice{
			Index: i,
			Image: domain.ImageRef(*s.Image),
		}
		if s.Index != nil {
			slice.Index = *s.Index
		}
		if s.Position != nil {
			slice.Position = *s.Position
		}
		if s.Overlay != nil {
			slice.Overlay = domain.ImageRef(*s.Overlay)
		}
		for _, r := range s.Regions {
			if r != "" {
				slice.Regions = append(slice.Regions, domain.RegionKey(r))
			}
		}
		out.Slices = append(out.Slices, slice)
	}
	return out
}

func decodeVoxels(in *wireVoxelData, report *driven.DecodeReport) *domain.VoxelData {
	out := &domain.VoxelData{}
	for i := 0; i < len(in.Dimensions) && i < 3; i++ {
		out.Dimensions[i] = in.Dimensions[i]
	}
	for _, v := range in.Voxels {
		if v.X == nil || v.Y == nil || v.Z == nil || v.Value == nil {
			report.SkippedVoxels++
			continue
		}
		out.Samples = append(out.Samples, domain.VoxelSample{
			X:     *v.X,
			Y:     *v.Y,
			Z:     *v.Z,
			Value: clamp01(*v.Value),
		})
	}
	return out
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Encode writes result in the same format Decode reads.
func (c *Codec) Encode(w io.Writer, result *domain.AnalysisResult) error {
	if result == nil {
		return fmt.Errorf("encoding dataset: %w", domain.ErrInvalidInput)
	}

	doc := wireAnalysis{
		ID:     result.ID,
		Name:   result.Name,
		Source: result.Source,
	}
	if !result.CreatedAt.IsZero() {
		created := result.CreatedAt.UTC()
		doc.CreatedAt = &created
	}
	if len(result.Emotions) > 0 {
		doc.Emotions = make(map[string]float64, len(result.Emotions))
		for label, score := range result.Emotions {
			doc.Emotions[string(label)] = score
		}
	}

	brain := result.Brain
	switch brain.Shape {
	case domain.ShapeViews:
		doc.Views = make(map[string]*wireViewSet, len(brain.Views))
		for mode, set := range brain.Views {
			doc.Views[string(mode)] = encodeSet(set)
		}
		if brain.Flat.Len() > 0 {
			doc.BrainData = encodeSet(brain.Flat)
		}
	case domain.ShapeFlat:
		doc.BrainData = encodeSet(brain.Flat)
	}

	if brain.Voxels != nil {
		doc.VoxelData = &wireVoxelData{
			Dimensions: brain.Voxels.Dimensions[:],
			Voxels:     make([]wireVoxel, len(brain.Voxels.Samples)),
		}
		for i, s := range brain.Voxels.Samples {
			doc.VoxelData.Voxels[i] = wireVoxel{X: ptr(s.X), Y: ptr(s.Y), Z: ptr(s.Z), Value: ptr(s.Value)}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return nil
}

func encodeSet(set domain.SliceSet) *wireViewSet {
	n := set.Len()
	out := &wireViewSet{
		Orientation: set.Orientation,
		NumSlices:   &n,
		Slices:      make([]wireSlice, len(set.Slices)),
	}
	for i, s := range set.Slices {
		ws := wireSlice{
			Index:    ptr(s.Index),
			Position: ptr(s.Position),
			Image:    ptr(string(s.Image)),
		}
		if s.HasOverlay() {
			ws.Overlay = ptr(string(s.Overlay))
		}
		for _, r := range s.Regions {
			ws.Regions = append(ws.Regions, wireRegion(r))
		}
		out.Slices[i] = ws
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
