package dataset

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// wireAnalysis is the JSON document produced by the analysis pipeline.
// Identity fields are optional and only written by Encode.
type wireAnalysis struct {
	ID        string                  `json:"id,omitempty"`
	Name      string                  `json:"name,omitempty"`
	Source    string                  `json:"source,omitempty"`
	CreatedAt *time.Time              `json:"created_at,omitempty"`
	Emotions  map[string]float64      `json:"emotions,omitempty"`
	BrainData *wireViewSet            `json:"brain_data,omitempty"`
	Views     map[string]*wireViewSet `json:"brain_views,omitempty"`
	VoxelData *wireVoxelData          `json:"voxel_data,omitempty"`
}

// wireViewSet is one plane's slices. Older payloads nest voxel_data here.
type wireViewSet struct {
	Orientation string         `json:"orientation,omitempty"`
	NumSlices   *int           `json:"num_slices,omitempty"`
	Dimensions  []int          `json:"dimensions,omitempty"`
	Slices      []wireSlice    `json:"slices"`
	VoxelData   *wireVoxelData `json:"voxel_data,omitempty"`
}

type wireSlice struct {
	Index    *int         `json:"index,omitempty"`
	Position *float64     `json:"position,omitempty"`
	Image    *string      `json:"image"`
	Overlay  *string      `json:"overlay,omitempty"`
	Regions  []wireRegion `json:"regions,omitempty"`
}

type wireVoxelData struct {
	Dimensions []int       `json:"dimensions"`
	Voxels     []wireVoxel `json:"voxels"`
}

type wireVoxel struct {
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Z     *float64 `json:"z"`
	Value *float64 `json:"value"`
}

// wireRegion is a slice region entry: either a bare key or a region
// object carrying key or name (and usually an activation level).
type wireRegion string

// UnmarshalJSON accepts "amygdala", {"key":"amygdala"} or {"name":"Amygdala"}.
func (r *wireRegion) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = wireRegion(s)
		return nil
	}
	var obj struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Key != "" {
		*r = wireRegion(obj.Key)
		return nil
	}
	*r = wireRegion(keyFromName(obj.Name))
	return nil
}

// keyFromName turns a display name into a catalog key:
// "Nucleus Accumbens" becomes "nucleus_accumbens".
func keyFromName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "_")
}
