// Package dataset reads analysis documents produced by the music analysis
// pipeline and watches them for changes.
//
// The JSON format carries emotion scores, per-plane slice sets under
// brain_views, a legacy single slice set under brain_data and raw samples
// under voxel_data:
//
//	{
//	  "emotions":    {"happy": 0.6, ...},
//	  "brain_views": {"axial": {"orientation": "axial", "num_slices": 11, "slices": [...]}, ...},
//	  "brain_data":  {"slices": [...]},
//	  "voxel_data":  {"dimensions": [100, 100, 100], "voxels": [{"x": 1, "y": 2, "z": 3, "value": 0.8}]}
//	}
//
// Slice entries hold index, position, image, overlay and regions. A region
// may be a bare key or an object with key or name.
package dataset
