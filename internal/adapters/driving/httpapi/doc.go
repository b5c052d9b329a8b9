// Package httpapi serves the engine over HTTP.
//
// The region endpoint has the same contract the remote region client
// consumes, so one brainview can serve region info to another:
//
//	GET /api/info/regions?region=KEY
//
// Without a region parameter it returns every known region keyed by name.
// The remaining routes expose the analysis library, resolved views, single
// slice frames, HTML voxel charts, PNG activation histograms and a
// websocket stream of live volumetric frames.
package httpapi
