package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// DecodeReport describes entries dropped while decoding a dataset.
type DecodeReport struct {
	SkippedVoxels int
	SkippedSlices int
	// SkippedViews counts plane keys that differ only in case from a kept one.
	SkippedViews int
}

// DatasetCodec converts between the wire format and domain analyses.
type DatasetCodec interface {
	// Decode reads one analysis. Malformed voxel or slice entries are
	// skipped and counted; a payload with no recognisable brain data
	// returns domain.ErrUnrecognizedDataset.
	Decode(r io.Reader) (*domain.AnalysisResult, DecodeReport, error)

	// Encode writes an analysis in the wire format.
	Encode(w io.Writer, result *domain.AnalysisResult) error
}

// DatasetWatcher reloads a dataset file whenever it changes on disk.
type DatasetWatcher interface {
	// Watch emits one event per reload until ctx is cancelled, then closes
	// the channel. The current contents are emitted first.
	Watch(ctx context.Context, path string) (<-chan domain.DatasetEvent, error)
}
