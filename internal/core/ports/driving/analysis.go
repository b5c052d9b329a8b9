package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// ActivationSummary describes the distribution of voxel activation values.
type ActivationSummary struct {
	Count       int     `json:"count"`
	Significant int     `json:"significant"`
	Ambient     int     `json:"ambient"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	Median      float64 `json:"median"`
	P90         float64 `json:"p90"`
	Max         float64 `json:"max"`
}

// ImportResult reports a completed import.
type ImportResult struct {
	Summary       domain.AnalysisSummary `json:"summary"`
	SkippedVoxels int                    `json:"skipped_voxels"`
	SkippedSlices int                    `json:"skipped_slices"`
}

// AnalysisService manages the analysis library.
type AnalysisService interface {
	// Import decodes a dataset and stores it under a new ID.
	Import(ctx context.Context, r io.Reader, name string) (*ImportResult, error)

	// Open decodes a dataset without storing it.
	Open(ctx context.Context, r io.Reader, name string) (*domain.AnalysisResult, error)

	// Get retrieves a stored analysis.
	Get(ctx context.Context, id string) (*domain.AnalysisResult, error)

	// List returns summaries of stored analyses.
	List(ctx context.Context) ([]domain.AnalysisSummary, error)

	// Delete removes a stored analysis.
	Delete(ctx context.Context, id string) error

	// Summarise computes activation statistics for an analysis.
	Summarise(result *domain.AnalysisResult) ActivationSummary
}
