package driven

import (
	"context"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// AnalysisStore persists imported analyses.
type AnalysisStore interface {
	// Save stores or replaces an analysis by ID.
	Save(ctx context.Context, result *domain.AnalysisResult) error

	// Get retrieves an analysis by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.AnalysisResult, error)

	// List returns summaries of all stored analyses, newest first.
	List(ctx context.Context) ([]domain.AnalysisSummary, error)

	// Delete removes an analysis. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}
