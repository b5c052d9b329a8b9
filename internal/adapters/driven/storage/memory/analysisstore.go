package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
)

// Ensure AnalysisStore implements the interface.
var _ driven.AnalysisStore = (*AnalysisStore)(nil)

// AnalysisStore is an in-memory implementation of driven.AnalysisStore.
type AnalysisStore struct {
	mu       sync.RWMutex
	analyses map[string]*domain.AnalysisResult
}

// NewAnalysisStore creates a new in-memory analysis store.
func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{
		analyses: make(map[string]*domain.AnalysisResult),
	}
}

// Save stores or replaces an analysis.
func (s *AnalysisStore) Save(_ context.Context, result *domain.AnalysisResult) error {
	if result == nil || result.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[result.ID] = result
	return nil
}

// Get retrieves an analysis by ID.
func (s *AnalysisStore) Get(_ context.Context, id string) (*domain.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.analyses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return result, nil
}

// List returns summaries of all analyses, newest first.
func (s *AnalysisStore) List(_ context.Context) ([]domain.AnalysisSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AnalysisSummary, 0, len(s.analyses))
	for _, result := range s.analyses {
		out = append(out, result.Summarise())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes an analysis.
func (s *AnalysisStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.analyses, id)
	return nil
}
