package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	analyses map[string]*domain.AnalysisResult
	err      error
}

func newMockAnalysis(results ...*domain.AnalysisResult) *mockAnalysisService {
	m := &mockAnalysisService{analyses: make(map[string]*domain.AnalysisResult)}
	for _, r := range results {
		m.analyses[r.ID] = r
	}
	return m
}

func (m *mockAnalysisService) Import(_ context.Context, _ io.Reader, _ string) (*driving.ImportResult, error) {
	return nil, m.err
}

func (m *mockAnalysisService) Open(_ context.Context, _ io.Reader, _ string) (*domain.AnalysisResult, error) {
	return nil, m.err
}

func (m *mockAnalysisService) Get(_ context.Context, id string) (*domain.AnalysisResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.analyses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockAnalysisService) List(_ context.Context) ([]domain.AnalysisSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.AnalysisSummary
	for _, r := range m.analyses {
		out = append(out, r.Summarise())
	}
	return out, nil
}

func (m *mockAnalysisService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockAnalysisService) Summarise(result *domain.AnalysisResult) driving.ActivationSummary {
	return driving.ActivationSummary{Count: result.Brain.Voxels.Len(), Max: 0.9}
}

// mockRegionDirectory is a mock implementation of driving.RegionDirectory.
type mockRegionDirectory struct {
	info map[domain.RegionKey]*domain.RegionInfo
	err  error
}

func (m *mockRegionDirectory) Info(_ context.Context, key domain.RegionKey) (*domain.RegionInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	info, ok := m.info[key]
	if !ok {
		return nil, domain.ErrUnknownRegion
	}
	return info, nil
}

func (m *mockRegionDirectory) Keys() []domain.RegionKey {
	keys := make([]domain.RegionKey, 0, len(m.info))
	for k := range m.info {
		keys = append(keys, k)
	}
	return keys
}

func testAnalysis() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		ID:       "a1",
		Name:     "Gymnopedie",
		Emotions: map[domain.EmotionLabel]float64{domain.EmotionCalm: 0.8, domain.EmotionSad: 0.3},
		Brain: domain.BrainData{
			Shape: domain.ShapeViews,
			Views: map[domain.ViewMode]domain.SliceSet{
				domain.ViewSagittal: {Slices: []domain.Slice{
					{Index: 0, Image: "s0.png"},
					{Index: 1, Image: "s1.png", Overlay: "o1.png", Regions: []domain.RegionKey{"insula"}},
					{Index: 2, Image: "s2.png"},
				}},
			},
			Voxels: &domain.VoxelData{Samples: []domain.VoxelSample{
				{X: 1, Y: 2, Z: 3, Value: 0.95},
				{X: 4, Y: 5, Z: 6, Value: 0.2},
				{X: 7, Y: 8, Z: 9, Value: 0.61},
			}},
		},
	}
}

func newTestServer(analysis driving.AnalysisService, regions driving.RegionDirectory) (*Server, error) {
	return NewServer(&Ports{
		Analysis: analysis,
		Views:    services.NewViewService(),
		Regions:  regions,
	})
}
