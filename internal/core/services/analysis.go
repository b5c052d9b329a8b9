package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
	"github.com/custodia-labs/brainview-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService manages the analysis library.
type AnalysisService struct {
	store driven.AnalysisStore
	codec driven.DatasetCodec
	now   func() time.Time
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(store driven.AnalysisStore, codec driven.DatasetCodec) *AnalysisService {
	return &AnalysisService{
		store: store,
		codec: codec,
		now:   time.Now,
	}
}

// Import decodes a dataset and stores it under a new ID.
func (s *AnalysisService) Import(ctx context.Context, r io.Reader, name string) (*driving.ImportResult, error) {
	result, report, err := s.decode(r, name)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}
	logger.Info("Imported analysis %s (%s)", result.ID, result.Name)
	return &driving.ImportResult{
		Summary:       result.Summarise(),
		SkippedVoxels: report.SkippedVoxels,
		SkippedSlices: report.SkippedSlices,
	}, nil
}

// Open decodes a dataset without storing it.
func (s *AnalysisService) Open(_ context.Context, r io.Reader, name string) (*domain.AnalysisResult, error) {
	result, _, err := s.decode(r, name)
	return result, err
}

func (s *AnalysisService) decode(r io.Reader, name string) (*domain.AnalysisResult, driven.DecodeReport, error) {
	result, report, err := s.codec.Decode(r)
	if err != nil {
		return nil, report, fmt.Errorf("decoding analysis: %w", err)
	}
	if report.SkippedVoxels > 0 || report.SkippedSlices > 0 {
		logger.Debug("Skipped %d malformed voxels and %d malformed slices",
			report.SkippedVoxels, report.SkippedSlices)
	}

	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if name != "" {
		result.Name = name
	}
	if result.Name == "" {
		result.Name = "analysis-" + result.ID[:8]
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = s.now().UTC()
	}
	return result, report, nil
}

// Get retrieves a stored analysis.
func (s *AnalysisService) Get(ctx context.Context, id string) (*domain.AnalysisResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: analysis id is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// List returns summaries of stored analyses.
func (s *AnalysisService) List(ctx context.Context) ([]domain.AnalysisSummary, error) {
	return s.store.List(ctx)
}

// Delete removes a stored analysis.
func (s *AnalysisService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: analysis id is required", domain.ErrInvalidInput)
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Summarise computes activation statistics over the voxel samples.
func (s *AnalysisService) Summarise(result *domain.AnalysisResult) driving.ActivationSummary {
	var summary driving.ActivationSummary
	if result == nil || result.Brain.Voxels.Len() == 0 {
		return summary
	}

	values := make([]float64, 0, result.Brain.Voxels.Len())
	for _, v := range result.Brain.Voxels.Samples {
		values = append(values, v.Value)
		if v.IsSignificant() {
			summary.Significant++
		} else {
			summary.Ambient++
		}
	}
	sort.Float64s(values)

	summary.Count = len(values)
	summary.Mean, summary.StdDev = stat.MeanStdDev(values, nil)
	if math.IsNaN(summary.StdDev) {
		summary.StdDev = 0
	}
	summary.Median = stat.Quantile(0.5, stat.Empirical, values, nil)
	summary.P90 = stat.Quantile(0.9, stat.Empirical, values, nil)
	summary.Max = values[len(values)-1]
	return summary
}
