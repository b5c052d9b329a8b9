package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// loadAnalysis resolves ref as a dataset file when one exists at that path,
// otherwise as the ID of a stored analysis.
func loadAnalysis(ctx context.Context, ref string) (*domain.AnalysisResult, error) {
	if analysisService == nil {
		return nil, errors.New("analysis service not configured")
	}
	if isFile(ref) {
		f, err := os.Open(ref)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", ref, err)
		}
		defer f.Close()
		result, err := analysisService.Open(ctx, f, datasetName(ref))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", ref, err)
		}
		return result, nil
	}

	result, err := analysisService.Get(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", ref, err)
	}
	return result, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// datasetName derives a display name from a file path.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
