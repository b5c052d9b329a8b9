package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are distinct
func TestErrors_Existence(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrUnrecognizedDataset, ErrUnknownViewMode,
		ErrNotSliceMode, ErrNoVoxelData, ErrSurfaceBusy, ErrNoSurface, ErrEmptyRegionKey,
		ErrUnknownRegion, ErrLookupFailed, ErrRateLimited,
	}

	for i, err := range all {
		assert.NotNil(t, err)
		assert.NotEmpty(t, err.Error())
		for j, other := range all {
			if i != j {
				assert.False(t, errors.Is(err, other), "%v should not match %v", err, other)
			}
		}
	}
}

// TestErrors_Wrapped tests that wrapped errors remain matchable
func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading dataset: %w", ErrUnrecognizedDataset)
	assert.True(t, errors.Is(wrapped, ErrUnrecognizedDataset))
	assert.Contains(t, wrapped.Error(), "unrecognised dataset shape")
}
