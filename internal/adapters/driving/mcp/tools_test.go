package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

func TestServer_handleResolveView(t *testing.T) {
	ctx := context.Background()
	server, err := newTestServer(newMockAnalysis(testAnalysis()), nil)
	require.NoError(t, err)

	t.Run("centre slice by default", func(t *testing.T) {
		_, output, err := server.handleResolveView(ctx, nil, ResolveViewInput{AnalysisID: "a1", Mode: "sagittal"})
		require.NoError(t, err)
		assert.Equal(t, "sagittal", output.Mode)
		assert.Equal(t, "views", output.Source)
		assert.Equal(t, []string{"sagittal", "volumetric"}, output.Modes)
		assert.Equal(t, 1, output.SliceIndex)
		require.NotNil(t, output.Frame)
		assert.Equal(t, "s1.png", output.Frame.Base)
		assert.Equal(t, "o1.png", output.Frame.Overlay)
		assert.Equal(t, domain.OverlayOpacity, output.Frame.Opacity)
		assert.Equal(t, []string{"insula"}, output.Frame.Regions)
		assert.Nil(t, output.Volume)
	})

	t.Run("explicit slice index", func(t *testing.T) {
		idx := 0
		_, output, err := server.handleResolveView(ctx, nil, ResolveViewInput{AnalysisID: "a1", Mode: "sagittal", SliceIndex: &idx})
		require.NoError(t, err)
		assert.Equal(t, 0, output.SliceIndex)
		assert.Equal(t, "s0.png", output.Frame.Base)
		assert.Empty(t, output.Frame.Overlay)
	})

	t.Run("plane without slices is empty", func(t *testing.T) {
		_, output, err := server.handleResolveView(ctx, nil, ResolveViewInput{AnalysisID: "a1", Mode: "axial"})
		require.NoError(t, err)
		require.NotNil(t, output.Frame)
		assert.True(t, output.Frame.Empty)
		assert.Equal(t, domain.EmptySliceMessage, output.Frame.Message)
	})

	t.Run("volumetric", func(t *testing.T) {
		_, output, err := server.handleResolveView(ctx, nil, ResolveViewInput{AnalysisID: "a1", Mode: "3d"})
		require.NoError(t, err)
		assert.Equal(t, "volumetric", output.Mode)
		require.NotNil(t, output.Volume)
		assert.Equal(t, 3, output.Volume.Samples)
		assert.Equal(t, 2, output.Volume.Significant)
		assert.Nil(t, output.Frame)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, _, err := server.handleResolveView(ctx, nil, ResolveViewInput{AnalysisID: "a1", Mode: ""})
		assert.ErrorIs(t, err, domain.ErrUnknownViewMode)
	})

	t.Run("unknown analysis", func(t *testing.T) {
		_, _, err := server.handleResolveView(ctx, nil, ResolveViewInput{AnalysisID: "zz", Mode: "axial"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "loading analysis")
	})
}

func TestServer_handleRegionInfo(t *testing.T) {
	ctx := context.Background()
	regions := &mockRegionDirectory{info: map[domain.RegionKey]*domain.RegionInfo{
		"insula": {
			Key:           "insula",
			Name:          "Insula",
			Description:   "Interoception hub.",
			Functions:     []string{"Interoception"},
			MusicRelation: "Felt intensity.",
			Emotions:      []domain.EmotionLabel{domain.EmotionTense, domain.EmotionAll},
		},
	}}

	t.Run("known region", func(t *testing.T) {
		server, err := newTestServer(newMockAnalysis(), regions)
		require.NoError(t, err)

		_, output, err := server.handleRegionInfo(ctx, nil, RegionInfoInput{Region: "insula"})
		require.NoError(t, err)
		assert.Equal(t, "Insula", output.Name)
		assert.Equal(t, []string{"tense"}, output.Emotions)
	})

	t.Run("unknown region", func(t *testing.T) {
		server, err := newTestServer(newMockAnalysis(), regions)
		require.NoError(t, err)

		_, _, err = server.handleRegionInfo(ctx, nil, RegionInfoInput{Region: "pons"})
		assert.ErrorIs(t, err, domain.ErrUnknownRegion)
	})

	t.Run("no directory", func(t *testing.T) {
		server, err := newTestServer(newMockAnalysis(), nil)
		require.NoError(t, err)

		_, _, err = server.handleRegionInfo(ctx, nil, RegionInfoInput{Region: "insula"})
		assert.ErrorIs(t, err, ErrRegionsUnavailable)
	})
}

func TestServer_handleActivationSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("returns statistics", func(t *testing.T) {
		server, err := newTestServer(newMockAnalysis(testAnalysis()), nil)
		require.NoError(t, err)

		_, output, err := server.handleActivationSummary(ctx, nil, ActivationInput{AnalysisID: "a1"})
		require.NoError(t, err)
		assert.Equal(t, "Gymnopedie", output.Name)
		assert.Equal(t, "calm", output.Dominant)
		assert.Equal(t, 0.8, output.DominantScore)
		assert.Equal(t, 0.3, output.Emotions["sad"])
		assert.Equal(t, 3, output.Count)
	})

	t.Run("returns error on lookup failure", func(t *testing.T) {
		analysis := newMockAnalysis()
		analysis.err = errors.New("database error")
		server, err := newTestServer(analysis, nil)
		require.NoError(t, err)

		_, _, err = server.handleActivationSummary(ctx, nil, ActivationInput{AnalysisID: "a1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})
}
