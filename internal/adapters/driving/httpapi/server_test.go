package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/dataset"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/regions"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

func testAnalysis() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		ID:        "a1",
		Name:      "Clair de Lune",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Emotions:  map[domain.EmotionLabel]float64{domain.EmotionSad: 0.7, domain.EmotionHappy: 0.2},
		Brain: domain.BrainData{
			Shape: domain.ShapeViews,
			Views: map[domain.ViewMode]domain.SliceSet{
				domain.ViewAxial: {Slices: []domain.Slice{
					{Index: 0, Image: "ax0.png", Overlay: "ov0.png", Regions: []domain.RegionKey{"amygdala"}},
					{Index: 1, Image: "ax1.png"},
					{Index: 2, Image: "ax2.png"},
				}},
			},
			Voxels: &domain.VoxelData{
				Dimensions: [3]int{2, 2, 2},
				Samples: []domain.VoxelSample{
					{X: 10, Y: 20, Z: 30, Value: 0.9},
					{X: 50, Y: 50, Z: 50, Value: 0.1},
				},
			},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := memory.NewAnalysisStore()
	require.NoError(t, store.Save(context.Background(), testAnalysis()))

	catalog, err := regions.NewCatalog()
	require.NoError(t, err)

	s, err := NewServer(&Ports{
		Analysis: services.NewAnalysisService(store, dataset.NewCodec()),
		Regions:  services.NewRegionService(catalog),
		Views:    services.NewViewService(),
	})
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPorts_Validate(t *testing.T) {
	full := func() *Ports {
		return &Ports{
			Analysis: services.NewAnalysisService(memory.NewAnalysisStore(), nil),
			Regions:  services.NewRegionService(nil),
			Views:    services.NewViewService(),
		}
	}

	tests := []struct {
		name    string
		ports   func() *Ports
		wantErr error
	}{
		{name: "nil ports", ports: func() *Ports { return nil }, wantErr: ErrInvalidPorts},
		{name: "missing analysis", ports: func() *Ports { p := full(); p.Analysis = nil; return p }, wantErr: ErrMissingAnalysis},
		{name: "missing regions", ports: func() *Ports { p := full(); p.Regions = nil; return p }, wantErr: ErrMissingRegions},
		{name: "missing views", ports: func() *Ports { p := full(); p.Views = nil; return p }, wantErr: ErrMissingViews},
		{name: "valid", ports: full},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports().Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := NewServer(nil)
	assert.ErrorIs(t, err, ErrInvalidPorts)
}

func TestServer_Health(t *testing.T) {
	rec := get(t, newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_RegionInfo(t *testing.T) {
	s := newTestServer(t)

	t.Run("single region", func(t *testing.T) {
		rec := get(t, s, "/api/info/regions?region=amygdala")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Amygdala", body["name"])
		assert.NotEmpty(t, body["functions"])
	})

	t.Run("unknown region", func(t *testing.T) {
		rec := get(t, s, "/api/info/regions?region=pineal_gland")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], "unknown region")
	})

	t.Run("no region returns catalog", func(t *testing.T) {
		for _, target := range []string{"/api/info/regions", "/api/info/regions?region="} {
			rec := get(t, s, target)
			require.Equal(t, http.StatusOK, rec.Code, target)
			body := decode(t, rec)
			assert.Len(t, body, 15)
			assert.Contains(t, body, "hippocampus")
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/info/regions", nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")
	})
}

func TestServer_Analyses(t *testing.T) {
	s := newTestServer(t)

	t.Run("list", func(t *testing.T) {
		rec := get(t, s, "/api/analyses")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("detail", func(t *testing.T) {
		rec := get(t, s, "/api/analyses/a1")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Clair de Lune", body["name"])
		assert.Equal(t, "sad", body["dominant_emotion"])
		assert.Equal(t, []any{"axial", "volumetric"}, body["modes"])
		assert.Contains(t, body, "activation")
	})

	t.Run("missing", func(t *testing.T) {
		rec := get(t, s, "/api/analyses/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Views(t *testing.T) {
	s := newTestServer(t)

	t.Run("planar view", func(t *testing.T) {
		rec := get(t, s, "/api/analyses/a1/views/axial")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "axial", body["mode"])
		assert.Equal(t, float64(2), body["slice_count"])
		assert.Equal(t, float64(1), body["slice_index"])
		assert.NotContains(t, body, "voxel_data")
	})

	t.Run("volumetric includes voxels", func(t *testing.T) {
		rec := get(t, s, "/api/analyses/a1/views/3d")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "volumetric", body["mode"])
		voxels, ok := body["voxel_data"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, voxels["voxels"], 2)
	})

	t.Run("missing plane is empty", func(t *testing.T) {
		rec := get(t, s, "/api/analyses/a1/views/coronal")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(0), decode(t, rec)["slice_count"])
	})
}

func TestServer_Slices(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:       "first slice with overlay",
			target:     "/api/analyses/a1/views/axial/slices/0",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(0), body["index"])
				assert.Contains(t, body, "overlay")
				assert.Equal(t, []any{"amygdala"}, body["regions"])
			},
		},
		{
			name:       "index clamps",
			target:     "/api/analyses/a1/views/axial/slices/40",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(2), body["index"])
			},
		},
		{
			name:       "empty plane",
			target:     "/api/analyses/a1/views/sagittal/slices/0",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["empty"])
				assert.Equal(t, domain.EmptySliceMessage, body["message"])
			},
		},
		{name: "volumetric", target: "/api/analyses/a1/views/volumetric/slices/0", wantStatus: http.StatusBadRequest},
		{name: "bad index", target: "/api/analyses/a1/views/axial/slices/-", wantStatus: http.StatusBadRequest},
		{name: "unknown analysis", target: "/api/analyses/zz/views/axial/slices/0", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			body := decode(t, rec)
			if tt.check != nil {
				tt.check(t, body)
			} else {
				assert.Contains(t, body, "error")
			}
		})
	}
}

func TestServer_Export(t *testing.T) {
	s := newTestServer(t)

	t.Run("html chart", func(t *testing.T) {
		rec := get(t, s, "/api/analyses/a1/export/axial?max_points=10")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "<html")
	})

	t.Run("unknown plane", func(t *testing.T) {
		rec := get(t, s, "/api/analyses/a1/export/oblique")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Histogram(t *testing.T) {
	s := newTestServer(t)

	t.Run("png", func(t *testing.T) {
		rec := get(t, s, "/api/analyses/a1/histogram.png?bins=5")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
	})

	t.Run("missing analysis", func(t *testing.T) {
		rec := get(t, s, "/api/analyses/nope/histogram.png")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_UnknownRoute(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/nothing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decode(t, rec)["error"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrNoVoxelData, http.StatusNotFound},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrNotSliceMode, http.StatusBadRequest},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{domain.ErrLookupFailed, http.StatusBadGateway},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestServer_Run(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
