package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/dataset"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/regions"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

func newStreamServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewAnalysisStore()
	require.NoError(t, store.Save(context.Background(), testAnalysis()))

	flat := testAnalysis()
	flat.ID = "flat"
	flat.Brain.Voxels = nil
	require.NoError(t, store.Save(context.Background(), flat))

	catalog, err := regions.NewCatalog()
	require.NoError(t, err)

	s, err := NewServer(&Ports{
		Analysis: services.NewAnalysisService(store, dataset.NewCodec()),
		Regions:  services.NewRegionService(catalog),
		Views:    services.NewViewService(),
		Scenes:   services.NewSceneBuilder(services.SceneOptions{FrameRate: 60, Seed: 7}),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dialStream(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) domain.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame domain.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestServer_Stream(t *testing.T) {
	srv := newStreamServer(t)
	conn := dialStream(t, srv, "/api/analyses/a1/stream?width=100&height=30")

	first := readFrame(t, conn)
	assert.GreaterOrEqual(t, first.Seq, uint64(1))
	assert.Equal(t, 100, first.Width)
	assert.Equal(t, 30, first.Height)
	assert.Len(t, first.Spheres, 1, "one sample above the significance threshold")

	second := readFrame(t, conn)
	assert.Greater(t, second.Seq, first.Seq)
}

func TestServer_Stream_Resize(t *testing.T) {
	srv := newStreamServer(t)
	conn := dialStream(t, srv, "/api/analyses/a1/stream")

	assert.Equal(t, defaultStreamWidth, readFrame(t, conn).Width)
	require.NoError(t, conn.WriteJSON(resizeMessage{Width: 120, Height: 40}))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f := readFrame(t, conn); f.Width == 120 && f.Height == 40 {
			return
		}
	}
	t.Fatal("no frame at the resized dimensions")
}

func TestServer_Stream_Rejected(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		rec := get(t, newTestServer(t), "/api/analyses/a1/stream")
		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})

	srv := newStreamServer(t)
	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "missing analysis", path: "/api/analyses/nope/stream", want: http.StatusNotFound},
		{name: "no voxels", path: "/api/analyses/flat/stream", want: http.StatusNotFound},
		{name: "plain http", path: "/api/analyses/a1/stream", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestDimension(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?width=120&height=abc&depth=-4&huge=5000", nil)
	assert.Equal(t, 120, dimension(req, "width", 80))
	assert.Equal(t, 24, dimension(req, "height", 24))
	assert.Equal(t, 9, dimension(req, "depth", 9))
	assert.Equal(t, 9, dimension(req, "huge", 9))
	assert.Equal(t, 9, dimension(req, "missing", 9))
}
