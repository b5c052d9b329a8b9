package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/surface"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// Stream surface bounds and defaults, in character cells.
const (
	defaultStreamWidth  = 80
	defaultStreamHeight = 24
	maxStreamSize       = 1000

	streamWriteWait = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	// The API is read-only and already sends permissive CORS headers.
	CheckOrigin: func(*http.Request) bool { return true },
}

// resizeMessage is the only message a stream client sends.
type resizeMessage struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// handleStream mounts a volumetric scene on a private surface and sends
// every presented frame to the client as JSON until either side closes.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.ports.Scenes == nil {
		writeError(w, http.StatusNotImplemented, "frame streaming is not configured")
		return
	}
	result, ok := s.analysis(w, r)
	if !ok {
		return
	}
	if result.Brain.Voxels.Len() == 0 {
		writeDomainError(w, domain.ErrNoVoxelData)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		httpLog.Debug("stream upgrade: %v", err)
		return
	}
	defer conn.Close()

	host := surface.NewHeadless(
		dimension(r, "width", defaultStreamWidth),
		dimension(r, "height", defaultStreamHeight),
	)
	scene, err := s.ports.Scenes.BuildAndMount(result.Brain.Voxels.Samples, host)
	if err != nil {
		httpLog.Warn("stream %s: %v", result.ID, err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()),
			time.Now().Add(streamWriteWait))
		return
	}
	defer scene.Dispose()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go readResizes(ctx, conn, host, cancel)

	httpLog.Debug("stream %s: scene %s mounted", result.ID, scene.ID())
	for {
		select {
		case <-ctx.Done():
			return
		case <-host.Updates():
			frame, ok := host.Last()
			if !ok {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(frame); err != nil {
				httpLog.Debug("stream %s: %v", result.ID, err)
				return
			}
		}
	}
}

// readResizes applies client resize requests and cancels the stream once
// the client goes away.
func readResizes(ctx context.Context, conn *websocket.Conn, host *surface.Headless, cancel context.CancelFunc) {
	defer cancel()
	for ctx.Err() == nil {
		var msg resizeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				httpLog.Debug("stream read: %v", err)
			}
			return
		}
		if msg.Width > 0 && msg.Height > 0 && msg.Width <= maxStreamSize && msg.Height <= maxStreamSize {
			host.Resize(msg.Width, msg.Height)
		}
	}
}

// dimension reads a positive size query parameter, falling back to def.
func dimension(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 || v > maxStreamSize {
		return def
	}
	return v
}
