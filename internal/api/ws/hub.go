package ws

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/boardlive/internal/relay"
)

// maxFrameSize bounds inbound frames; presence and interaction payloads are
// tiny, so anything larger is a broken or hostile client.
const maxFrameSize = 32 * 1024

// Hub upgrades HTTP requests to relay sessions. All room state lives in the
// shared registry; the hub itself is stateless.
type Hub struct {
	registry *relay.Registry
}

// NewHub creates a new WebSocket hub backed by the given registry.
func NewHub(registry *relay.Registry) *Hub {
	return &Hub{registry: registry}
}

// Registry exposes the room registry for server wiring.
func (h *Hub) Registry() *relay.Registry {
	return h.registry
}

// Serve handles one websocket connection. The connection may join any number
// of board rooms over its lifetime; a transport drop cleans all of them up.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	conn.SetReadLimit(maxFrameSize)

	sess := newSession(conn, h.registry)
	defer sess.close()

	ctx := r.Context()
	go sess.writePump(ctx)
	sess.readLoop(ctx)

	_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
}
