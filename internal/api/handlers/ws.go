package handlers

import (
	"log"
	"net/http"

	"github.com/Hon139/MuseAid/internal/hub"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler serves GET /ws, upgrading to a WebSocket and registering the
// connection with the hub, per routes/ws.py.
type WSHandler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(h *hub.Hub) *WSHandler {
	return &WSHandler{
		hub: h,
		// CheckOrigin is permissive: the Composition App and gesture
		// pipeline connect from arbitrary local origins, not a browser
		// same-origin context.
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request, registers the connection and sends the
// current sequence as its first frame atomically (see Hub.Register),
// then reads (and discards) client messages until the connection
// closes, keeping it registered for broadcasts in the meantime.
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	id, err := h.hub.Register(conn)
	if err != nil {
		log.Printf("ws: failed to send initial frame: %v", err)
		conn.Close()
		return
	}
	defer h.hub.Unregister(id)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			conn.Close()
			return
		}
	}
}
