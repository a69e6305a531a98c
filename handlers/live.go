package handlers

import (
	"net/http"
	"sentiment-analysis/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Live upgrades to a WebSocket that receives a message after every reload.
func (h *Handlers) Live(c *gin.Context) {
	if h.hub == nil {
		c.Status(http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	if err := h.hub.Register(conn); err != nil {
		logging.WithError(err).Warn("Live client rejected")
		return
	}

	// Read pump; blocks until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.hub.Unregister(conn)
}
