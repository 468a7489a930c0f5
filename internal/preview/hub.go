// Package preview serves the site locally the way production does, as
// static files plus the JSON data tree, and pushes a reload signal to
// connected browsers when the tree changes.
package preview

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Local preview only; the server binds to localhost.
		return true
	},
}

type reloadMessage struct {
	Type string `json:"type"`
}

// Hub tracks the browsers connected to the reload socket.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) add(ws *websocket.Conn) {
	h.mu.Lock()
	h.conns[ws] = true
	h.mu.Unlock()
}

func (h *Hub) remove(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast tells every connected browser to reload. Write failures drop
// the connection; the browser reconnects on its own.
func (h *Hub) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ws := range h.conns {
		if err := ws.WriteJSON(reloadMessage{Type: "reload"}); err != nil {
			delete(h.conns, ws)
			_ = ws.Close()
		}
	}
}

// WSHandler upgrades a browser connection and parks it on the hub until it
// disconnects. The client never sends anything meaningful; the read loop
// just detects the close.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		hub.add(ws)
		defer hub.remove(ws)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}
}
