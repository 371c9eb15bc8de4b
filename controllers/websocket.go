package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/bst-coder/irrigation-last/middlewares"
	"github.com/bst-coder/irrigation-last/models"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks connected websocket clients per user and pushes reading
// updates and critical suggestions to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]uint
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]uint)}
}

// Handle upgrades the request and keeps the connection registered until
// the peer goes away.
func (h *Hub) Handle(c *gin.Context) {
	userID, _, ok := middlewares.IdentityFrom(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = userID
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastReading pushes an ingested reading to the owning user's
// connections.
func (h *Hub) BroadcastReading(ownerUserID uint, reading models.SensorReading) {
	msg, _ := json.Marshal(gin.H{
		"event":   "reading",
		"reading": reading,
	})
	h.send(ownerUserID, msg)
}

// NotifyCritical pushes a critical suggestion to the owning user's
// connections.
func (h *Hub) NotifyCritical(ownerUserID uint, suggestion models.Suggestion) {
	msg, _ := json.Marshal(gin.H{
		"event":      "suggestion",
		"suggestion": suggestion,
	})
	h.send(ownerUserID, msg)
}

func (h *Hub) send(userID uint, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, owner := range h.clients {
		if owner == userID {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
	}
}
