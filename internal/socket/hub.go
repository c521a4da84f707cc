package socket

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub manages the connected websocket clients of the market event feed.
type Hub struct {
	// clients maps a connection id to its websocket connection.
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
	log     *logrus.Entry
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		log:     logrus.WithField("component", "socket-hub"),
	}
}

// Register adds a client connection to the Hub.
func (h *Hub) Register(connID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[connID] = conn
	h.log.WithField("conn", connID).Info("websocket client registered")
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[connID]; ok {
		delete(h.clients, connID)
		h.log.WithField("conn", connID).Info("websocket client unregistered")
	}
}

// Broadcast sends a message to every connected client. Write failures are
// logged and do not stop the fan-out.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.log.WithField("conn", connID).WithError(err).Warn("failed to write to websocket client")
		}
	}
}
