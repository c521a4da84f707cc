package handlers

import (
	"net/http"
	"time"

	"froot-boot-api-server/internal/auth"
	"froot-boot-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Maximum wait for a message from the client before dropping it.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler serves the live market event feed.
type WebSocketHandler struct {
	Hub    *socket.Hub
	Tokens *auth.TokenIssuer
}

// ServeWs upgrades the connection and keeps it registered on the hub
// until the client goes away. The bearer token travels as a query param
// because browsers cannot set headers on websocket upgrades.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	if _, err := h.Tokens.Verify(tokenString); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("failed to upgrade websocket connection")
		return
	}

	connID := uuid.New().String()
	h.Hub.Register(connID, conn)

	defer func() {
		h.Hub.Unregister(connID)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Warn("unexpected websocket close")
			}
			break
		}
	}
}
