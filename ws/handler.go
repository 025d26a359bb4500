package ws

import (
	"net/http"

	"jobboard_front/internal/logger"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	Manager *WebSocketManager
}

func NewWebSocketHandler(manager *WebSocketManager) *WebSocketHandler {
	return &WebSocketHandler{
		Manager: manager,
	}
}

// ServeWS upgrades the connection and registers the tab under the user id proven by the token.
// The route is behind middleware.RequireVerifiedUser.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	s := session.FromContext(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "websocket upgrade error", err)
		return
	}

	client := &Client{
		UserID:  s.UserID,
		Conn:    conn,
		Send:    make(chan notify.Notification, sendBuffer),
		Manager: h.Manager,
	}

	select {
	case h.Manager.register <- client:
	case <-h.Manager.done:
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}

// Status reports whether the current user has a live notification socket.
func (h *WebSocketHandler) Status(c *gin.Context) {
	s := session.FromContext(c)
	c.JSON(http.StatusOK, gin.H{"connected": h.Manager.IsClientConnected(s.UserID)})
}
