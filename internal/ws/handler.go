package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// BoardExists проверяет, что доска существует, до апгрейда соединения
type BoardExists func(id string) bool

type WSHandler struct {
	Hub           *Hub
	Exists        BoardExists
	AllowedOrigin string
}

func NewWSHandler(hub *Hub, exists BoardExists, allowedOrigin string) *WSHandler {
	return &WSHandler{Hub: hub, Exists: exists, AllowedOrigin: allowedOrigin}
}

func (h *WSHandler) HandleWS() gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if h.AllowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == h.AllowedOrigin
		},
	}

	return func(c *gin.Context) {
		boardID := c.Param("id")
		if h.Exists != nil && !h.Exists(boardID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "board not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.Hub.log.Warn("ws upgrade failed", "board_id", boardID, "error", err)
			return
		}

		client := NewClient(boardID, conn, h.Hub)
		go client.Run()
	}
}
