package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/marketplace-client/internal/logger"
	"github.com/ignatzorin/marketplace-client/internal/ws"
)

// WSHandler поднимает локальное WebSocket-соединение страницы и
// подписывает его на события чата из хаба.
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *ws.Hub, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
	}
}

// Connect апгрейдит соединение; сессию уже проверил SessionRequired.
func (h *WSHandler) Connect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Warnf("ws: не удалось апгрейдить соединение: %v", err)
		}
		return
	}

	client := ws.NewClient(conn, h.hub)
	h.hub.Register(client)
	client.Run(c.Request.Context())
}
