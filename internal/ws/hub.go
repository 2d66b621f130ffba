package ws

import (
	"context"

	"github.com/ignatzorin/marketplace-client/internal/logger"
)

// Hub раздаёт события чата, пришедшие от удалённого API, всем
// подключённым локальным страницам. Сессия одна, поэтому адресации
// по пользователям нет: каждое событие уходит всем соединениям.
type Hub struct {
	ctx        context.Context
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub(ctx context.Context) *Hub {
	return &Hub{
		ctx:        ctx,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run обслуживает регистрацию соединений и рассылку событий.
// Завершается по отмене контекста приложения.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			for client := range h.clients {
				client.close()
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Медленное соединение отключаем, чтобы не копить буфер.
					delete(h.clients, client)
					client.close()
				}
			}
		}
	}
}

// Register добавляет локальное соединение.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister убирает локальное соединение.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Broadcast рассылает событие всем подключённым страницам.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	case <-h.ctx.Done():
	default:
		if logger.Log != nil {
			logger.Log.Warn("ws: очередь рассылки переполнена, событие отброшено")
		}
	}
}
