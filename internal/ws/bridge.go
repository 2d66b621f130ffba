package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ignatzorin/marketplace-client/internal/logger"
	"github.com/ignatzorin/marketplace-client/internal/session"
)

// Bridge подключается к потоку сообщений удалённого API и пересылает
// события в Hub. При обрыве переподключается с нарастающей паузой;
// без живой сессии просто ждёт.
type Bridge struct {
	url     string
	session *session.Store
	hub     *Hub
}

func NewBridge(url string, sess *session.Store, hub *Hub) *Bridge {
	return &Bridge{
		url:     url,
		session: sess,
		hub:     hub,
	}
}

// Run держит подключение к удалённому потоку до отмены контекста.
func (b *Bridge) Run(ctx context.Context) {
	if b.url == "" {
		return
	}

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		if !b.session.Authenticated() {
			if !sleep(ctx, 5*time.Second) {
				return
			}
			continue
		}

		if b.connect(ctx) {
			// Соединение жило, начинаем отсчёт паузы заново.
			backoff = time.Second
		}

		if !sleep(ctx, backoff) {
			return
		}
		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
	}
}

// connect устанавливает одно соединение и читает его до обрыва.
// Возвращает true, если соединение было установлено.
func (b *Bridge) connect(ctx context.Context) bool {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+b.session.Token())

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, b.url, header)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Debugf("ws: не удалось подключиться к потоку сообщений: %v", err)
		}
		return false
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.PongMessage, []byte(appData))
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && logger.Log != nil {
				logger.Log.Debugf("ws: поток сообщений оборвался: %v", err)
			}
			return true
		}
		b.hub.Broadcast(payload)
	}
}

// sleep ждёт d или отмену контекста; false — контекст отменён.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
