package projection

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-client/internal/goroutine"
	"github.com/ignatzorin/marketplace-client/internal/logger"
	"github.com/ignatzorin/marketplace-client/internal/models"
)

// Viewer — личность, для которой строится проекция.
type Viewer struct {
	UserID     uuid.UUID
	IsProvider bool
}

// Actions — допустимые действия по элементу проекции.
type Actions struct {
	Respond  bool `json:"respond"`
	Finalize bool `json:"finalize"`
	Rate     bool `json:"rate"`
	Delete   bool `json:"delete"`
}

// Item — заявка вместе с допустимыми для зрителя действиями.
type Item struct {
	Request models.ServiceRequest `json:"request"`
	Actions Actions               `json:"actions"`
}

// View — две непересекающиеся коллекции для отображения:
// вкладка "заявки" (pending) и вкладка "чаты" (accepted/finalized).
type View struct {
	Requests []Item `json:"requests"`
	Chats    []Item `json:"chats"`
}

// Build раскладывает видимые заявки по вкладкам. Правила:
// pending -> "заявки" (вкладка видна только исполнителям),
// accepted и finalized -> "чаты", rejected скрыта отовсюду.
// Порядок источника сохраняется, сортировка не применяется.
func Build(requests []models.ServiceRequest, viewer Viewer, rated map[uuid.UUID]bool) View {
	view := View{
		Requests: []Item{},
		Chats:    []Item{},
	}

	for _, req := range requests {
		switch req.Status {
		case valueobject.RequestStatusPending:
			if !viewer.IsProvider {
				continue
			}
			view.Requests = append(view.Requests, Item{
				Request: req,
				Actions: Actions{
					Respond: req.IsProvider(viewer.UserID),
					Delete:  true,
				},
			})
		case valueobject.RequestStatusAccepted, valueobject.RequestStatusFinalized:
			view.Chats = append(view.Chats, Item{
				Request: req,
				Actions: Actions{
					Finalize: req.Status == valueobject.RequestStatusAccepted && req.IsProvider(viewer.UserID),
					Rate: req.Status == valueobject.RequestStatusFinalized &&
						req.IsClient(viewer.UserID) && !rated[req.ID],
					Delete: true,
				},
			})
		case valueobject.RequestStatusRejected:
			// Терминальное скрытое состояние.
		}
	}

	return view
}

// ChatGateway — операции чата, нужные проектору при выборе элемента.
type ChatGateway interface {
	ListMessages(ctx context.Context, requestID uuid.UUID) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, requestID uuid.UUID) (int, error)
}

// Projector отвечает за побочный эффект выбора активного элемента:
// загрузку треда и фоновую отметку прочитанного.
type Projector struct {
	chat        ChatGateway
	markTimeout time.Duration
}

func NewProjector(chat ChatGateway) *Projector {
	return &Projector{
		chat:        chat,
		markTimeout: 10 * time.Second,
	}
}

// Select загружает тред выбранной заявки и fire-and-forget помечает
// чужие сообщения прочитанными. Ошибка отметки не блокирует показ
// сообщений, поэтому уходит в фон со своим контекстом: контекст
// запроса к этому моменту уже может быть отменён.
func (p *Projector) Select(ctx context.Context, requestID uuid.UUID) ([]models.Message, error) {
	messages, err := p.chat.ListMessages(ctx, requestID)
	if err != nil {
		return nil, err
	}

	goroutine.SafeGo(func() {
		markCtx, cancel := context.WithTimeout(context.Background(), p.markTimeout)
		defer cancel()
		if _, err := p.chat.MarkMessagesRead(markCtx, requestID); err != nil && logger.Log != nil {
			logger.Log.WithField("request_id", requestID).Warnf("не удалось отметить сообщения прочитанными: %v", err)
		}
	})

	return messages, nil
}
