package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
)

// ListMessages возвращает сообщения по заявке в порядке отправки.
func (c *Client) ListMessages(ctx context.Context, requestID uuid.UUID) ([]models.Message, error) {
	var out listResponse[models.Message]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/chat/%s/", requestID), nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// SendMessage отправляет сообщение в чат заявки.
func (c *Client) SendMessage(ctx context.Context, requestID uuid.UUID, text string) (*models.Message, error) {
	payload := map[string]any{
		"request": requestID,
		"text":    text,
	}
	var out models.Message
	if err := c.mutate(ctx, http.MethodPost, "/chat/send/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkMessagesRead помечает прочитанными чужие сообщения по заявке.
// Операция идемпотентна.
func (c *Client) MarkMessagesRead(ctx context.Context, requestID uuid.UUID) (int, error) {
	var out dto.MarkReadResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/chat/%s/read/", requestID), struct{}{}, &out); err != nil {
		return 0, err
	}
	return out.MessagesRead, nil
}
