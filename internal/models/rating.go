package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating — оценка клиента по завершённой заявке. На одну заявку
// существует не более одной оценки, и после создания она неизменна.
type Rating struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"request_id"`
	ClientID   uuid.UUID `json:"client_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Score      int       `json:"score"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
