package models

import (
	"time"

	"github.com/google/uuid"
)

// Message — сообщение чата, привязанное к заявке.
type Message struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"request_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Text      string    `json:"text"`
	FileURL   *string   `json:"file_url,omitempty"`
	Read      bool      `json:"read"`
	SentAt    time.Time `json:"sent_at"`
}
