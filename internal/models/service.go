package models

import (
	"time"

	"github.com/google/uuid"
)

// Service — опубликованная услуга исполнителя.
type Service struct {
	ID          uuid.UUID `json:"id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}
