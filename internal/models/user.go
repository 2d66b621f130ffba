package models

import (
	"github.com/google/uuid"
)

// User — аутентифицированная личность текущей сессии.
// IsProvider выставляется удалённым API: владеет ли пользователь
// хотя бы одной опубликованной услугой.
type User struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	PhotoURL   *string   `json:"photo_url,omitempty"`
	IsProvider bool      `json:"is_provider"`
}

// Profile — публичный профиль пользователя.
type Profile struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Bio      *string   `json:"bio,omitempty"`
	Location *string   `json:"location,omitempty"`
	PhotoURL *string   `json:"photo_url,omitempty"`
}
