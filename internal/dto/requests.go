package dto

import "github.com/google/uuid"

// RegisterRequest — регистрация нового пользователя.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest — вход по email и паролю.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateRequestRequest — заявка клиента на услугу.
type CreateRequestRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Message   string    `json:"message"`
}

// RespondRequest — решение исполнителя по pending-заявке.
type RespondRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// RateRequest — оценка завершённой заявки.
type RateRequest struct {
	Score   int     `json:"score" binding:"required"`
	Comment *string `json:"comment"`
}

// SendMessageRequest — новое сообщение в чате заявки.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateSlotRequest — новое окно доступности.
type CreateSlotRequest struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// UpsertServiceRequest — создание или правка услуги.
type UpsertServiceRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
}

// UpdateProfileRequest — правка своего профиля.
type UpdateProfileRequest struct {
	Name     string  `json:"name" binding:"required"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
}
