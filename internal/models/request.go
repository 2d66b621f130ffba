package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
)

// ServiceRequest описывает заявку клиента на услугу исполнителя.
// Запись приходит из удалённого API и локально не изменяется:
// после каждой мутации список перезапрашивается целиком.
type ServiceRequest struct {
	ID             uuid.UUID                 `json:"id"`
	ClientID       uuid.UUID                 `json:"client_id"`
	ClientName     string                    `json:"client_name"`
	ClientEmail    string                    `json:"client_email,omitempty"`
	ClientPhotoURL *string                   `json:"client_photo_url,omitempty"`
	ProviderID     uuid.UUID                 `json:"provider_id"`
	ServiceID      uuid.UUID                 `json:"service_id"`
	ServiceTitle   string                    `json:"service_title"`
	Message        string                    `json:"message"`
	Status         valueobject.RequestStatus `json:"status"`
	CreatedAt      time.Time                 `json:"created_at"`
}

// IsProvider сообщает, является ли пользователь исполнителем по заявке.
func (r *ServiceRequest) IsProvider(userID uuid.UUID) bool {
	return r.ProviderID == userID
}

// IsClient сообщает, является ли пользователь автором заявки.
func (r *ServiceRequest) IsClient(userID uuid.UUID) bool {
	return r.ClientID == userID
}
