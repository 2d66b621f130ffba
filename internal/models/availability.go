package models

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
)

// AvailabilitySlot — еженедельное окно доступности исполнителя.
// На каждый день недели допускается не более одного окна.
type AvailabilitySlot struct {
	ID         uuid.UUID           `json:"id"`
	ProviderID uuid.UUID           `json:"provider_id"`
	Day        valueobject.Weekday `json:"day"`
	StartTime  string              `json:"start_time"` // формат HH:MM
	EndTime    string              `json:"end_time"`   // формат HH:MM
}
