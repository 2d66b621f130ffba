package availability

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-client/internal/validation"
)

// Gateway — операции удалённого API для окон доступности.
type Gateway interface {
	ListMySlots(ctx context.Context) ([]models.AvailabilitySlot, error)
	CreateSlot(ctx context.Context, slot *models.AvailabilitySlot) (*models.AvailabilitySlot, error)
	DeleteSlot(ctx context.Context, id uuid.UUID) error
}

// Planner управляет еженедельными окнами доступности исполнителя.
// Второе окно на уже занятый день отклоняется, а не сливается с
// существующим: это осознанное ограничение, не алгоритм слияния.
type Planner struct {
	gw Gateway
}

func NewPlanner(gw Gateway) *Planner {
	return &Planner{gw: gw}
}

// List возвращает окна, упорядоченные по дням недели с понедельника.
func (p *Planner) List(ctx context.Context) ([]models.AvailabilitySlot, error) {
	slots, err := p.gw.ListMySlots(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Day.Index() < slots[j].Day.Index()
	})
	return slots, nil
}

// Add валидирует и создаёт окно доступности, затем возвращает его.
// Проверки выполняются до сетевого вызова.
func (p *Planner) Add(ctx context.Context, day, start, end string) (*models.AvailabilitySlot, error) {
	weekday, err := valueobject.NewWeekday(day)
	if err != nil {
		return nil, err
	}
	if err := ValidateWindow(start, end); err != nil {
		return nil, err
	}

	existing, err := p.gw.ListMySlots(ctx)
	if err != nil {
		return nil, err
	}
	for _, slot := range existing {
		if slot.Day == weekday {
			return nil, apperror.New(apperror.ErrCodeValidation, "на этот день окно уже настроено")
		}
	}

	return p.gw.CreateSlot(ctx, &models.AvailabilitySlot{
		Day:       weekday,
		StartTime: start,
		EndTime:   end,
	})
}

// Remove удаляет окно доступности.
func (p *Planner) Remove(ctx context.Context, id uuid.UUID) error {
	return p.gw.DeleteSlot(ctx, id)
}

// ValidateWindow проверяет, что обе границы — время HH:MM и начало
// строго раньше конца.
func ValidateWindow(start, end string) error {
	if err := validation.ValidateTimeOfDay("время начала", start); err != nil {
		return err
	}
	if err := validation.ValidateTimeOfDay("время окончания", end); err != nil {
		return err
	}

	startAt, _ := time.Parse("15:04", start)
	endAt, _ := time.Parse("15:04", end)
	if !startAt.Before(endAt) {
		return apperror.New(apperror.ErrCodeValidation, "время окончания должно быть позже времени начала")
	}
	return nil
}
