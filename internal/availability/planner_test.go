package availability

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
)

type mockSlotGateway struct {
	mock.Mock
}

func (m *mockSlotGateway) ListMySlots(ctx context.Context) ([]models.AvailabilitySlot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AvailabilitySlot), args.Error(1)
}

func (m *mockSlotGateway) CreateSlot(ctx context.Context, slot *models.AvailabilitySlot) (*models.AvailabilitySlot, error) {
	args := m.Called(ctx, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilitySlot), args.Error(1)
}

func (m *mockSlotGateway) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestPlanner_List_OrderedByWeekday(t *testing.T) {
	gw := new(mockSlotGateway)
	planner := NewPlanner(gw)

	gw.On("ListMySlots", mock.Anything).Return([]models.AvailabilitySlot{
		{ID: uuid.New(), Day: valueobject.WeekdayFriday, StartTime: "10:00", EndTime: "18:00"},
		{ID: uuid.New(), Day: valueobject.WeekdayMonday, StartTime: "09:00", EndTime: "17:00"},
		{ID: uuid.New(), Day: valueobject.WeekdayWednesday, StartTime: "12:00", EndTime: "16:00"},
	}, nil)

	slots, err := planner.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, slots, 3)
	assert.Equal(t, valueobject.WeekdayMonday, slots[0].Day)
	assert.Equal(t, valueobject.WeekdayWednesday, slots[1].Day)
	assert.Equal(t, valueobject.WeekdayFriday, slots[2].Day)
}

func TestPlanner_Add_Success(t *testing.T) {
	gw := new(mockSlotGateway)
	planner := NewPlanner(gw)

	gw.On("ListMySlots", mock.Anything).Return([]models.AvailabilitySlot{}, nil)
	created := &models.AvailabilitySlot{
		ID:        uuid.New(),
		Day:       valueobject.WeekdayMonday,
		StartTime: "09:00",
		EndTime:   "17:00",
	}
	gw.On("CreateSlot", mock.Anything, mock.AnythingOfType("*models.AvailabilitySlot")).Return(created, nil)

	slot, err := planner.Add(context.Background(), "monday", "09:00", "17:00")
	assert.NoError(t, err)
	assert.Equal(t, valueobject.WeekdayMonday, slot.Day)
	gw.AssertExpectations(t)
}

func TestPlanner_Add_DuplicateDay(t *testing.T) {
	gw := new(mockSlotGateway)
	planner := NewPlanner(gw)

	gw.On("ListMySlots", mock.Anything).Return([]models.AvailabilitySlot{
		{ID: uuid.New(), Day: valueobject.WeekdayMonday, StartTime: "09:00", EndTime: "12:00"},
	}, nil)

	_, err := planner.Add(context.Background(), "monday", "14:00", "18:00")
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "уже настроено")
	gw.AssertNotCalled(t, "CreateSlot", mock.Anything, mock.Anything)
}

func TestPlanner_Add_InvalidDay(t *testing.T) {
	gw := new(mockSlotGateway)
	planner := NewPlanner(gw)

	_, err := planner.Add(context.Background(), "someday", "09:00", "17:00")
	assert.True(t, apperror.IsValidation(err))
	gw.AssertNotCalled(t, "ListMySlots", mock.Anything)
}

func TestPlanner_Add_InvalidWindow(t *testing.T) {
	gw := new(mockSlotGateway)
	planner := NewPlanner(gw)

	_, err := planner.Add(context.Background(), "monday", "18:00", "09:00")
	assert.True(t, apperror.IsValidation(err))
	gw.AssertNotCalled(t, "ListMySlots", mock.Anything)
}

func TestValidateWindow(t *testing.T) {
	assert.NoError(t, ValidateWindow("09:00", "17:00"))
	assert.NoError(t, ValidateWindow("00:00", "23:59"))

	// Начало строго раньше конца.
	assert.Error(t, ValidateWindow("10:00", "10:00"))
	assert.Error(t, ValidateWindow("17:00", "09:00"))

	// Только формат HH:MM.
	assert.Error(t, ValidateWindow("9am", "17:00"))
	assert.Error(t, ValidateWindow("09:00", "25:00"))
	assert.Error(t, ValidateWindow("", "17:00"))
}
