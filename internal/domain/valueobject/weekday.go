package valueobject

import "github.com/ignatzorin/marketplace-client/internal/pkg/apperror"

// Weekday — день недели для слота доступности.
type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
)

// WeekOrder задаёт порядок дней при отображении недели.
var WeekOrder = []Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
}

func (d Weekday) IsValid() bool {
	for _, day := range WeekOrder {
		if d == day {
			return true
		}
	}
	return false
}

// Index возвращает позицию дня в неделе (понедельник = 0), -1 для неизвестного дня.
func (d Weekday) Index() int {
	for i, day := range WeekOrder {
		if d == day {
			return i
		}
	}
	return -1
}

func NewWeekday(day string) (Weekday, error) {
	d := Weekday(day)
	if !d.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный день недели")
	}
	return d, nil
}
