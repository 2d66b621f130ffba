package rating

import (
	"math"

	"github.com/ignatzorin/marketplace-client/internal/models"
)

// Summary — агрегат оценок исполнителя.
type Summary struct {
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Stars — раскладка среднего по пятизвёздочной шкале: floor(mean)
// полных звёзд, половинка при ненулевой дробной части, остальное пусто.
type Stars struct {
	Full  int  `json:"full"`
	Half  bool `json:"half"`
	Empty int  `json:"empty"`
}

// Aggregate считает среднее арифметическое и количество оценок.
// Для пустого набора среднее равно 0 — деления на ноль нет.
func Aggregate(ratings []models.Rating) Summary {
	if len(ratings) == 0 {
		return Summary{Mean: 0, Count: 0}
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	return Summary{
		Mean:  float64(sum) / float64(len(ratings)),
		Count: len(ratings),
	}
}

// RenderStars превращает среднее в раскладку звёзд. Правило должно
// совпадать с отображением в UI один в один.
func RenderStars(mean float64) Stars {
	if mean < 0 {
		mean = 0
	}
	if mean > 5 {
		mean = 5
	}

	full := int(math.Floor(mean))
	half := mean != math.Floor(mean)

	empty := 5 - full
	if half {
		empty--
	}

	return Stars{Full: full, Half: half, Empty: empty}
}
