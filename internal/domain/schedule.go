package domain

import (
	"time"

	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// WeeklyAvailability одна строка недельного расписания кухни:
// (кухня, день недели 0-6, открыто/закрыто, окно работы).
// Отсутствие строки для дня недели означает "закрыто".
type WeeklyAvailability struct {
	ID          int64
	KitchenID   int64
	DayOfWeek   int // 0 = Sunday ... 6 = Saturday
	IsAvailable bool
	StartTime   types.TimeString
	EndTime     types.TimeString

	// MaxSlotsPerChef дневной лимит слотов на шефа для этого дня недели
	// (nil - лимит не задан на этом уровне)
	MaxSlotsPerChef *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOverride запись доступности на конкретную дату. Имеет приоритет над
// недельным расписанием. Первая строка с IsAvailable=true задаёт базовое окно
// на дату; строки с IsAvailable=false вырезают из него блокировки.
type DateOverride struct {
	ID          int64
	KitchenID   int64
	Date        time.Time
	IsAvailable bool
	StartTime   *types.TimeString
	EndTime     *types.TimeString

	// MaxSlotsPerChef дневной лимит слотов на шефа для этой даты
	MaxSlotsPerChef *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasWindow returns true if the override carries a valid time window.
func (o *DateOverride) HasWindow() bool {
	return o.StartTime != nil && o.EndTime != nil &&
		!o.StartTime.IsZero() && !o.EndTime.IsZero()
}

// TimeRange полуинтервал [Start, End) внутри одних суток
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// IsEmpty returns true if the range contains no time (start >= end).
func (r TimeRange) IsEmpty() bool {
	return !r.Start.IsBefore(r.End)
}

// Contains проверяет, что [start, end) целиком лежит внутри диапазона
func (r TimeRange) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(r.Start) && !end.IsAfter(r.End)
}

// Subtract вырезает block из диапазона и возвращает оставшиеся куски
// (0, 1 или 2 диапазона). Пустые куски отбрасываются.
func (r TimeRange) Subtract(block TimeRange) []TimeRange {
	// Блок не пересекается с диапазоном - диапазон не меняется
	if !block.Start.IsBefore(r.End) || !block.End.IsAfter(r.Start) {
		return []TimeRange{r}
	}

	result := make([]TimeRange, 0, 2)

	if r.Start.IsBefore(block.Start) {
		left := TimeRange{Start: r.Start, End: block.Start}
		if !left.IsEmpty() {
			result = append(result, left)
		}
	}

	if block.End.IsBefore(r.End) {
		right := TimeRange{Start: block.End, End: r.End}
		if !right.IsEmpty() {
			result = append(result, right)
		}
	}

	return result
}
