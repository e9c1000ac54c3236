package get_available_slots

import (
	"time"

	"github.com/kitchenly/KB-BookingService/internal/availability"
	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// filterByBookingWindow убирает слоты, начало которых нарушает минимальное
// окно локации. Слот ровно на границе окна остаётся доступным.
func filterByBookingWindow(
	slots []types.TimeString,
	date time.Time,
	now time.Time,
	windowHours int,
	tz *time.Location,
) []types.TimeString {
	cutoff := now.Add(time.Duration(windowHours) * time.Hour)

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot.OnDate(date, tz).Before(cutoff) {
			continue
		}
		filtered = append(filtered, slot)
	}

	return filtered
}

// buildSlots считает занятость каждого слота по подтверждённым бронированиям
func buildSlots(
	starts []types.TimeString,
	bookings []*domain.Booking,
	capacity int,
) []Slot {
	result := make([]Slot, len(starts))

	for i, start := range starts {
		slotEnd, err := start.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			// Слот у полуночи без валидного конца считаем полностью занятым
			result[i] = Slot{
				StartTime:       start,
				DurationMinutes: domain.SlotDurationMinutes,
				AvailableCount:  0,
				Capacity:        capacity,
				IsFullyBooked:   true,
			}
			continue
		}

		confirmed := availability.CountOverlapping(bookings, start, slotEnd, false)

		available := capacity - confirmed
		if available < 0 {
			available = 0
		}

		result[i] = Slot{
			StartTime:       start,
			DurationMinutes: domain.SlotDurationMinutes,
			AvailableCount:  available,
			Capacity:        capacity,
			IsFullyBooked:   available == 0,
		}
	}

	return result
}
