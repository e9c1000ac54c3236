// Package availability вычисляет эффективные часы работы кухни на дату
// и превращает их в часовые слоты для бронирования.
package availability

import (
	"sort"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// ResolveOpenRanges вычисляет список открытых интервалов кухни на дату.
//
// Правила:
//   - Если на дату есть override-записи, недельное расписание игнорируется
//     полностью, даже если среди override нет ни одной открытой строки
//     (тогда день целиком закрыт).
//   - Первая строка с IsAvailable=true задаёт базовое окно; все строки с
//     IsAvailable=false вырезают из него блокировки (частичные закрытия).
//   - Без override действует недельное расписание: нет строки или
//     IsAvailable=false - закрыто.
//   - Интервал с start == end считается закрытым.
//
// Возвращает упорядоченный список непустых интервалов; пустой список - закрыто.
func ResolveOpenRanges(overrides []*domain.DateOverride, weekly *domain.WeeklyAvailability) []domain.TimeRange {
	if len(overrides) > 0 {
		return resolveFromOverrides(overrides)
	}

	if weekly == nil || !weekly.IsAvailable {
		return nil
	}

	base := domain.TimeRange{Start: weekly.StartTime, End: weekly.EndTime}
	if base.IsEmpty() {
		return nil
	}

	return []domain.TimeRange{base}
}

func resolveFromOverrides(overrides []*domain.DateOverride) []domain.TimeRange {
	// Базовое окно - первая открытая строка с валидным интервалом
	var base *domain.TimeRange
	for _, o := range overrides {
		if o.IsAvailable && o.HasWindow() {
			candidate := domain.TimeRange{Start: *o.StartTime, End: *o.EndTime}
			if !candidate.IsEmpty() {
				base = &candidate
				break
			}
		}
	}
	if base == nil {
		return nil
	}

	open := []domain.TimeRange{*base}

	// Каждая закрытая строка вырезает свой интервал из всех оставшихся кусков
	for _, o := range overrides {
		if o.IsAvailable || !o.HasWindow() {
			continue
		}
		block := domain.TimeRange{Start: *o.StartTime, End: *o.EndTime}
		if block.IsEmpty() {
			continue
		}

		next := make([]domain.TimeRange, 0, len(open)+1)
		for _, r := range open {
			next = append(next, r.Subtract(block)...)
		}
		open = next
	}

	sort.Slice(open, func(i, j int) bool {
		return open[i].Start.IsBefore(open[j].Start)
	})

	return open
}

// GenerateSlots генерирует упорядоченный список начал слотов фиксированной
// ширины внутри открытых интервалов. Слот попадает в результат, только если
// целиком помещается в интервал: хвост короче ширины слота не даёт слота.
func GenerateSlots(ranges []domain.TimeRange, slotMinutes int) []types.TimeString {
	if slotMinutes <= 0 {
		slotMinutes = domain.SlotDurationMinutes
	}

	seen := make(map[types.TimeString]struct{})
	slots := make([]types.TimeString, 0)

	for _, r := range ranges {
		cursor := r.Start
		for {
			slotEnd, err := cursor.AddMinutes(slotMinutes)
			if err != nil || slotEnd.IsAfter(r.End) {
				break
			}

			if _, ok := seen[cursor]; !ok {
				seen[cursor] = struct{}{}
				slots = append(slots, cursor)
			}

			cursor, err = cursor.AddMinutes(slotMinutes)
			if err != nil {
				break
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].IsBefore(slots[j])
	})

	return slots
}

// CountOverlapping подсчитывает бронирования, пересекающиеся с [start, end).
// includePending управляет тем, занимают ли слот ожидающие подтверждения
// бронирования: в browse-выдаче считаются только подтверждённые, на проверке
// конфликта при создании - все неотменённые.
func CountOverlapping(bookings []*domain.Booking, start, end types.TimeString, includePending bool) int {
	count := 0
	for _, b := range bookings {
		if b.IsCancelled() {
			continue
		}
		if !includePending && b.Status != domain.StatusConfirmed {
			continue
		}
		if b.Overlaps(start, end) {
			count++
		}
	}
	return count
}
