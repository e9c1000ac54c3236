package create_booking

import (
	"fmt"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.KitchenID <= 0 {
		return fmt.Errorf("%w: kitchenID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.IsExternal() {
		if req.ExternalEmail == nil && req.ExternalPhone == nil {
			return fmt.Errorf("%w: external booking requires email or phone", ErrInvalidInput)
		}
	}

	for _, addon := range req.StorageAddons {
		if addon.StorageType == "" {
			return fmt.Errorf("%w: storage addon requires type", ErrInvalidInput)
		}
		if addon.EndDate.Before(addon.StartDate) {
			return fmt.Errorf("%w: storage addon end date before start date", ErrInvalidInput)
		}
	}

	for _, addon := range req.EquipmentAddons {
		if addon.EquipmentName == "" {
			return fmt.Errorf("%w: equipment addon requires name", ErrInvalidInput)
		}
		if addon.EndDate.Before(addon.StartDate) {
			return fmt.Errorf("%w: equipment addon end date before start date", ErrInvalidInput)
		}
	}

	return validateRange(req.StartTime, req.EndTime)
}

// validateRange проверяет интервал бронирования: конец строго после начала,
// длительность кратна слоту и не превышает сутки
func validateRange(start, end types.TimeString) error {
	if !end.IsAfter(start) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidRange)
	}

	duration := start.MinutesUntil(end)

	if duration%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrInvalidRange, domain.SlotDurationMinutes)
	}

	if duration < domain.MinBookingHours*60 {
		return fmt.Errorf("%w: booking must be at least %d hour(s)", ErrInvalidRange, domain.MinBookingHours)
	}

	if duration > domain.MaxBookingHours*60 {
		return fmt.Errorf("%w: booking must not exceed %d hours", ErrInvalidRange, domain.MaxBookingHours)
	}

	return nil
}

// validateCutoff проверяет минимальное окно до начала бронирования.
// Начало ровно на границе окна допустимо, отказ только при строгом нарушении.
func validateCutoff(
	date time.Time,
	startTime types.TimeString,
	now time.Time,
	location *domain.Location,
) error {
	tz, err := time.LoadLocation(location.EffectiveTimezone())
	if err != nil {
		return fmt.Errorf("%w: invalid location timezone %q: %v", ErrInternal, location.EffectiveTimezone(), err)
	}

	startAt := startTime.OnDate(date, tz)
	cutoff := now.Add(time.Duration(location.MinBookingWindowHours) * time.Hour)

	if startAt.Before(cutoff) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooSoonToBook, location.MinBookingWindowHours)
	}

	return nil
}

// validateWithinOpenRanges проверяет, что запрошенный интервал целиком лежит
// в одном открытом интервале и начинается на границе часового слота
func validateWithinOpenRanges(ranges []domain.TimeRange, start, end types.TimeString) error {
	for _, r := range ranges {
		if !r.Contains(start, end) {
			continue
		}
		// Начало должно попадать на слотовую сетку открытого интервала
		offset := r.Start.MinutesUntil(start)
		if offset%domain.SlotDurationMinutes != 0 {
			return fmt.Errorf("%w: startTime is not aligned to the slot grid", ErrInvalidRange)
		}
		return nil
	}
	return ErrKitchenClosed
}

// chefBookedMinutes суммирует минуты активных бронирований шефа в списке
func chefBookedMinutes(bookings []*domain.Booking, chefID int64) int {
	total := 0
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.ChefID == nil || *b.ChefID != chefID {
			continue
		}
		total += b.DurationMinutes()
	}
	return total
}
