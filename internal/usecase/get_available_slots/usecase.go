package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/availability"
	"github.com/kitchenly/KB-BookingService/internal/domain"
	kitchenRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/kitchen"
)

// UseCase use case для публичной выдачи открытых слотов кухни на дату
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	kitchenRepo  KitchenRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	kitchenRepo KitchenRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		kitchenRepo:  kitchenRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения открытых слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: kitchen=%d, date=%s", req.KitchenID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем кухню и локацию
	kitchen, err := uc.kitchenRepo.GetByID(ctx, req.KitchenID)
	if err != nil {
		if errors.Is(err, kitchenRepo.ErrKitchenNotFound) {
			uc.logger.Warn("GetAvailableSlots: kitchen id=%d not found", req.KitchenID)
			return nil, ErrKitchenNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get kitchen id=%d: %v", req.KitchenID, err)
		return nil, fmt.Errorf("%w: failed to get kitchen: %v", ErrInternal, err)
	}

	location, err := uc.kitchenRepo.GetLocationByID(ctx, kitchen.LocationID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get location id=%d: %v", kitchen.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	tz, err := time.LoadLocation(location.EffectiveTimezone())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid timezone %q: %v", location.EffectiveTimezone(), err)
		return nil, fmt.Errorf("%w: invalid location timezone: %v", ErrInternal, err)
	}

	// 4. Эффективные часы работы: override на дату вытесняет недельную сетку
	overrides, err := uc.scheduleRepo.GetOverridesForDate(ctx, req.KitchenID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get date overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get date overrides: %v", ErrInternal, err)
	}

	weekly, err := uc.scheduleRepo.GetWeeklyForDay(ctx, req.KitchenID, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get weekly availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly availability: %v", ErrInternal, err)
	}

	openRanges := availability.ResolveOpenRanges(overrides, weekly)
	if len(openRanges) == 0 {
		uc.logger.Info("GetAvailableSlots: kitchen id=%d is closed on %s", req.KitchenID, req.Date.Format(domain.DateFormat))
		return &Response{
			KitchenID: req.KitchenID,
			Date:      req.Date,
			Timezone:  location.EffectiveTimezone(),
			Slots:     []Slot{},
		}, nil
	}

	// 5. Генерируем часовые слоты и убираем нарушающие минимальное окно
	starts := availability.GenerateSlots(openRanges, domain.SlotDurationMinutes)
	starts = filterByBookingWindow(starts, req.Date, now, location.MinBookingWindowHours, tz)

	if len(starts) == 0 {
		return &Response{
			KitchenID: req.KitchenID,
			Date:      req.Date,
			Timezone:  location.EffectiveTimezone(),
			Slots:     []Slot{},
		}, nil
	}

	// 6. Занятость слотов по подтверждённым бронированиям
	confirmedStatus := domain.StatusConfirmed
	filter := domain.KitchenBookingsFilter{
		KitchenID: req.KitchenID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
		Status:    &confirmedStatus,
	}

	bookings, err := uc.bookingRepo.GetByKitchenWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots := buildSlots(starts, bookings, kitchen.EffectiveSlotCapacity())

	uc.logger.Info("GetAvailableSlots: generated %d slots for kitchen=%d, date=%s",
		len(slots), req.KitchenID, req.Date.Format(domain.DateFormat))

	return &Response{
		KitchenID: req.KitchenID,
		Date:      req.Date,
		Timezone:  location.EffectiveTimezone(),
		Slots:     slots,
	}, nil
}
