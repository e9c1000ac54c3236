package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kitchenly/KB-BookingService/internal/availability"
	"github.com/kitchenly/KB-BookingService/internal/domain"
	kitchenRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/kitchen"
)

// UseCase use case для создания бронирования кухни.
// Полный admission-пайплайн: валидация, допуск шефа, лицензия локации,
// минимальное окно, часы работы, дневной лимит и проверка конфликтов.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	kitchenRepo  KitchenRepository
	marketplace  MarketplaceClient
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	kitchenRepo KitchenRepository,
	marketplace MarketplaceClient,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		kitchenRepo:  kitchenRepo,
		marketplace:  marketplace,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и запись выполняются в сериализуемой транзакции,
// чтобы два конкурентных запроса на пересекающиеся интервалы не прошли оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, kitchen=%d, date=%s, range=%s-%s, external=%t",
		req.UserID, req.KitchenID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.IsExternal())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем кухню и её локацию
	kitchen, err := uc.kitchenRepo.GetByID(ctx, req.KitchenID)
	if err != nil {
		if errors.Is(err, kitchenRepo.ErrKitchenNotFound) {
			uc.logger.Warn("CreateBooking: kitchen id=%d not found", req.KitchenID)
			return nil, ErrKitchenNotFound
		}
		uc.logger.Error("CreateBooking: failed to get kitchen id=%d: %v", req.KitchenID, err)
		return nil, fmt.Errorf("%w: failed to get kitchen: %v", ErrInternal, err)
	}

	location, err := uc.kitchenRepo.GetLocationByID(ctx, kitchen.LocationID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get location id=%d: %v", kitchen.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 4. Определяем владельца бронирования и проверяем допуск
	var chefID *int64

	if req.IsExternal() {
		// Внешнее бронирование создаёт только менеджер локации.
		// Шефом бронирование не владеет, допуск и окно не проверяются.
		if !location.IsManager(req.UserID) {
			uc.logger.Warn("CreateBooking: user id=%d is not a manager of location id=%d", req.UserID, location.ID)
			return nil, ErrForbidden
		}
	} else {
		chefID = &req.UserID

		application, err := uc.marketplace.GetApplicationStatus(ctx, req.UserID, location.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get application status for chef id=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to check eligibility: %v", ErrInternal, err)
		}
		if application != domain.ApplicationApproved {
			uc.logger.Warn("CreateBooking: chef id=%d application status=%s for location id=%d",
				req.UserID, application, location.ID)
			return nil, fmt.Errorf("%w: application status is %s", ErrNotEligible, application)
		}
	}

	// 5. Лицензия локации должна быть одобрена для любых бронирований
	license, err := uc.marketplace.GetKitchenLicense(ctx, location.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get license for location id=%d: %v", location.ID, err)
		return nil, fmt.Errorf("%w: failed to check license: %v", ErrInternal, err)
	}
	if license != domain.LicenseApproved {
		uc.logger.Warn("CreateBooking: location id=%d license status=%s", location.ID, license)
		return nil, fmt.Errorf("%w: license status is %s", ErrLicenseNotApproved, license)
	}

	// 6. Минимальное окно до начала (по часовому поясу локации).
	// Менеджер, оформляющий внешнее бронирование, окном не ограничен.
	if !req.IsExternal() {
		if err := validateCutoff(req.Date, req.StartTime, now, location); err != nil {
			uc.logger.Warn("CreateBooking: cutoff check failed: %v", err)
			return nil, err
		}
	}

	requestedMinutes := req.StartTime.MinutesUntil(req.EndTime)

	var result *domain.Booking
	var storageAddons []*domain.StorageBooking
	var equipmentAddons []*domain.EquipmentBooking

	// 7. Проверки занятости и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Эффективные часы работы на дату: override вытесняет недельную сетку
		overrides, err := uc.scheduleRepo.GetOverridesForDate(txCtx, req.KitchenID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get date overrides: %v", err)
			return fmt.Errorf("%w: failed to get date overrides: %v", ErrInternal, err)
		}

		weekly, err := uc.scheduleRepo.GetWeeklyForDay(txCtx, req.KitchenID, int(req.Date.Weekday()))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get weekly availability: %v", err)
			return fmt.Errorf("%w: failed to get weekly availability: %v", ErrInternal, err)
		}

		openRanges := availability.ResolveOpenRanges(overrides, weekly)
		if err := validateWithinOpenRanges(openRanges, req.StartTime, req.EndTime); err != nil {
			uc.logger.Warn("CreateBooking: range %s-%s rejected: %v", req.StartTime, req.EndTime, err)
			return err
		}

		// 7.2. Все активные бронирования кухни на дату с блокировкой (FOR UPDATE)
		filter := domain.KitchenBookingsFilter{
			KitchenID:       req.KitchenID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByKitchenWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.3. Дневной лимит шефа: pending и confirmed минуты плюс запрошенные
		if chefID != nil {
			dailyLimit := domain.ResolveDailyLimit(overrides, weekly, location)
			bookedMinutes := chefBookedMinutes(bookings, *chefID)

			if bookedMinutes+requestedMinutes > dailyLimit*60 {
				uc.logger.Warn("CreateBooking: daily limit exceeded for chef id=%d: booked=%dmin, requested=%dmin, limit=%d slots",
					*chefID, bookedMinutes, requestedMinutes, dailyLimit)
				return fmt.Errorf("%w: limit is %d slot-hours, already booked %d min, requested %d min",
					ErrDailyLimitExceeded, dailyLimit, bookedMinutes, requestedMinutes)
			}
		}

		// 7.4. Конфликт занятости: pending тоже держит слот
		capacity := kitchen.EffectiveSlotCapacity()
		overlapping := availability.CountOverlapping(bookings, req.StartTime, req.EndTime, true)

		if overlapping >= capacity {
			uc.logger.Warn("CreateBooking: slot conflict, %d/%d spots taken for %s-%s",
				overlapping, capacity, req.StartTime, req.EndTime)
			return ErrSlotConflict
		}

		// 7.5. Расчёт стоимости с учётом минимальной оплачиваемой длительности
		quote := domain.CalculateQuote(kitchen.HourlyRateCents, requestedMinutes, kitchen.MinBookingHours)

		booking := &domain.Booking{
			Reference:       uuid.NewString(),
			KitchenID:       req.KitchenID,
			ChefID:          chefID,
			ExternalName:    req.ExternalName,
			ExternalEmail:   req.ExternalEmail,
			ExternalPhone:   req.ExternalPhone,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			Status:          domain.StatusPending,
			HourlyRateCents: kitchen.HourlyRateCents,
			TotalPriceCents: quote.TotalCents,
			ServiceFeeCents: quote.ServiceFeeCents,
			Currency:        kitchen.Currency,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 7.6. Add-on записи создаются в той же транзакции
		for _, addon := range req.StorageAddons {
			createdAddon, err := uc.bookingRepo.CreateStorageAddon(txCtx, &domain.StorageBooking{
				BookingID:   created.ID,
				StorageType: addon.StorageType,
				StartDate:   addon.StartDate,
				EndDate:     addon.EndDate,
				PriceCents:  addon.PriceCents,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create storage addon: %v", err)
				return fmt.Errorf("%w: failed to create storage addon: %v", ErrInternal, err)
			}
			storageAddons = append(storageAddons, createdAddon)
		}

		for _, addon := range req.EquipmentAddons {
			createdAddon, err := uc.bookingRepo.CreateEquipmentAddon(txCtx, &domain.EquipmentBooking{
				BookingID:     created.ID,
				EquipmentName: addon.EquipmentName,
				StartDate:     addon.StartDate,
				EndDate:       addon.EndDate,
				PriceCents:    addon.PriceCents,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create equipment addon: %v", err)
				return fmt.Errorf("%w: failed to create equipment addon: %v", ErrInternal, err)
			}
			equipmentAddons = append(equipmentAddons, createdAddon)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s", result.ID, result.Reference)

	// Уведомление после коммита, ошибки не влияют на результат
	go uc.notifier.NotifyBookingCreated(context.WithoutCancel(ctx), result)

	return buildResponse(result, storageAddons, equipmentAddons), nil
}

func buildResponse(booking *domain.Booking, storageAddons []*domain.StorageBooking, equipmentAddons []*domain.EquipmentBooking) *Response {
	resp := &Response{
		ID:              booking.ID,
		Reference:       booking.Reference,
		KitchenID:       booking.KitchenID,
		ChefID:          booking.ChefID,
		ExternalName:    booking.ExternalName,
		ExternalEmail:   booking.ExternalEmail,
		ExternalPhone:   booking.ExternalPhone,
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		Status:          string(booking.Status),
		HourlyRateCents: booking.HourlyRateCents,
		TotalPriceCents: booking.TotalPriceCents,
		ServiceFeeCents: booking.ServiceFeeCents,
		Currency:        booking.Currency,
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}

	for _, addon := range storageAddons {
		resp.StorageAddons = append(resp.StorageAddons, StorageAddonResponse{
			ID:          addon.ID,
			StorageType: addon.StorageType,
			StartDate:   addon.StartDate,
			EndDate:     addon.EndDate,
			PriceCents:  addon.PriceCents,
		})
	}

	for _, addon := range equipmentAddons {
		resp.EquipmentAddons = append(resp.EquipmentAddons, EquipmentAddonResponse{
			ID:            addon.ID,
			EquipmentName: addon.EquipmentName,
			StartDate:     addon.StartDate,
			EndDate:       addon.EndDate,
			PriceCents:    addon.PriceCents,
		})
	}

	return resp
}
