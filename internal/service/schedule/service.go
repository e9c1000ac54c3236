package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/availability"
	"github.com/kitchenly/KB-BookingService/internal/domain"
	kitchenRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/kitchen"
	scheduleRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/schedule"
	"github.com/kitchenly/KB-BookingService/internal/service/schedule/models"
)

// Service сервис управления расписаниями кухонь: недельная сетка,
// override на даты и эффективная политика дня
type Service struct {
	scheduleRepo ScheduleRepository
	kitchenRepo  KitchenRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	kitchenRepo KitchenRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		kitchenRepo:  kitchenRepo,
		logger:       logger,
	}
}

// GetSchedule получает недельное расписание кухни
func (s *Service) GetSchedule(ctx context.Context, kitchenID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for kitchen=%d", kitchenID)

	if _, err := s.getKitchen(ctx, kitchenID); err != nil {
		return nil, err
	}

	weeklies, err := s.scheduleRepo.GetWeeklyForKitchen(ctx, kitchenID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for kitchen=%d: %v", kitchenID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(kitchenID, weeklies), nil
}

// UpdateSchedule обновляет недельное расписание кухни.
// Доступно только менеджерам локации. Дни не из запроса не изменяются.
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for kitchen=%d by user=%d, days=%d",
		req.KitchenID, req.UserID, len(req.Days))

	if err := s.requireManager(ctx, req.KitchenID, req.UserID); err != nil {
		return nil, err
	}

	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	for _, day := range req.Days {
		if err := validateWeeklyDay(&day); err != nil {
			s.logger.Warn("UpdateSchedule: validation failed for kitchen=%d day=%d: %v", req.KitchenID, day.DayOfWeek, err)
			return nil, err
		}
	}

	for _, day := range req.Days {
		weekly, err := day.ToDomainWeekly(req.KitchenID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid time format for day %d: %v", ErrInvalidInput, day.DayOfWeek, err)
		}

		if _, err := s.scheduleRepo.UpsertWeekly(ctx, weekly); err != nil {
			s.logger.Error("UpdateSchedule: upsert failed for kitchen=%d day=%d: %v", req.KitchenID, day.DayOfWeek, err)
			return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
		}
	}

	weeklies, err := s.scheduleRepo.GetWeeklyForKitchen(ctx, req.KitchenID)
	if err != nil {
		s.logger.Error("UpdateSchedule: failed to reload schedule for kitchen=%d: %v", req.KitchenID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for kitchen=%d", req.KitchenID)
	return models.FromDomainSchedule(req.KitchenID, weeklies), nil
}

// CreateOverride создает override-запись на дату.
// Доступно только менеджерам локации.
func (s *Service) CreateOverride(ctx context.Context, req *models.CreateOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("CreateOverride: kitchen=%d, date=%s, available=%t, user=%d",
		req.KitchenID, req.Date.Format(domain.DateFormat), req.IsAvailable, req.UserID)

	if err := s.requireManager(ctx, req.KitchenID, req.UserID); err != nil {
		return nil, err
	}

	if err := validateOverride(req); err != nil {
		s.logger.Warn("CreateOverride: validation failed for kitchen=%d: %v", req.KitchenID, err)
		return nil, err
	}

	override, err := req.ToDomainOverride()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	created, err := s.scheduleRepo.CreateOverride(ctx, override)
	if err != nil {
		s.logger.Error("CreateOverride: repository error for kitchen=%d: %v", req.KitchenID, err)
		return nil, fmt.Errorf("%w: CreateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOverride: successfully created override id=%d for kitchen=%d", created.ID, req.KitchenID)
	return models.FromDomainOverride(created), nil
}

// DeleteOverride удаляет override-запись кухни.
// Доступно только менеджерам локации.
func (s *Service) DeleteOverride(ctx context.Context, kitchenID, overrideID, userID int64) error {
	s.logger.Info("DeleteOverride: kitchen=%d, override=%d, user=%d", kitchenID, overrideID, userID)

	if err := s.requireManager(ctx, kitchenID, userID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteOverride(ctx, kitchenID, overrideID); err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override id=%d not found for kitchen=%d", overrideID, kitchenID)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for override id=%d: %v", overrideID, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: successfully deleted override id=%d for kitchen=%d", overrideID, kitchenID)
	return nil
}

// GetDailyPolicy возвращает эффективную политику кухни на дату:
// открытые интервалы и дневной лимит слотов на шефа
func (s *Service) GetDailyPolicy(ctx context.Context, kitchenID int64, date time.Time) (*models.DailyPolicyResponse, error) {
	s.logger.Info("GetDailyPolicy: kitchen=%d, date=%s", kitchenID, date.Format(domain.DateFormat))

	kitchen, err := s.getKitchen(ctx, kitchenID)
	if err != nil {
		return nil, err
	}

	location, err := s.kitchenRepo.GetLocationByID(ctx, kitchen.LocationID)
	if err != nil {
		s.logger.Error("GetDailyPolicy: failed to get location id=%d: %v", kitchen.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	overrides, err := s.scheduleRepo.GetOverridesForDate(ctx, kitchenID, date)
	if err != nil {
		s.logger.Error("GetDailyPolicy: failed to get overrides for kitchen=%d: %v", kitchenID, err)
		return nil, fmt.Errorf("%w: failed to get date overrides: %v", ErrInternal, err)
	}

	weekly, err := s.scheduleRepo.GetWeeklyForDay(ctx, kitchenID, int(date.Weekday()))
	if err != nil {
		s.logger.Error("GetDailyPolicy: failed to get weekly for kitchen=%d: %v", kitchenID, err)
		return nil, fmt.Errorf("%w: failed to get weekly availability: %v", ErrInternal, err)
	}

	openRanges := availability.ResolveOpenRanges(overrides, weekly)
	dailyLimit := domain.ResolveDailyLimit(overrides, weekly, location)

	return &models.DailyPolicyResponse{
		KitchenID:  kitchenID,
		Date:       date.Format(domain.DateFormat),
		IsOpen:     len(openRanges) > 0,
		OpenRanges: models.FromDomainRanges(openRanges),
		DailyLimit: dailyLimit,
	}, nil
}

// Вспомогательные методы

func (s *Service) getKitchen(ctx context.Context, kitchenID int64) (*domain.Kitchen, error) {
	kitchen, err := s.kitchenRepo.GetByID(ctx, kitchenID)
	if err != nil {
		if errors.Is(err, kitchenRepo.ErrKitchenNotFound) {
			s.logger.Warn("getKitchen: kitchen id=%d not found", kitchenID)
			return nil, ErrKitchenNotFound
		}
		s.logger.Error("getKitchen: repository error for kitchen id=%d: %v", kitchenID, err)
		return nil, fmt.Errorf("%w: failed to get kitchen: %v", ErrInternal, err)
	}
	return kitchen, nil
}

// requireManager проверяет, что пользователь менеджер локации кухни
func (s *Service) requireManager(ctx context.Context, kitchenID, userID int64) error {
	kitchen, err := s.getKitchen(ctx, kitchenID)
	if err != nil {
		return err
	}

	location, err := s.kitchenRepo.GetLocationByID(ctx, kitchen.LocationID)
	if err != nil {
		s.logger.Error("requireManager: failed to get location id=%d: %v", kitchen.LocationID, err)
		return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	if !location.IsManager(userID) {
		s.logger.Warn("requireManager: user=%d is not a manager of location=%d", userID, location.ID)
		return ErrAccessDenied
	}

	return nil
}

// validateWeeklyDay валидирует настройки дня недельного расписания
func validateWeeklyDay(day *models.WeeklyDayRequest) error {
	if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	if day.IsAvailable {
		if day.StartTime == "" || day.EndTime == "" {
			return fmt.Errorf("%w: available day requires startTime and endTime", ErrInvalidInput)
		}
	}

	if day.MaxSlotsPerChef != nil && *day.MaxSlotsPerChef < 0 {
		return fmt.Errorf("%w: maxSlotsPerChef must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateOverride валидирует запрос на создание override-записи
func validateOverride(req *models.CreateOverrideRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Открытый override и частичная блокировка требуют окна,
	// полная блокировка дня может идти без него
	hasWindow := req.StartTime != nil && req.EndTime != nil
	if req.IsAvailable && !hasWindow {
		return fmt.Errorf("%w: available override requires startTime and endTime", ErrInvalidInput)
	}

	if (req.StartTime == nil) != (req.EndTime == nil) {
		return fmt.Errorf("%w: startTime and endTime must be set together", ErrInvalidInput)
	}

	if req.MaxSlotsPerChef != nil && *req.MaxSlotsPerChef < 0 {
		return fmt.Errorf("%w: maxSlotsPerChef must not be negative", ErrInvalidInput)
	}

	return nil
}
