package kitchens

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	kitchenRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/kitchen"
	"github.com/kitchenly/KB-BookingService/internal/service/kitchens/models"
)

// Service сервис настроек кухонь: цены, вместимость, удаление
type Service struct {
	kitchenRepo KitchenRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса кухонь
func NewService(
	kitchenRepo KitchenRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		kitchenRepo: kitchenRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetConfig получает настройки кухни вместе с политикой локации.
// Публичная операция: шефы видят цены и правила до бронирования.
func (s *Service) GetConfig(ctx context.Context, kitchenID int64) (*models.KitchenConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config for kitchen=%d", kitchenID)

	kitchen, location, err := s.getKitchenWithLocation(ctx, kitchenID)
	if err != nil {
		return nil, err
	}

	return models.FromDomain(kitchen, location), nil
}

// UpdateConfig обновляет настройки кухни.
// Доступно только менеджерам локации.
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.KitchenConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating kitchen=%d by user=%d", req.KitchenID, req.UserID)

	kitchen, location, err := s.getKitchenWithLocation(ctx, req.KitchenID)
	if err != nil {
		return nil, err
	}

	if !location.IsManager(req.UserID) {
		s.logger.Warn("UpdateConfig: user=%d is not a manager of location=%d", req.UserID, location.ID)
		return nil, ErrAccessDenied
	}

	if err := validateUpdateConfig(req); err != nil {
		s.logger.Warn("UpdateConfig: validation failed for kitchen=%d: %v", req.KitchenID, err)
		return nil, err
	}

	if req.HourlyRateCents == nil && req.MinBookingHours == nil && req.SlotCapacity == nil {
		s.logger.Info("UpdateConfig: nothing to update for kitchen=%d", req.KitchenID)
		return models.FromDomain(kitchen, location), nil
	}

	updated, err := s.kitchenRepo.UpdatePricing(ctx, req.KitchenID, req.HourlyRateCents, req.MinBookingHours, req.SlotCapacity)
	if err != nil {
		if errors.Is(err, kitchenRepo.ErrKitchenNotFound) {
			return nil, ErrKitchenNotFound
		}
		s.logger.Error("UpdateConfig: repository error for kitchen=%d: %v", req.KitchenID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: successfully updated kitchen=%d", req.KitchenID)
	return models.FromDomain(updated, location), nil
}

// Delete удаляет кухню вместе с расписанием.
// Доступно только менеджерам локации. Кухня с бронированиями
// (включая отменённые) не удаляется, история должна сохраняться.
func (s *Service) Delete(ctx context.Context, kitchenID, userID int64) error {
	s.logger.Info("Delete: deleting kitchen=%d by user=%d", kitchenID, userID)

	_, location, err := s.getKitchenWithLocation(ctx, kitchenID)
	if err != nil {
		return err
	}

	if !location.IsManager(userID) {
		s.logger.Warn("Delete: user=%d is not a manager of location=%d", userID, location.ID)
		return ErrAccessDenied
	}

	// Проверка истории и удаление в одной транзакции, чтобы конкурентное
	// создание бронирования не проскочило между ними
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		count, err := s.bookingRepo.CountByKitchenID(txCtx, kitchenID)
		if err != nil {
			s.logger.Error("Delete: failed to count bookings for kitchen=%d: %v", kitchenID, err)
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}

		if count > 0 {
			s.logger.Warn("Delete: kitchen=%d has %d bookings, refusing to delete", kitchenID, count)
			return ErrHasBookings
		}

		if err := s.kitchenRepo.Delete(txCtx, kitchenID); err != nil {
			if errors.Is(err, kitchenRepo.ErrKitchenNotFound) {
				return ErrKitchenNotFound
			}
			s.logger.Error("Delete: repository error for kitchen=%d: %v", kitchenID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted kitchen=%d", kitchenID)
	return nil
}

// Вспомогательные методы

func (s *Service) getKitchenWithLocation(ctx context.Context, kitchenID int64) (*domain.Kitchen, *domain.Location, error) {
	kitchen, err := s.kitchenRepo.GetByID(ctx, kitchenID)
	if err != nil {
		if errors.Is(err, kitchenRepo.ErrKitchenNotFound) {
			s.logger.Warn("getKitchenWithLocation: kitchen id=%d not found", kitchenID)
			return nil, nil, ErrKitchenNotFound
		}
		s.logger.Error("getKitchenWithLocation: repository error for kitchen id=%d: %v", kitchenID, err)
		return nil, nil, fmt.Errorf("%w: failed to get kitchen: %v", ErrInternal, err)
	}

	location, err := s.kitchenRepo.GetLocationByID(ctx, kitchen.LocationID)
	if err != nil {
		s.logger.Error("getKitchenWithLocation: failed to get location id=%d: %v", kitchen.LocationID, err)
		return nil, nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	return kitchen, location, nil
}

func validateUpdateConfig(req *models.UpdateConfigRequest) error {
	if req.HourlyRateCents != nil && *req.HourlyRateCents < 0 {
		return fmt.Errorf("%w: hourlyRateCents must not be negative", ErrInvalidInput)
	}

	if req.MinBookingHours != nil {
		if *req.MinBookingHours < domain.MinBookingHours || *req.MinBookingHours > domain.MaxBookingHours {
			return fmt.Errorf("%w: minBookingHours must be between %d and %d",
				ErrInvalidInput, domain.MinBookingHours, domain.MaxBookingHours)
		}
	}

	if req.SlotCapacity != nil && *req.SlotCapacity < 1 {
		return fmt.Errorf("%w: slotCapacity must be positive", ErrInvalidInput)
	}

	return nil
}
