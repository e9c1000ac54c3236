package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	bookingRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/booking"
	"github.com/kitchenly/KB-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: просмотр, отмена, подтверждение
type Service struct {
	bookingRepo  BookingRepository
	kitchenRepo  KitchenRepository
	marketplace  MarketplaceClient
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	kitchenRepo KitchenRepository,
	marketplace MarketplaceClient,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		kitchenRepo:  kitchenRepo,
		marketplace:  marketplace,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID вместе с add-on записями.
// Доступно владельцу бронирования и менеджерам локации.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	location, err := s.getLocationForBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	// Владелец или менеджер локации
	if !booking.IsOwnedBy(userID) && !location.IsManager(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	storageAddons, equipmentAddons, err := s.bookingRepo.GetAddons(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get addons for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get addons: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking).WithAddons(storageAddons, equipmentAddons), nil
}

// GetChefBookings получает историю бронирований шефа.
// Шеф видит только собственные бронирования.
func (s *Service) GetChefBookings(ctx context.Context, req *models.GetChefBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetChefBookings: fetching bookings for chef=%d, user=%d, status=%v", req.ChefID, req.UserID, req.Status)

	if req.ChefID != req.UserID {
		s.logger.Warn("GetChefBookings: user=%d requested bookings of chef=%d", req.UserID, req.ChefID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetChefBookings: invalid status=%s for chef=%d", *req.Status, req.ChefID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByChefID(ctx, req.ChefID, domainStatus)
	if err != nil {
		s.logger.Error("GetChefBookings: repository error for chef=%d: %v", req.ChefID, err)
		return nil, fmt.Errorf("%w: GetChefBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetChefBookings: successfully fetched %d bookings for chef=%d", len(bookings), req.ChefID)
	return models.FromDomainBookingList(bookings), nil
}

// GetKitchenBookings получает бронирования кухни с гибкой фильтрацией
// по шефу, периоду и статусу. Доступно только менеджерам локации.
func (s *Service) GetKitchenBookings(ctx context.Context, req *models.GetKitchenBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetKitchenBookings: fetching bookings for kitchen=%d, user=%d", req.KitchenID, req.UserID)

	if _, err := s.requireManager(ctx, req.KitchenID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetKitchenBookings: invalid filter for kitchen=%d: %v", req.KitchenID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByKitchenWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetKitchenBookings: repository error for kitchen=%d: %v", req.KitchenID, err)
		return nil, fmt.Errorf("%w: GetKitchenBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetKitchenBookings: successfully fetched %d bookings for kitchen=%d", len(bookings), req.KitchenID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и возвращает его итоговое состояние.
// Шеф отменяет своё бронирование в пределах окна отмены локации,
// менеджер локации отменяет любое без ограничений.
// Повторная отмена уже отменённого бронирования не ошибка.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Идемпотентность: повторная отмена возвращает то же терминальное состояние
	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%d is already cancelled", bookingID)
		return models.FromDomainBooking(booking), nil
	}

	location, err := s.getLocationForBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	isOwner := booking.IsOwnedBy(req.UserID)
	isManager := location.IsManager(req.UserID)

	if !isOwner && !isManager {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	// Шеф ограничен окном отмены, менеджер - нет
	if isOwner && !isManager {
		if err := s.checkCancellationWindow(booking, location); err != nil {
			s.logger.Warn("Cancel: window check failed for booking id=%d: %v", bookingID, err)
			return nil, err
		}
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	cancelledAt := s.timeProvider.Now()
	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &cancelledAt
	if req.Reason != "" {
		booking.CancellationReason = &req.Reason
	}

	go s.notifier.NotifyBookingCancelled(context.WithoutCancel(ctx), booking, req.Reason)

	return models.FromDomainBooking(booking), nil
}

// Confirm подтверждает pending-бронирование и возвращает его итоговое состояние.
// Доступно только менеджерам локации. Лицензия локации перепроверяется:
// бронирование, созданное до отзыва лицензии, подтвердить нельзя.
// Подтверждение уже подтверждённого бронирования не ошибка.
func (s *Service) Confirm(ctx context.Context, bookingID int64, req *models.ConfirmBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	location, err := s.getLocationForBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	if !location.IsManager(req.UserID) {
		s.logger.Warn("Confirm: access denied for user=%d to confirm booking id=%d", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	// Идемпотентность: подтверждение подтверждённого возвращает то же состояние
	if booking.Status == domain.StatusConfirmed {
		s.logger.Info("Confirm: booking id=%d is already confirmed", bookingID)
		return models.FromDomainBooking(booking), nil
	}

	if booking.IsCancelled() {
		s.logger.Warn("Confirm: booking id=%d is cancelled", bookingID)
		return nil, ErrCannotConfirm
	}

	// Лицензия перепроверяется на момент подтверждения
	license, err := s.marketplace.GetKitchenLicense(ctx, location.ID)
	if err != nil {
		s.logger.Error("Confirm: failed to get license for location id=%d: %v", location.ID, err)
		return nil, fmt.Errorf("%w: Confirm - failed to check license: %v", ErrInternal, err)
	}
	if license != domain.LicenseApproved {
		s.logger.Warn("Confirm: location id=%d license status=%s", location.ID, license)
		return nil, fmt.Errorf("%w: license status is %s", ErrLicenseNotApproved, license)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)

	booking.Status = domain.StatusConfirmed
	go s.notifier.NotifyBookingConfirmed(context.WithoutCancel(ctx), booking)

	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

// getLocationForBooking получает локацию кухни бронирования
func (s *Service) getLocationForBooking(ctx context.Context, booking *domain.Booking) (*domain.Location, error) {
	kitchen, err := s.kitchenRepo.GetByID(ctx, booking.KitchenID)
	if err != nil {
		s.logger.Error("getLocationForBooking: failed to get kitchen id=%d: %v", booking.KitchenID, err)
		return nil, fmt.Errorf("%w: failed to get kitchen: %v", ErrInternal, err)
	}

	location, err := s.kitchenRepo.GetLocationByID(ctx, kitchen.LocationID)
	if err != nil {
		s.logger.Error("getLocationForBooking: failed to get location id=%d: %v", kitchen.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	return location, nil
}

// requireManager проверяет, что пользователь менеджер локации кухни
func (s *Service) requireManager(ctx context.Context, kitchenID, userID int64) (*domain.Location, error) {
	kitchen, err := s.kitchenRepo.GetByID(ctx, kitchenID)
	if err != nil {
		s.logger.Warn("requireManager: kitchen id=%d not found: %v", kitchenID, err)
		return nil, ErrKitchenNotFound
	}

	location, err := s.kitchenRepo.GetLocationByID(ctx, kitchen.LocationID)
	if err != nil {
		s.logger.Error("requireManager: failed to get location id=%d: %v", kitchen.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	if !location.IsManager(userID) {
		s.logger.Warn("requireManager: user=%d is not a manager of location=%d", userID, location.ID)
		return nil, ErrAccessDenied
	}

	return location, nil
}

// checkCancellationWindow проверяет окно отмены локации для шефа.
// Отмена ровно на границе окна допустима.
func (s *Service) checkCancellationWindow(booking *domain.Booking, location *domain.Location) error {
	if location.CancellationNoticeHours <= 0 {
		return nil
	}

	tz, err := time.LoadLocation(location.EffectiveTimezone())
	if err != nil {
		return fmt.Errorf("%w: invalid location timezone %q: %v", ErrInternal, location.EffectiveTimezone(), err)
	}

	startAt := booking.StartTime.OnDate(booking.BookingDate, tz)
	deadline := startAt.Add(-time.Duration(location.CancellationNoticeHours) * time.Hour)

	if s.timeProvider.Now().After(deadline) {
		if location.CancellationPolicyMessage != "" {
			return fmt.Errorf("%w: %s", ErrCancellationWindowPassed, location.CancellationPolicyMessage)
		}
		return fmt.Errorf("%w: must cancel at least %d hours before start", ErrCancellationWindowPassed, location.CancellationNoticeHours)
	}

	return nil
}
