package create_booking

import (
	"context"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateStorageAddon(ctx context.Context, addon *domain.StorageBooking) (*domain.StorageBooking, error)
	CreateEquipmentAddon(ctx context.Context, addon *domain.EquipmentBooking) (*domain.EquipmentBooking, error)
	GetByKitchenWithFilter(ctx context.Context, filter domain.KitchenBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWeeklyForDay(ctx context.Context, kitchenID int64, dayOfWeek int) (*domain.WeeklyAvailability, error)
	GetOverridesForDate(ctx context.Context, kitchenID int64, date time.Time) ([]*domain.DateOverride, error)
}

// KitchenRepository интерфейс репозитория кухонь и локаций
type KitchenRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Kitchen, error)
	GetLocationByID(ctx context.Context, id int64) (*domain.Location, error)
}

// MarketplaceClient интерфейс клиента marketplace-сервиса
type MarketplaceClient interface {
	GetApplicationStatus(ctx context.Context, chefID, locationID int64) (domain.ApplicationStatus, error)
	GetKitchenLicense(ctx context.Context, locationID int64) (domain.LicenseStatus, error)
}

// Notifier интерфейс клиента уведомлений
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, booking *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
