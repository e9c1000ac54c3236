package bookings

import (
	"context"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByChefID(ctx context.Context, chefID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByKitchenWithFilter(ctx context.Context, filter domain.KitchenBookingsFilter) ([]*domain.Booking, error)
	GetAddons(ctx context.Context, bookingID int64) ([]*domain.StorageBooking, []*domain.EquipmentBooking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// KitchenRepository интерфейс репозитория кухонь и локаций
type KitchenRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Kitchen, error)
	GetLocationByID(ctx context.Context, id int64) (*domain.Location, error)
}

// MarketplaceClient интерфейс клиента marketplace-сервиса
type MarketplaceClient interface {
	GetKitchenLicense(ctx context.Context, locationID int64) (domain.LicenseStatus, error)
}

// Notifier интерфейс клиента уведомлений
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking)
	NotifyBookingCancelled(ctx context.Context, booking *domain.Booking, reason string)
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
