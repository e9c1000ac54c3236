package kitchens

import (
	"context"

	"github.com/kitchenly/KB-BookingService/internal/domain"
)

// KitchenRepository интерфейс репозитория кухонь и локаций
type KitchenRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Kitchen, error)
	GetLocationByID(ctx context.Context, id int64) (*domain.Location, error)
	UpdatePricing(ctx context.Context, kitchenID int64, hourlyRateCents *int64, minBookingHours, slotCapacity *int) (*domain.Kitchen, error)
	Delete(ctx context.Context, kitchenID int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByKitchenID(ctx context.Context, kitchenID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
