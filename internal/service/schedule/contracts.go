package schedule

import (
	"context"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWeeklyForDay(ctx context.Context, kitchenID int64, dayOfWeek int) (*domain.WeeklyAvailability, error)
	GetWeeklyForKitchen(ctx context.Context, kitchenID int64) ([]*domain.WeeklyAvailability, error)
	UpsertWeekly(ctx context.Context, weekly *domain.WeeklyAvailability) (*domain.WeeklyAvailability, error)
	GetOverridesForDate(ctx context.Context, kitchenID int64, date time.Time) ([]*domain.DateOverride, error)
	CreateOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error)
	DeleteOverride(ctx context.Context, kitchenID, overrideID int64) error
}

// KitchenRepository интерфейс репозитория кухонь и локаций
type KitchenRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Kitchen, error)
	GetLocationByID(ctx context.Context, id int64) (*domain.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
