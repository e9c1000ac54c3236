package domain

import (
	"time"

	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// BookingStatus represents the status of a kitchen booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a kitchen booking in the system.
// ChefID is nil for external bookings entered by a location manager;
// such bookings carry contact fields instead.
type Booking struct {
	ID        int64
	Reference string // внешний UUID для уведомлений и клиентских ссылок
	KitchenID int64
	ChefID    *int64

	ExternalName  *string
	ExternalEmail *string
	ExternalPhone *string

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	// Pricing snapshot at booking time
	HourlyRateCents int64
	TotalPriceCents int64
	ServiceFeeCents int64
	Currency        string

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes returns the booked range length in minutes.
func (b *Booking) DurationMinutes() int {
	return b.StartTime.MinutesUntil(b.EndTime)
}

// IsActive returns true if the booking still occupies its time range.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can transition to cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking can transition to confirmed.
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// IsOwnedBy returns true if the booking belongs to the given chef.
func (b *Booking) IsOwnedBy(chefID int64) bool {
	return b.ChefID != nil && *b.ChefID == chefID
}

// Overlaps проверяет пересечение [start, end) бронирования с указанным интервалом.
// Строгие неравенства: соприкасающиеся границы пересечением не считаются.
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}

// StorageBooking add-on хранения, привязанный к бронированию кухни.
// Не участвует в подсчёте занятости слотов кухни.
type StorageBooking struct {
	ID          int64
	BookingID   int64
	StorageType string
	StartDate   time.Time
	EndDate     time.Time
	PriceCents  int64
	CreatedAt   time.Time
}

// EquipmentBooking add-on аренды оборудования, привязанный к бронированию кухни.
type EquipmentBooking struct {
	ID            int64
	BookingID     int64
	EquipmentName string
	StartDate     time.Time
	EndDate       time.Time
	PriceCents    int64
	CreatedAt     time.Time
}

// KitchenBookingsFilter фильтр для получения бронирований кухни
type KitchenBookingsFilter struct {
	KitchenID       int64          // Обязательный параметр
	ChefID          *int64         // Фильтр по шефу (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
