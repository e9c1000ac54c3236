package domain

import "time"

// Kitchen represents a bookable commercial kitchen.
type Kitchen struct {
	ID         int64
	LocationID int64
	Name       string

	// Pricing attributes (minor currency units)
	HourlyRateCents int64
	Currency        string
	MinBookingHours int

	// SlotCapacity количество параллельных подтверждённых бронирований на слот.
	// Сейчас везде 1, но занятость считается через параметр на случай кухонь
	// с несколькими рабочими местами.
	SlotCapacity int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveSlotCapacity returns the per-slot capacity with the default applied.
func (k *Kitchen) EffectiveSlotCapacity() int {
	if k.SlotCapacity <= 0 {
		return DefaultSlotCapacity
	}
	return k.SlotCapacity
}

// Location owns kitchens and carries location-wide booking policy.
type Location struct {
	ID   int64
	Name string

	// Timezone IANA имя часового пояса локации (например "America/New_York")
	Timezone string

	// MinBookingWindowHours минимальное время от "сейчас" до начала бронирования
	MinBookingWindowHours int

	// DefaultDailyBookingLimit дневной лимит слотов на шефа, если не задан
	// на уровне кухни (override или недельное расписание)
	DefaultDailyBookingLimit int

	// CancellationNoticeHours за сколько часов до начала шеф ещё может
	// отменить бронирование сам; 0 - без ограничения
	CancellationNoticeHours int

	// CancellationPolicyMessage текст, который показывается шефу при отказе в отмене
	CancellationPolicyMessage string

	ContactEmail string
	ManagerIDs   []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveTimezone returns the location timezone with the default applied.
func (l *Location) EffectiveTimezone() string {
	if l.Timezone == "" {
		return DefaultTimezone
	}
	return l.Timezone
}

// IsManager returns true if the given user manages this location.
func (l *Location) IsManager(userID int64) bool {
	for _, id := range l.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// LicenseStatus статус лицензии кухни на уровне локации (внешний справочник)
type LicenseStatus string

const (
	LicenseApproved LicenseStatus = "approved"
	LicensePending  LicenseStatus = "pending"
	LicenseRejected LicenseStatus = "rejected"
	LicenseUnset    LicenseStatus = "unset"
)

// ApplicationStatus статус заявки шефа на доступ к локации (внешний справочник)
type ApplicationStatus string

const (
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationRejected ApplicationStatus = "rejected"
	ApplicationNone     ApplicationStatus = "none"
)
