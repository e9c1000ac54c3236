package domain

// Default configuration values
const (
	// SlotDurationMinutes фиксированная ширина слота бронирования
	SlotDurationMinutes = 60

	// DefaultDailyBookingLimit жёсткий fallback дневного лимита слотов на шефа,
	// когда лимит не задан ни в override, ни в расписании, ни в локации
	DefaultDailyBookingLimit = 2

	// DefaultSlotCapacity количество параллельных подтверждённых бронирований на слот
	DefaultSlotCapacity = 1

	// DefaultMinBookingWindowHours минимальное время до начала бронирования
	DefaultMinBookingWindowHours = 24

	// DefaultTimezone часовой пояс локации, если не задан явно
	DefaultTimezone = "America/New_York"
)

// Business validation constants
const (
	MinBookingHours       = 1
	MaxBookingHours       = 24
	MaxNotesLength        = 500
	MaxCancelReasonLength = 500

	// ServiceFeePercent сервисный сбор площадки, процент от базовой стоимости
	ServiceFeePercent = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие слот при проверке конфликтов на создании
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
