package create_booking

import "errors"

var (
	// ErrKitchenNotFound возвращается, когда кухня не найдена
	ErrKitchenNotFound = errors.New("create_booking: kitchen not found")

	// ErrNotEligible возвращается, когда у шефа нет одобренной заявки на локацию
	ErrNotEligible = errors.New("create_booking: chef is not approved for this location")

	// ErrLicenseNotApproved возвращается, когда лицензия локации не одобрена
	ErrLicenseNotApproved = errors.New("create_booking: location license is not approved")

	// ErrTooSoonToBook возвращается, когда до начала бронирования меньше
	// минимального окна локации
	ErrTooSoonToBook = errors.New("create_booking: booking starts too soon")

	// ErrDailyLimitExceeded возвращается при превышении дневного лимита слотов шефа
	ErrDailyLimitExceeded = errors.New("create_booking: daily booking limit exceeded")

	// ErrSlotConflict возвращается, когда запрошенный интервал занят
	ErrSlotConflict = errors.New("create_booking: slot is already booked")

	// ErrKitchenClosed возвращается, когда кухня закрыта в запрошенный интервал
	ErrKitchenClosed = errors.New("create_booking: kitchen is closed at this time")

	// ErrInvalidRange возвращается при некорректном интервале бронирования
	ErrInvalidRange = errors.New("create_booking: invalid booking time range")

	// ErrForbidden возвращается, когда внешнее бронирование создаёт не менеджер локации
	ErrForbidden = errors.New("create_booking: external bookings require location manager")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
