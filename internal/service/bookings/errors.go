package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrKitchenNotFound возвращается, когда кухня не найдена
	ErrKitchenNotFound = errors.New("kitchen not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancellationWindowPassed возвращается, когда шеф отменяет бронирование
	// позже, чем позволяет политика локации
	ErrCancellationWindowPassed = errors.New("cancellation window has passed")

	// ErrCannotConfirm возвращается при попытке подтвердить отменённое бронирование
	ErrCannotConfirm = errors.New("booking cannot be confirmed")

	// ErrLicenseNotApproved возвращается, когда лицензия локации отозвана
	// или не одобрена на момент подтверждения
	ErrLicenseNotApproved = errors.New("location license is not approved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
