package kitchens

import "errors"

var (
	// ErrKitchenNotFound возвращается, когда кухня не найдена
	ErrKitchenNotFound = errors.New("kitchen not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrHasBookings возвращается при попытке удалить кухню с бронированиями
	ErrHasBookings = errors.New("kitchen has bookings and cannot be deleted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
