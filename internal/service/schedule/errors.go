package schedule

import "errors"

var (
	// ErrKitchenNotFound возвращается, когда кухня не найдена
	ErrKitchenNotFound = errors.New("kitchen not found")

	// ErrOverrideNotFound возвращается, когда override-запись не найдена
	ErrOverrideNotFound = errors.New("date override not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
