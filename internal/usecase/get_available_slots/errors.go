package get_available_slots

import "errors"

var (
	// ErrKitchenNotFound возвращается, когда кухня не найдена
	ErrKitchenNotFound = errors.New("get_available_slots: kitchen not found")

	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
