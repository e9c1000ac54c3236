package marketplace

import "errors"

var (
	// ErrApplicationNotFound возвращается, когда у шефа нет заявки на локацию
	ErrApplicationNotFound = errors.New("chef has no application for location")

	// ErrLicenseNotFound возвращается, когда у локации нет записи о лицензии
	ErrLicenseNotFound = errors.New("location has no license record")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("marketplace client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("marketplace client: invalid response")
)
