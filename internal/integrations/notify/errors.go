package notify

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notify client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notify client: invalid response")

	// ErrRateLimited возвращается, когда очередь уведомлений переполнена
	ErrRateLimited = errors.New("notify client: rate limit exceeded")
)
