package kitchen

import "errors"

var (
	// ErrKitchenNotFound возвращается, когда кухня не найдена
	ErrKitchenNotFound = errors.New("kitchen.repository: kitchen not found")

	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("kitchen.repository: location not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("kitchen.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("kitchen.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("kitchen.repository: failed to scan row")
)
