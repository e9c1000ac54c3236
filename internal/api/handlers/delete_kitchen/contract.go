package delete_kitchen

import "context"

type KitchenService interface {
	Delete(ctx context.Context, kitchenID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
