package get_kitchen_config

import (
	"context"

	"github.com/kitchenly/KB-BookingService/internal/service/kitchens/models"
)

type KitchenService interface {
	GetConfig(ctx context.Context, kitchenID int64) (*models.KitchenConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
