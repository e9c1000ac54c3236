package update_kitchen_config

import (
	"context"

	"github.com/kitchenly/KB-BookingService/internal/service/kitchens/models"
)

type KitchenService interface {
	UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.KitchenConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
