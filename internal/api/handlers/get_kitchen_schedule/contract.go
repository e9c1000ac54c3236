package get_kitchen_schedule

import (
	"context"

	"github.com/kitchenly/KB-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, kitchenID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
