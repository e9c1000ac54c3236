package get_daily_policy

import (
	"context"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetDailyPolicy(ctx context.Context, kitchenID int64, date time.Time) (*models.DailyPolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
