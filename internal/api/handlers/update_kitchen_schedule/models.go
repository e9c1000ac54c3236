package update_kitchen_schedule

import "github.com/kitchenly/KB-BookingService/internal/service/schedule/models"

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Days []models.WeeklyDayRequest `json:"days"`
}
