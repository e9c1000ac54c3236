package create_override

import (
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/internal/service/schedule/models"
)

// CreateOverrideRequest HTTP request model
type CreateOverrideRequest struct {
	Date            string  `json:"date"` // "2026-09-15"
	IsAvailable     bool    `json:"isAvailable"`
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	MaxSlotsPerChef *int    `json:"maxSlotsPerChef,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateOverrideRequest) ToServiceRequest(kitchenID, userID int64) (*models.CreateOverrideRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateOverrideRequest{
		KitchenID:       kitchenID,
		UserID:          userID,
		Date:            date,
		IsAvailable:     r.IsAvailable,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		MaxSlotsPerChef: r.MaxSlotsPerChef,
	}, nil
}
