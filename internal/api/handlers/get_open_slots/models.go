package get_open_slots

import (
	"github.com/kitchenly/KB-BookingService/internal/domain"
	getSlots "github.com/kitchenly/KB-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableCount  int    `json:"availableCount"`
	Capacity        int    `json:"capacity"`
	IsFullyBooked   bool   `json:"isFullyBooked"`
}

// OpenSlotsResponse HTTP модель ответа со слотами
type OpenSlotsResponse struct {
	KitchenID int64          `json:"kitchenId"`
	Date      string         `json:"date"`
	Timezone  string         `json:"timezone"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *OpenSlotsResponse {
	result := &OpenSlotsResponse{
		KitchenID: resp.KitchenID,
		Date:      resp.Date.Format(domain.DateFormat),
		Timezone:  resp.Timezone,
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableCount:  slot.AvailableCount,
			Capacity:        slot.Capacity,
			IsFullyBooked:   slot.IsFullyBooked,
		})
	}

	return result
}
