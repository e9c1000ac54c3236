package models

import (
	"github.com/kitchenly/KB-BookingService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление настроек кухни.
// nil-поля не изменяются.
type UpdateConfigRequest struct {
	KitchenID int64 `json:"kitchenId"`
	UserID    int64 `json:"userId"`

	HourlyRateCents *int64 `json:"hourlyRateCents,omitempty"`
	MinBookingHours *int   `json:"minBookingHours,omitempty"`
	SlotCapacity    *int   `json:"slotCapacity,omitempty"`
}

// Response модели

// KitchenConfigResponse настройки кухни вместе с политикой локации
type KitchenConfigResponse struct {
	KitchenID  int64  `json:"kitchenId"`
	LocationID int64  `json:"locationId"`
	Name       string `json:"name"`

	HourlyRateCents int64  `json:"hourlyRateCents"`
	Currency        string `json:"currency"`
	MinBookingHours int    `json:"minBookingHours"`
	SlotCapacity    int    `json:"slotCapacity"`

	// Политика локации
	Timezone                  string `json:"timezone"`
	MinBookingWindowHours     int    `json:"minBookingWindowHours"`
	DefaultDailyBookingLimit  int    `json:"defaultDailyBookingLimit"`
	CancellationNoticeHours   int    `json:"cancellationNoticeHours"`
	CancellationPolicyMessage string `json:"cancellationPolicyMessage,omitempty"`
}

// FromDomain собирает ответ из кухни и её локации
func FromDomain(kitchen *domain.Kitchen, location *domain.Location) *KitchenConfigResponse {
	return &KitchenConfigResponse{
		KitchenID:                 kitchen.ID,
		LocationID:                kitchen.LocationID,
		Name:                      kitchen.Name,
		HourlyRateCents:           kitchen.HourlyRateCents,
		Currency:                  kitchen.Currency,
		MinBookingHours:           kitchen.MinBookingHours,
		SlotCapacity:              kitchen.EffectiveSlotCapacity(),
		Timezone:                  location.EffectiveTimezone(),
		MinBookingWindowHours:     location.MinBookingWindowHours,
		DefaultDailyBookingLimit:  location.DefaultDailyBookingLimit,
		CancellationNoticeHours:   location.CancellationNoticeHours,
		CancellationPolicyMessage: location.CancellationPolicyMessage,
	}
}
