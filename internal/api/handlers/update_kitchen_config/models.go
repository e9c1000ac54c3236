package update_kitchen_config

// UpdateConfigRequest HTTP request model.
// nil-поля не изменяются.
type UpdateConfigRequest struct {
	HourlyRateCents *int64 `json:"hourlyRateCents,omitempty"`
	MinBookingHours *int   `json:"minBookingHours,omitempty"`
	SlotCapacity    *int   `json:"slotCapacity,omitempty"`
}
