package notify

// BookingEvent payload уведомления о событии бронирования
type BookingEvent struct {
	Event       string `json:"event"` // booking.created / booking.confirmed / booking.cancelled
	BookingID   int64  `json:"booking_id"`
	Reference   string `json:"reference"`
	KitchenID   int64  `json:"kitchen_id"`
	ChefID      *int64 `json:"chef_id,omitempty"`
	BookingDate string `json:"booking_date"` // YYYY-MM-DD
	StartTime   string `json:"start_time"`   // HH:MM
	EndTime     string `json:"end_time"`     // HH:MM
	Reason      string `json:"reason,omitempty"`
}
