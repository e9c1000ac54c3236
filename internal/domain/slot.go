package domain

import "github.com/kitchenly/KB-BookingService/pkg/types"

// AvailableSlot represents a one-hour candidate booking window for browsing.
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableCount  int // свободные места в слоте
	Capacity        int // общее количество мест
	IsFullyBooked   bool
}

// IsFree returns true if all spots in the slot are available.
func (s *AvailableSlot) IsFree() bool {
	return s.AvailableCount == s.Capacity
}
