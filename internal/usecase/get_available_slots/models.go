package get_available_slots

import (
	"time"

	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// Request модель запроса на получение открытых слотов кухни на дату
type Request struct {
	KitchenID int64     // ID кухни
	Date      time.Time // Дата (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	KitchenID int64     // ID кухни
	Date      time.Time // Дата, на которую запрашивались слоты
	Timezone  string    // Часовой пояс локации
	Slots     []Slot    // Упорядоченный список слотов
}

// Slot часовой слот кухни с занятостью.
// Занятость считается только по подтверждённым бронированиям:
// pending-бронирования в публичной выдаче слот не занимают.
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	AvailableCount  int              // Свободных мест в слоте
	Capacity        int              // Вместимость слота
	IsFullyBooked   bool             // Свободных мест нет
}
