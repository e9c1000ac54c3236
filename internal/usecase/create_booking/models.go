package create_booking

import (
	"time"

	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// StorageAddonRequest запрос на add-on хранения к бронированию
type StorageAddonRequest struct {
	StorageType string    // cold / dry / freezer
	StartDate   time.Time // Первый день хранения
	EndDate     time.Time // Последний день хранения
	PriceCents  int64     // Цена за период в минорных единицах
}

// EquipmentAddonRequest запрос на add-on аренды оборудования
type EquipmentAddonRequest struct {
	EquipmentName string
	StartDate     time.Time
	EndDate       time.Time
	PriceCents    int64
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID аутентифицированного пользователя
	KitchenID int64            // ID кухни
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Начало интервала (например, "10:00")
	EndTime   types.TimeString // Конец интервала (например, "13:00")
	Notes     *string          // Дополнительные заметки (опционально)

	// Внешнее бронирование: менеджер локации бронирует от имени клиента
	// вне платформы. Заполненное ExternalName переключает запрос в этот режим.
	ExternalName  *string
	ExternalEmail *string
	ExternalPhone *string

	StorageAddons   []StorageAddonRequest
	EquipmentAddons []EquipmentAddonRequest
}

// IsExternal возвращает true для бронирования от имени внешнего клиента
func (r *Request) IsExternal() bool {
	return r.ExternalName != nil && *r.ExternalName != ""
}

// StorageAddonResponse созданный add-on хранения
type StorageAddonResponse struct {
	ID          int64
	StorageType string
	StartDate   time.Time
	EndDate     time.Time
	PriceCents  int64
}

// EquipmentAddonResponse созданный add-on оборудования
type EquipmentAddonResponse struct {
	ID            int64
	EquipmentName string
	StartDate     time.Time
	EndDate       time.Time
	PriceCents    int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	Reference string
	KitchenID int64
	ChefID    *int64

	ExternalName  *string
	ExternalEmail *string
	ExternalPhone *string

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string

	// Расчёт стоимости
	HourlyRateCents int64
	TotalPriceCents int64
	ServiceFeeCents int64
	Currency        string

	Notes *string

	StorageAddons   []StorageAddonResponse
	EquipmentAddons []EquipmentAddonResponse

	CreatedAt time.Time
	UpdatedAt time.Time
}
