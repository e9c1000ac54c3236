package create_booking

import (
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	createBooking "github.com/kitchenly/KB-BookingService/internal/usecase/create_booking"
	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// StorageAddonRequest HTTP модель add-on хранения
type StorageAddonRequest struct {
	StorageType string `json:"storageType"`
	StartDate   string `json:"startDate"` // "2026-09-01"
	EndDate     string `json:"endDate"`
	PriceCents  int64  `json:"priceCents"`
}

// EquipmentAddonRequest HTTP модель add-on оборудования
type EquipmentAddonRequest struct {
	EquipmentName string `json:"equipmentName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	PriceCents    int64  `json:"priceCents"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	KitchenID   int64   `json:"kitchenId"`
	BookingDate string  `json:"bookingDate"` // "2026-09-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	EndTime     string  `json:"endTime"`     // "13:00"
	Notes       *string `json:"notes,omitempty"`

	// Внешнее бронирование (только для менеджеров локации)
	ExternalName  *string `json:"externalName,omitempty"`
	ExternalEmail *string `json:"externalEmail,omitempty"`
	ExternalPhone *string `json:"externalPhone,omitempty"`

	StorageAddons   []StorageAddonRequest   `json:"storageAddons,omitempty"`
	EquipmentAddons []EquipmentAddonRequest `json:"equipmentAddons,omitempty"`
}

// StorageAddonResponse HTTP модель созданного add-on хранения
type StorageAddonResponse struct {
	ID          int64  `json:"id"`
	StorageType string `json:"storageType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	PriceCents  int64  `json:"priceCents"`
}

// EquipmentAddonResponse HTTP модель созданного add-on оборудования
type EquipmentAddonResponse struct {
	ID            int64  `json:"id"`
	EquipmentName string `json:"equipmentName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	PriceCents    int64  `json:"priceCents"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	KitchenID int64  `json:"kitchenId"`
	ChefID    *int64 `json:"chefId,omitempty"`

	ExternalName  *string `json:"externalName,omitempty"`
	ExternalEmail *string `json:"externalEmail,omitempty"`
	ExternalPhone *string `json:"externalPhone,omitempty"`

	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`

	HourlyRateCents int64  `json:"hourlyRateCents"`
	TotalPriceCents int64  `json:"totalPriceCents"`
	ServiceFeeCents int64  `json:"serviceFeeCents"`
	Currency        string `json:"currency"`

	Notes *string `json:"notes,omitempty"`

	StorageAddons   []StorageAddonResponse   `json:"storageAddons,omitempty"`
	EquipmentAddons []EquipmentAddonResponse `json:"equipmentAddons,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		UserID:        userID,
		KitchenID:     r.KitchenID,
		Date:          bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		Notes:         r.Notes,
		ExternalName:  r.ExternalName,
		ExternalEmail: r.ExternalEmail,
		ExternalPhone: r.ExternalPhone,
	}

	for _, addon := range r.StorageAddons {
		startDate, err := time.Parse(domain.DateFormat, addon.StartDate)
		if err != nil {
			return nil, err
		}
		endDate, err := time.Parse(domain.DateFormat, addon.EndDate)
		if err != nil {
			return nil, err
		}
		req.StorageAddons = append(req.StorageAddons, createBooking.StorageAddonRequest{
			StorageType: addon.StorageType,
			StartDate:   startDate,
			EndDate:     endDate,
			PriceCents:  addon.PriceCents,
		})
	}

	for _, addon := range r.EquipmentAddons {
		startDate, err := time.Parse(domain.DateFormat, addon.StartDate)
		if err != nil {
			return nil, err
		}
		endDate, err := time.Parse(domain.DateFormat, addon.EndDate)
		if err != nil {
			return nil, err
		}
		req.EquipmentAddons = append(req.EquipmentAddons, createBooking.EquipmentAddonRequest{
			EquipmentName: addon.EquipmentName,
			StartDate:     startDate,
			EndDate:       endDate,
			PriceCents:    addon.PriceCents,
		})
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	result := &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		KitchenID:       resp.KitchenID,
		ChefID:          resp.ChefID,
		ExternalName:    resp.ExternalName,
		ExternalEmail:   resp.ExternalEmail,
		ExternalPhone:   resp.ExternalPhone,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Status:          resp.Status,
		HourlyRateCents: resp.HourlyRateCents,
		TotalPriceCents: resp.TotalPriceCents,
		ServiceFeeCents: resp.ServiceFeeCents,
		Currency:        resp.Currency,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}

	for _, addon := range resp.StorageAddons {
		result.StorageAddons = append(result.StorageAddons, StorageAddonResponse{
			ID:          addon.ID,
			StorageType: addon.StorageType,
			StartDate:   addon.StartDate.Format(domain.DateFormat),
			EndDate:     addon.EndDate.Format(domain.DateFormat),
			PriceCents:  addon.PriceCents,
		})
	}

	for _, addon := range resp.EquipmentAddons {
		result.EquipmentAddons = append(result.EquipmentAddons, EquipmentAddonResponse{
			ID:            addon.ID,
			EquipmentName: addon.EquipmentName,
			StartDate:     addon.StartDate.Format(domain.DateFormat),
			EndDate:       addon.EndDate.Format(domain.DateFormat),
			PriceCents:    addon.PriceCents,
		})
	}

	return result
}
