package models

import (
	"errors"
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason"`
}

// ConfirmBookingRequest запрос на подтверждение бронирования
type ConfirmBookingRequest struct {
	UserID int64 `json:"userId"`
}

// GetChefBookingsRequest запрос на получение бронирований шефа
type GetChefBookingsRequest struct {
	ChefID int64   `json:"chefId"`
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetKitchenBookingsRequest запрос на получение бронирований кухни
type GetKitchenBookingsRequest struct {
	KitchenID       int64      `json:"kitchenId"`
	UserID          int64      `json:"userId"`
	ChefID          *int64     `json:"chefId,omitempty"`          // Фильтр по шефу (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetKitchenBookingsRequest) ToDomainFilter() (domain.KitchenBookingsFilter, error) {
	filter := domain.KitchenBookingsFilter{
		KitchenID:       r.KitchenID,
		ChefID:          r.ChefID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// StorageAddonResponse add-on хранения в ответе
type StorageAddonResponse struct {
	ID          int64  `json:"id"`
	StorageType string `json:"storageType"`
	StartDate   string `json:"startDate"` // "2026-09-01"
	EndDate     string `json:"endDate"`
	PriceCents  int64  `json:"priceCents"`
}

// EquipmentAddonResponse add-on оборудования в ответе
type EquipmentAddonResponse struct {
	ID            int64  `json:"id"`
	EquipmentName string `json:"equipmentName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	PriceCents    int64  `json:"priceCents"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64   `json:"id"`
	Reference string  `json:"reference"`
	KitchenID int64   `json:"kitchenId"`
	ChefID    *int64  `json:"chefId,omitempty"`

	ExternalName  *string `json:"externalName,omitempty"`
	ExternalEmail *string `json:"externalEmail,omitempty"`
	ExternalPhone *string `json:"externalPhone,omitempty"`

	BookingDate string `json:"bookingDate"` // "2026-09-15"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`     // "13:00"
	Status      string `json:"status"`

	HourlyRateCents int64  `json:"hourlyRateCents"`
	TotalPriceCents int64  `json:"totalPriceCents"`
	ServiceFeeCents int64  `json:"serviceFeeCents"`
	Currency        string `json:"currency"`

	Notes *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	StorageAddons   []StorageAddonResponse   `json:"storageAddons,omitempty"`
	EquipmentAddons []EquipmentAddonResponse `json:"equipmentAddons,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		KitchenID:          b.KitchenID,
		ChefID:             b.ChefID,
		ExternalName:       b.ExternalName,
		ExternalEmail:      b.ExternalEmail,
		ExternalPhone:      b.ExternalPhone,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		HourlyRateCents:    b.HourlyRateCents,
		TotalPriceCents:    b.TotalPriceCents,
		ServiceFeeCents:    b.ServiceFeeCents,
		Currency:           b.Currency,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// WithAddons добавляет add-on записи в ответ
func (r *BookingResponse) WithAddons(storage []*domain.StorageBooking, equipment []*domain.EquipmentBooking) *BookingResponse {
	for _, addon := range storage {
		r.StorageAddons = append(r.StorageAddons, StorageAddonResponse{
			ID:          addon.ID,
			StorageType: addon.StorageType,
			StartDate:   addon.StartDate.Format(domain.DateFormat),
			EndDate:     addon.EndDate.Format(domain.DateFormat),
			PriceCents:  addon.PriceCents,
		})
	}

	for _, addon := range equipment {
		r.EquipmentAddons = append(r.EquipmentAddons, EquipmentAddonResponse{
			ID:            addon.ID,
			EquipmentName: addon.EquipmentName,
			StartDate:     addon.StartDate.Format(domain.DateFormat),
			EndDate:       addon.EndDate.Format(domain.DateFormat),
			PriceCents:    addon.PriceCents,
		})
	}

	return r
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch status {
	case string(domain.StatusPending):
		return domain.StatusPending, nil
	case string(domain.StatusConfirmed):
		return domain.StatusConfirmed, nil
	case string(domain.StatusCancelled):
		return domain.StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}
