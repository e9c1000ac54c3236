package models

import (
	"time"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/pkg/ptr"
	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// Request модели

// WeeklyDayRequest настройки одного дня недельного расписания
type WeeklyDayRequest struct {
	DayOfWeek       int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	IsAvailable     bool   `json:"isAvailable"`
	StartTime       string `json:"startTime,omitempty"` // "09:00"
	EndTime         string `json:"endTime,omitempty"`   // "17:00"
	MaxSlotsPerChef *int   `json:"maxSlotsPerChef,omitempty"`
}

// UpdateScheduleRequest запрос на обновление недельного расписания кухни
type UpdateScheduleRequest struct {
	KitchenID int64              `json:"kitchenId"`
	UserID    int64              `json:"userId"`
	Days      []WeeklyDayRequest `json:"days"`
}

// CreateOverrideRequest запрос на создание override-записи на дату
type CreateOverrideRequest struct {
	KitchenID       int64     `json:"kitchenId"`
	UserID          int64     `json:"userId"`
	Date            time.Time `json:"date"`
	IsAvailable     bool      `json:"isAvailable"`
	StartTime       *string   `json:"startTime,omitempty"`
	EndTime         *string   `json:"endTime,omitempty"`
	MaxSlotsPerChef *int      `json:"maxSlotsPerChef,omitempty"`
}

// Response модели

// WeeklyDayResponse день недельного расписания
type WeeklyDayResponse struct {
	ID              int64  `json:"id"`
	DayOfWeek       int    `json:"dayOfWeek"`
	IsAvailable     bool   `json:"isAvailable"`
	StartTime       string `json:"startTime,omitempty"`
	EndTime         string `json:"endTime,omitempty"`
	MaxSlotsPerChef *int   `json:"maxSlotsPerChef,omitempty"`
}

// ScheduleResponse недельное расписание кухни
type ScheduleResponse struct {
	KitchenID int64               `json:"kitchenId"`
	Days      []WeeklyDayResponse `json:"days"`
}

// OverrideResponse override-запись на дату
type OverrideResponse struct {
	ID              int64   `json:"id"`
	KitchenID       int64   `json:"kitchenId"`
	Date            string  `json:"date"` // "2026-09-15"
	IsAvailable     bool    `json:"isAvailable"`
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	MaxSlotsPerChef *int    `json:"maxSlotsPerChef,omitempty"`
}

// OpenRangeResponse открытый интервал в политике дня
type OpenRangeResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DailyPolicyResponse эффективная политика кухни на дату
type DailyPolicyResponse struct {
	KitchenID  int64               `json:"kitchenId"`
	Date       string              `json:"date"`
	IsOpen     bool                `json:"isOpen"`
	OpenRanges []OpenRangeResponse `json:"openRanges"`
	DailyLimit int                 `json:"dailyLimit"` // Слотов на шефа в день
}

// Методы конвертации

// FromDomainWeekly конвертирует domain модель дня расписания в DTO
func FromDomainWeekly(w *domain.WeeklyAvailability) WeeklyDayResponse {
	resp := WeeklyDayResponse{
		ID:              w.ID,
		DayOfWeek:       w.DayOfWeek,
		IsAvailable:     w.IsAvailable,
		MaxSlotsPerChef: w.MaxSlotsPerChef,
	}

	if w.IsAvailable {
		resp.StartTime = w.StartTime.String()
		resp.EndTime = w.EndTime.String()
	}

	return resp
}

// FromDomainSchedule конвертирует недельное расписание в DTO
func FromDomainSchedule(kitchenID int64, weeklies []*domain.WeeklyAvailability) *ScheduleResponse {
	resp := &ScheduleResponse{
		KitchenID: kitchenID,
		Days:      make([]WeeklyDayResponse, 0, len(weeklies)),
	}

	for _, w := range weeklies {
		resp.Days = append(resp.Days, FromDomainWeekly(w))
	}

	return resp
}

// FromDomainOverride конвертирует override-запись в DTO
func FromDomainOverride(o *domain.DateOverride) *OverrideResponse {
	resp := &OverrideResponse{
		ID:              o.ID,
		KitchenID:       o.KitchenID,
		Date:            o.Date.Format(domain.DateFormat),
		IsAvailable:     o.IsAvailable,
		MaxSlotsPerChef: o.MaxSlotsPerChef,
	}

	if o.StartTime != nil {
		resp.StartTime = ptr.Ptr(o.StartTime.String())
	}
	if o.EndTime != nil {
		resp.EndTime = ptr.Ptr(o.EndTime.String())
	}

	return resp
}

// FromDomainRanges конвертирует открытые интервалы в DTO
func FromDomainRanges(ranges []domain.TimeRange) []OpenRangeResponse {
	result := make([]OpenRangeResponse, 0, len(ranges))
	for _, r := range ranges {
		result = append(result, OpenRangeResponse{
			StartTime: r.Start.String(),
			EndTime:   r.End.String(),
		})
	}
	return result
}

// ToDomainWeekly конвертирует запрос дня расписания в domain модель
func (r *WeeklyDayRequest) ToDomainWeekly(kitchenID int64) (*domain.WeeklyAvailability, error) {
	weekly := &domain.WeeklyAvailability{
		KitchenID:       kitchenID,
		DayOfWeek:       r.DayOfWeek,
		IsAvailable:     r.IsAvailable,
		MaxSlotsPerChef: r.MaxSlotsPerChef,
	}

	if r.IsAvailable {
		start, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, err
		}
		weekly.StartTime = start
		weekly.EndTime = end
	}

	return weekly, nil
}

// ToDomainOverride конвертирует запрос override в domain модель
func (r *CreateOverrideRequest) ToDomainOverride() (*domain.DateOverride, error) {
	override := &domain.DateOverride{
		KitchenID:       r.KitchenID,
		Date:            r.Date,
		IsAvailable:     r.IsAvailable,
		MaxSlotsPerChef: r.MaxSlotsPerChef,
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		override.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		override.EndTime = &end
	}

	return override, nil
}
