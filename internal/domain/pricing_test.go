package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateQuote(t *testing.T) {
	tests := []struct {
		name             string
		hourlyRateCents  int64
		requestedMinutes int
		minBookingHours  int
		want             Quote
	}{
		{
			name:             "двухчасовое бронирование без минимума",
			hourlyRateCents:  2000,
			requestedMinutes: 120,
			minBookingHours:  1,
			want:             Quote{BillableMinutes: 120, BaseCents: 4000, ServiceFeeCents: 200, TotalCents: 4200},
		},
		{
			name:             "полтора часа добивается до минимума в два часа",
			hourlyRateCents:  2000,
			requestedMinutes: 90,
			minBookingHours:  2,
			want:             Quote{BillableMinutes: 120, BaseCents: 4000, ServiceFeeCents: 200, TotalCents: 4200},
		},
		{
			name:             "запрошенное больше минимума остаётся как есть",
			hourlyRateCents:  1000,
			requestedMinutes: 180,
			minBookingHours:  1,
			want:             Quote{BillableMinutes: 180, BaseCents: 3000, ServiceFeeCents: 150, TotalCents: 3150},
		},
		{
			name:             "округление половины от нуля на базе",
			hourlyRateCents:  1111,
			requestedMinutes: 90,
			minBookingHours:  1,
			// 1111 * 90 / 60 = 1666.5 -> 1667; fee 83.35 -> 83
			want: Quote{BillableMinutes: 90, BaseCents: 1667, ServiceFeeCents: 83, TotalCents: 1750},
		},
		{
			name:             "нулевая ставка",
			hourlyRateCents:  0,
			requestedMinutes: 60,
			minBookingHours:  1,
			want:             Quote{BillableMinutes: 60, BaseCents: 0, ServiceFeeCents: 0, TotalCents: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateQuote(tt.hourlyRateCents, tt.requestedMinutes, tt.minBookingHours)
			assert.Equal(t, tt.want, got)
		})
	}
}
