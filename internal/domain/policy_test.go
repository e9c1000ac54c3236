package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestResolveDailyLimit(t *testing.T) {
	location := &Location{DefaultDailyBookingLimit: 3}

	tests := []struct {
		name      string
		overrides []*DateOverride
		weekly    *WeeklyAvailability
		location  *Location
		want      int
	}{
		{
			name:      "override имеет высший приоритет",
			overrides: []*DateOverride{{MaxSlotsPerChef: intPtr(5)}},
			weekly:    &WeeklyAvailability{MaxSlotsPerChef: intPtr(4)},
			location:  location,
			want:      5,
		},
		{
			name:      "недельное расписание при отсутствии override",
			overrides: nil,
			weekly:    &WeeklyAvailability{MaxSlotsPerChef: intPtr(4)},
			location:  location,
			want:      4,
		},
		{
			name:      "дефолт локации при пустых верхних уровнях",
			overrides: []*DateOverride{{MaxSlotsPerChef: nil}},
			weekly:    &WeeklyAvailability{},
			location:  location,
			want:      3,
		},
		{
			name:     "жёсткий fallback без единого источника",
			location: &Location{},
			want:     DefaultDailyBookingLimit,
		},
		{
			name:      "неположительный override пропускается",
			overrides: []*DateOverride{{MaxSlotsPerChef: intPtr(0)}},
			weekly:    &WeeklyAvailability{MaxSlotsPerChef: intPtr(4)},
			location:  location,
			want:      4,
		},
		{
			name:      "неположительный override не прерывает слой override-ов",
			overrides: []*DateOverride{{MaxSlotsPerChef: intPtr(0)}, {MaxSlotsPerChef: intPtr(6)}},
			location:  location,
			want:      6,
		},
		{
			name:      "берётся первый override с лимитом",
			overrides: []*DateOverride{{}, {MaxSlotsPerChef: intPtr(6)}},
			location:  location,
			want:      6,
		},
		{
			name: "nil локация не ломает цепочку",
			want: DefaultDailyBookingLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDailyLimit(tt.overrides, tt.weekly, tt.location)
			assert.Equal(t, tt.want, got)
		})
	}
}
