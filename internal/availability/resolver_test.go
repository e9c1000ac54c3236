package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/pkg/types"
)

func ts(s string) types.TimeString { return types.TimeString(s) }

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func tr(start, end string) domain.TimeRange {
	return domain.TimeRange{Start: ts(start), End: ts(end)}
}

func TestResolveOpenRanges_Weekly(t *testing.T) {
	tests := []struct {
		name   string
		weekly *domain.WeeklyAvailability
		want   []domain.TimeRange
	}{
		{
			name:   "открытый день даёт базовое окно",
			weekly: &domain.WeeklyAvailability{IsAvailable: true, StartTime: ts("09:00"), EndTime: ts("17:00")},
			want:   []domain.TimeRange{tr("09:00", "17:00")},
		},
		{
			name:   "закрытый день",
			weekly: &domain.WeeklyAvailability{IsAvailable: false, StartTime: ts("09:00"), EndTime: ts("17:00")},
			want:   nil,
		},
		{
			name:   "нет строки расписания",
			weekly: nil,
			want:   nil,
		},
		{
			name:   "вырожденное окно считается закрытым",
			weekly: &domain.WeeklyAvailability{IsAvailable: true, StartTime: ts("10:00"), EndTime: ts("10:00")},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOpenRanges(nil, tt.weekly)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOpenRanges_Overrides(t *testing.T) {
	weekly := &domain.WeeklyAvailability{IsAvailable: true, StartTime: ts("08:00"), EndTime: ts("20:00")}

	tests := []struct {
		name      string
		overrides []*domain.DateOverride
		want      []domain.TimeRange
	}{
		{
			name: "открытый override заменяет недельное окно",
			overrides: []*domain.DateOverride{
				{IsAvailable: true, StartTime: tsPtr("10:00"), EndTime: tsPtr("14:00")},
			},
			want: []domain.TimeRange{tr("10:00", "14:00")},
		},
		{
			name: "закрытый override вырезает блокировку из окна",
			overrides: []*domain.DateOverride{
				{IsAvailable: true, StartTime: tsPtr("09:00"), EndTime: tsPtr("17:00")},
				{IsAvailable: false, StartTime: tsPtr("12:00"), EndTime: tsPtr("13:00")},
			},
			want: []domain.TimeRange{tr("09:00", "12:00"), tr("13:00", "17:00")},
		},
		{
			name: "только закрытые override закрывают день целиком",
			overrides: []*domain.DateOverride{
				{IsAvailable: false, StartTime: tsPtr("00:00"), EndTime: tsPtr("23:59")},
			},
			want: nil,
		},
		{
			name: "override без окна закрывает день даже при открытом недельном расписании",
			overrides: []*domain.DateOverride{
				{IsAvailable: false},
			},
			want: nil,
		},
		{
			name: "несколько блокировок режут окно на части",
			overrides: []*domain.DateOverride{
				{IsAvailable: true, StartTime: tsPtr("08:00"), EndTime: tsPtr("20:00")},
				{IsAvailable: false, StartTime: tsPtr("10:00"), EndTime: tsPtr("11:00")},
				{IsAvailable: false, StartTime: tsPtr("15:00"), EndTime: tsPtr("16:00")},
			},
			want: []domain.TimeRange{tr("08:00", "10:00"), tr("11:00", "15:00"), tr("16:00", "20:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOpenRanges(tt.overrides, weekly)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name   string
		ranges []domain.TimeRange
		want   []types.TimeString
	}{
		{
			name:   "хвост короче слота отбрасывается",
			ranges: []domain.TimeRange{tr("09:00", "11:30")},
			want:   []types.TimeString{ts("09:00"), ts("10:00")},
		},
		{
			name:   "интервал короче слота не даёт слотов",
			ranges: []domain.TimeRange{tr("09:00", "09:30")},
			want:   []types.TimeString{},
		},
		{
			name:   "несколько интервалов, слоты упорядочены",
			ranges: []domain.TimeRange{tr("14:00", "16:00"), tr("09:00", "11:00")},
			want:   []types.TimeString{ts("09:00"), ts("10:00"), ts("14:00"), ts("15:00")},
		},
		{
			name:   "пустой список интервалов",
			ranges: nil,
			want:   []types.TimeString{},
		},
		{
			name:   "окно до конца суток",
			ranges: []domain.TimeRange{tr("22:00", "24:00")},
			want:   []types.TimeString{ts("22:00"), ts("23:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(tt.ranges, domain.SlotDurationMinutes)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountOverlapping(t *testing.T) {
	bookings := []*domain.Booking{
		{Status: domain.StatusConfirmed, StartTime: ts("10:00"), EndTime: ts("11:00")},
		{Status: domain.StatusPending, StartTime: ts("10:00"), EndTime: ts("12:00")},
		{Status: domain.StatusCancelled, StartTime: ts("10:00"), EndTime: ts("11:00")},
		{Status: domain.StatusConfirmed, StartTime: ts("13:00"), EndTime: ts("14:00")},
	}

	// Отменённые не считаются никогда
	assert.Equal(t, 2, CountOverlapping(bookings, ts("10:00"), ts("11:00"), true))
	assert.Equal(t, 1, CountOverlapping(bookings, ts("10:00"), ts("11:00"), false))

	// Pending занимает слот только при includePending
	assert.Equal(t, 1, CountOverlapping(bookings, ts("11:00"), ts("12:00"), true))
	assert.Equal(t, 0, CountOverlapping(bookings, ts("11:00"), ts("12:00"), false))

	// Соприкасающиеся границы не пересекаются
	assert.Equal(t, 0, CountOverlapping(bookings, ts("14:00"), ts("15:00"), true))
}
