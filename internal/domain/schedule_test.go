package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kitchenly/KB-BookingService/pkg/types"
)

func tr(start, end string) TimeRange {
	return TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestTimeRange_Contains(t *testing.T) {
	r := tr("09:00", "17:00")

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"полностью внутри", "10:00", "12:00", true},
		{"совпадает с диапазоном", "09:00", "17:00", true},
		{"начинается раньше", "08:00", "10:00", false},
		{"заканчивается позже", "16:00", "18:00", false},
		{"целиком снаружи", "18:00", "20:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(types.TimeString(tt.start), types.TimeString(tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeRange_Subtract(t *testing.T) {
	tests := []struct {
		name  string
		base  TimeRange
		block TimeRange
		want  []TimeRange
	}{
		{
			name:  "блок в середине делит диапазон на два",
			base:  tr("09:00", "17:00"),
			block: tr("12:00", "13:00"),
			want:  []TimeRange{tr("09:00", "12:00"), tr("13:00", "17:00")},
		},
		{
			name:  "блок не пересекается",
			base:  tr("09:00", "17:00"),
			block: tr("18:00", "20:00"),
			want:  []TimeRange{tr("09:00", "17:00")},
		},
		{
			name:  "блок накрывает начало",
			base:  tr("09:00", "17:00"),
			block: tr("08:00", "11:00"),
			want:  []TimeRange{tr("11:00", "17:00")},
		},
		{
			name:  "блок накрывает конец",
			base:  tr("09:00", "17:00"),
			block: tr("15:00", "18:00"),
			want:  []TimeRange{tr("09:00", "15:00")},
		},
		{
			name:  "блок накрывает весь диапазон",
			base:  tr("09:00", "17:00"),
			block: tr("08:00", "18:00"),
			want:  []TimeRange{},
		},
		{
			name:  "блок соприкасается с началом",
			base:  tr("09:00", "17:00"),
			block: tr("07:00", "09:00"),
			want:  []TimeRange{tr("09:00", "17:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.base.Subtract(tt.block)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeRange_IsEmpty(t *testing.T) {
	assert.True(t, tr("10:00", "10:00").IsEmpty())
	assert.True(t, tr("12:00", "10:00").IsEmpty())
	assert.False(t, tr("10:00", "11:00").IsEmpty())
}
