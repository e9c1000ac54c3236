package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeString
		wantErr bool
	}{
		{"09:00", TimeString("09:00"), false},
		{"00:00", TimeString("00:00"), false},
		{"23:59", TimeString("23:59"), false},
		{"24:00", TimeString("24:00"), false},
		{"24:01", "", true},
		{"25:00", "", true},
		{"abc", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, 1440, TimeString("24:00").Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	// Ровно до конца суток допустимо
	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// За полночь - ошибка
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("01:00").AddMinutes(-120)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_MinutesUntil(t *testing.T) {
	assert.Equal(t, 120, TimeString("09:00").MinutesUntil(TimeString("11:00")))
	assert.Equal(t, -60, TimeString("11:00").MinutesUntil(TimeString("10:00")))
}

func TestTimeString_OnDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got := TimeString("09:30").OnDate(date, loc)

	assert.Equal(t, time.Date(2025, 6, 15, 9, 30, 0, 0, loc), got)
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString

	// Postgres TIME как строка с секундами
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:00:00")))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
