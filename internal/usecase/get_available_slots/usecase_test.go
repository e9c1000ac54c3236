package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	bookings   []*domain.Booking
	lastFilter *domain.KitchenBookingsFilter
}

func (f *fakeBookingRepo) GetByKitchenWithFilter(_ context.Context, filter domain.KitchenBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = &filter
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	weekly    *domain.WeeklyAvailability
	overrides []*domain.DateOverride
}

func (f *fakeScheduleRepo) GetWeeklyForDay(_ context.Context, _ int64, _ int) (*domain.WeeklyAvailability, error) {
	return f.weekly, nil
}

func (f *fakeScheduleRepo) GetOverridesForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DateOverride, error) {
	return f.overrides, nil
}

type fakeKitchenRepo struct {
	kitchen  *domain.Kitchen
	location *domain.Location
}

func (f *fakeKitchenRepo) GetByID(_ context.Context, _ int64) (*domain.Kitchen, error) {
	return f.kitchen, nil
}

func (f *fakeKitchenRepo) GetLocationByID(_ context.Context, _ int64) (*domain.Location, error) {
	return f.location, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

// --- Тестовое окружение ---

var testDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

type env struct {
	bookingRepo  *fakeBookingRepo
	scheduleRepo *fakeScheduleRepo
	kitchenRepo  *fakeKitchenRepo
	clock        *fixedClock
	uc           *UseCase
}

func newEnv() *env {
	e := &env{
		bookingRepo: &fakeBookingRepo{},
		scheduleRepo: &fakeScheduleRepo{
			weekly: &domain.WeeklyAvailability{
				KitchenID:   1,
				DayOfWeek:   int(testDate.Weekday()),
				IsAvailable: true,
				StartTime:   types.TimeString("09:00"),
				EndTime:     types.TimeString("12:00"),
			},
		},
		kitchenRepo: &fakeKitchenRepo{
			kitchen: &domain.Kitchen{ID: 1, LocationID: 1, SlotCapacity: 1},
			location: &domain.Location{
				ID:                    1,
				Timezone:              "America/New_York",
				MinBookingWindowHours: 24,
			},
		},
		clock: &fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
	}

	e.uc = NewUseCase(e.bookingRepo, e.scheduleRepo, e.kitchenRepo, &nopLogger{}).
		WithTimeProvider(e.clock)

	return e
}

func confirmedBooking(start, end string) *domain.Booking {
	chefID := int64(7)
	return &domain.Booking{
		KitchenID: 1,
		ChefID:    &chefID,
		Status:    domain.StatusConfirmed,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

// --- Тесты ---

func TestExecute_OpenDay(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), &Request{KitchenID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", resp.Timezone)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[2].StartTime)

	for _, slot := range resp.Slots {
		assert.Equal(t, 1, slot.AvailableCount)
		assert.False(t, slot.IsFullyBooked)
	}
}

func TestExecute_ClosedDay(t *testing.T) {
	e := newEnv()
	e.scheduleRepo.weekly = nil

	resp, err := e.uc.Execute(context.Background(), &Request{KitchenID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Equal(t, "America/New_York", resp.Timezone)
}

func TestExecute_ConfirmedBookingOccupiesSlot(t *testing.T) {
	e := newEnv()
	e.bookingRepo.bookings = []*domain.Booking{
		confirmedBooking("10:00", "11:00"),
	}

	resp, err := e.uc.Execute(context.Background(), &Request{KitchenID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.False(t, resp.Slots[0].IsFullyBooked)
	assert.True(t, resp.Slots[1].IsFullyBooked)
	assert.Equal(t, 0, resp.Slots[1].AvailableCount)
	assert.False(t, resp.Slots[2].IsFullyBooked)
}

func TestExecute_OnlyConfirmedRequested(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &Request{KitchenID: 1, Date: testDate})
	require.NoError(t, err)

	// Публичная выдача запрашивает только подтверждённые бронирования
	require.NotNil(t, e.bookingRepo.lastFilter)
	require.NotNil(t, e.bookingRepo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *e.bookingRepo.lastFilter.Status)
}

func TestExecute_BookingWindowFiltersSlots(t *testing.T) {
	e := newEnv()
	// 10:00 Нью-Йорк = 14:00 UTC; окно 24 часа
	// cutoff = 2026-09-09T14:00Z + 24h = слоты до 14:00 UTC отсекаются
	e.clock.now = time.Date(2026, 9, 9, 14, 0, 0, 0, time.UTC)

	resp, err := e.uc.Execute(context.Background(), &Request{KitchenID: 1, Date: testDate})
	require.NoError(t, err)

	// 09:00 нарушает окно, 10:00 ровно на границе остаётся
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[1].StartTime)
}

func TestExecute_AllSlotsPastWindow(t *testing.T) {
	e := newEnv()
	e.clock.now = time.Date(2026, 9, 10, 16, 0, 0, 0, time.UTC)

	resp, err := e.uc.Execute(context.Background(), &Request{KitchenID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	// До выборки бронирований дело не доходит
	assert.Nil(t, e.bookingRepo.lastFilter)
}

func TestExecute_OverrideShrinksDay(t *testing.T) {
	e := newEnv()
	start := types.TimeString("10:00")
	end := types.TimeString("11:00")
	e.scheduleRepo.overrides = []*domain.DateOverride{
		{IsAvailable: true, StartTime: &start, EndTime: &end},
	}

	resp, err := e.uc.Execute(context.Background(), &Request{KitchenID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
}

func TestExecute_InvalidRequest(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &Request{KitchenID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.uc.Execute(context.Background(), &Request{KitchenID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
