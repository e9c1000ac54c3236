package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/internal/service/schedule/models"
	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// --- Фейки зависимостей ---

type fakeScheduleRepo struct {
	weeklies  []*domain.WeeklyAvailability
	overrides []*domain.DateOverride

	upserted        []*domain.WeeklyAvailability
	createdOverride *domain.DateOverride
}

func (f *fakeScheduleRepo) GetWeeklyForKitchen(_ context.Context, _ int64) ([]*domain.WeeklyAvailability, error) {
	return f.weeklies, nil
}

func (f *fakeScheduleRepo) GetWeeklyForDay(_ context.Context, _ int64, dayOfWeek int) (*domain.WeeklyAvailability, error) {
	for _, w := range f.weeklies {
		if w.DayOfWeek == dayOfWeek {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) UpsertWeekly(_ context.Context, weekly *domain.WeeklyAvailability) (*domain.WeeklyAvailability, error) {
	f.upserted = append(f.upserted, weekly)
	return weekly, nil
}

func (f *fakeScheduleRepo) GetOverridesForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DateOverride, error) {
	return f.overrides, nil
}

func (f *fakeScheduleRepo) CreateOverride(_ context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	o := *override
	o.ID = 1
	f.createdOverride = &o
	return &o, nil
}

func (f *fakeScheduleRepo) DeleteOverride(_ context.Context, _, _ int64) error {
	return nil
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

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

// --- Тестовое окружение ---

const managerID = int64(99)

var testDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC) // четверг

type env struct {
	scheduleRepo *fakeScheduleRepo
	kitchenRepo  *fakeKitchenRepo
	svc          *Service
}

func newEnv() *env {
	e := &env{
		scheduleRepo: &fakeScheduleRepo{},
		kitchenRepo: &fakeKitchenRepo{
			kitchen: &domain.Kitchen{ID: 1, LocationID: 1},
			location: &domain.Location{
				ID:                       1,
				DefaultDailyBookingLimit: 2,
				ManagerIDs:               []int64{managerID},
			},
		},
	}

	e.svc = NewService(e.scheduleRepo, e.kitchenRepo, &nopLogger{})
	return e
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

// --- Тесты ---

func TestUpdateSchedule(t *testing.T) {
	t.Run("менеджер обновляет дни расписания", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			KitchenID: 1,
			UserID:    managerID,
			Days: []models.WeeklyDayRequest{
				{DayOfWeek: 1, IsAvailable: true, StartTime: "09:00", EndTime: "17:00"},
				{DayOfWeek: 0, IsAvailable: false},
			},
		})
		require.NoError(t, err)
		require.Len(t, e.scheduleRepo.upserted, 2)
		assert.Equal(t, types.TimeString("09:00"), e.scheduleRepo.upserted[0].StartTime)
	})

	t.Run("не менеджер получает отказ", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			KitchenID: 1,
			UserID:    7,
			Days:      []models.WeeklyDayRequest{{DayOfWeek: 1, IsAvailable: false}},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("открытый день без окна отклоняется", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			KitchenID: 1,
			UserID:    managerID,
			Days:      []models.WeeklyDayRequest{{DayOfWeek: 1, IsAvailable: true}},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("день недели вне диапазона отклоняется", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			KitchenID: 1,
			UserID:    managerID,
			Days:      []models.WeeklyDayRequest{{DayOfWeek: 7, IsAvailable: false}},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCreateOverride(t *testing.T) {
	t.Run("полная блокировка дня без окна допустима", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.CreateOverride(context.Background(), &models.CreateOverrideRequest{
			KitchenID:   1,
			UserID:      managerID,
			Date:        testDate,
			IsAvailable: false,
		})
		require.NoError(t, err)
		assert.False(t, resp.IsAvailable)
		assert.Nil(t, resp.StartTime)
	})

	t.Run("открытый override требует окно", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.CreateOverride(context.Background(), &models.CreateOverrideRequest{
			KitchenID:   1,
			UserID:      managerID,
			Date:        testDate,
			IsAvailable: true,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("границы окна задаются только вместе", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.CreateOverride(context.Background(), &models.CreateOverrideRequest{
			KitchenID:   1,
			UserID:      managerID,
			Date:        testDate,
			IsAvailable: false,
			StartTime:   strPtr("12:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("некорректное время отклоняется", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.CreateOverride(context.Background(), &models.CreateOverrideRequest{
			KitchenID:   1,
			UserID:      managerID,
			Date:        testDate,
			IsAvailable: true,
			StartTime:   strPtr("25:00"),
			EndTime:     strPtr("26:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetDailyPolicy(t *testing.T) {
	t.Run("недельное расписание и дефолтный лимит локации", func(t *testing.T) {
		e := newEnv()
		e.scheduleRepo.weeklies = []*domain.WeeklyAvailability{
			{
				KitchenID:   1,
				DayOfWeek:   int(testDate.Weekday()),
				IsAvailable: true,
				StartTime:   types.TimeString("09:00"),
				EndTime:     types.TimeString("17:00"),
			},
		}

		resp, err := e.svc.GetDailyPolicy(context.Background(), 1, testDate)
		require.NoError(t, err)

		assert.True(t, resp.IsOpen)
		require.Len(t, resp.OpenRanges, 1)
		assert.Equal(t, "09:00", resp.OpenRanges[0].StartTime)
		assert.Equal(t, 2, resp.DailyLimit)
	})

	t.Run("override с блокировкой и своим лимитом", func(t *testing.T) {
		e := newEnv()
		start := types.TimeString("09:00")
		end := types.TimeString("17:00")
		blockStart := types.TimeString("12:00")
		blockEnd := types.TimeString("13:00")
		e.scheduleRepo.overrides = []*domain.DateOverride{
			{IsAvailable: true, StartTime: &start, EndTime: &end, MaxSlotsPerChef: intPtr(4)},
			{IsAvailable: false, StartTime: &blockStart, EndTime: &blockEnd},
		}

		resp, err := e.svc.GetDailyPolicy(context.Background(), 1, testDate)
		require.NoError(t, err)

		assert.True(t, resp.IsOpen)
		require.Len(t, resp.OpenRanges, 2)
		assert.Equal(t, 4, resp.DailyLimit)
	})

	t.Run("закрытый день", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.GetDailyPolicy(context.Background(), 1, testDate)
		require.NoError(t, err)

		assert.False(t, resp.IsOpen)
		assert.Empty(t, resp.OpenRanges)
	})
}
