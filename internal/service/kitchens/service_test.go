package kitchens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/internal/service/kitchens/models"
)

// --- Фейки зависимостей ---

type fakeKitchenRepo struct {
	kitchen  *domain.Kitchen
	location *domain.Location

	updatedRate     *int64
	updatedMinHours *int
	updatedCapacity *int
	deletedID       int64
}

func (f *fakeKitchenRepo) GetByID(_ context.Context, _ int64) (*domain.Kitchen, error) {
	return f.kitchen, nil
}

func (f *fakeKitchenRepo) GetLocationByID(_ context.Context, _ int64) (*domain.Location, error) {
	return f.location, nil
}

func (f *fakeKitchenRepo) UpdatePricing(_ context.Context, _ int64, rate *int64, minHours, capacity *int) (*domain.Kitchen, error) {
	f.updatedRate = rate
	f.updatedMinHours = minHours
	f.updatedCapacity = capacity

	updated := *f.kitchen
	if rate != nil {
		updated.HourlyRateCents = *rate
	}
	if minHours != nil {
		updated.MinBookingHours = *minHours
	}
	if capacity != nil {
		updated.SlotCapacity = *capacity
	}
	return &updated, nil
}

func (f *fakeKitchenRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

type fakeBookingRepo struct {
	count int64
}

func (f *fakeBookingRepo) CountByKitchenID(_ context.Context, _ int64) (int64, error) {
	return f.count, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

// --- Тестовое окружение ---

const managerID = int64(99)

type env struct {
	kitchenRepo *fakeKitchenRepo
	bookingRepo *fakeBookingRepo
	svc         *Service
}

func newEnv() *env {
	e := &env{
		kitchenRepo: &fakeKitchenRepo{
			kitchen: &domain.Kitchen{
				ID:              1,
				LocationID:      1,
				Name:            "Test Kitchen",
				HourlyRateCents: 2000,
				Currency:        "USD",
				MinBookingHours: 1,
				SlotCapacity:    1,
			},
			location: &domain.Location{
				ID:                      1,
				Timezone:                "America/New_York",
				MinBookingWindowHours:   24,
				CancellationNoticeHours: 48,
				ManagerIDs:              []int64{managerID},
			},
		},
		bookingRepo: &fakeBookingRepo{},
	}

	e.svc = NewService(e.kitchenRepo, e.bookingRepo, &fakeTxManager{}, &nopLogger{})
	return e
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

// --- Тесты ---

func TestGetConfig(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.GetConfig(context.Background(), 1)
	require.NoError(t, err)

	// Настройки кухни и политика локации в одном ответе
	assert.Equal(t, int64(2000), resp.HourlyRateCents)
	assert.Equal(t, "America/New_York", resp.Timezone)
	assert.Equal(t, 24, resp.MinBookingWindowHours)
	assert.Equal(t, 48, resp.CancellationNoticeHours)
}

func TestUpdateConfig(t *testing.T) {
	t.Run("менеджер обновляет часть полей", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
			KitchenID:       1,
			UserID:          managerID,
			HourlyRateCents: int64Ptr(2500),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(2500), resp.HourlyRateCents)
		// Не переданные поля не трогаются
		assert.Nil(t, e.kitchenRepo.updatedMinHours)
		assert.Nil(t, e.kitchenRepo.updatedCapacity)
	})

	t.Run("не менеджер получает отказ", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
			KitchenID:       1,
			UserID:          7,
			HourlyRateCents: int64Ptr(2500),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("пустой запрос ничего не меняет", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
			KitchenID: 1,
			UserID:    managerID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2000), resp.HourlyRateCents)
		assert.Nil(t, e.kitchenRepo.updatedRate)
	})

	t.Run("некорректные значения отклоняются", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
			KitchenID:       1,
			UserID:          managerID,
			HourlyRateCents: int64Ptr(-1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = e.svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
			KitchenID:    1,
			UserID:       managerID,
			SlotCapacity: intPtr(0),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = e.svc.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
			KitchenID:       1,
			UserID:          managerID,
			MinBookingHours: intPtr(25),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDelete(t *testing.T) {
	t.Run("кухня без бронирований удаляется", func(t *testing.T) {
		e := newEnv()

		err := e.svc.Delete(context.Background(), 1, managerID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), e.kitchenRepo.deletedID)
	})

	t.Run("кухня с историей бронирований не удаляется", func(t *testing.T) {
		e := newEnv()
		e.bookingRepo.count = 3

		err := e.svc.Delete(context.Background(), 1, managerID)
		assert.ErrorIs(t, err, ErrHasBookings)
		assert.Zero(t, e.kitchenRepo.deletedID)
	})

	t.Run("не менеджер получает отказ", func(t *testing.T) {
		e := newEnv()

		err := e.svc.Delete(context.Background(), 1, 7)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
