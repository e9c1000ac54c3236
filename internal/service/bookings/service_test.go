package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	bookingRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/booking"
	"github.com/kitchenly/KB-BookingService/internal/service/bookings/models"
	"github.com/kitchenly/KB-BookingService/pkg/types"
)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	booking *domain.Booking

	cancelledID    int64
	cancelReason   string
	updatedStatus  *domain.BookingStatus
	updateStatusID int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByChefID(_ context.Context, chefID int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	if f.booking != nil && f.booking.IsOwnedBy(chefID) {
		return []*domain.Booking{f.booking}, nil
	}
	return []*domain.Booking{}, nil
}

func (f *fakeBookingRepo) GetByKitchenWithFilter(_ context.Context, _ domain.KitchenBookingsFilter) ([]*domain.Booking, error) {
	if f.booking == nil {
		return []*domain.Booking{}, nil
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) GetAddons(_ context.Context, _ int64) ([]*domain.StorageBooking, []*domain.EquipmentBooking, error) {
	return nil, nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.updateStatusID = id
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelledID = id
	f.cancelReason = reason
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

type fakeMarketplace struct {
	license domain.LicenseStatus
}

func (f *fakeMarketplace) GetKitchenLicense(_ context.Context, _ int64) (domain.LicenseStatus, error) {
	return f.license, nil
}

type fakeNotifier struct{}

func (f *fakeNotifier) NotifyBookingConfirmed(_ context.Context, _ *domain.Booking) {}

func (f *fakeNotifier) NotifyBookingCancelled(_ context.Context, _ *domain.Booking, _ string) {}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

// --- Тестовое окружение ---

const (
	chefID    = int64(42)
	managerID = int64(99)
	otherID   = int64(7)
)

type env struct {
	bookingRepo *fakeBookingRepo
	kitchenRepo *fakeKitchenRepo
	marketplace *fakeMarketplace
	clock       *fixedClock
	svc         *Service
}

func newEnv(booking *domain.Booking) *env {
	e := &env{
		bookingRepo: &fakeBookingRepo{booking: booking},
		kitchenRepo: &fakeKitchenRepo{
			kitchen: &domain.Kitchen{ID: 1, LocationID: 1},
			location: &domain.Location{
				ID:                        1,
				Timezone:                  "America/New_York",
				CancellationNoticeHours:   48,
				CancellationPolicyMessage: "отмена позднее чем за 48 часов невозможна",
				ManagerIDs:                []int64{managerID},
			},
		},
		marketplace: &fakeMarketplace{license: domain.LicenseApproved},
		clock:       &fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
	}

	e.svc = NewService(
		e.bookingRepo,
		e.kitchenRepo,
		e.marketplace,
		&fakeNotifier{},
		&nopLogger{},
	).WithTimeProvider(e.clock)

	return e
}

func pendingBooking() *domain.Booking {
	owner := chefID
	return &domain.Booking{
		ID:          10,
		KitchenID:   1,
		ChefID:      &owner,
		BookingDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("12:00"),
		Status:      domain.StatusPending,
	}
}

// --- Тесты ---

func TestGetByID_Access(t *testing.T) {
	t.Run("владелец видит своё бронирование", func(t *testing.T) {
		e := newEnv(pendingBooking())

		resp, err := e.svc.GetByID(context.Background(), 10, chefID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
	})

	t.Run("менеджер локации видит любое бронирование кухни", func(t *testing.T) {
		e := newEnv(pendingBooking())

		_, err := e.svc.GetByID(context.Background(), 10, managerID)
		assert.NoError(t, err)
	})

	t.Run("посторонний пользователь получает отказ", func(t *testing.T) {
		e := newEnv(pendingBooking())

		_, err := e.svc.GetByID(context.Background(), 10, otherID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("несуществующее бронирование", func(t *testing.T) {
		e := newEnv(nil)

		_, err := e.svc.GetByID(context.Background(), 10, chefID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetChefBookings_OwnOnly(t *testing.T) {
	e := newEnv(pendingBooking())

	resp, err := e.svc.GetChefBookings(context.Background(), &models.GetChefBookingsRequest{
		ChefID: chefID,
		UserID: chefID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	// Чужую историю запросить нельзя
	_, err = e.svc.GetChefBookings(context.Background(), &models.GetChefBookingsRequest{
		ChefID: chefID,
		UserID: otherID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	t.Run("владелец отменяет задолго до начала", func(t *testing.T) {
		e := newEnv(pendingBooking())

		resp, err := e.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
			UserID: chefID,
			Reason: "планы изменились",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), e.bookingRepo.cancelledID)
		assert.Equal(t, "планы изменились", e.bookingRepo.cancelReason)

		// Вызывающему возвращается итоговое состояние бронирования
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "планы изменились", *resp.CancellationReason)
		assert.NotNil(t, resp.CancelledAt)
	})

	t.Run("владелец внутри окна отмены получает отказ с текстом политики", func(t *testing.T) {
		e := newEnv(pendingBooking())
		// Начало 10:00 Нью-Йорк = 14:00 UTC, дедлайн за 48 часов
		e.clock.now = time.Date(2026, 9, 9, 12, 0, 0, 0, time.UTC)

		_, err := e.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: chefID})
		require.ErrorIs(t, err, ErrCancellationWindowPassed)
		assert.Contains(t, err.Error(), "отмена позднее чем за 48 часов")
		assert.Zero(t, e.bookingRepo.cancelledID)
	})

	t.Run("отмена ровно на границе окна допустима", func(t *testing.T) {
		e := newEnv(pendingBooking())
		// Дедлайн = 2026-09-10T14:00Z - 48h = 2026-09-08T14:00Z
		e.clock.now = time.Date(2026, 9, 8, 14, 0, 0, 0, time.UTC)

		_, err := e.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: chefID})
		assert.NoError(t, err)
	})

	t.Run("менеджер отменяет без ограничения окном", func(t *testing.T) {
		e := newEnv(pendingBooking())
		e.clock.now = time.Date(2026, 9, 10, 13, 0, 0, 0, time.UTC)

		_, err := e.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: managerID})
		assert.NoError(t, err)
	})

	t.Run("повторная отмена идемпотентна", func(t *testing.T) {
		b := pendingBooking()
		b.Status = domain.StatusCancelled
		e := newEnv(b)

		resp, err := e.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: chefID})
		require.NoError(t, err)
		// Репозиторий не трогается, возвращается то же терминальное состояние
		assert.Zero(t, e.bookingRepo.cancelledID)
		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("посторонний пользователь получает отказ", func(t *testing.T) {
		e := newEnv(pendingBooking())

		_, err := e.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: otherID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("менеджер подтверждает pending-бронирование", func(t *testing.T) {
		e := newEnv(pendingBooking())

		resp, err := e.svc.Confirm(context.Background(), 10, &models.ConfirmBookingRequest{UserID: managerID})
		require.NoError(t, err)
		require.NotNil(t, e.bookingRepo.updatedStatus)
		assert.Equal(t, domain.StatusConfirmed, *e.bookingRepo.updatedStatus)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	})

	t.Run("владелец не может подтвердить", func(t *testing.T) {
		e := newEnv(pendingBooking())

		_, err := e.svc.Confirm(context.Background(), 10, &models.ConfirmBookingRequest{UserID: chefID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("подтверждение подтверждённого идемпотентно", func(t *testing.T) {
		b := pendingBooking()
		b.Status = domain.StatusConfirmed
		e := newEnv(b)

		resp, err := e.svc.Confirm(context.Background(), 10, &models.ConfirmBookingRequest{UserID: managerID})
		require.NoError(t, err)
		assert.Nil(t, e.bookingRepo.updatedStatus)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	})

	t.Run("отменённое подтвердить нельзя", func(t *testing.T) {
		b := pendingBooking()
		b.Status = domain.StatusCancelled
		e := newEnv(b)

		_, err := e.svc.Confirm(context.Background(), 10, &models.ConfirmBookingRequest{UserID: managerID})
		assert.ErrorIs(t, err, ErrCannotConfirm)
	})

	t.Run("отозванная лицензия блокирует подтверждение", func(t *testing.T) {
		e := newEnv(pendingBooking())
		e.marketplace.license = domain.LicenseRejected

		_, err := e.svc.Confirm(context.Background(), 10, &models.ConfirmBookingRequest{UserID: managerID})
		assert.ErrorIs(t, err, ErrLicenseNotApproved)
		assert.Nil(t, e.bookingRepo.updatedStatus)
	})
}
