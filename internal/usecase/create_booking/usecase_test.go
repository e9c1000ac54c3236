package create_booking

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
	existing      []*domain.Booking
	created       *domain.Booking
	storageAddons []*domain.StorageBooking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	b := *booking
	b.ID = 1
	f.created = &b
	return &b, nil
}

func (f *fakeBookingRepo) CreateStorageAddon(_ context.Context, addon *domain.StorageBooking) (*domain.StorageBooking, error) {
	a := *addon
	a.ID = int64(len(f.storageAddons) + 1)
	f.storageAddons = append(f.storageAddons, &a)
	return &a, nil
}

func (f *fakeBookingRepo) CreateEquipmentAddon(_ context.Context, addon *domain.EquipmentBooking) (*domain.EquipmentBooking, error) {
	a := *addon
	a.ID = 1
	return &a, nil
}

func (f *fakeBookingRepo) GetByKitchenWithFilter(_ context.Context, _ domain.KitchenBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
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

type fakeMarketplace struct {
	application domain.ApplicationStatus
	license     domain.LicenseStatus
}

func (f *fakeMarketplace) GetApplicationStatus(_ context.Context, _, _ int64) (domain.ApplicationStatus, error) {
	return f.application, nil
}

func (f *fakeMarketplace) GetKitchenLicense(_ context.Context, _ int64) (domain.LicenseStatus, error) {
	return f.license, nil
}

type fakeNotifier struct{}

func (f *fakeNotifier) NotifyBookingCreated(_ context.Context, _ *domain.Booking) {}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type env struct {
	bookingRepo  *fakeBookingRepo
	scheduleRepo *fakeScheduleRepo
	kitchenRepo  *fakeKitchenRepo
	marketplace  *fakeMarketplace
	clock        *fixedClock
	uc           *UseCase
}

// Четверг 2026-09-10, кухня открыта 09:00-17:00, локация в Нью-Йорке,
// окно бронирования 24 часа, менеджер локации - пользователь 99.
var (
	testDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func newEnv() *env {
	e := &env{
		bookingRepo: &fakeBookingRepo{},
		scheduleRepo: &fakeScheduleRepo{
			weekly: &domain.WeeklyAvailability{
				KitchenID:   1,
				DayOfWeek:   int(testDate.Weekday()),
				IsAvailable: true,
				StartTime:   types.TimeString("09:00"),
				EndTime:     types.TimeString("17:00"),
			},
		},
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
				ID:                       1,
				Timezone:                 "America/New_York",
				MinBookingWindowHours:    24,
				DefaultDailyBookingLimit: 2,
				ManagerIDs:               []int64{99},
			},
		},
		marketplace: &fakeMarketplace{
			application: domain.ApplicationApproved,
			license:     domain.LicenseApproved,
		},
		clock: &fixedClock{now: testNow},
	}

	e.uc = NewUseCase(
		e.bookingRepo,
		e.scheduleRepo,
		e.kitchenRepo,
		e.marketplace,
		&fakeNotifier{},
		&fakeTxManager{},
		&nopLogger{},
	).WithTimeProvider(e.clock)

	return e
}

func chefRequest(start, end string) *Request {
	return &Request{
		UserID:    42,
		KitchenID: 1,
		Date:      testDate,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func chefBooking(chefID int64, status domain.BookingStatus, start, end string) *domain.Booking {
	return &domain.Booking{
		KitchenID: 1,
		ChefID:    &chefID,
		Status:    status,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), chefRequest("10:00", "12:00"))
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.NotEmpty(t, resp.Reference)
	require.NotNil(t, resp.ChefID)
	assert.Equal(t, int64(42), *resp.ChefID)

	// 2 часа по 2000 центов + 5% сервисный сбор
	assert.Equal(t, int64(4200), resp.TotalPriceCents)
	assert.Equal(t, int64(200), resp.ServiceFeeCents)

	require.NotNil(t, e.bookingRepo.created)
	assert.Equal(t, domain.StatusPending, e.bookingRepo.created.Status)
}

func TestExecute_NotEligible(t *testing.T) {
	e := newEnv()
	e.marketplace.application = domain.ApplicationPending

	_, err := e.uc.Execute(context.Background(), chefRequest("10:00", "12:00"))
	require.ErrorIs(t, err, ErrNotEligible)
	// Текущий статус заявки виден вызывающему
	assert.Contains(t, err.Error(), string(domain.ApplicationPending))
}

func TestExecute_LicenseNotApproved(t *testing.T) {
	e := newEnv()
	e.marketplace.license = domain.LicensePending

	_, err := e.uc.Execute(context.Background(), chefRequest("10:00", "12:00"))
	require.ErrorIs(t, err, ErrLicenseNotApproved)
	// Фактический статус лицензии виден вызывающему
	assert.Contains(t, err.Error(), string(domain.LicensePending))
}

func TestExecute_CutoffWindow(t *testing.T) {
	// Начало 10:00 в Нью-Йорке (UTC-4 летом) = 14:00 UTC
	startAtUTC := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)

	t.Run("начало ровно на границе окна допустимо", func(t *testing.T) {
		e := newEnv()
		e.clock.now = startAtUTC.Add(-24 * time.Hour)

		_, err := e.uc.Execute(context.Background(), chefRequest("10:00", "11:00"))
		assert.NoError(t, err)
	})

	t.Run("нарушение окна на минуту отклоняется", func(t *testing.T) {
		e := newEnv()
		e.clock.now = startAtUTC.Add(-24*time.Hour + time.Minute)

		_, err := e.uc.Execute(context.Background(), chefRequest("10:00", "11:00"))
		assert.ErrorIs(t, err, ErrTooSoonToBook)
	})
}

func TestExecute_DailyLimitExceeded(t *testing.T) {
	e := newEnv()
	// Лимит локации 2 слота = 120 минут, у шефа уже 2 часа на эту дату
	e.bookingRepo.existing = []*domain.Booking{
		chefBooking(42, domain.StatusConfirmed, "09:00", "11:00"),
	}

	_, err := e.uc.Execute(context.Background(), chefRequest("12:00", "13:00"))
	require.ErrorIs(t, err, ErrDailyLimitExceeded)
	// Разрешённый лимит и занятые минуты видны вызывающему
	assert.Contains(t, err.Error(), "limit is 2 slot-hours")
	assert.Contains(t, err.Error(), "booked 120 min")
}

func TestExecute_SlotConflict(t *testing.T) {
	t.Run("pending чужое бронирование держит слот", func(t *testing.T) {
		e := newEnv()
		e.bookingRepo.existing = []*domain.Booking{
			chefBooking(7, domain.StatusPending, "10:00", "11:00"),
		}

		_, err := e.uc.Execute(context.Background(), chefRequest("10:00", "11:00"))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("отменённое бронирование освобождает слот", func(t *testing.T) {
		e := newEnv()
		e.bookingRepo.existing = []*domain.Booking{
			chefBooking(7, domain.StatusCancelled, "10:00", "11:00"),
		}

		_, err := e.uc.Execute(context.Background(), chefRequest("10:00", "11:00"))
		assert.NoError(t, err)
	})

	t.Run("соседний интервал не конфликтует", func(t *testing.T) {
		e := newEnv()
		e.bookingRepo.existing = []*domain.Booking{
			chefBooking(7, domain.StatusConfirmed, "09:00", "10:00"),
		}

		_, err := e.uc.Execute(context.Background(), chefRequest("10:00", "11:00"))
		assert.NoError(t, err)
	})
}

func TestExecute_KitchenClosed(t *testing.T) {
	e := newEnv()
	e.scheduleRepo.weekly = nil

	_, err := e.uc.Execute(context.Background(), chefRequest("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrKitchenClosed)
}

func TestExecute_OverrideBlocksRange(t *testing.T) {
	e := newEnv()
	e.scheduleRepo.overrides = []*domain.DateOverride{
		{IsAvailable: true, StartTime: tsPtr("09:00"), EndTime: tsPtr("17:00")},
		{IsAvailable: false, StartTime: tsPtr("12:00"), EndTime: tsPtr("14:00")},
	}

	_, err := e.uc.Execute(context.Background(), chefRequest("12:00", "13:00"))
	assert.ErrorIs(t, err, ErrKitchenClosed)

	_, err = e.uc.Execute(context.Background(), chefRequest("09:00", "11:00"))
	assert.NoError(t, err)
}

func TestExecute_MisalignedStart(t *testing.T) {
	e := newEnv()
	e.scheduleRepo.weekly.StartTime = types.TimeString("09:30")
	e.scheduleRepo.weekly.EndTime = types.TimeString("17:30")

	// Начало 10:00 не попадает на сетку слотов от 09:30
	_, err := e.uc.Execute(context.Background(), chefRequest("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = e.uc.Execute(context.Background(), chefRequest("10:30", "11:30"))
	assert.NoError(t, err)
}

func TestExecute_InvalidRange(t *testing.T) {
	e := newEnv()

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"конец раньше начала", "12:00", "10:00"},
		{"длительность не кратна слоту", "10:00", "10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), chefRequest(tt.start, tt.end))
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestExecute_ExternalBooking(t *testing.T) {
	name := "Walk-in Client"
	email := "client@example.com"

	externalRequest := func(userID int64) *Request {
		req := chefRequest("10:00", "11:00")
		req.UserID = userID
		req.ExternalName = &name
		req.ExternalEmail = &email
		return req
	}

	t.Run("не менеджер не может создать внешнее бронирование", func(t *testing.T) {
		e := newEnv()

		_, err := e.uc.Execute(context.Background(), externalRequest(42))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("менеджер создаёт без допуска и окна бронирования", func(t *testing.T) {
		e := newEnv()
		// Допуск не одобрен и время почти наступило - для менеджера не препятствие
		e.marketplace.application = domain.ApplicationRejected
		e.clock.now = time.Date(2026, 9, 10, 13, 0, 0, 0, time.UTC)

		resp, err := e.uc.Execute(context.Background(), externalRequest(99))
		require.NoError(t, err)

		assert.Nil(t, resp.ChefID)
		require.NotNil(t, resp.ExternalName)
		assert.Equal(t, name, *resp.ExternalName)
	})

	t.Run("лицензия проверяется и для внешних бронирований", func(t *testing.T) {
		e := newEnv()
		e.marketplace.license = domain.LicenseRejected

		_, err := e.uc.Execute(context.Background(), externalRequest(99))
		assert.ErrorIs(t, err, ErrLicenseNotApproved)
	})
}

func TestExecute_StorageAddonsCreatedWithBooking(t *testing.T) {
	e := newEnv()

	req := chefRequest("10:00", "12:00")
	req.StorageAddons = []StorageAddonRequest{
		{StorageType: "cold", StartDate: testDate, EndDate: testDate.AddDate(0, 0, 7), PriceCents: 1500},
	}

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.StorageAddons, 1)
	assert.Equal(t, "cold", resp.StorageAddons[0].StorageType)
	assert.Equal(t, int64(1500), resp.StorageAddons[0].PriceCents)

	require.Len(t, e.bookingRepo.storageAddons, 1)
	assert.Equal(t, e.bookingRepo.created.ID, e.bookingRepo.storageAddons[0].BookingID)
}

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}
